// Package config loads application configuration from a YAML file with
// environment-variable overrides. Zero values fall back to defaults tuned
// for a polite single-site crawl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	DataDir string        `yaml:"dataDir"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
}

// CrawlerConfig holds fetch and frontier settings.
type CrawlerConfig struct {
	BaseURL       string        `yaml:"baseURL"`
	StartURL      string        `yaml:"startURL"`
	UserAgent     string        `yaml:"userAgent"`
	Timeout       time.Duration `yaml:"timeout"`
	SleepMin      time.Duration `yaml:"sleepMin"`
	SleepMax      time.Duration `yaml:"sleepMax"`
	MaxRetries    int           `yaml:"maxRetries"`
	MaxPages      int           `yaml:"maxPages"`
	BatchSize     int           `yaml:"batchSize"`
	SnapshotEvery int           `yaml:"snapshotEvery"`
	IgnoreRobots  bool          `yaml:"ignoreRobots"`
}

// IndexConfig holds index-build settings.
type IndexConfig struct {
	Workers      int            `yaml:"workers"`
	FieldWeights map[string]int `yaml:"fieldWeights"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	Model string `yaml:"model"`
	TopK  int    `yaml:"topK"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: "./data",
		Crawler: CrawlerConfig{
			BaseURL:       "https://dailymed.nlm.nih.gov",
			UserAgent:     "DrugLabelResearchBot/1.0 (information retrieval study project)",
			Timeout:       30 * time.Second,
			SleepMin:      1 * time.Second,
			SleepMax:      2500 * time.Millisecond,
			MaxRetries:    3,
			MaxPages:      20000,
			BatchSize:     2000,
			SnapshotEvery: 100,
		},
		Index: IndexConfig{
			Workers: 4,
		},
		Search: SearchConfig{
			Model: "standard",
			TopK:  10,
		},
	}
}

// Load reads the YAML file at path, merges it over the defaults, and applies
// environment overrides. An empty path yields defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the crawler cannot run with.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	if c.Crawler.SleepMin > c.Crawler.SleepMax {
		return fmt.Errorf("crawler.sleepMin (%s) exceeds crawler.sleepMax (%s)",
			c.Crawler.SleepMin, c.Crawler.SleepMax)
	}
	if c.Crawler.MaxRetries < 1 {
		return fmt.Errorf("crawler.maxRetries must be at least 1")
	}
	if c.Crawler.BatchSize < 1 {
		return fmt.Errorf("crawler.batchSize must be at least 1")
	}
	if c.Crawler.SnapshotEvery < 1 {
		return fmt.Errorf("crawler.snapshotEvery must be at least 1")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DRUGLABEL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DRUGLABEL_START_URL"); v != "" {
		cfg.Crawler.StartURL = v
	}
	if v := os.Getenv("DRUGLABEL_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Crawler.MaxPages = n
		}
	}
	if v := os.Getenv("DRUGLABEL_INDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.Workers = n
		}
	}
}
