package cli

import (
	"fmt"

	"druglabelsearch/internal/crawler"
	"github.com/spf13/cobra"
)

var (
	startURL     string
	dataDir      string
	maxPages     int
	ignoreRobots bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Start a new crawl",
	Long:  `Start crawling drug label pages from a given URL, saving pages and fetch metadata under the data directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyCrawlFlags(cmd)
		return runCrawl(cmd, false)
	},
}

// applyCrawlFlags layers explicitly set flags over the loaded config.
func applyCrawlFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("start-url") || cfg.Crawler.StartURL == "" {
		cfg.Crawler.StartURL = startURL
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.Crawler.MaxPages = maxPages
	}
	if cmd.Flags().Changed("ignore-robots") {
		cfg.Crawler.IgnoreRobots = ignoreRobots
	}
}

func runCrawl(cmd *cobra.Command, resume bool) error {
	if cfg.Crawler.StartURL == "" {
		return fmt.Errorf("no start URL: pass --start-url or set crawler.startURL in the config")
	}

	c, err := crawler.New(cfg.Crawler, cfg.DataDir, resume)
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}
	defer c.Close()

	results, err := c.Crawl(cmd.Context(), cfg.Crawler.StartURL, cfg.Crawler.MaxPages)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Printf("Crawl completed!\n")
	fmt.Printf("Fetched: %d, Failed: %d, Saved: %d, Pending: %d\n",
		results.Fetched, results.Failed, results.Saved, results.Pending)

	return nil
}

func init() {
	crawlCmd.Flags().StringVar(&startURL, "start-url", "", "Starting URL (defaults to crawler.startURL from config)")
	crawlCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Data storage directory")
	crawlCmd.Flags().IntVar(&maxPages, "max-pages", 20000, "Stop after this many pages have been saved")
	crawlCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "Ignore robots.txt")
}
