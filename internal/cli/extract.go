package cli

import (
	"fmt"
	"path/filepath"

	"druglabelsearch/internal/extract"
	"druglabelsearch/internal/storage"
	"github.com/spf13/cobra"
)

var extractDataDir string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract drug records from saved pages",
	Long:  `Parse every saved label page into a structured drug record and store the records in the SQLite database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = extractDataDir
		}

		pages, err := storage.NewPageStore(filepath.Join(cfg.DataDir, "html"), cfg.Crawler.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to open page store: %w", err)
		}

		store, err := storage.NewRecordStore(filepath.Join(cfg.DataDir, "drugs.db"))
		if err != nil {
			return fmt.Errorf("failed to open record store: %w", err)
		}
		defer store.Close()

		count, err := extract.Run(pages, store)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		fmt.Printf("Extracted %d drug records\n", count)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractDataDir, "data-dir", "./data", "Data storage directory")
}
