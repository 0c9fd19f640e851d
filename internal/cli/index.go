package cli

import (
	"fmt"
	"path/filepath"

	"druglabelsearch/internal/index"
	"druglabelsearch/internal/storage"
	"github.com/spf13/cobra"
)

var (
	indexDataDir string
	indexWorkers int
	showTopTerms int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the inverted index",
	Long:  `Build the inverted index from the extracted drug records and write it to drug_index.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = indexDataDir
		}
		if cmd.Flags().Changed("workers") {
			cfg.Index.Workers = indexWorkers
		}

		store, err := storage.NewRecordStore(filepath.Join(cfg.DataDir, "drugs.db"))
		if err != nil {
			return fmt.Errorf("failed to open record store: %w", err)
		}
		defer store.Close()

		records, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if len(records) == 0 {
			return fmt.Errorf("no records to index: run extract first")
		}

		weights := index.FieldWeightsFromMap(cfg.Index.FieldWeights)
		ix, err := index.BuildFromRecords(records, weights, cfg.Index.Workers)
		if err != nil {
			return fmt.Errorf("index build failed: %w", err)
		}

		indexPath := filepath.Join(cfg.DataDir, "drug_index.json")
		if err := ix.Save(indexPath); err != nil {
			return err
		}

		stats := ix.Statistics(showTopTerms)
		fmt.Printf("Indexed %d documents (%d unique terms, %d tokens, avg length %.1f)\n",
			stats.TotalDocuments, stats.UniqueTerms, stats.TotalTokens, stats.AvgDocLength)
		fmt.Printf("Top terms:\n")
		for _, tc := range stats.TopTerms {
			fmt.Printf("  %-30s %d\n", tc.Term, tc.DocCount)
		}
		fmt.Printf("Index written to %s\n", indexPath)

		return nil
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexDataDir, "data-dir", "./data", "Data storage directory")
	indexCmd.Flags().IntVar(&indexWorkers, "workers", 4, "Tokenization workers (0 = number of CPUs)")
	indexCmd.Flags().IntVar(&showTopTerms, "top-terms", 10, "How many top terms to print")
}
