package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"druglabelsearch/internal/index"
	"druglabelsearch/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchDataDir string
	modelName     string
	topK          int
	compareModels bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the drug label index",
	Long:  `Run a ranked conjunctive query against the built index. All query terms that exist in the vocabulary must match`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = searchDataDir
		}
		if !cmd.Flags().Changed("model") {
			modelName = cfg.Search.Model
		}
		if !cmd.Flags().Changed("top-k") {
			topK = cfg.Search.TopK
		}

		query := strings.Join(args, " ")

		ix, err := index.Load(filepath.Join(cfg.DataDir, "drug_index.json"))
		if err != nil {
			return fmt.Errorf("failed to load index: %w", err)
		}
		engine := search.NewEngine(ix)

		if compareModels {
			byModel := engine.Compare(query, topK)
			for _, model := range search.Models {
				fmt.Printf("=== %s ===\n", model)
				printResults(byModel[model])
			}
			return nil
		}

		model, err := search.ParseModel(modelName)
		if err != nil {
			return err
		}
		printResults(engine.Search(query, model, topK))
		return nil
	},
}

func printResults(results []search.Result) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, r := range results {
		fmt.Printf("%2d. [%.4f] %s (setid %s)\n", i+1, r.Score, r.DrugName, r.SetID)
		if r.ActiveIngredients != "" {
			fmt.Printf("    Active: %s\n", r.ActiveIngredients)
		}
		if r.Indications != "" {
			fmt.Printf("    %s\n", r.Indications)
		}
	}
}

func init() {
	searchCmd.Flags().StringVar(&searchDataDir, "data-dir", "./data", "Data storage directory")
	searchCmd.Flags().StringVar(&modelName, "model", "standard", "IDF model: standard/smooth/probabilistic/bm25")
	searchCmd.Flags().IntVar(&topK, "top-k", 10, "Number of results to return")
	searchCmd.Flags().BoolVar(&compareModels, "compare", false, "Run the query under every model")
}
