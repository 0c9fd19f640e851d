package cli

import (
	"fmt"
	"path/filepath"

	"druglabelsearch/internal/export"
	"druglabelsearch/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportDataDir string
	outputFile    string
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export extracted drug records",
	Long:  `Export the extracted drug records from the SQLite database to TSV or JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = exportDataDir
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

		exporter, err := export.NewExporter(filepath.Dir(outputFile))
		if err != nil {
			return err
		}

		switch exportFormat {
		case "tsv":
			err = exporter.ExportTSV(records, outputFile)
		case "json":
			err = exporter.ExportJSON(records, outputFile)
		default:
			return fmt.Errorf("unknown export format %q (want tsv or json)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Successfully exported %d records to %s\n", len(records), outputFile)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDataDir, "data-dir", "./data", "Data storage directory")
	exportCmd.Flags().StringVar(&outputFile, "output", "drugs.tsv", "Output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "tsv", "Output format: tsv or json")
}
