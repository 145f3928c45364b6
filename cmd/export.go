package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/support-radar/internal/pipeline"
)

var (
	exportInput string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Validate, sort, and export merged records to the final CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := pipeline.ReadRecordsCSV(exportInput)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = cfg.Export.OutPath
		}
		return pipeline.Export(out, records, scoreConfig(cfg).MinTeamSize)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "merged_companies.csv", "merged records CSV")
	exportCmd.Flags().StringVar(&exportOut, "output", "", "output CSV path (default from config)")
	rootCmd.AddCommand(exportCmd)
}
