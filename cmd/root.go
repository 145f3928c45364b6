package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/support-radar/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "support-radar",
	Short: "Find companies running sizable customer-support teams",
	Long:  "Screens candidate companies through HeadHunter vacancy postings and their own websites, estimates support team size from the evidence, and exports companies with teams of ten or more.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
