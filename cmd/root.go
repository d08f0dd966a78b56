package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadflow",
	Short: "Lead intake, scoring and email outreach",
	Long:  "Imports leads from CSV, XLSX or email lists into a tracking sheet, scores them by industry and title, and sends each one a generated workflow-audit email.",
	// Errors are printed and logged once by main.
	SilenceErrors: true,
	SilenceUsage:  true,
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
		reportFatal(err)
		os.Exit(1)
	}
}

// reportFatal prints err to stderr and appends it to the error log file.
func reportFatal(err error) {
	fmt.Fprintln(os.Stderr, "leadflow:", apperr.UserMessage(err))

	path := config.DefaultErrorFile
	if cfg != nil && cfg.Log.ErrorFile != "" {
		path = cfg.Log.ErrorFile
	}
	if logErr := config.AppendErrorLog(path, err); logErr != nil {
		fmt.Fprintln(os.Stderr, "leadflow: write error log:", logErr)
	}
}
