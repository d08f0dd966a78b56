package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/model"
)

var (
	importCSVPath string
	importEmails  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Append leads from a CSV/XLSX file or an email list to the sink",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if importCSVPath == "" && importEmails == "" {
			return eris.New("one of --csv or --emails is required")
		}

		env, err := initEnv(ctx, "import")
		if err != nil {
			return err
		}

		var leads []model.Lead
		if importCSVPath != "" {
			data, err := os.ReadFile(importCSVPath)
			if err != nil {
				return eris.Wrapf(err, "read %s", importCSVPath)
			}
			leads, err = env.Intake.ImportFile(ctx, importCSVPath, data)
			if err != nil {
				return err
			}
		} else {
			leads, err = env.Intake.ImportEmails(ctx, importEmails)
			if err != nil {
				return err
			}
		}

		zap.L().Info("import complete", zap.Int("appended", len(leads)))
		fmt.Fprintf(cmd.OutOrStdout(), "Appended %d leads.\n", len(leads))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to a CSV or XLSX lead file")
	importCmd.Flags().StringVar(&importEmails, "emails", "", "comma-separated email addresses")
	importCmd.MarkFlagsMutuallyExclusive("csv", "emails")
	rootCmd.AddCommand(importCmd)
}
