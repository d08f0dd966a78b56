package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadflow/internal/dashboard"
)

var (
	sendCSVPath    string
	sendEmails     string
	sendIndustries []string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Import leads, score them and email every lead with an address",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if sendCSVPath == "" && sendEmails == "" {
			return eris.New("one of --csv or --emails is required")
		}

		env, err := initEnv(ctx, "send")
		if err != nil {
			return err
		}

		session := dashboard.NewSession()
		session.Industries = sendIndustries
		if sendCSVPath != "" {
			data, err := os.ReadFile(sendCSVPath)
			if err != nil {
				return eris.Wrapf(err, "read %s", sendCSVPath)
			}
			session.Input = dashboard.Input{FileName: filepath.Base(sendCSVPath), File: data}
		} else {
			session.Input = dashboard.Input{Emails: sendEmails}
		}

		report, view := env.Controller().RefreshAndSend(ctx, session)

		out := cmd.OutOrStdout()
		for _, m := range view.Messages {
			fmt.Fprintf(out, "[%s] %s\n", m.Level, m.Text)
		}
		for _, r := range view.Rows {
			fmt.Fprintf(out, "%-24s %-32s %-20s %-12s %d\n", r.Name, r.Email, r.Industry, r.Status, r.Score)
		}

		if report.Attempted == 0 {
			for _, m := range view.Messages {
				if m.Level == dashboard.LevelError {
					return eris.New(m.Text)
				}
			}
		}
		if report.Failed > 0 {
			return eris.Errorf("%d of %d emails failed (run %s)", report.Failed, report.Attempted, report.RunID)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendCSVPath, "csv", "", "path to a CSV or XLSX lead file")
	sendCmd.Flags().StringVar(&sendEmails, "emails", "", "comma-separated email addresses")
	sendCmd.Flags().StringSliceVar(&sendIndustries, "industries", nil, "industries to score against (default from config)")
	sendCmd.MarkFlagsMutuallyExclusive("csv", "emails")
	rootCmd.AddCommand(sendCmd)
}
