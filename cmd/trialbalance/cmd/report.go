// cmd/trialbalance/cmd/report.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trial-balance/internal/config"
	"trial-balance/internal/models"
	"trial-balance/internal/presenter"
	"trial-balance/internal/repository"
	"trial-balance/internal/service"
)

const (
	reportCmdJournal      = "journal"
	reportCmdAccounts     = "accounts"
	reportCmdFormat       = "format"
	reportCmdStartAccount = "start-account"
	reportCmdEndAccount   = "end-account"
	reportCmdStartPeriod  = "start-period"
	reportCmdEndPeriod    = "end-period"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:     "report",
		Short:   "Print a trial balance",
		Long:    `Prints nothing until --format, --start-period and --end-period are all given.`,
		Example: "trialbalance report --journal journal.csv --accounts accounts.csv -f csv --start-period 2023-01-01 --end-period 2023-12-31",
		Args:    cobra.NoArgs,
		RunE:    runReport,
	}

	reportCmd.Flags().String(reportCmdJournal, "", "journal CSV file (default from config)")
	reportCmd.Flags().String(reportCmdAccounts, "", "chart of accounts CSV file (default from config)")
	reportCmd.Flags().StringP(reportCmdFormat, "f", "", "output format: csv, table or json")
	reportCmd.Flags().String(reportCmdStartAccount, "", "first account to include")
	reportCmd.Flags().String(reportCmdEndAccount, "", "last account to include")
	reportCmd.Flags().String(reportCmdStartPeriod, "", "first period to include (YYYY-MM-DD)")
	reportCmd.Flags().String(reportCmdEndPeriod, "", "last period to include (YYYY-MM-DD)")

	return reportCmd
}

func runReport(ccmd *cobra.Command, args []string) error {
	ctx := ccmd.Context()

	var req models.ReportRequest
	req.Format, _ = ccmd.Flags().GetString(reportCmdFormat)
	req.StartAccount, _ = ccmd.Flags().GetString(reportCmdStartAccount)
	req.EndAccount, _ = ccmd.Flags().GetString(reportCmdEndAccount)
	req.StartPeriod, _ = ccmd.Flags().GetString(reportCmdStartPeriod)
	req.EndPeriod, _ = ccmd.Flags().GetString(reportCmdEndPeriod)

	if !req.Ready() {
		return nil
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid report request: %w", err)
	}
	format, err := req.OutputFormat()
	if err != nil {
		return err
	}
	criteria, err := req.Criteria()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	journalPath, _ := ccmd.Flags().GetString(reportCmdJournal)
	if journalPath == "" {
		journalPath = cfg.Source.JournalPath
	}
	accountsPath, _ := ccmd.Flags().GetString(reportCmdAccounts)
	if accountsPath == "" {
		accountsPath = cfg.Source.AccountsPath
	}

	log := newLogger(ccmd, cfg)
	defer log.Sync()

	dataset, err := service.LoadDataset(ctx, repository.NewFileRepository(journalPath, accountsPath), log)
	if err != nil {
		return err
	}

	report := service.NewReportService(dataset, nil, nil, log).Generate(criteria)

	out := ccmd.OutOrStdout()
	if format != models.FormatJSON {
		fmt.Fprintf(out, "%s\n\n", presenter.Summary(report))
	}
	return presenter.Render(out, format, report)
}
