// cmd/trialbalance/cmd/root.go
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trial-balance/internal/config"
	"trial-balance/pkg/logger"
)

const flagVerbose = "verbose"

// NewRootCmd builds the trialbalance command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trialbalance",
		Short:         "Trial balance reports from a journal and a chart of accounts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "log to stderr")
	rootCmd.AddCommand(newReportCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a no-op logger unless --verbose is set, so report output
// stays clean when piped.
func newLogger(ccmd *cobra.Command, cfg config.Config) *zap.Logger {
	verbose, _ := ccmd.Flags().GetBool(flagVerbose)
	if !verbose {
		return zap.NewNop()
	}
	return logger.New("trialbalance", cfg.Environment)
}
