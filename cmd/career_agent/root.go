package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	debug      bool
	jsonLog    bool
	verbose    bool
	metricsOut string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "career_agent",
		Short: "Career guidance matching and forecasting",
		Long: "career_agent matches student profiles against a career catalog, builds learning roadmaps, " +
			"forecasts salary and job-market demand, and screens job postings for scam patterns.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is career_agent.yaml in the current directory)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "debug logging")
	flags.BoolVarP(&opts.jsonLog, "json", "j", false, "JSON log format")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print a human-readable summary to stderr")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "write prometheus metrics to this file after the command")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newAssessPostingCmd(opts),
		newLookupCmd(opts),
		newForecastCmd(opts),
		newMentorCmd(opts),
		newValidateCatalogCmd(opts),
		newImportCatalogCmd(opts),
		newReportsCmd(opts),
	)
	return cmd
}
