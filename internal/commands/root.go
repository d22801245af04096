package commands

import (
	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal finance dashboard for the terminal",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "config file (default $FINTRACK_CONFIG or the user config dir)")
	f.StringVar(&a.flags.apiURL, "api-url", "", "backend URL, overrides api.url")
	f.StringVar(&a.flags.rangeKind, "range", "", "date range: last30, last90, last365, custom, all")
	f.StringVar(&a.flags.from, "from", "", "custom range start (YYYY-MM-DD)")
	f.StringVar(&a.flags.to, "to", "", "custom range end (YYYY-MM-DD)")
	f.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(a),
		newRegisterCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newTelegramLinkCommand(a),
		newOverviewCommand(a),
		newCategoriesCommand(a),
		newTransactionsCommand(a),
		newAccountsCommand(a),
		newDepositsCommand(a),
		newTrendCommand(a),
		newExportCommand(a),
		newImportCommand(a),
	)

	return rootCmd
}
