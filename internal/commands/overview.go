package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newOverviewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show stat cards for the selected range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, a)
		},
	}
}

func runOverview(cmd *cobra.Command, a *app) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	r, label, err := a.queryRange()
	if err != nil {
		return err
	}

	ov, err := dashboard.NewService(a.client).Overview(cmd.Context(), r)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Overview(ov, label, a.cfg.Dashboard.Currency))
	return nil
}
