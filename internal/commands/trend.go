package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/render"
)

func newTrendCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show the spending trend for the selected range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			r, label, err := a.queryRange()
			if err != nil {
				return err
			}
			points, err := a.client.Trend(cmd.Context(), r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", render.Title("Spending trend"), render.Muted(label+" ("+r.String()+")"))
			if len(points) == 0 {
				fmt.Fprintln(out, "No spending in this range.")
				return nil
			}
			fmt.Fprintln(out, render.Trend(points, a.cfg.Dashboard.Currency))
			return nil
		},
	}
}
