package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var dir, category string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download transactions in the selected range as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, dir, category)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the CSV into")
	cmd.Flags().StringVar(&category, "category", "", "only this category (id or name)")
	return cmd
}

func runExport(cmd *cobra.Command, a *app, dir, category string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	ctx := cmd.Context()
	r, _, err := a.queryRange()
	if err != nil {
		return err
	}

	q := api.ExportQuery{Range: r}
	if category != "" {
		c, err := resolveCategory(ctx, a, category)
		if err != nil {
			return err
		}
		q.CategoryID = &c.ID
	}

	src := func(ctx context.Context, w io.Writer) (int64, error) {
		return a.client.ExportCSV(ctx, q, w)
	}
	res, err := export.Save(ctx, src, dir, a.today)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", res.Rows, res.Path)
	return nil
}
