package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default fintrack.yaml config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a, currency, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol shown with amounts")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, currency string, force bool) error {
	_, err := os.Stat(a.configPath)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := *a.cfg
	if currency != "" {
		cfg.Dashboard.Currency = currency
	}
	if err := config.Save(a.configPath, &cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (backend %s)\n", a.configPath, cfg.API.URL)
	return nil
}
