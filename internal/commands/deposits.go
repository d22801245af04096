package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newDepositsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "deposits",
		Aliases:           []string{"deposit"},
		Short:             "Manage term deposits",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(
		newDepositsListCommand(a),
		newDepositsAddCommand(a),
		newDepositsEditCommand(a),
		newDepositsRmCommand(a),
		newDepositsCloseCommand(a),
	)
	return cmd
}

func newDepositsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deposits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := a.client.Deposits(cmd.Context())
			if err != nil {
				return err
			}
			if len(deps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deposits.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Deposits(deps, a.cfg.Dashboard.Currency))
			return nil
		},
	}
}

func newDepositsAddCommand(a *app) *cobra.Command {
	var account int
	var amount, rate, start, end string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Open a deposit against an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount("--amount", amount)
			if err != nil {
				return err
			}
			r, err := parseAmount("--rate", rate)
			if err != nil {
				return err
			}
			startDate := a.today
			if start != "" {
				if startDate, err = model.ParseDate(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			endDate, err := model.ParseDate(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if endDate.Before(startDate) {
				return fmt.Errorf("--end %s is before --start %s", endDate, startDate)
			}

			d, err := a.client.CreateDeposit(cmd.Context(), model.DepositCreate{
				AccountID:    account,
				Name:         args[0],
				Amount:       amt,
				InterestRate: r,
				StartDate:    startDate,
				EndDate:      endDate,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deposit %d %q\n", d.ID, d.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&account, "account", 0, "account id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "deposit amount (required)")
	cmd.Flags().StringVar(&rate, "rate", "0", "annual interest rate in percent")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newDepositsEditCommand(a *app) *cobra.Command {
	var name, amount, rate, end, status string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in model.DepositUpdate
			changed := false
			if cmd.Flags().Changed("name") {
				in.Name, changed = &name, true
			}
			if cmd.Flags().Changed("amount") {
				v, err := parseAmount("--amount", amount)
				if err != nil {
					return err
				}
				in.Amount, changed = &v, true
			}
			if cmd.Flags().Changed("rate") {
				v, err := parseAmount("--rate", rate)
				if err != nil {
					return err
				}
				in.InterestRate, changed = &v, true
			}
			if cmd.Flags().Changed("end") {
				d, err := model.ParseDate(end)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
				in.EndDate, changed = &d, true
			}
			if cmd.Flags().Changed("status") {
				s := model.DepositStatus(strings.ToLower(status))
				if !s.Valid() {
					return fmt.Errorf("unknown deposit status %q (want active, completed or cancelled)", status)
				}
				in.Status, changed = &s, true
			}
			if !changed {
				return errors.New("nothing to change (use --name, --amount, --rate, --end or --status)")
			}

			d, err := a.client.UpdateDeposit(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated deposit %d %q\n", d.ID, d.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&rate, "rate", "", "new annual interest rate in percent")
	cmd.Flags().StringVar(&end, "end", "", "new end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "new status: active, completed, cancelled")
	return cmd
}

func newDepositsRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteDeposit(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deposit %d\n", id)
			return nil
		},
	}
}

func newDepositsCloseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Mark a deposit completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.client.CloseDeposit(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed deposit %d %q (%s)\n", d.ID, d.Name, d.Status)
			return nil
		},
	}
}
