package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "accounts",
		Aliases:           []string{"account"},
		Short:             "Manage money accounts",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(
		newAccountsListCommand(a),
		newAccountsAddCommand(a),
		newAccountsEditCommand(a),
		newAccountsRmCommand(a),
	)
	return cmd
}

func newAccountsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and the total balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accts, err := a.client.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(accts) == 0 {
				fmt.Fprintln(out, "No accounts.")
				return nil
			}
			cur := a.cfg.Dashboard.Currency
			fmt.Fprintln(out, render.Accounts(accts, cur))
			fmt.Fprintf(out, "Total balance: %s\n", render.Money(dashboard.TotalBalance(accts), cur))
			return nil
		},
	}
}

func parseAccountType(s string) (model.AccountType, error) {
	t := model.AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		names := make([]string, len(model.AccountTypes))
		for i, k := range model.AccountTypes {
			names[i] = string(k)
		}
		return "", fmt.Errorf("unknown account type %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return t, nil
}

func newAccountsAddCommand(a *app) *cobra.Command {
	var typ, currency, balance, description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Open an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAccountType(typ)
			if err != nil {
				return err
			}
			bal, err := parseAmount("--balance", balance)
			if err != nil {
				return err
			}
			acct, err := a.client.CreateAccount(cmd.Context(), model.AccountCreate{
				Name:        args[0],
				Description: description,
				AccountType: at,
				Currency:    strings.ToUpper(currency),
				Balance:     bal,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %d %q\n", acct.ID, acct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(model.AccountTypeChecking), "account type")
	cmd.Flags().StringVar(&currency, "currency", model.DefaultCurrency, "ISO currency code")
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&description, "description", "", "account description")
	return cmd
}

func newAccountsEditCommand(a *app) *cobra.Command {
	var name, typ, balance, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in model.AccountUpdate
			changed := false
			if cmd.Flags().Changed("name") {
				in.Name, changed = &name, true
			}
			if cmd.Flags().Changed("description") {
				in.Description, changed = &description, true
			}
			if cmd.Flags().Changed("type") {
				at, err := parseAccountType(typ)
				if err != nil {
					return err
				}
				in.AccountType, changed = &at, true
			}
			if cmd.Flags().Changed("balance") {
				bal, err := parseAmount("--balance", balance)
				if err != nil {
					return err
				}
				in.Balance, changed = &bal, true
			}
			if !changed {
				return errors.New("nothing to change (use --name, --description, --type or --balance)")
			}

			acct, err := a.client.UpdateAccount(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated account %d %q\n", acct.ID, acct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&typ, "type", "", "new account type")
	cmd.Flags().StringVar(&balance, "balance", "", "new balance")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func newAccountsRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %d\n", id)
			return nil
		},
	}
}
