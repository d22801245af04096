package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newTransactionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "transactions",
		Aliases:           []string{"tx"},
		Short:             "List and manage transactions",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(
		newTransactionsListCommand(a),
		newTransactionsAddCommand(a),
		newTransactionsEditCommand(a),
		newTransactionsRmCommand(a),
		newTransactionsCategorizeCommand(a),
	)
	return cmd
}

func newTransactionsListCommand(a *app) *cobra.Command {
	var search, category string
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in the selected range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, label, err := a.queryRange()
			if err != nil {
				return err
			}

			filter := dashboard.Filter{Search: search}
			if category != "" && !strings.EqualFold(category, "all") {
				c, err := resolveCategory(ctx, a, category)
				if err != nil {
					return err
				}
				filter.CategoryID = &c.ID
			}

			txns, err := a.client.Transactions(ctx, api.TransactionQuery{Range: r, Skip: skip, Limit: limit})
			if err != nil {
				return err
			}
			txns = filter.Apply(txns)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", render.Title("Transactions"), render.Muted(label+" ("+r.String()+")"))
			if len(txns) == 0 {
				fmt.Fprintln(out, "No transactions found.")
				return nil
			}
			fmt.Fprintln(out, render.Transactions(txns, a.cfg.Dashboard.Currency))
			fmt.Fprintf(out, "%d transactions\n", len(txns))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "only descriptions containing this text")
	cmd.Flags().StringVar(&category, "category", "", "only this category (id or name, \"all\" for every category)")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum transactions to fetch")
	cmd.Flags().IntVar(&skip, "skip", 0, "transactions to skip")
	return cmd
}

func newTransactionsAddCommand(a *app) *cobra.Command {
	var date, category string
	var income bool

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			in := model.TransactionCreate{
				Amount:          amount,
				Description:     args[1],
				TransactionDate: model.NewTimestamp(a.today.Time()),
				Type:            model.TransactionTypeExpense,
			}
			if income {
				in.Type = model.TransactionTypeIncome
			}
			if date != "" {
				ts, err := model.ParseTimestamp(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				in.TransactionDate = ts
			}
			if category != "" {
				c, err := resolveCategory(ctx, a, category)
				if err != nil {
					return err
				}
				in.CategoryID = &c.ID
			}

			t, err := a.client.CreateTransaction(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created transaction %d (%s, %s)\n",
				t.ID, render.Money(t.Amount, a.cfg.Dashboard.Currency), t.Category())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "category id or name")
	cmd.Flags().BoolVar(&income, "income", false, "record income instead of an expense")
	return cmd
}

func newTransactionsEditCommand(a *app) *cobra.Command {
	var amount, description, date, category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in model.TransactionUpdate
			if cmd.Flags().Changed("amount") {
				v, err := parseAmount("--amount", amount)
				if err != nil {
					return err
				}
				in.Amount = &v
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("date") {
				ts, err := model.ParseTimestamp(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				in.TransactionDate = &ts
			}
			if cmd.Flags().Changed("category") {
				c, err := resolveCategory(ctx, a, category)
				if err != nil {
					return err
				}
				in.CategoryID = &c.ID
			}
			if in.Empty() {
				return errors.New("nothing to change (use --amount, --description, --date or --category)")
			}

			t, err := a.client.UpdateTransaction(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %d\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "new category id or name")
	return cmd
}

func newTransactionsRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
			return nil
		},
	}
}

func newTransactionsCategorizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <category> <id>...",
		Short: "Assign a category to several transactions",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := resolveCategory(ctx, a, args[0])
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(args)-1)
			for _, s := range args[1:] {
				id, err := parseID(s)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			msg, err := a.client.BulkCategorize(ctx, c.ID, ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
