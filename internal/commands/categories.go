package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newCategoriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories and view spending by category",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(
		newCategoriesListCommand(a),
		newCategoriesAddCommand(a),
		newCategoriesEditCommand(a),
		newCategoriesRmCommand(a),
		newCategoriesStatsCommand(a),
	)
	return cmd
}

func newCategoriesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.client.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Categories(cats))
			return nil
		},
	}
}

func newCategoriesAddCommand(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client.CreateCategory(cmd.Context(), model.CategoryInput{Name: args[0], Description: description})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d %q\n", c.ID, c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "category description")
	return cmd
}

func newCategoriesEditCommand(a *app) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Rename or redescribe a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := resolveCategory(ctx, a, args[0])
			if err != nil {
				return err
			}
			in := model.CategoryInput{Name: c.Name, Description: c.Description}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			updated, err := a.client.UpdateCategory(ctx, c.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d %q\n", updated.ID, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func newCategoriesRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|name>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := resolveCategory(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteCategory(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d %q\n", c.ID, c.Name)
			return nil
		},
	}
}

func newCategoriesStatsCommand(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show top categories by spending for the selected range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, label, err := a.queryRange()
			if err != nil {
				return err
			}
			totals, err := a.client.ByCategory(cmd.Context(), r)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				top = a.cfg.Dashboard.TopCategories
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", render.Title("Top categories"), render.Muted(label+" ("+r.String()+")"))
			if len(totals) == 0 {
				fmt.Fprintln(out, "No categorized spending in this range.")
				return nil
			}
			fmt.Fprintln(out, render.CategoryShares(dashboard.TopCategories(totals, top), a.cfg.Dashboard.Currency))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "number of categories to show, 0 for all (default from config)")
	return cmd
}

func resolveCategory(ctx context.Context, a *app, ref string) (model.Category, error) {
	cats, err := a.client.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	return dashboard.ResolveCategory(cats, ref)
}
