// Package render formats dashboard data for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/compare"
	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Money formats an amount with two decimals and a currency symbol,
// e.g. "₽1250.50" or "-₽3.00".
func Money(amount decimal.Decimal, currency string) string {
	if amount.IsNegative() {
		return "-" + currency + amount.Abs().StringFixed(2)
	}
	return currency + amount.StringFixed(2)
}

// Delta renders a delta in its tone colour, or "" when there is none.
func Delta(d *compare.Delta) string {
	if d == nil {
		return ""
	}
	switch d.Tone {
	case compare.Positive:
		return positiveStyle.Render(d.Text)
	case compare.Negative:
		return negativeStyle.Render(d.Text)
	}
	return mutedStyle.Render(d.Text)
}

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Table renders rows under headers with rounded borders.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// Overview renders the stat cards of an overview.
func Overview(ov *dashboard.Overview, rangeLabel, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Title("Overview"), Muted(rangeLabel+" ("+ov.Range.String()+")"))

	rows := make([][]string, 0, len(ov.Cards))
	for _, c := range ov.Cards {
		value := Money(c.Value, currency)
		if c.Count {
			value = c.Value.String()
		}
		rows = append(rows, []string{c.Title, value, Delta(c.Delta)})
	}
	b.WriteString(Table([]string{"Metric", "Value", "Change"}, rows))
	b.WriteString("\n")
	if ov.HasBaseline {
		b.WriteString(Muted("Change is against " + ov.Baseline.Start.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// Transactions renders a transaction list.
func Transactions(txns []model.Transaction, currency string) string {
	rows := make([][]string, len(txns))
	for i, t := range txns {
		rows[i] = []string{
			fmt.Sprint(t.ID),
			t.TransactionDate.Date().String(),
			Money(t.Amount, currency),
			t.Description,
			t.Category(),
		}
	}
	return Table([]string{"ID", "Date", "Amount", "Description", "Category"}, rows)
}

// Categories renders the category list.
func Categories(cats []model.Category) string {
	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = []string{fmt.Sprint(c.ID), c.Name, c.Description, fmt.Sprint(c.TransactionCount)}
	}
	return Table([]string{"ID", "Name", "Description", "Transactions"}, rows)
}

// CategoryShares renders spending by category with shares.
func CategoryShares(shares []dashboard.CategoryShare, currency string) string {
	rows := make([][]string, len(shares))
	for i, s := range shares {
		rows[i] = []string{s.Category, Money(s.Total, currency), fmt.Sprint(s.Count), s.Share.String() + "%"}
	}
	return Table([]string{"Category", "Total", "Count", "Share"}, rows)
}

// Accounts renders the account list.
func Accounts(accts []model.Account, currency string) string {
	rows := make([][]string, len(accts))
	for i, a := range accts {
		rows[i] = []string{fmt.Sprint(a.ID), a.Name, string(a.AccountType), a.Currency, Money(a.Balance, currency)}
	}
	return Table([]string{"ID", "Name", "Type", "Currency", "Balance"}, rows)
}

// Deposits renders the deposit list.
func Deposits(deps []model.Deposit, currency string) string {
	rows := make([][]string, len(deps))
	for i, d := range deps {
		rows[i] = []string{
			fmt.Sprint(d.ID),
			d.Name,
			Money(d.Amount, currency),
			d.InterestRate.StringFixed(2) + "%",
			d.StartDate.String(),
			d.EndDate.String(),
			string(d.Status),
		}
	}
	return Table([]string{"ID", "Name", "Amount", "Rate", "Start", "End", "Status"}, rows)
}

// Trend renders a spending series.
func Trend(points []model.TrendPoint, currency string) string {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.Period, Money(p.Amount, currency)}
	}
	return Table([]string{"Period", "Amount"}, rows)
}
