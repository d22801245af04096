// Package dashboard assembles the figures shown by the overview, category
// and transaction views from backend data.
package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fintrack-dev/fintrack/internal/compare"
	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Source is the slice of the backend API the overview reads.
type Source interface {
	Summary(ctx context.Context, r daterange.Range) (*model.Summary, error)
	Accounts(ctx context.Context) ([]model.Account, error)
}

// Service builds dashboard views.
type Service struct {
	src Source
}

// NewService creates a dashboard service reading from src.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Card titles, in display order.
const (
	CardBalance      = "Total balance"
	CardSpent        = "Total spent"
	CardTransactions = "Transactions"
	CardAverage      = "Average expense"
)

// Card is one stat card.
type Card struct {
	Title string
	Value decimal.Decimal
	Count bool // Value is a count, not money
	Delta *compare.Delta
}

// Overview is the stat-card view for one range.
type Overview struct {
	Range       daterange.Range
	Baseline    daterange.Range
	HasBaseline bool
	Current     model.Summary
	Previous    *model.Summary // nil when the range has no start
	Accounts    []model.Account
	Cards       []Card
}

// Overview fetches the current snapshot, the baseline-day snapshot and the
// account list concurrently and derives the stat cards. Nothing is returned
// unless every fetch succeeds.
func (s *Service) Overview(ctx context.Context, r daterange.Range) (*Overview, error) {
	ov := &Overview{Range: r}
	ov.Baseline, ov.HasBaseline = compare.Baseline(r)

	var (
		current  *model.Summary
		previous *model.Summary
		accounts []model.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.src.Summary(gctx, r)
		if err != nil {
			return fmt.Errorf("fetching summary: %w", err)
		}
		return nil
	})
	if ov.HasBaseline {
		g.Go(func() error {
			var err error
			previous, err = s.src.Summary(gctx, ov.Baseline)
			if err != nil {
				return fmt.Errorf("fetching baseline summary: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		accounts, err = s.src.Accounts(gctx)
		if err != nil {
			return fmt.Errorf("fetching accounts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov.Current = *current
	ov.Previous = previous
	ov.Accounts = accounts
	ov.Cards = cards(*current, previous, accounts)
	return ov, nil
}

func cards(cur model.Summary, prev *model.Summary, accounts []model.Account) []Card {
	deltas := compare.Summaries(cur, prev)

	balance := TotalBalance(accounts)
	if cur.TotalBalance != nil {
		balance = *cur.TotalBalance
	}
	return []Card{
		{Title: CardBalance, Value: balance, Delta: deltas.TotalBalance},
		{Title: CardSpent, Value: cur.TotalAmount, Delta: deltas.TotalAmount},
		{Title: CardTransactions, Value: decimal.NewFromInt(int64(cur.TransactionCount)), Count: true, Delta: deltas.TransactionCount},
		{Title: CardAverage, Value: cur.AverageAmount(), Delta: deltas.AverageAmount},
	}
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
