package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/compare"
	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

type stubSource struct {
	mu          sync.Mutex
	summaries   map[string]model.Summary // keyed by Range.String()
	accounts    []model.Account
	accountsErr error
	requested   []daterange.Range
}

func (s *stubSource) Summary(_ context.Context, r daterange.Range) (*model.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = append(s.requested, r)
	sum, ok := s.summaries[r.String()]
	if !ok {
		return &model.Summary{}, nil
	}
	return &sum, nil
}

func (s *stubSource) Accounts(context.Context) ([]model.Account, error) {
	return s.accounts, s.accountsErr
}

func d(s string) *model.Date {
	v, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOverview_CardsWithDeltas(t *testing.T) {
	r := daterange.Range{Start: d("2024-03-01"), End: d("2024-03-30")}
	base := daterange.Range{Start: d("2024-03-01"), End: d("2024-03-01")}
	src := &stubSource{
		summaries: map[string]model.Summary{
			r.String():    {TotalAmount: dec("200"), TransactionCount: 4},
			base.String(): {TotalAmount: dec("100"), TransactionCount: 2},
		},
		accounts: []model.Account{{Balance: dec("1000")}, {Balance: dec("250.50")}},
	}

	ov, err := dashboard.NewService(src).Overview(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, ov.HasBaseline)
	assert.Equal(t, base.String(), ov.Baseline.String())
	require.NotNil(t, ov.Previous)
	assert.Len(t, src.requested, 2)

	require.Len(t, ov.Cards, 4)
	assert.Equal(t, dashboard.CardBalance, ov.Cards[0].Title)
	assert.True(t, dec("1250.50").Equal(ov.Cards[0].Value))
	assert.Nil(t, ov.Cards[0].Delta)

	assert.Equal(t, dashboard.CardSpent, ov.Cards[1].Title)
	require.NotNil(t, ov.Cards[1].Delta)
	assert.Equal(t, compare.Delta{Text: "+100.0%", Tone: compare.Positive}, *ov.Cards[1].Delta)

	assert.True(t, ov.Cards[2].Count)
	assert.Equal(t, "+100.0%", ov.Cards[2].Delta.Text)

	assert.True(t, dec("50").Equal(ov.Cards[3].Value))
	assert.Equal(t, "+0.0%", ov.Cards[3].Delta.Text)
}

func TestOverview_AllTimeHasNoBaseline(t *testing.T) {
	src := &stubSource{summaries: map[string]model.Summary{
		"all time": {TotalAmount: dec("10"), TransactionCount: 1},
	}}

	ov, err := dashboard.NewService(src).Overview(context.Background(), daterange.Range{})
	require.NoError(t, err)
	assert.False(t, ov.HasBaseline)
	assert.Nil(t, ov.Previous)
	assert.Len(t, src.requested, 1)
	for _, c := range ov.Cards {
		assert.Nil(t, c.Delta, c.Title)
	}
}

func TestOverview_SummaryBalancePreferred(t *testing.T) {
	bal := dec("42")
	src := &stubSource{
		summaries: map[string]model.Summary{"all time": {TotalBalance: &bal}},
		accounts:  []model.Account{{Balance: dec("1")}},
	}
	ov, err := dashboard.NewService(src).Overview(context.Background(), daterange.Range{})
	require.NoError(t, err)
	assert.True(t, bal.Equal(ov.Cards[0].Value))
}

func TestOverview_FailureReturnsNothing(t *testing.T) {
	boom := errors.New("boom")
	src := &stubSource{accountsErr: boom}

	ov, err := dashboard.NewService(src).Overview(context.Background(), daterange.Range{})
	require.Error(t, err)
	assert.Nil(t, ov)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetching accounts")
}

func TestTopCategories(t *testing.T) {
	totals := []model.CategoryTotal{
		{Category: "Taxi", Total: dec("50"), Count: 2},
		{Category: "Food", Total: dec("300"), Count: 10},
		{Category: "Fun", Total: dec("100"), Count: 1},
		{Category: "Cafe", Total: dec("50"), Count: 3},
	}

	top := dashboard.TopCategories(totals, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "Food", top[0].Category)
	assert.Equal(t, "Fun", top[1].Category)
	assert.Equal(t, "Cafe", top[2].Category)
	assert.True(t, dec("60").Equal(top[0].Share), top[0].Share.String())
	assert.True(t, dec("20").Equal(top[1].Share))
	assert.True(t, dec("10").Equal(top[2].Share))

	assert.Len(t, dashboard.TopCategories(totals, 0), 4)
	assert.Empty(t, dashboard.TopCategories(nil, 5))
}

func TestTopCategories_ZeroTotal(t *testing.T) {
	top := dashboard.TopCategories([]model.CategoryTotal{{Category: "A", Total: decimal.Zero}}, 5)
	require.Len(t, top, 1)
	assert.True(t, top[0].Share.IsZero())
}

func TestResolveCategory(t *testing.T) {
	cats := []model.Category{{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Transport"}}

	c, err := dashboard.ResolveCategory(cats, "2")
	require.NoError(t, err)
	assert.Equal(t, "Transport", c.Name)

	c, err = dashboard.ResolveCategory(cats, " groceries ")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)

	_, err = dashboard.ResolveCategory(cats, "Grocerys")
	require.ErrorIs(t, err, dashboard.ErrUnknownCategory)
	assert.Contains(t, err.Error(), `did you mean "Groceries"?`)

	_, err = dashboard.ResolveCategory(cats, "Entertainment")
	require.ErrorIs(t, err, dashboard.ErrUnknownCategory)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = dashboard.ResolveCategory(cats, "9")
	assert.ErrorIs(t, err, dashboard.ErrUnknownCategory)
}

func TestFilter(t *testing.T) {
	food := 1
	txns := []model.Transaction{
		{ID: 1, Description: "Coffee at Starbucks", CategoryID: &food},
		{ID: 2, Description: "Taxi home"},
		{ID: 3, Description: "COFFEE beans"},
	}

	assert.Len(t, dashboard.Filter{}.Apply(txns), 3)

	got := dashboard.Filter{Search: "coffee"}.Apply(txns)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	got = dashboard.Filter{Search: "coffee", CategoryID: &food}.Apply(txns)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestTotalBalance(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(dashboard.TotalBalance(nil)))
	got := dashboard.TotalBalance([]model.Account{{Balance: dec("10.10")}, {Balance: dec("-2.10")}})
	assert.True(t, dec("8").Equal(got))
}
