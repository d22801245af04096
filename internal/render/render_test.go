package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fintrack-dev/fintrack/internal/compare"
	"github.com/fintrack-dev/fintrack/internal/dashboard"
	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₽0.00"},
		{"1250.5", "₽1250.50"},
		{"-3", "-₽3.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in), "₽"))
		})
	}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, "", Delta(nil))
	assert.Equal(t, "+100.0%", Delta(&compare.Delta{Text: "+100.0%", Tone: compare.Positive}))
	assert.Equal(t, "—", Delta(&compare.Delta{Text: compare.NoChange, Tone: compare.Neutral}))
}

func TestOverview(t *testing.T) {
	start, _ := model.ParseDate("2024-03-01")
	end, _ := model.ParseDate("2024-03-30")
	ov := &dashboard.Overview{
		Range:       daterange.Range{Start: &start, End: &end},
		Baseline:    daterange.Range{Start: &start, End: &start},
		HasBaseline: true,
		Cards: []dashboard.Card{
			{Title: dashboard.CardSpent, Value: decimal.NewFromInt(200), Delta: &compare.Delta{Text: "-50.0%", Tone: compare.Negative}},
			{Title: dashboard.CardTransactions, Value: decimal.NewFromInt(4), Count: true},
		},
	}

	out := Overview(ov, "Last 30 days", "₽")
	assert.Contains(t, out, "Last 30 days (2024-03-01..2024-03-30)")
	assert.Contains(t, out, "Total spent")
	assert.Contains(t, out, "₽200.00")
	assert.Contains(t, out, "-50.0%")
	assert.Contains(t, out, "Change is against 2024-03-01")
	assert.NotContains(t, out, "₽4.00")
}

func TestTable(t *testing.T) {
	out := Table([]string{"A", "B"}, [][]string{{"x", "y"}})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "x")
}
