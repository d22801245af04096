// Package compare derives the one-day baseline of a date range and the signed
// percentage change of a metric against that baseline.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Tone classifies a delta for display.
type Tone int

const (
	Neutral Tone = iota
	Positive
	Negative
)

func (t Tone) String() string {
	switch t {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "neutral"
}

// NoChange is the text shown when both the metric and its baseline are zero.
const NoChange = "—"

var hundred = decimal.NewFromInt(100)

// Delta is a formatted percentage change.
type Delta struct {
	Text string
	Tone Tone
}

// Baseline returns the single-day range made of the first day of r. It
// reports false when r has no start, in which case no delta is shown.
func Baseline(r daterange.Range) (daterange.Range, bool) {
	if r.Start == nil {
		return daterange.Range{}, false
	}
	day := *r.Start
	end := day
	return daterange.Range{Start: &day, End: &end}, true
}

// PercentDelta computes (current - baseline) / |baseline| * 100.
//
// It returns nil when there is no baseline, or when the baseline is zero and
// current is not (the change is not expressible as a percentage).
func PercentDelta(current decimal.Decimal, baseline *decimal.Decimal) *Delta {
	if baseline == nil {
		return nil
	}
	if baseline.IsZero() {
		if current.IsZero() {
			return &Delta{Text: NoChange, Tone: Neutral}
		}
		return nil
	}

	pct := current.Sub(*baseline).Div(baseline.Abs()).Mul(hundred)
	if pct.IsNegative() {
		return &Delta{Text: "-" + pct.Abs().StringFixed(1) + "%", Tone: Negative}
	}
	return &Delta{Text: "+" + pct.StringFixed(1) + "%", Tone: Positive}
}

// IntDelta is PercentDelta for counts.
func IntDelta(current int, baseline *int) *Delta {
	if baseline == nil {
		return nil
	}
	b := decimal.NewFromInt(int64(*baseline))
	return PercentDelta(decimal.NewFromInt(int64(current)), &b)
}

// SummaryDeltas holds the per-metric deltas between two snapshots. A nil
// field means the delta is suppressed.
type SummaryDeltas struct {
	TotalAmount      *Delta
	TransactionCount *Delta
	AverageAmount    *Delta
	TotalBalance     *Delta
	IncomeTotal      *Delta
	ExpenseTotal     *Delta
}

// Summaries compares the current snapshot with its baseline. A nil baseline
// suppresses every delta; optional metrics missing on either side suppress
// their own delta.
func Summaries(current model.Summary, baseline *model.Summary) SummaryDeltas {
	if baseline == nil {
		return SummaryDeltas{}
	}
	avg := baseline.AverageAmount()
	return SummaryDeltas{
		TotalAmount:      PercentDelta(current.TotalAmount, &baseline.TotalAmount),
		TransactionCount: IntDelta(current.TransactionCount, &baseline.TransactionCount),
		AverageAmount:    PercentDelta(current.AverageAmount(), &avg),
		TotalBalance:     optionalDelta(current.TotalBalance, baseline.TotalBalance),
		IncomeTotal:      optionalDelta(current.IncomeTotal, baseline.IncomeTotal),
		ExpenseTotal:     optionalDelta(current.ExpenseTotal, baseline.ExpenseTotal),
	}
}

func optionalDelta(current, baseline *decimal.Decimal) *Delta {
	if current == nil {
		return nil
	}
	return PercentDelta(*current, baseline)
}
