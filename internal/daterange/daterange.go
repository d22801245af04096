// Package daterange turns a symbolic reporting window ("last 30 days",
// "all time", a custom pair of dates) into the concrete date bounds used to
// scope statistics and listing queries.
package daterange

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Kind is a range selector.
type Kind string

const (
	Last30  Kind = "last30"
	Last90  Kind = "last90"
	Last365 Kind = "last365"
	Custom  Kind = "custom"
	All     Kind = "all"
)

// DefaultKind is the selector in effect until the user picks another one.
const DefaultKind = Last30

// Kinds lists every selector in display order.
var Kinds = []Kind{Last30, Last90, Last365, Custom, All}

// ErrReversedRange is returned by Validate when a custom start is after its end.
var ErrReversedRange = errors.New("start date is after end date")

var windowDays = map[Kind]int{
	Last30:  30,
	Last90:  90,
	Last365: 365,
}

// ParseKind parses a selector name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q (want one of %s)", s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Days returns the window length of a LastN selector, or 0 for Custom and All.
func (k Kind) Days() int {
	return windowDays[k]
}

// Label returns a human-readable name for the selector.
func (k Kind) Label() string {
	switch k {
	case Last30:
		return "Last 30 days"
	case Last90:
		return "Last 90 days"
	case Last365:
		return "Last 365 days"
	case Custom:
		return "Custom range"
	case All:
		return "All time"
	}
	return string(k)
}

// Selection is a range selector plus, for Custom, its optional bounds.
type Selection struct {
	Kind  Kind
	Start *model.Date
	End   *model.Date
}

// Preset returns a selection for a non-custom kind.
func Preset(k Kind) Selection {
	return Selection{Kind: k}
}

// CustomRange returns a Custom selection. Either bound may be nil.
func CustomRange(start, end *model.Date) Selection {
	return Selection{Kind: Custom, Start: start, End: end}
}

// Validate checks the custom bounds. Resolve itself never rejects a
// selection; callers that query with it validate first.
func (s Selection) Validate() error {
	if s.Kind != Custom {
		return nil
	}
	if s.Start != nil && s.End != nil && s.Start.After(*s.End) {
		return fmt.Errorf("custom range %s..%s: %w", s.Start, s.End, ErrReversedRange)
	}
	return nil
}

// Complete reports whether the selection can scope a query on both ends.
// Only a Custom selection with a missing bound is incomplete.
func (s Selection) Complete() bool {
	if s.Kind != Custom {
		return true
	}
	return s.Start != nil && s.End != nil
}

// Range is a resolved date range. Nil bounds mean unbounded on that side.
type Range struct {
	Start *model.Date
	End   *model.Date
}

// Resolve computes the concrete bounds of sel relative to today.
//
// All yields an unbounded range, Custom passes its bounds through untouched,
// and LastN yields the inclusive N-day window ending today.
func Resolve(sel Selection, today model.Date) Range {
	switch sel.Kind {
	case All:
		return Range{}
	case Custom:
		return Range{Start: sel.Start, End: sel.End}
	}

	n := sel.Kind.Days()
	if n == 0 {
		n = DefaultKind.Days()
	}
	start := today.AddDays(-(n - 1))
	end := today
	return Range{Start: &start, End: &end}
}

// Unbounded reports whether neither side is bounded.
func (r Range) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether d falls inside the range, bounds inclusive.
func (r Range) Contains(d model.Date) bool {
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// Days returns the inclusive length of a fully bounded range, or 0.
func (r Range) Days() int {
	if r.Start == nil || r.End == nil {
		return 0
	}
	return r.End.DaysSince(*r.Start) + 1
}

// Query returns start_date/end_date query parameters. Unset bounds are
// omitted rather than sent empty.
func (r Range) Query() url.Values {
	q := url.Values{}
	r.Apply(q)
	return q
}

// Apply adds the range bounds to q.
func (r Range) Apply(q url.Values) {
	if r.Start != nil {
		q.Set("start_date", r.Start.String())
	}
	if r.End != nil {
		q.Set("end_date", r.End.String())
	}
}

// String formats the range as "start..end" with "…" for an open side.
func (r Range) String() string {
	if r.Unbounded() {
		return "all time"
	}
	start, end := "…", "…"
	if r.Start != nil {
		start = r.Start.String()
	}
	if r.End != nil {
		end = r.End.String()
	}
	return start + ".." + end
}
