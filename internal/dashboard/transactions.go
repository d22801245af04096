package dashboard

import (
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Filter narrows a transaction list on the client.
type Filter struct {
	Search     string // case-insensitive substring of the description
	CategoryID *int   // nil means all categories
}

// Match reports whether t passes the filter.
func (f Filter) Match(t model.Transaction) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	return true
}

// Apply returns the transactions that pass the filter, in order.
func (f Filter) Apply(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
