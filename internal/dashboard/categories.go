package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// ErrUnknownCategory is returned when a category reference matches nothing.
var ErrUnknownCategory = errors.New("unknown category")

var hundred = decimal.NewFromInt(100)

// CategoryShare is a category total with its share of overall spending.
type CategoryShare struct {
	model.CategoryTotal
	Share decimal.Decimal // percent of the grand total, whole number
}

// TopCategories returns the n largest categories by total, descending, each
// with its rounded percentage of the sum of all totals. Ties are broken by
// name. n <= 0 returns every category.
func TopCategories(totals []model.CategoryTotal, n int) []CategoryShare {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}

	sorted := make([]model.CategoryTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Total.Cmp(sorted[j].Total); c != 0 {
			return c > 0
		}
		return sorted[i].Category < sorted[j].Category
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]CategoryShare, len(sorted))
	for i, t := range sorted {
		share := decimal.Zero
		if !sum.IsZero() {
			share = t.Total.Div(sum).Mul(hundred).Round(0)
		}
		out[i] = CategoryShare{CategoryTotal: t, Share: share}
	}
	return out
}

// ResolveCategory finds the category named by ref, which is either a numeric
// id or a case-insensitive name. When nothing matches, the error suggests the
// closest name if one is near enough.
func ResolveCategory(cats []model.Category, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		for _, c := range cats {
			if c.ID == id {
				return c, nil
			}
		}
		return model.Category{}, fmt.Errorf("category id %d: %w", id, ErrUnknownCategory)
	}

	for _, c := range cats {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	if s, ok := closestName(cats, ref); ok {
		return model.Category{}, fmt.Errorf("category %q: %w (did you mean %q?)", ref, ErrUnknownCategory, s)
	}
	return model.Category{}, fmt.Errorf("category %q: %w", ref, ErrUnknownCategory)
}

func closestName(cats []model.Category, ref string) (string, bool) {
	want := strings.ToLower(ref)
	best, bestDist := "", -1
	for _, c := range cats {
		d := levenshtein.ComputeDistance(want, strings.ToLower(c.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	limit := max(2, len([]rune(ref))/3)
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
