package importer

import (
	"fmt"
	"io"

	"github.com/fintrack-dev/fintrack/internal/export"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// FintrackParser reads files produced by the export command, so an export
// can be loaded into another account.
type FintrackParser struct{}

// Format returns the parser name.
func (p *FintrackParser) Format() string { return "fintrack" }

// Parse reads a fintrack export. The export carries no transaction type, so
// every row is imported as an expense and an income row comes back as an
// expense. Negative amounts are refused. The "Uncategorized" placeholder is
// dropped.
func (p *FintrackParser) Parse(r io.Reader) ([]Record, error) {
	rows, err := export.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("reading fintrack CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]Record, len(rows))
	for i, row := range rows {
		if row.Amount.IsNegative() {
			return nil, fmt.Errorf("row %d: negative amount %s", i+2, row.Amount)
		}
		cat := row.Category
		if cat == uncategorized {
			cat = ""
		}
		out[i] = Record{
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Type:        model.TransactionTypeExpense,
			Category:    cat,
		}
	}
	return out, nil
}

const uncategorized = "Uncategorized"
