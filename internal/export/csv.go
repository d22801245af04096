// Package export saves and reads the backend's transaction CSV export.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Header is the header row of an export.
const Header = "ID,Date,Amount,Description,Category"

// ErrBadHeader is returned when a CSV does not start with Header.
var ErrBadHeader = errors.New("not a fintrack export")

const (
	numFields   = 5
	dateFormat  = "2006-01-02 15:04:05"
	colID       = 0
	colDate     = 1
	colAmount   = 2
	colDesc     = 3
	colCategory = 4
)

// Row is one exported transaction.
type Row struct {
	ID          int
	Date        model.Timestamp
	Amount      decimal.Decimal
	Description string
	Category    string
}

// ReadRows reads every row of an export, checking the header.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrBadHeader)
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CountRows returns the number of data rows in an export without decoding
// them.
func CountRows(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("empty file: %w", ErrBadHeader)
	}
	if err != nil {
		return 0, fmt.Errorf("reading export header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	n := 0
	for {
		_, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("row %d: %w", n+2, err)
		}
		n++
	}
}

// WriteRows writes rows to w, including the header.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Row to CSV fields.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colID] = strconv.Itoa(row.ID)
	rec[colDate] = row.Date.Format(dateFormat)
	rec[colAmount] = row.Amount.String()
	rec[colDesc] = row.Description
	rec[colCategory] = row.Category
	return rec
}

// UnmarshalRow parses CSV fields into a Row.
func UnmarshalRow(rec []string) (Row, error) {
	if len(rec) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}
	id, err := strconv.Atoi(rec[colID])
	if err != nil {
		return Row{}, fmt.Errorf("parsing id %q: %w", rec[colID], err)
	}
	date, err := model.ParseTimestamp(rec[colDate])
	if err != nil {
		return Row{}, err
	}
	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}
	return Row{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Description: rec[colDesc],
		Category:    rec[colCategory],
	}, nil
}

func checkHeader(rec []string) error {
	got := strings.TrimPrefix(strings.Join(rec, ","), "\ufeff")
	if got != Header {
		return fmt.Errorf("header %q: %w", got, ErrBadHeader)
	}
	return nil
}
