package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Source streams an export payload into w.
type Source func(ctx context.Context, w io.Writer) (int64, error)

// Result describes a saved export.
type Result struct {
	Path  string
	Bytes int64
	Rows  int
}

// FileName returns the export file name for a given day.
func FileName(today model.Date) string {
	return fmt.Sprintf("transactions_%s.csv", today)
}

// Save downloads an export into dir as FileName(today). The payload is
// written to a temp file, validated, and renamed into place, so a failed
// download never leaves a partial file behind.
func Save(ctx context.Context, src Source, dir string, today model.Date) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := src(ctx, tmp)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("rewinding export: %w", err)
	}
	rows, err := CountRows(tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing export: %w", cerr)
	}
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName(today))
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}
	return &Result{Path: path, Bytes: n, Rows: rows}, nil
}
