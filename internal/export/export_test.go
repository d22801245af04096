package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

const sample = `ID,Date,Amount,Description,Category
7,2024-03-02 10:00:00,20.5,"Taxi, late",Transport
3,2024-03-01 09:30:00,10,bread,Uncategorized
`

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 7, rows[0].ID)
	assert.Equal(t, model.NewDate(2024, time.March, 2), rows[0].Date.Date())
	assert.True(t, decimal.RequireFromString("20.5").Equal(rows[0].Amount))
	assert.Equal(t, "Taxi, late", rows[0].Description)
	assert.Equal(t, "Transport", rows[0].Category)
}

func TestReadRows_BadHeader(t *testing.T) {
	_, err := ReadRows(strings.NewReader("a,b,c,d,e\n"))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadRows(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestReadRows_BadAmount(t *testing.T) {
	_, err := ReadRows(strings.NewReader(Header + "\n1,2024-03-01 00:00:00,abc,x,y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteReadRoundTrip(t *testing.T) {
	ts, err := model.ParseTimestamp("2024-03-01 09:30:00")
	require.NoError(t, err)
	rows := []Row{{ID: 1, Date: ts, Amount: decimal.RequireFromString("99.99"), Description: "say \"hi\"", Category: "Fun"}}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].Description, got[0].Description)
	assert.True(t, rows[0].Amount.Equal(got[0].Amount))
	assert.True(t, rows[0].Date.Equal(got[0].Date.Time))
}

func TestCountRows(t *testing.T) {
	n, err := CountRows(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = CountRows(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "transactions_2024-03-15.csv", FileName(model.NewDate(2024, time.March, 15)))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	src := func(_ context.Context, w io.Writer) (int64, error) {
		n, err := io.WriteString(w, sample)
		return int64(n), err
	}

	res, err := Save(context.Background(), src, dir, model.NewDate(2024, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transactions_2024-03-15.csv"), res.Path)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, int64(len(sample)), res.Bytes)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("connection reset")
	src := func(_ context.Context, w io.Writer) (int64, error) {
		_, _ = io.WriteString(w, "ID,Da")
		return 5, boom
	}

	_, err := Save(context.Background(), src, dir, model.NewDate(2024, time.March, 15))
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_RejectsNonExport(t *testing.T) {
	dir := t.TempDir()
	src := func(_ context.Context, w io.Writer) (int64, error) {
		n, err := io.WriteString(w, "<html>login</html>\n")
		return int64(n), err
	}

	_, err := Save(context.Background(), src, dir, model.NewDate(2024, time.March, 15))
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "transactions_2024-03-15.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
