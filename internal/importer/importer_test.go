package importer

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func readChase(t *testing.T) []Record {
	t.Helper()
	f, err := os.Open("testdata/chase_checking.csv")
	require.NoError(t, err)
	defer f.Close()

	recs, err := (&ChaseParser{}).Parse(f)
	require.NoError(t, err)
	return recs
}

func TestChaseParser_Parse(t *testing.T) {
	recs := readChase(t)
	require.Len(t, recs, 6)

	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", recs[0].Description)
	assert.Equal(t, "4.00", recs[0].Amount.StringFixed(2))
	assert.Equal(t, model.TransactionTypeExpense, recs[0].Type)
	assert.Equal(t, "2025-01-03", recs[0].Date.Date().String())

	assert.Equal(t, "ACME CONSULTING INVOICE 1042", recs[3].Description)
	assert.Equal(t, model.TransactionTypeIncome, recs[3].Type)
	assert.Equal(t, "3500.00", recs[3].Amount.StringFixed(2))

	assert.Equal(t, "NETFLIX.COM, INC.", recs[4].Description)
	assert.Equal(t, "2025-01-22", recs[5].Date.Date().String())
}

func TestChaseParser_AmountsPositive(t *testing.T) {
	for _, rec := range readChase(t) {
		assert.True(t, rec.Amount.IsPositive(), rec.Description)
	}
}

func TestChaseParser_EmptyFile(t *testing.T) {
	recs, err := (&ChaseParser{}).Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestFintrackParser_Parse(t *testing.T) {
	csv := "ID,Date,Amount,Description,Category\n" +
		"4,2024-03-02 10:00:00,20.50,taxi,Transport\n" +
		"5,2024-03-01 09:00:00,10,bread,Uncategorized\n"
	recs, err := (&FintrackParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Transport", recs[0].Category)
	assert.Equal(t, "", recs[1].Category)
	assert.Equal(t, model.TransactionTypeExpense, recs[1].Type)
	assert.Equal(t, "2024-03-02", recs[0].Date.Date().String())
}

func TestFintrackParser_RejectsNegativeAmount(t *testing.T) {
	csv := "ID,Date,Amount,Description,Category\n" +
		"4,2024-03-02 10:00:00,20.50,taxi,Transport\n" +
		"5,2024-03-01 09:00:00,-10,refund,Uncategorized\n"
	_, err := (&FintrackParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3: negative amount -10")
}

func TestFintrackParser_RejectsOtherCSV(t *testing.T) {
	_, err := (&FintrackParser{}).Parse(strings.NewReader("a,b,c,d,e\n"))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))

	r.Register(&ChaseParser{})
	require.NotNil(t, r.Get("CHASE"))
	assert.Equal(t, "chase", r.Get("Chase").Format())
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("fintrack"))
	assert.Equal(t, []string{"chase", "fintrack"}, r.Formats())
}

type fakeCreator struct {
	created []model.TransactionCreate
	failAt  int // 1-based call that fails; 0 never
}

func (f *fakeCreator) CreateTransaction(_ context.Context, in model.TransactionCreate) (*model.Transaction, error) {
	if f.failAt != 0 && len(f.created)+1 == f.failAt {
		return nil, errors.New("API Error: Internal Server Error")
	}
	f.created = append(f.created, in)
	return &model.Transaction{ID: len(f.created), Description: in.Description}, nil
}

func rec(date, amount, desc, cat string) Record {
	ts, err := model.ParseTimestamp(date)
	if err != nil {
		panic(err)
	}
	return Record{Date: ts, Amount: decimal.RequireFromString(amount), Description: desc, Category: cat, Type: model.TransactionTypeExpense}
}

func TestService_Import(t *testing.T) {
	cats := []model.Category{{ID: 7, Name: "Transport"}}
	existingDate, err := model.ParseTimestamp("2024-03-01 08:00:00")
	require.NoError(t, err)
	existing := []model.Transaction{{Description: "Bread", Amount: decimal.NewFromInt(10), TransactionDate: existingDate}}

	c := &fakeCreator{}
	svc := NewService(c, cats, existing, zap.NewNop())
	res, err := svc.Import(context.Background(), []Record{
		rec("2024-03-01", "10.00", "bread", ""),
		rec("2024-03-02", "20.5", "taxi", "transport"),
		rec("2024-03-03", "5", "gum", "Candy"),
		rec("2024-03-02", "20.50", "Taxi", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 3, Skipped: 1}, res)

	require.Len(t, c.created, 3)
	require.NotNil(t, c.created[0].CategoryID)
	assert.Equal(t, 7, *c.created[0].CategoryID)
	assert.Nil(t, c.created[1].CategoryID)
	assert.Equal(t, "Taxi", c.created[2].Description)
}

func TestService_ImportKeepsRepeatedRows(t *testing.T) {
	coffee := rec("2024-03-01", "3.50", "coffee", "")

	c := &fakeCreator{}
	res, err := NewService(c, nil, nil, zap.NewNop()).Import(context.Background(), []Record{coffee, coffee})
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2}, res)
	assert.Len(t, c.created, 2)
}

func TestService_ImportMatchesExistingOneForOne(t *testing.T) {
	coffee := rec("2024-03-01", "3.50", "coffee", "")
	existing := []model.Transaction{{Description: "Coffee", Amount: decimal.RequireFromString("3.5"), TransactionDate: coffee.Date}}

	c := &fakeCreator{}
	res, err := NewService(c, nil, existing, zap.NewNop()).Import(context.Background(), []Record{coffee, coffee, coffee})
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 1}, res)
}

func TestService_ImportStopsOnError(t *testing.T) {
	c := &fakeCreator{failAt: 2}
	svc := NewService(c, nil, nil, zap.NewNop())
	res, err := svc.Import(context.Background(), []Record{
		rec("2024-03-01", "1", "a", ""),
		rec("2024-03-02", "2", "b", ""),
		rec("2024-03-03", "3", "c", ""),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating row 3")
	assert.Equal(t, 1, res.Created)
}
