package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryOptionalMetrics(t *testing.T) {
	var s Summary
	err := json.Unmarshal([]byte(`{"total_amount": 1250.5, "transaction_count": 4, "total_balance": null}`), &s)
	require.NoError(t, err)

	assert.Equal(t, "1250.50", s.TotalAmount.StringFixed(2))
	assert.Equal(t, 4, s.TransactionCount)
	assert.Nil(t, s.TotalBalance)
	assert.Nil(t, s.IncomeTotal)
	assert.Equal(t, "312.63", s.AverageAmount().StringFixed(2))
}

func TestSummaryAverageNoTransactions(t *testing.T) {
	s := Summary{TotalAmount: decimal.NewFromInt(10)}
	assert.True(t, s.AverageAmount().IsZero())
}

func TestTransactionCategory(t *testing.T) {
	assert.Equal(t, "Uncategorized", Transaction{}.Category())
	assert.Equal(t, "Food", Transaction{CategoryName: "Food"}.Category())
}

func TestTransactionUpdateOmitsUnset(t *testing.T) {
	desc := "Coffee"
	u := TransactionUpdate{Description: &desc}
	assert.False(t, u.Empty())
	assert.True(t, TransactionUpdate{}.Empty())

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"Coffee"}`, string(out))
}

func TestAccountTypeValid(t *testing.T) {
	for _, at := range AccountTypes {
		assert.True(t, at.Valid(), string(at))
	}
	assert.False(t, AccountType("crypto").Valid())

	assert.True(t, DepositStatusActive.Valid())
	assert.False(t, DepositStatus("frozen").Valid())
}
