package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

const transactionsPath = "/api/transactions"

// TransactionQuery pages and scopes a transaction listing. Zero values are
// left to the backend defaults.
type TransactionQuery struct {
	Range daterange.Range
	Skip  int
	Limit int
}

func (q TransactionQuery) values() url.Values {
	v := q.Range.Query()
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Transactions lists transactions.
func (c *Client) Transactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := c.do(ctx, http.MethodGet, transactionsPath, q.values(), nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// Transaction fetches one transaction.
func (c *Client) Transaction(ctx context.Context, id int) (*model.Transaction, error) {
	var t model.Transaction
	if err := c.do(ctx, http.MethodGet, itemPath(transactionsPath, id), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error) {
	var t model.Transaction
	if err := c.do(ctx, http.MethodPost, transactionsPath, nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTransaction changes the non-nil fields of a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int, in model.TransactionUpdate) (*model.Transaction, error) {
	var t model.Transaction
	if err := c.do(ctx, http.MethodPut, itemPath(transactionsPath, id), nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(transactionsPath, id), nil, nil, nil)
}

// BulkCategorize assigns one category to many transactions and returns the
// backend's confirmation message.
func (c *Client) BulkCategorize(ctx context.Context, categoryID int, ids []int) (string, error) {
	q := url.Values{"category_id": {strconv.Itoa(categoryID)}}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, transactionsPath+"/bulk-categorize", q, ids, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
