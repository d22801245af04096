package api

import (
	"context"
	"net/http"

	"github.com/fintrack-dev/fintrack/internal/model"
)

const depositsPath = "/api/deposits"

// Deposits lists term deposits.
func (c *Client) Deposits(ctx context.Context) ([]model.Deposit, error) {
	var deps []model.Deposit
	if err := c.do(ctx, http.MethodGet, depositsPath, nil, nil, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

// Deposit fetches one deposit.
func (c *Client) Deposit(ctx context.Context, id int) (*model.Deposit, error) {
	var d model.Deposit
	if err := c.do(ctx, http.MethodGet, itemPath(depositsPath, id), nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDeposit opens a deposit against an account.
func (c *Client) CreateDeposit(ctx context.Context, in model.DepositCreate) (*model.Deposit, error) {
	var d model.Deposit
	if err := c.do(ctx, http.MethodPost, depositsPath, nil, in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDeposit changes the non-nil fields of a deposit.
func (c *Client) UpdateDeposit(ctx context.Context, id int, in model.DepositUpdate) (*model.Deposit, error) {
	var d model.Deposit
	if err := c.do(ctx, http.MethodPut, itemPath(depositsPath, id), nil, in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDeposit removes a deposit.
func (c *Client) DeleteDeposit(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(depositsPath, id), nil, nil, nil)
}

// CloseDeposit marks a deposit completed.
func (c *Client) CloseDeposit(ctx context.Context, id int) (*model.Deposit, error) {
	var d model.Deposit
	if err := c.do(ctx, http.MethodPost, itemPath(depositsPath, id)+"/close", nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
