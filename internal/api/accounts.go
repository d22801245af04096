package api

import (
	"context"
	"net/http"

	"github.com/fintrack-dev/fintrack/internal/model"
)

const accountsPath = "/api/accounts"

// Accounts lists money accounts.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	var accts []model.Account
	if err := c.do(ctx, http.MethodGet, accountsPath, nil, nil, &accts); err != nil {
		return nil, err
	}
	return accts, nil
}

// Account fetches one account.
func (c *Client) Account(ctx context.Context, id int) (*model.Account, error) {
	var a model.Account
	if err := c.do(ctx, http.MethodGet, itemPath(accountsPath, id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAccount opens an account.
func (c *Client) CreateAccount(ctx context.Context, in model.AccountCreate) (*model.Account, error) {
	var a model.Account
	if err := c.do(ctx, http.MethodPost, accountsPath, nil, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAccount changes the non-nil fields of an account.
func (c *Client) UpdateAccount(ctx context.Context, id int, in model.AccountUpdate) (*model.Account, error) {
	var a model.Account
	if err := c.do(ctx, http.MethodPut, itemPath(accountsPath, id), nil, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(accountsPath, id), nil, nil, nil)
}
