package api

import (
	"context"
	"net/http"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Register creates a backend user.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, creds, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.Token, error) {
	var tok model.Token
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// TelegramLinkCode requests a one-time code for linking the Telegram bot.
func (c *Client) TelegramLinkCode(ctx context.Context) (*model.TelegramLinkCode, error) {
	var code model.TelegramLinkCode
	if err := c.do(ctx, http.MethodPost, "/api/auth/telegram-link-code", nil, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}
