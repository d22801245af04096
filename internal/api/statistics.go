package api

import (
	"context"
	"net/http"

	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Summary returns the metric snapshot for r.
func (c *Client) Summary(ctx context.Context, r daterange.Range) (*model.Summary, error) {
	var s model.Summary
	if err := c.do(ctx, http.MethodGet, "/api/statistics/summary", r.Query(), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ByCategory returns spending per category for r.
func (c *Client) ByCategory(ctx context.Context, r daterange.Range) ([]model.CategoryTotal, error) {
	var totals []model.CategoryTotal
	if err := c.do(ctx, http.MethodGet, "/api/statistics/by-category", r.Query(), nil, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// Trend returns the spending series for r.
func (c *Client) Trend(ctx context.Context, r daterange.Range) ([]model.TrendPoint, error) {
	var points []model.TrendPoint
	if err := c.do(ctx, http.MethodGet, "/api/statistics/trend", r.Query(), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}
