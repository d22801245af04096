package api

import (
	"context"
	"net/http"

	"github.com/fintrack-dev/fintrack/internal/model"
)

const categoriesPath = "/api/categories"

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	var cat model.Category
	if err := c.do(ctx, http.MethodPost, categoriesPath, nil, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory renames or redescribes a category.
func (c *Client) UpdateCategory(ctx context.Context, id int, in model.CategoryInput) (*model.Category, error) {
	var cat model.Category
	if err := c.do(ctx, http.MethodPut, itemPath(categoriesPath, id), nil, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(categoriesPath, id), nil, nil, nil)
}
