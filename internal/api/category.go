package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avmoreira/despensa-web/internal/model"
)

type CategoryInput struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
}

// Categories lists categories, optionally filtered by a free-text search
// term. A blank term returns all.
func (c *Client) Categories(ctx context.Context, search string) ([]model.Category, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/categorias/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categorias/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryProducts lists the products linked to a category.
func (c *Client) CategoryProducts(ctx context.Context, id int64) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categorias/%d/produtos", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPost, "/categorias/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categorias/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category. Products referencing it are left
// uncategorized server-side, not deleted.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categorias/%d", id), nil, nil, nil)
}
