package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avmoreira/despensa-web/internal/model"
)

type ProductInput struct {
	Name          string  `json:"nome"`
	Description   *string `json:"descricao,omitempty"`
	Price         float64 `json:"preco"`
	StockQuantity int     `json:"quantidade_estoque"`
	MinStock      *int    `json:"estoque_minimo,omitempty"`
	CategoryID    *int64  `json:"categoria_id,omitempty"`
	Barcode       *string `json:"codigo_barras,omitempty"`
}

// Products lists products, optionally filtered by a free-text search term.
func (c *Client) Products(ctx context.Context, search string) ([]model.Product, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/produtos/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/produtos/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LowStockProducts lists products at or below the given threshold. A
// threshold of zero or less defers to the server default.
func (c *Client) LowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	query := url.Values{}
	if threshold > 0 {
		query.Set("limite", strconv.Itoa(threshold))
	}
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/produtos/estoque-baixo", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodPost, "/produtos/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/produtos/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/produtos/%d", id), nil, nil, nil)
}
