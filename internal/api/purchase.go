package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avmoreira/despensa-web/internal/model"
)

type FinalizeInput struct {
	Store        *string `json:"local_compra,omitempty"`
	Note         *string `json:"observacao,omitempty"`
	AddToStock   bool    `json:"adicionar_ao_estoque"`
	UpdatePrices bool    `json:"atualizar_precos"`
}

type PurchaseItemInput struct {
	Name      string  `json:"nome_item"`
	Quantity  int     `json:"quantidade"`
	UnitPrice float64 `json:"preco_unitario"`
	Category  *string `json:"categoria,omitempty"`
	ProductID *int64  `json:"produto_id,omitempty"`
}

type PurchaseInput struct {
	Store  *string             `json:"local_compra,omitempty"`
	Note   *string             `json:"observacao,omitempty"`
	ListID *int64              `json:"lista_id,omitempty"`
	Items  []PurchaseItemInput `json:"itens"`
}

type PurchaseUpdateInput struct {
	Store *string `json:"local_compra,omitempty"`
	Note  *string `json:"observacao,omitempty"`
}

// Purchases lists the purchase history, optionally constrained to a date
// range.
func (c *Client) Purchases(ctx context.Context, from, to *time.Time) ([]model.Purchase, error) {
	query := url.Values{}
	if from != nil {
		query.Set("data_inicial", from.Format(time.RFC3339))
	}
	if to != nil {
		query.Set("data_final", to.Format(time.RFC3339))
	}
	var out []model.Purchase
	if err := c.do(ctx, http.MethodGet, "/compras/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Purchase(ctx context.Context, id int64) (*model.Purchase, error) {
	var out model.Purchase
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/compras/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaseStats fetches the server-computed summary for a trailing window of
// the given number of days.
func (c *Client) PurchaseStats(ctx context.Context, days int) (*model.PurchaseStats, error) {
	query := url.Values{"dias": {strconv.Itoa(days)}}
	var out model.PurchaseStats
	if err := c.do(ctx, http.MethodGet, "/compras/estatisticas", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePurchase(ctx context.Context, in PurchaseInput) (*model.Purchase, error) {
	var out model.Purchase
	if err := c.do(ctx, http.MethodPost, "/compras/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalizeList converts a shopping list into a purchase record. Stock and
// price side effects happen server-side according to the two flags.
func (c *Client) FinalizeList(ctx context.Context, listID int64, in FinalizeInput) (*model.Purchase, error) {
	var out model.Purchase
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/compras/finalizar-lista/%d", listID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePurchase(ctx context.Context, id int64, in PurchaseUpdateInput) (*model.Purchase, error) {
	var out model.Purchase
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/compras/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePurchase(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/compras/%d", id), nil, nil, nil)
}
