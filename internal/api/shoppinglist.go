package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avmoreira/despensa-web/internal/model"
)

type ListInput struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
}

type ListUpdateInput struct {
	Name        *string `json:"nome,omitempty"`
	Description *string `json:"descricao,omitempty"`
	Completed   *bool   `json:"concluida,omitempty"`
}

type ItemInput struct {
	Name           string   `json:"nome_item"`
	Quantity       int      `json:"quantidade"`
	ProductID      *int64   `json:"produto_id,omitempty"`
	EstimatedPrice *float64 `json:"preco_estimado,omitempty"`
	Note           *string  `json:"observacao,omitempty"`
}

type ItemUpdateInput struct {
	Name           *string  `json:"nome_item,omitempty"`
	Quantity       *int     `json:"quantidade,omitempty"`
	Purchased      *bool    `json:"comprado,omitempty"`
	EstimatedPrice *float64 `json:"preco_estimado,omitempty"`
	Note           *string  `json:"observacao,omitempty"`
}

// ShoppingLists returns the user's lists, optionally only those not yet
// completed.
func (c *Client) ShoppingLists(ctx context.Context, onlyActive bool) ([]model.ShoppingList, error) {
	query := url.Values{}
	if onlyActive {
		query.Set("apenas_ativas", "true")
	}
	var out []model.ShoppingList
	if err := c.do(ctx, http.MethodGet, "/listas-compras/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ShoppingList(ctx context.Context, id int64) (*model.ShoppingList, error) {
	var out model.ShoppingList
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/listas-compras/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ShoppingListSummary(ctx context.Context, id int64) (*model.ListSummary, error) {
	var out model.ListSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/listas-compras/%d/resumo", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateShoppingList(ctx context.Context, in ListInput) (*model.ShoppingList, error) {
	var out model.ShoppingList
	if err := c.do(ctx, http.MethodPost, "/listas-compras/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShoppingList(ctx context.Context, id int64, in ListUpdateInput) (*model.ShoppingList, error) {
	var out model.ShoppingList
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/listas-compras/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteShoppingList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/listas-compras/%d", id), nil, nil, nil)
}

// AddItem appends a free-form item to a list.
func (c *Client) AddItem(ctx context.Context, listID int64, in ItemInput) (*model.ListItem, error) {
	var out model.ListItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/listas-compras/%d/itens", listID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, in ItemUpdateInput) (*model.ListItem, error) {
	var out model.ListItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/listas-compras/itens/%d", itemID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/listas-compras/itens/%d", itemID), nil, nil, nil)
}

// ToggleItemPurchased flips the purchased flag server-side and returns the
// updated item.
func (c *Client) ToggleItemPurchased(ctx context.Context, itemID int64) (*model.ListItem, error) {
	var out model.ListItem
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/listas-compras/itens/%d/toggle-comprado", itemID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestedProducts searches catalog products that can still be added to the
// list; the server excludes products already suggested for it.
func (c *Client) SuggestedProducts(ctx context.Context, listID int64, search string) ([]model.Product, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/listas-compras/%d/produtos-sugeridos", listID), query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCatalogProduct adds an existing product to the list with the given
// quantity, copying its name and price server-side.
func (c *Client) AddCatalogProduct(ctx context.Context, listID, productID int64, quantity int) (*model.ListItem, error) {
	query := url.Values{"quantidade": {strconv.Itoa(quantity)}}
	var out model.ListItem
	path := fmt.Sprintf("/listas-compras/%d/adicionar-produto/%d", listID, productID)
	if err := c.do(ctx, http.MethodPost, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
