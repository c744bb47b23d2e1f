package model

import (
	"math"
	"time"
)

type ShoppingList struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nome"`
	Description *string    `json:"descricao"`
	UserID      int64      `json:"user_id"`
	Completed   bool       `json:"concluida"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	Items       []ListItem `json:"itens"`
}

type ListItem struct {
	ID             int64     `json:"id"`
	ListID         int64     `json:"lista_id"`
	ProductID      *int64    `json:"produto_id"`
	Name           string    `json:"nome_item"`
	Quantity       int       `json:"quantidade"`
	Purchased      bool      `json:"comprado"`
	EstimatedPrice *float64  `json:"preco_estimado"`
	Note           *string   `json:"observacao"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListSummary is the item-less view returned by /listas-compras/{id}/resumo.
type ListSummary struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nome"`
	Description    *string   `json:"descricao"`
	Completed      bool      `json:"concluida"`
	TotalItems     int       `json:"total_itens"`
	PurchasedItems int       `json:"itens_comprados"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromCatalog reports whether the item was created from an existing product.
// produto_id presence is the only discriminator between stock-derived and
// ad hoc items; the shapes are otherwise identical.
func (i ListItem) FromCatalog() bool {
	return i.ProductID != nil
}

// Subtotal is quantity × estimated price, with a missing price counting as 0.
func (i ListItem) Subtotal() float64 {
	if i.EstimatedPrice == nil {
		return 0
	}
	return float64(i.Quantity) * *i.EstimatedPrice
}

// EstimatedTotal sums the subtotals of all items. Display only; the
// authoritative total comes from the server when the list is finalized.
func (l ShoppingList) EstimatedTotal() float64 {
	var total float64
	for _, item := range l.Items {
		total += item.Subtotal()
	}
	return total
}

// PurchasedCount returns how many items are marked purchased.
func (l ShoppingList) PurchasedCount() int {
	var n int
	for _, item := range l.Items {
		if item.Purchased {
			n++
		}
	}
	return n
}

// Progress returns the purchased percentage rounded to the nearest integer,
// 0 for an empty list.
func (l ShoppingList) Progress() int {
	if len(l.Items) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(l.PurchasedCount()) / float64(len(l.Items))))
}
