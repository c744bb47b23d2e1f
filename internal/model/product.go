package model

import "time"

// DefaultMinStock is the low-stock threshold used when a product has no
// estoque_minimo of its own.
const DefaultMinStock = 5

type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"nome"`
	Description   *string    `json:"descricao"`
	Price         float64    `json:"preco"`
	StockQuantity int        `json:"quantidade_estoque"`
	MinStock      *int       `json:"estoque_minimo"`
	CategoryID    *int64     `json:"categoria_id"`
	Barcode       *string    `json:"codigo_barras"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// LowStock reports whether the product's stock is at or below its minimum
// threshold (or DefaultMinStock when none is configured).
func (p Product) LowStock() bool {
	min := DefaultMinStock
	if p.MinStock != nil {
		min = *p.MinStock
	}
	return p.StockQuantity <= min
}
