package model

import "time"

type Purchase struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	ListID    *int64         `json:"lista_id"`
	Date      time.Time      `json:"data_compra"`
	Total     float64        `json:"valor_total"`
	Store     *string        `json:"local_compra"`
	Note      *string        `json:"observacao"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []PurchaseItem `json:"itens"`
}

type PurchaseItem struct {
	ID         int64     `json:"id"`
	PurchaseID int64     `json:"compra_id"`
	ProductID  *int64    `json:"produto_id"`
	Name       string    `json:"nome_item"`
	Quantity   int       `json:"quantidade"`
	UnitPrice  float64   `json:"preco_unitario"`
	Total      float64   `json:"preco_total"`
	Category   *string   `json:"categoria"`
	CreatedAt  time.Time `json:"created_at"`
}

// PurchaseStats is the server-computed summary for a trailing window.
type PurchaseStats struct {
	TotalPurchases int          `json:"total_compras"`
	TotalSpent     float64      `json:"total_gasto"`
	PerPurchase    float64      `json:"media_por_compra"`
	TopProducts    []TopProduct `json:"produtos_mais_comprados"`
}

type TopProduct struct {
	Name       string  `json:"nome"`
	Quantity   int     `json:"quantidade"`
	TotalSpent float64 `json:"total_gasto"`
}

// StatsWindows are the selectable trailing windows, in days.
var StatsWindows = []int{7, 30, 90, 365}

// ValidStatsWindow reports whether days is one of the selectable windows.
func ValidStatsWindow(days int) bool {
	for _, w := range StatsWindows {
		if w == days {
			return true
		}
	}
	return false
}
