package model

import "testing"

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }

func TestEstimatedTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []ListItem
		want  float64
	}{
		{"empty list", nil, 0},
		{"single item", []ListItem{{Quantity: 2, EstimatedPrice: fptr(5.00)}}, 10.00},
		{"missing price counts as zero", []ListItem{
			{Quantity: 3, EstimatedPrice: nil},
			{Quantity: 1, EstimatedPrice: fptr(2.50)},
		}, 2.50},
		{"multiple items", []ListItem{
			{Quantity: 2, EstimatedPrice: fptr(1.25)},
			{Quantity: 4, EstimatedPrice: fptr(0.75)},
			{Quantity: 1, EstimatedPrice: fptr(10.00)},
		}, 15.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ShoppingList{Items: tt.items}
			if got := l.EstimatedTotal(); got != tt.want {
				t.Errorf("EstimatedTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		purchased int
		want      int
	}{
		{"empty list", 0, 0, 0},
		{"none purchased", 4, 0, 0},
		{"all purchased", 4, 4, 100},
		{"half purchased", 4, 2, 50},
		{"one of three rounds", 3, 1, 33},
		{"two of three rounds", 3, 2, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l ShoppingList
			for i := 0; i < tt.total; i++ {
				l.Items = append(l.Items, ListItem{Purchased: i < tt.purchased})
			}
			if got := l.Progress(); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromCatalogDiscriminator(t *testing.T) {
	stock := ListItem{Name: "Arroz", ProductID: iptr(7)}
	adhoc := ListItem{Name: "Milk"}

	if !stock.FromCatalog() {
		t.Error("item with produto_id should be stock-derived")
	}
	if adhoc.FromCatalog() {
		t.Error("item without produto_id should be ad hoc")
	}
}

func TestLowStock(t *testing.T) {
	minTwo := 2
	tests := []struct {
		name string
		p    Product
		want bool
	}{
		{"below default threshold", Product{StockQuantity: 3}, true},
		{"at default threshold", Product{StockQuantity: 5}, true},
		{"above default threshold", Product{StockQuantity: 6}, false},
		{"custom threshold ok", Product{StockQuantity: 3, MinStock: &minTwo}, false},
		{"custom threshold low", Product{StockQuantity: 2, MinStock: &minTwo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.LowStock(); got != tt.want {
				t.Errorf("LowStock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyListScenario(t *testing.T) {
	l := ShoppingList{Name: "Weekly"}
	l.Items = append(l.Items, ListItem{Name: "Milk", Quantity: 2, EstimatedPrice: fptr(5.00)})

	if got := l.EstimatedTotal(); got != 10.00 {
		t.Errorf("total = %v, want 10.00", got)
	}
	if got := l.Progress(); got != 0 {
		t.Errorf("progress = %d%%, want 0%%", got)
	}

	l.Items[0].Purchased = true
	if got := l.Progress(); got != 100 {
		t.Errorf("progress after purchase = %d%%, want 100%%", got)
	}
}
