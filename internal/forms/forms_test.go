package forms

import (
	"net/url"
	"testing"
)

func TestQuantityClamp(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"1", 1},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"", 1},
		{" 7 ", 7},
	}

	for _, tt := range tests {
		if got := Quantity(tt.in); got != tt.want {
			t.Errorf("Quantity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseItem(t *testing.T) {
	values := url.Values{
		"nome_item":      {" Milk "},
		"quantidade":     {"2"},
		"preco_estimado": {"5.00"},
		"observacao":     {"integral"},
	}

	f, err := ParseItem(values)
	if err != nil {
		t.Fatalf("parse item: %v", err)
	}
	if f.Name != "Milk" {
		t.Errorf("name = %q, want Milk", f.Name)
	}
	if f.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", f.Quantity)
	}
	if f.EstimatedPrice == nil || *f.EstimatedPrice != 5.00 {
		t.Errorf("price = %v, want 5.00", f.EstimatedPrice)
	}
}

func TestParseItemRequiresName(t *testing.T) {
	if _, err := ParseItem(url.Values{"quantidade": {"2"}}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestParseItemBlankPrice(t *testing.T) {
	f, err := ParseItem(url.Values{"nome_item": {"Pão"}})
	if err != nil {
		t.Fatalf("parse item: %v", err)
	}
	if f.EstimatedPrice != nil {
		t.Errorf("price = %v, want nil", f.EstimatedPrice)
	}
	if f.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", f.Quantity)
	}
}

func TestParseFinalizeFlagDependency(t *testing.T) {
	// atualizar_precos without adicionar_ao_estoque is meaningless
	f, err := ParseFinalize(url.Values{"atualizar_precos": {"on"}})
	if err != nil {
		t.Fatalf("parse finalize: %v", err)
	}
	if f.UpdatePrices {
		t.Error("update prices must be dropped without add-to-stock")
	}

	f, err = ParseFinalize(url.Values{
		"adicionar_ao_estoque": {"on"},
		"atualizar_precos":     {"on"},
		"local_compra":         {"Mercado Central"},
	})
	if err != nil {
		t.Fatalf("parse finalize: %v", err)
	}
	if !f.AddToStock || !f.UpdatePrices {
		t.Errorf("flags = %v/%v, want true/true", f.AddToStock, f.UpdatePrices)
	}
	if f.Store != "Mercado Central" {
		t.Errorf("store = %q", f.Store)
	}
}

func TestParseProduct(t *testing.T) {
	values := url.Values{
		"nome":               {"Arroz"},
		"preco":              {"8.50"},
		"quantidade_estoque": {"10"},
		"estoque_minimo":     {"3"},
		"categoria_id":       {"2"},
	}

	f, err := ParseProduct(values)
	if err != nil {
		t.Fatalf("parse product: %v", err)
	}
	if f.Price != 8.50 {
		t.Errorf("price = %v", f.Price)
	}
	if f.MinStock == nil || *f.MinStock != 3 {
		t.Errorf("min stock = %v, want 3", f.MinStock)
	}
	if f.CategoryID == nil || *f.CategoryID != 2 {
		t.Errorf("category id = %v, want 2", f.CategoryID)
	}
}

func TestParseProductRejectsZeroPrice(t *testing.T) {
	values := url.Values{"nome": {"Arroz"}, "preco": {"0"}}
	if _, err := ParseProduct(values); err == nil {
		t.Error("expected error for zero price")
	}
}

func TestParseProductBlankCategory(t *testing.T) {
	values := url.Values{"nome": {"Arroz"}, "preco": {"8.50"}, "categoria_id": {""}}
	f, err := ParseProduct(values)
	if err != nil {
		t.Fatalf("parse product: %v", err)
	}
	if f.CategoryID != nil {
		t.Errorf("category id = %v, want nil", f.CategoryID)
	}
}

func TestParseSubscriptionPlan(t *testing.T) {
	if _, err := ParseSubscription(url.Values{"plano": {"mensal"}}); err != nil {
		t.Errorf("mensal: %v", err)
	}
	if _, err := ParseSubscription(url.Values{"plano": {"semanal"}}); err == nil {
		t.Error("expected error for unknown plan")
	}
}

func TestParseListRequiresName(t *testing.T) {
	if _, err := ParseList(url.Values{"descricao": {"semana"}}); err == nil {
		t.Error("expected error for missing name")
	}
	f, err := ParseList(url.Values{"nome": {"Weekly"}})
	if err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if f.Name != "Weekly" {
		t.Errorf("name = %q", f.Name)
	}
}
