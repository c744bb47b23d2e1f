package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAddCatalogProductRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/listas-compras/3/adicionar-produto/12" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("quantidade"); got != "4" {
			t.Errorf("quantidade = %q, want 4", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 55, "lista_id": 3, "produto_id": 12,
			"nome_item": "Arroz", "quantidade": 4,
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	item, err := c.AddCatalogProduct(context.Background(), 3, 12, 4)
	if err != nil {
		t.Fatalf("add catalog product: %v", err)
	}
	if item.ProductID == nil || *item.ProductID != 12 {
		t.Errorf("produto_id = %v, want 12", item.ProductID)
	}
	if !item.FromCatalog() {
		t.Error("expected stock-derived item")
	}
}

func TestAddAdHocItemRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listas-compras/3/itens" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		if in["nome_item"] != "Milk" {
			t.Errorf("nome_item = %v", in["nome_item"])
		}
		if _, ok := in["produto_id"]; ok {
			t.Error("ad hoc item must not send produto_id")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 56, "lista_id": 3, "nome_item": "Milk",
			"quantidade": 2, "preco_estimado": 5.0,
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	price := 5.0
	item, err := c.AddItem(context.Background(), 3, ItemInput{Name: "Milk", Quantity: 2, EstimatedPrice: &price})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.FromCatalog() {
		t.Error("expected ad hoc item")
	}
}

func TestSuggestedProductsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listas-compras/7/produtos-sugeridos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "arroz" {
			t.Errorf("search = %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "nome": "Arroz", "preco": 8.5}})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	products, err := c.SuggestedProducts(context.Background(), 7, "arroz")
	if err != nil {
		t.Fatalf("suggested products: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Arroz" {
		t.Errorf("products = %+v", products)
	}
}

func TestToggleItemPurchased(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/listas-compras/itens/9/toggle-comprado" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 9, "comprado": true})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	item, err := c.ToggleItemPurchased(context.Background(), 9)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !item.Purchased {
		t.Error("expected purchased = true")
	}
}
