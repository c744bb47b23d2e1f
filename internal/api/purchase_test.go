package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestFinalizeListRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/compras/finalizar-lista/5" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		if in["adicionar_ao_estoque"] != false {
			t.Errorf("adicionar_ao_estoque = %v, want false", in["adicionar_ao_estoque"])
		}
		if in["atualizar_precos"] != false {
			t.Errorf("atualizar_precos = %v, want false", in["atualizar_precos"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 31, "lista_id": 5, "valor_total": 10.0,
			"data_compra": "2026-08-29T10:00:00Z",
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	p, err := c.FinalizeList(context.Background(), 5, FinalizeInput{})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if p.Total != 10.0 {
		t.Errorf("valor_total = %v, want 10.0", p.Total)
	}
	if p.ListID == nil || *p.ListID != 5 {
		t.Errorf("lista_id = %v, want 5", p.ListID)
	}
}

func TestPurchaseStatsWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("dias"); got != "90" {
			t.Errorf("dias = %q, want 90", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total_compras": 4, "total_gasto": 120.5, "media_por_compra": 30.125,
			"produtos_mais_comprados": []map[string]any{
				{"nome": "Feijão", "quantidade": 6, "total_gasto": 42.0},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	stats, err := c.PurchaseStats(context.Background(), 90)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPurchases != 4 {
		t.Errorf("total_compras = %d, want 4", stats.TotalPurchases)
	}
	if len(stats.TopProducts) != 1 || stats.TopProducts[0].Name != "Feijão" {
		t.Errorf("top products = %+v", stats.TopProducts)
	}
}

func TestPurchasesDateRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("data_inicial") == "" || q.Get("data_final") == "" {
			t.Errorf("expected both range params, got %v", q)
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	from := mustTime(t, "2026-08-01T00:00:00Z")
	to := mustTime(t, "2026-08-29T00:00:00Z")
	if _, err := c.Purchases(context.Background(), &from, &to); err != nil {
		t.Fatalf("purchases: %v", err)
	}
}
