package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func dashboardRemote(failPurchases bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compras/estatisticas", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, statsJSON)
	})
	mux.HandleFunc("GET /produtos/estoque-baixo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id": 3, "nome": "Leite", "descricao": null, "preco": 5.0,
			"quantidade_estoque": 2, "estoque_minimo": 5, "categoria_id": null,
			"codigo_barras": null, "created_at": "2026-01-01T00:00:00Z", "updated_at": null}]`)
	})
	mux.HandleFunc("GET /listas-compras/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[`+activeListJSON+`]`)
	})
	mux.HandleFunc("GET /compras/", func(w http.ResponseWriter, r *http.Request) {
		if failPurchases {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id": 55, "user_id": 42, "lista_id": null, "data_compra": "2026-08-29T15:00:00Z",
			"valor_total": 10.0, "local_compra": null, "observacao": null,
			"created_at": "2026-08-29T15:00:00Z", "itens": []}]`)
	})
	return mux
}

func newDashboardHandlerWith(t *testing.T, mux *http.ServeMux) *DashboardHandler {
	t.Helper()
	sessions, prefs := testStores(t)
	return NewDashboardHandler(fakeRemote(t, mux), sessions, prefs, testRenderer(), testLogger())
}

func TestDashboardRendersAllSections(t *testing.T) {
	h := newDashboardHandlerWith(t, dashboardRemote(false))

	w := httptest.NewRecorder()
	h.Dashboard(w, authedRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"R$ 120,50", "Leite", "R$ 10,00"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if strings.Contains(body, "Não foi possível carregar o painel.") {
		t.Error("no failure banner expected")
	}
}

// One failed source empties the whole dashboard rather than mixing fresh and
// missing numbers.
func TestDashboardAllOrNothing(t *testing.T) {
	h := newDashboardHandlerWith(t, dashboardRemote(true))

	w := httptest.NewRecorder()
	h.Dashboard(w, authedRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Não foi possível carregar o painel.") {
		t.Error("failure banner expected")
	}
	if strings.Contains(body, "R$ 120,50") {
		t.Error("stats must not render when a sibling fetch failed")
	}
}

func TestDashboardUnauthorizedForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	h := newDashboardHandlerWith(t, mux)

	w := httptest.NewRecorder()
	h.Dashboard(w, authedRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Errorf("redirect = %q, want /login", got)
	}
}
