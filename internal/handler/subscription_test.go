package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newSubscriptionHandlerWith(t *testing.T, mux *http.ServeMux) *SubscriptionHandler {
	t.Helper()
	sessions, _ := testStores(t)
	return NewSubscriptionHandler(fakeRemote(t, mux), sessions, testRenderer(), testLogger())
}

func TestSubscriptionPageWithoutSubscription(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /assinaturas/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Assinatura não encontrada"}`)
	})

	h := newSubscriptionHandlerWith(t, mux)

	w := httptest.NewRecorder()
	h.Page(w, authedRequest(http.MethodGet, "/subscription", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ainda não tem uma assinatura") {
		t.Errorf("expected signup offer, got: %s", w.Body.String())
	}
}

func TestSubscribeRendersActivePlan(t *testing.T) {
	var gotPlan string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /assinaturas/", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Plan string `json:"plano"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		gotPlan = in.Plan
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 1, "user_id": 42, "plano": "anual", "status": "ativa",
			"data_inicio": "2026-08-01T00:00:00Z", "data_fim": null, "created_at": "2026-08-01T00:00:00Z"}`)
	})

	h := newSubscriptionHandlerWith(t, mux)

	form := url.Values{"plano": {"anual"}}
	w := httptest.NewRecorder()
	h.Subscribe(w, htmx(authedRequest(http.MethodPost, "/partials/subscription", form)))

	if gotPlan != "anual" {
		t.Errorf("plano = %q, want anual", gotPlan)
	}
	body := w.Body.String()
	if !strings.Contains(body, "anual") || !strings.Contains(body, "ativa") {
		t.Errorf("expected active annual plan, got: %s", body)
	}
}

func TestCancelRendersCancelledState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /assinaturas/me/cancelar", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 1, "user_id": 42, "plano": "mensal", "status": "cancelada",
			"data_inicio": "2026-08-01T00:00:00Z", "data_fim": "2026-09-01T00:00:00Z", "created_at": "2026-08-01T00:00:00Z"}`)
	})

	h := newSubscriptionHandlerWith(t, mux)

	w := httptest.NewRecorder()
	h.Cancel(w, htmx(authedRequest(http.MethodPatch, "/partials/subscription/cancel", nil)))

	body := w.Body.String()
	if !strings.Contains(body, "cancelada") {
		t.Errorf("expected cancelled state, got: %s", body)
	}
	if strings.Contains(body, "Cancelar assinatura") {
		t.Error("cancel button should disappear once cancelled")
	}
}

func TestInvalidPlanRejectedLocally(t *testing.T) {
	var remoteCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		remoteCalled = true
	})

	h := newSubscriptionHandlerWith(t, mux)

	form := url.Values{"plano": {"semanal"}}
	w := httptest.NewRecorder()
	h.Subscribe(w, htmx(authedRequest(http.MethodPost, "/partials/subscription", form)))

	if remoteCalled {
		t.Error("invalid plan must not reach the remote API")
	}
	if !strings.Contains(w.Body.String(), "plano inválido") {
		t.Errorf("expected validation message, got: %s", w.Body.String())
	}
}
