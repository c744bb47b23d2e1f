package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/auth"
	"github.com/avmoreira/despensa-web/internal/model"
	"github.com/avmoreira/despensa-web/internal/store"
	ws "github.com/avmoreira/despensa-web/internal/websocket"
)

// PurchaseHandler serves the purchase history and statistics. The selected
// statistics window is persisted per user, so it survives logins and other
// browsers.
type PurchaseHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	prefs    *store.PrefsStore
	render   *Renderer
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewPurchaseHandler(client *api.Client, sessions *store.SessionStore, prefs *store.PrefsStore, render *Renderer, hub *ws.Hub, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{api: client, sessions: sessions, prefs: prefs, render: render, hub: hub, logger: logger}
}

func (h *PurchaseHandler) Page(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, "invalid date filter", http.StatusBadRequest)
		return
	}

	purchases, err := h.api.Purchases(r.Context(), from, to)
	if err != nil {
		h.fail(w, r, err, "load purchases", "Não foi possível carregar as compras.")
		return
	}

	days := h.statsDays(r)
	stats, err := h.api.PurchaseStats(r.Context(), days)
	if err != nil {
		if unauthorized(err) {
			forceLogout(w, r, h.sessions)
			return
		}
		// History still renders; the stats block explains itself.
		h.logger.Error("load purchase stats", "error", err)
		stats = nil
	}

	data := pageData(r, "Compras")
	data["Purchases"] = purchases
	data["From"] = r.URL.Query().Get("data_inicial")
	data["To"] = r.URL.Query().Get("data_final")
	data["Stats"] = stats
	data["StatsDays"] = days
	data["Windows"] = model.StatsWindows
	data["OOB"] = false
	h.render.Page(w, "purchases.html", data)
}

func (h *PurchaseHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	purchase, err := h.api.Purchase(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load purchase", "Compra não encontrada.")
		return
	}
	h.render.Partial(w, "purchase-detail", map[string]any{"Purchase": purchase})
}

// Delete removes a purchase. The row disappears immediately; only the stats
// block and the detail pane are refreshed out of band, the rest of the
// history is left as rendered.
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.api.DeletePurchase(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete purchase", "Não foi possível excluir a compra.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityPurchase, "deleted", id, nil))

	days := h.statsDays(r)
	stats, err := h.api.PurchaseStats(r.Context(), days)
	if err != nil {
		h.logger.Error("refresh purchase stats", "error", err)
	}
	// Empty swap target removes the row; the OOB fragments ride along.
	h.render.Partial(w, "purchase-stats", map[string]any{
		"Stats":     stats,
		"StatsDays": days,
		"Windows":   model.StatsWindows,
		"OOB":       true,
	})
	// The detail pane is cleared only when the deleted purchase is the one
	// on display. htmx sends included inputs as query parameters on DELETE.
	if displayed, perr := strconv.ParseInt(r.URL.Query().Get("detalhe_id"), 10, 64); perr == nil && displayed == id {
		h.render.Partial(w, "purchase-detail-empty", map[string]any{"OOB": true})
	}
}

// SetWindow saves the selected statistics window and re-renders the stats
// block for it.
func (h *PurchaseHandler) SetWindow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	days, err := strconv.Atoi(r.PostForm.Get("dias"))
	if err != nil || !model.ValidStatsWindow(days) {
		h.render.Alert(w, "Período inválido.")
		return
	}

	if err := h.prefs.SetStatsDays(auth.UserID(r.Context()), days); err != nil {
		h.logger.Error("save stats window", "error", err)
	}

	stats, err := h.api.PurchaseStats(r.Context(), days)
	if err != nil {
		if unauthorized(err) {
			forceLogout(w, r, h.sessions)
			return
		}
		h.logger.Error("load purchase stats", "error", err)
		stats = nil
	}
	h.render.Partial(w, "purchase-stats", map[string]any{
		"Stats":     stats,
		"StatsDays": days,
		"Windows":   model.StatsWindows,
		"OOB":       false,
	})
}

func (h *PurchaseHandler) statsDays(r *http.Request) int {
	days, err := h.prefs.StatsDays(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("load stats window", "error", err)
		return 30
	}
	return days
}

func (h *PurchaseHandler) fail(w http.ResponseWriter, r *http.Request, err error, op, msg string) {
	if unauthorized(err) {
		forceLogout(w, r, h.sessions)
		return
	}
	h.logger.Error(op, "error", err)
	if isHTMX(r) {
		h.render.Alert(w, errMessage(err, msg))
		return
	}
	http.Error(w, msg, http.StatusBadGateway)
}

// dateRange parses the optional history filter, interpreting each bound as a
// local calendar day. The end bound is inclusive.
func dateRange(r *http.Request) (from, to *time.Time, err error) {
	if raw := r.URL.Query().Get("data_inicial"); raw != "" {
		t, perr := time.ParseInLocation("2006-01-02", raw, time.Local)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := r.URL.Query().Get("data_final"); raw != "" {
		t, perr := time.ParseInLocation("2006-01-02", raw, time.Local)
		if perr != nil {
			return nil, nil, perr
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}
	return from, to, nil
}
