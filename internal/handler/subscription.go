package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/forms"
	"github.com/avmoreira/despensa-web/internal/model"
	"github.com/avmoreira/despensa-web/internal/store"
)

type SubscriptionHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	render   *Renderer
	logger   *slog.Logger
}

func NewSubscriptionHandler(client *api.Client, sessions *store.SessionStore, render *Renderer, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{api: client, sessions: sessions, render: render, logger: logger}
}

func (h *SubscriptionHandler) Page(w http.ResponseWriter, r *http.Request) {
	sub, err := h.currentSubscription(r)
	if err != nil {
		h.fail(w, r, err, "load subscription", "Não foi possível carregar a assinatura.")
		return
	}

	data := pageData(r, "Assinatura")
	data["Subscription"] = sub
	h.render.Page(w, "subscription.html", data)
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseSubscription(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	sub, err := h.api.CreateSubscription(r.Context(), form.Plan)
	if err != nil {
		h.fail(w, r, err, "create subscription", "Não foi possível criar a assinatura.")
		return
	}
	h.render.Partial(w, "subscription-status", map[string]any{"Subscription": sub})
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sub, err := h.api.CancelSubscription(r.Context())
	if err != nil {
		h.fail(w, r, err, "cancel subscription", "Não foi possível cancelar a assinatura.")
		return
	}
	h.render.Partial(w, "subscription-status", map[string]any{"Subscription": sub})
}

// currentSubscription maps the API's 404 for "no subscription yet" to a nil
// subscription, which the page renders as the signup offer.
func (h *SubscriptionHandler) currentSubscription(r *http.Request) (*model.Subscription, error) {
	sub, err := h.api.MySubscription(r.Context())
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (h *SubscriptionHandler) fail(w http.ResponseWriter, r *http.Request, err error, op, msg string) {
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
