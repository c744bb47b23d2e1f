package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/auth"
	"github.com/avmoreira/despensa-web/internal/model"
	"github.com/avmoreira/despensa-web/internal/store"
)

const recentPurchaseCount = 5

// DashboardHandler renders the landing page. Its four data sources are
// fetched concurrently and treated as one unit: if any of them fails the
// whole page falls back to its empty state rather than showing a mix of
// fresh and missing numbers.
type DashboardHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	prefs    *store.PrefsStore
	render   *Renderer
	logger   *slog.Logger
}

func NewDashboardHandler(client *api.Client, sessions *store.SessionStore, prefs *store.PrefsStore, render *Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{api: client, sessions: sessions, prefs: prefs, render: render, logger: logger}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	days := h.statsDays(r)

	var (
		stats     *model.PurchaseStats
		lowStock  []model.Product
		lists     []model.ShoppingList
		purchases []model.Purchase
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = h.api.PurchaseStats(ctx, days)
		return err
	})
	g.Go(func() error {
		var err error
		lowStock, err = h.api.LowStockProducts(ctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		lists, err = h.api.ShoppingLists(ctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = h.api.Purchases(ctx, nil, nil)
		return err
	})

	data := pageData(r, "Painel")
	data["StatsDays"] = days
	data["ActiveLists"] = 0
	data["LoadFailed"] = false

	if err := g.Wait(); err != nil {
		if unauthorized(err) {
			forceLogout(w, r, h.sessions)
			return
		}
		h.logger.Error("load dashboard", "error", err)
		data["LoadFailed"] = true
		h.render.Page(w, "dashboard.html", data)
		return
	}

	if len(purchases) > recentPurchaseCount {
		purchases = purchases[:recentPurchaseCount]
	}

	data["Stats"] = stats
	data["LowStock"] = lowStock
	data["ActiveLists"] = len(lists)
	data["TopProducts"] = stats.TopProducts
	data["RecentPurchases"] = purchases
	h.render.Page(w, "dashboard.html", data)
}

func (h *DashboardHandler) statsDays(r *http.Request) int {
	days, err := h.prefs.StatsDays(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("load stats window", "error", err)
		return 30
	}
	return days
}
