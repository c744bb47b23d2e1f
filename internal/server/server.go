// Package server wires the handlers, middleware and websocket hub into one
// http.Handler.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/handler"
	"github.com/avmoreira/despensa-web/internal/middleware"
	"github.com/avmoreira/despensa-web/internal/store"
	ws "github.com/avmoreira/despensa-web/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	catalogH      *handler.CatalogHandler
	listH         *handler.ListHandler
	purchaseH     *handler.PurchaseHandler
	dashboardH    *handler.DashboardHandler
	subscriptionH *handler.SubscriptionHandler
	sessionStore  *store.SessionStore
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, apiClient *api.Client, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	sessionStore := store.NewSessionStore(db)
	prefsStore := store.NewPrefsStore(db)
	render := handler.NewRenderer(logger.With("component", "render"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(apiClient, sessionStore, render, logger.With("component", "auth")),
		catalogH:      handler.NewCatalogHandler(apiClient, sessionStore, render, hub, logger.With("component", "catalog")),
		listH:         handler.NewListHandler(apiClient, sessionStore, render, hub, logger.With("component", "list")),
		purchaseH:     handler.NewPurchaseHandler(apiClient, sessionStore, prefsStore, render, hub, logger.With("component", "purchase")),
		dashboardH:    handler.NewDashboardHandler(apiClient, sessionStore, prefsStore, render, logger.With("component", "dashboard")),
		subscriptionH: handler.NewSubscriptionHandler(apiClient, sessionStore, render, logger.With("component", "subscription")),
		sessionStore:  sessionStore,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Pages
	mux.HandleFunc("GET /", s.dashboardH.Dashboard)
	mux.HandleFunc("GET /products", s.catalogH.ProductsPage)
	mux.HandleFunc("GET /products/{id}", s.catalogH.ProductEditPage)
	mux.HandleFunc("POST /products/{id}", s.catalogH.UpdateProduct)
	mux.HandleFunc("GET /categories", s.catalogH.CategoriesPage)
	mux.HandleFunc("GET /categories/{id}", s.catalogH.CategoryEditPage)
	mux.HandleFunc("POST /categories/{id}", s.catalogH.UpdateCategory)
	mux.HandleFunc("GET /lists", s.listH.ListsPage)
	mux.HandleFunc("GET /lists/{id}", s.listH.DetailPage)
	mux.HandleFunc("GET /purchases", s.purchaseH.Page)
	mux.HandleFunc("GET /subscription", s.subscriptionH.Page)

	// Catalog partials
	mux.HandleFunc("GET /partials/products", s.catalogH.ProductList)
	mux.HandleFunc("POST /partials/products", s.catalogH.CreateProduct)
	mux.HandleFunc("DELETE /partials/products/{id}", s.catalogH.DeleteProduct)
	mux.HandleFunc("GET /partials/products/low-stock", s.catalogH.LowStockList)
	mux.HandleFunc("GET /partials/categories", s.catalogH.CategoryList)
	mux.HandleFunc("POST /partials/categories", s.catalogH.CreateCategory)
	mux.HandleFunc("DELETE /partials/categories/{id}", s.catalogH.DeleteCategory)

	// Shopping list partials
	mux.HandleFunc("GET /partials/lists", s.listH.ListIndex)
	mux.HandleFunc("POST /partials/lists", s.listH.CreateList)
	mux.HandleFunc("GET /partials/lists/{id}", s.listH.Detail)
	mux.HandleFunc("DELETE /partials/lists/{id}", s.listH.DeleteList)
	mux.HandleFunc("POST /partials/lists/{id}/items", s.listH.AddItem)
	mux.HandleFunc("GET /partials/lists/{id}/suggestions", s.listH.Suggestions)
	mux.HandleFunc("POST /partials/lists/{id}/products/{product_id}", s.listH.AddCatalogProduct)
	mux.HandleFunc("GET /partials/lists/{id}/finalize", s.listH.FinalizeForm)
	mux.HandleFunc("POST /partials/lists/{id}/finalize", s.listH.Finalize)
	mux.HandleFunc("POST /partials/lists/items/{id}/toggle", s.listH.ToggleItem)
	mux.HandleFunc("DELETE /partials/lists/items/{id}", s.listH.DeleteItem)

	// Purchase partials
	mux.HandleFunc("GET /partials/purchases/{id}", s.purchaseH.Detail)
	mux.HandleFunc("DELETE /partials/purchases/{id}", s.purchaseH.Delete)
	mux.HandleFunc("POST /partials/purchases/window", s.purchaseH.SetWindow)

	// Subscription partials
	mux.HandleFunc("POST /partials/subscription", s.subscriptionH.Subscribe)
	mux.HandleFunc("PATCH /partials/subscription/cancel", s.subscriptionH.Cancel)

	// Live tab sync
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))
}
