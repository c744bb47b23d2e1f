package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/forms"
	"github.com/avmoreira/despensa-web/internal/store"
	ws "github.com/avmoreira/despensa-web/internal/websocket"
)

// CatalogHandler serves the product and category screens. Search only runs
// on an explicit submit, and every mutation re-reads the listing from the
// remote API instead of patching the rendered rows.
type CatalogHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	render   *Renderer
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewCatalogHandler(client *api.Client, sessions *store.SessionStore, render *Renderer, hub *ws.Hub, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{api: client, sessions: sessions, render: render, hub: hub, logger: logger}
}

func (h *CatalogHandler) ProductsPage(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	products, err := h.api.Products(r.Context(), search)
	if err != nil {
		h.fail(w, r, err, "load products", "Não foi possível carregar os produtos.")
		return
	}
	categories, err := h.api.Categories(r.Context(), "")
	if err != nil {
		h.fail(w, r, err, "load categories", "Não foi possível carregar as categorias.")
		return
	}

	data := pageData(r, "Produtos")
	data["Search"] = search
	data["Products"] = products
	data["Categories"] = categories
	h.render.Page(w, "products.html", data)
}

func (h *CatalogHandler) ProductList(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	h.renderProductList(w, r, search)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseProduct(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	product, err := h.api.CreateProduct(r.Context(), productInput(form))
	if err != nil {
		h.fail(w, r, err, "create product", "Não foi possível criar o produto.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityProduct, "created", product.ID, nil))
	h.renderProductList(w, r, "")
}

func (h *CatalogHandler) ProductEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	product, err := h.api.Product(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load product", "Produto não encontrado.")
		return
	}
	categories, err := h.api.Categories(r.Context(), "")
	if err != nil {
		h.fail(w, r, err, "load categories", "Não foi possível carregar as categorias.")
		return
	}

	data := pageData(r, "Editar produto")
	data["Product"] = product
	data["Categories"] = categories
	h.render.Page(w, "product_edit.html", data)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseProduct(r.PostForm)
	if err != nil {
		h.editFail(w, r, id, err.Error())
		return
	}

	if _, err := h.api.UpdateProduct(r.Context(), id, productInput(form)); err != nil {
		if unauthorized(err) {
			forceLogout(w, r, h.sessions)
			return
		}
		h.logger.Error("update product", "id", id, "error", err)
		h.editFail(w, r, id, errMessage(err, "Não foi possível salvar o produto."))
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityProduct, "updated", id, nil))
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.api.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete product", "Não foi possível excluir o produto.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityProduct, "deleted", id, nil))
	h.renderProductList(w, r, strings.TrimSpace(r.URL.Query().Get("search")))
}

// LowStockList serves the standalone low-stock fragment with an optional
// ?limite= threshold override.
func (h *CatalogHandler) LowStockList(w http.ResponseWriter, r *http.Request) {
	threshold := 0
	if raw := r.URL.Query().Get("limite"); raw != "" {
		threshold = forms.Quantity(raw)
	}

	products, err := h.api.LowStockProducts(r.Context(), threshold)
	if err != nil {
		h.fail(w, r, err, "load low stock", "Não foi possível carregar o estoque baixo.")
		return
	}
	h.render.Partial(w, "low-stock-list", map[string]any{"Products": products})
}

func (h *CatalogHandler) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	categories, err := h.api.Categories(r.Context(), search)
	if err != nil {
		h.fail(w, r, err, "load categories", "Não foi possível carregar as categorias.")
		return
	}

	data := pageData(r, "Categorias")
	data["Search"] = search
	data["Categories"] = categories
	h.render.Page(w, "categories.html", data)
}

func (h *CatalogHandler) CategoryList(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryList(w, r, strings.TrimSpace(r.URL.Query().Get("search")))
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseCategory(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	category, err := h.api.CreateCategory(r.Context(), api.CategoryInput{
		Name:        form.Name,
		Description: optional(form.Description),
	})
	if err != nil {
		h.fail(w, r, err, "create category", "Não foi possível criar a categoria.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityCategory, "created", category.ID, nil))
	h.renderCategoryList(w, r, "")
}

func (h *CatalogHandler) CategoryEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	category, err := h.api.Category(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load category", "Categoria não encontrada.")
		return
	}
	products, err := h.api.CategoryProducts(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load category products", "Não foi possível carregar os produtos.")
		return
	}

	data := pageData(r, "Editar categoria")
	data["Category"] = category
	data["Products"] = products
	h.render.Page(w, "category_edit.html", data)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseCategory(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	if _, err := h.api.UpdateCategory(r.Context(), id, api.CategoryInput{
		Name:        form.Name,
		Description: optional(form.Description),
	}); err != nil {
		h.fail(w, r, err, "update category", "Não foi possível salvar a categoria.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityCategory, "updated", id, nil))
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.api.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete category", "Não foi possível excluir a categoria.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityCategory, "deleted", id, nil))
	h.renderCategoryList(w, r, strings.TrimSpace(r.URL.Query().Get("search")))
}

func (h *CatalogHandler) renderProductList(w http.ResponseWriter, r *http.Request, search string) {
	products, err := h.api.Products(r.Context(), search)
	if err != nil {
		h.fail(w, r, err, "load products", "Não foi possível carregar os produtos.")
		return
	}
	h.render.Partial(w, "product-list", map[string]any{
		"Search":   search,
		"Products": products,
	})
}

func (h *CatalogHandler) renderCategoryList(w http.ResponseWriter, r *http.Request, search string) {
	categories, err := h.api.Categories(r.Context(), search)
	if err != nil {
		h.fail(w, r, err, "load categories", "Não foi possível carregar as categorias.")
		return
	}
	h.render.Partial(w, "category-list", map[string]any{
		"Search":     search,
		"Categories": categories,
	})
}

func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error, op, msg string) {
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

func (h *CatalogHandler) editFail(w http.ResponseWriter, r *http.Request, id int64, msg string) {
	product, err := h.api.Product(r.Context(), id)
	if err != nil {
		http.Error(w, msg, http.StatusBadGateway)
		return
	}
	categories, _ := h.api.Categories(r.Context(), "")

	data := pageData(r, "Editar produto")
	data["Product"] = product
	data["Categories"] = categories
	data["Error"] = msg
	h.render.Page(w, "product_edit.html", data)
}

func productInput(f *forms.ProductForm) api.ProductInput {
	return api.ProductInput{
		Name:          f.Name,
		Description:   optional(f.Description),
		Price:         f.Price,
		StockQuantity: f.StockQuantity,
		MinStock:      f.MinStock,
		CategoryID:    f.CategoryID,
		Barcode:       optional(f.Barcode),
	}
}

// optional maps a blank form field to an absent JSON field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
