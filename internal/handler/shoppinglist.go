package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/forms"
	"github.com/avmoreira/despensa-web/internal/model"
	"github.com/avmoreira/despensa-web/internal/store"
	ws "github.com/avmoreira/despensa-web/internal/websocket"
)

// ListHandler drives the shopping list workflow: create, populate, tick off
// items, finalize into a purchase, delete. Completed lists are read-only;
// the templates disable their controls and the handlers reject mutations
// anyway, since a stale tab can still submit them.
type ListHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	render   *Renderer
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewListHandler(client *api.Client, sessions *store.SessionStore, render *Renderer, hub *ws.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{api: client, sessions: sessions, render: render, hub: hub, logger: logger}
}

func (h *ListHandler) ListsPage(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("apenas_ativas") != ""

	lists, err := h.api.ShoppingLists(r.Context(), onlyActive)
	if err != nil {
		h.fail(w, r, err, "load lists", "Não foi possível carregar as listas.")
		return
	}

	data := pageData(r, "Listas de compras")
	data["OnlyActive"] = onlyActive
	data["Lists"] = lists
	h.render.Page(w, "lists.html", data)
}

func (h *ListHandler) ListIndex(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, r.URL.Query().Get("apenas_ativas") != "")
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseList(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	list, err := h.api.CreateShoppingList(r.Context(), api.ListInput{
		Name:        form.Name,
		Description: optional(form.Description),
	})
	if err != nil {
		h.fail(w, r, err, "create list", "Não foi possível criar a lista.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityList, "created", list.ID, nil))
	h.renderIndex(w, r, false)
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Deleting a list removes its items with it; the purchase created when
	// it was finalized, if any, stays.
	if err := h.api.DeleteShoppingList(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete list", "Não foi possível excluir a lista.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityList, "deleted", id, nil))
	h.renderIndex(w, r, r.URL.Query().Get("apenas_ativas") != "")
}

func (h *ListHandler) DetailPage(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadList(w, r)
	if !ok {
		return
	}

	data := pageData(r, list.Name)
	data["List"] = list
	h.render.Page(w, "list_detail.html", data)
}

func (h *ListHandler) Detail(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadList(w, r)
	if !ok {
		return
	}
	h.render.Partial(w, "list-detail", map[string]any{"List": list})
}

func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadActiveList(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseItem(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	item, err := h.api.AddItem(r.Context(), list.ID, api.ItemInput{
		Name:           form.Name,
		Quantity:       form.Quantity,
		EstimatedPrice: form.EstimatedPrice,
		Note:           optional(form.Note),
	})
	if err != nil {
		h.fail(w, r, err, "add item", "Não foi possível adicionar o item.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityListItem, "created", item.ID, map[string]any{"lista_id": list.ID}))
	h.renderDetail(w, r, list.ID)
}

// Suggestions serves catalog products that can be added to the list,
// filtered by an explicit search submit.
func (h *ListHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	products, err := h.api.SuggestedProducts(r.Context(), id, strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		h.fail(w, r, err, "load suggestions", "Não foi possível buscar produtos.")
		return
	}

	h.render.Partial(w, "suggestions", map[string]any{
		"List":        model.ShoppingList{ID: id},
		"Suggestions": products,
	})
}

func (h *ListHandler) AddCatalogProduct(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadActiveList(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(r.PathValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	item, err := h.api.AddCatalogProduct(r.Context(), list.ID, productID, forms.Quantity(r.PostForm.Get("quantidade")))
	if err != nil {
		h.fail(w, r, err, "add catalog product", "Não foi possível adicionar o produto.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityListItem, "created", item.ID, map[string]any{"lista_id": list.ID}))
	h.renderDetail(w, r, list.ID)
}

// ToggleItem flips an item's purchased flag. When the remote call fails the
// list is re-rendered as it stands, which snaps the checkbox back to the
// server's truth.
func (h *ListHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	listID, err := strconv.ParseInt(r.URL.Query().Get("lista_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lista_id", http.StatusBadRequest)
		return
	}

	list, ok := h.loadListByID(w, r, listID)
	if !ok {
		return
	}
	if list.Completed {
		h.render.Alert(w, "Lista concluída não pode ser alterada.")
		return
	}

	item, err := h.api.ToggleItemPurchased(r.Context(), itemID)
	if err != nil {
		if unauthorized(err) {
			forceLogout(w, r, h.sessions)
			return
		}
		h.logger.Error("toggle item", "item_id", itemID, "error", err)
		h.renderDetail(w, r, listID)
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityListItem, "toggled", item.ID, map[string]any{"lista_id": listID}))
	h.renderDetail(w, r, listID)
}

func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	listID, err := strconv.ParseInt(r.URL.Query().Get("lista_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lista_id", http.StatusBadRequest)
		return
	}

	if err := h.api.DeleteItem(r.Context(), itemID); err != nil {
		h.fail(w, r, err, "delete item", "Não foi possível remover o item.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityListItem, "deleted", itemID, map[string]any{"lista_id": listID}))
	h.renderDetail(w, r, listID)
}

func (h *ListHandler) FinalizeForm(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadActiveList(w, r)
	if !ok {
		return
	}
	h.render.Partial(w, "finalize-form", map[string]any{"List": list})
}

// Finalize converts the list into a purchase. The server owns everything
// that follows: the purchase record, stock increments, price updates and
// marking the list completed.
func (h *ListHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadActiveList(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseFinalize(r.PostForm)
	if err != nil {
		h.render.Alert(w, err.Error())
		return
	}

	purchase, err := h.api.FinalizeList(r.Context(), list.ID, api.FinalizeInput{
		Store:        optional(form.Store),
		Note:         optional(form.Note),
		AddToStock:   form.AddToStock,
		UpdatePrices: form.UpdatePrices,
	})
	if err != nil {
		h.fail(w, r, err, "finalize list", "Não foi possível finalizar a compra.")
		return
	}

	h.hub.Broadcast(ws.NewMessage(ws.EntityList, "finalized", list.ID, map[string]any{"compra_id": purchase.ID}))
	h.hub.Broadcast(ws.NewMessage(ws.EntityPurchase, "created", purchase.ID, nil))

	updated, err := h.api.ShoppingList(r.Context(), list.ID)
	if err != nil {
		h.fail(w, r, err, "reload list", "Compra registrada, mas a lista não pôde ser recarregada.")
		return
	}
	h.render.Partial(w, "list-detail", map[string]any{"List": updated})
	h.render.Partial(w, "alert-oob", map[string]any{
		"Message": fmt.Sprintf("Compra registrada: %s.", money(purchase.Total)),
	})
}

func (h *ListHandler) renderIndex(w http.ResponseWriter, r *http.Request, onlyActive bool) {
	lists, err := h.api.ShoppingLists(r.Context(), onlyActive)
	if err != nil {
		h.fail(w, r, err, "load lists", "Não foi possível carregar as listas.")
		return
	}
	h.render.Partial(w, "list-index", map[string]any{
		"OnlyActive": onlyActive,
		"Lists":      lists,
	})
}

func (h *ListHandler) renderDetail(w http.ResponseWriter, r *http.Request, listID int64) {
	list, ok := h.loadListByID(w, r, listID)
	if !ok {
		return
	}
	h.render.Partial(w, "list-detail", map[string]any{"List": list})
}

func (h *ListHandler) loadList(w http.ResponseWriter, r *http.Request) (*model.ShoppingList, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	return h.loadListByID(w, r, id)
}

func (h *ListHandler) loadListByID(w http.ResponseWriter, r *http.Request, id int64) (*model.ShoppingList, bool) {
	list, err := h.api.ShoppingList(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load list", "Lista não encontrada.")
		return nil, false
	}
	return list, true
}

// loadActiveList fetches the list and rejects the request when it has
// already been completed.
func (h *ListHandler) loadActiveList(w http.ResponseWriter, r *http.Request) (*model.ShoppingList, bool) {
	list, ok := h.loadList(w, r)
	if !ok {
		return nil, false
	}
	if list.Completed {
		h.render.Alert(w, "Lista concluída não pode ser alterada.")
		return nil, false
	}
	return list, true
}

func (h *ListHandler) fail(w http.ResponseWriter, r *http.Request, err error, op, msg string) {
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
