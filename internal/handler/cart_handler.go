package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"tabletap/internal/cart"
	"tabletap/internal/model"
	"tabletap/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SessionHeader carries the cart session identifier. A session id is minted
// on first touch and echoed back on every cart response.
const SessionHeader = "X-Session-ID"

// CartHandler exposes the per-session cart store over HTTP.
type CartHandler struct {
	manager *cart.Manager
	orders  service.OrderService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(manager *cart.Manager, orders service.OrderService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		manager: manager,
		orders:  orders,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartView is the response shape for cart reads.
type cartView struct {
	Items          []model.CartItem `json:"items"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	RestaurantSlug string           `json:"restaurantSlug,omitempty"`
	TableNumber    *string          `json:"tableNumber,omitempty"`
}

// addItemRequest is the payload for adding an item to the cart.
type addItemRequest struct {
	RestaurantSlug string         `json:"restaurantSlug"`
	TableNumber    *string        `json:"tableNumber"`
	Item           model.CartItem `json:"item"`
}

// updateQuantityRequest is the payload for changing a line's quantity.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// checkoutRequest is the payload for submitting the cart as an order.
type checkoutRequest struct {
	Notes string `json:"notes,omitempty"`
}

// session resolves the session id from the request, minting one when the
// client has none yet, and echoes it on the response.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)
	store := h.manager.Session(r.Context(), sessionID, "", nil)
	snap := store.Snapshot()

	writeJSON(w, http.StatusOK, cartView{
		Items:          snap.Items,
		Subtotal:       store.Subtotal(),
		RestaurantSlug: snap.RestaurantSlug,
		TableNumber:    snap.TableNumber,
	})
}

// AddItem handles POST /api/cart/items requests. The item is schema-checked
// here because the store itself does not enforce quantity bounds.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.RestaurantSlug == "" {
		writeError(w, http.StatusBadRequest, "restaurantSlug is required", h.logger)
		return
	}

	if err := model.ValidateCartItem(&req.Item); err != nil {
		writeDomainError(w, err, "invalid cart item", h.logger)
		return
	}

	store := h.manager.Session(r.Context(), sessionID, req.RestaurantSlug, req.TableNumber)
	store.AddItem(r.Context(), req.Item)

	writeJSON(w, http.StatusOK, cartView{
		Items:    store.Items(),
		Subtotal: store.Subtotal(),
	})
}

// UpdateQuantity handles PATCH /api/cart/items/{id} requests. The HTTP
// boundary enforces quantity >= 1 even though the store layer does not.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	itemID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if itemID == "" || strings.Contains(itemID, "/") {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if *req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, model.ErrInvalidQuantity.Message, h.logger)
		return
	}

	store := h.manager.Session(r.Context(), sessionID, "", nil)
	if !store.UpdateQuantity(r.Context(), itemID, *req.Quantity) {
		writeError(w, http.StatusNotFound, "item not in cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartView{
		Items:    store.Items(),
		Subtotal: store.Subtotal(),
	})
}

// RemoveItem handles DELETE /api/cart/items/{id} requests. Removing an item
// that is not in the cart is a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	itemID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if itemID == "" || strings.Contains(itemID, "/") {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	store := h.manager.Session(r.Context(), sessionID, "", nil)
	store.RemoveItem(r.Context(), itemID)

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	store := h.manager.Session(r.Context(), sessionID, "", nil)
	store.Clear(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/cart/checkout requests: it snapshots the
// session's cart into an order submission. The cart is cleared only after a
// successful submission and retained on any failure so the customer can
// retry.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	var req checkoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}
	}

	store := h.manager.Session(r.Context(), sessionID, "", nil)
	snap := store.Snapshot()

	tableNumber := ""
	if snap.TableNumber != nil {
		tableNumber = *snap.TableNumber
	}

	orderReq := &model.OrderRequest{
		RestaurantID: snap.RestaurantSlug,
		TableNumber:  tableNumber,
		Items:        snap.Items,
		TotalPrice:   store.Subtotal(),
		Notes:        req.Notes,
	}

	confirmation, err := h.orders.Submit(r.Context(), orderReq)
	if err != nil {
		writeDomainError(w, err, "failed to submit order", h.logger)
		return
	}

	h.manager.Drop(r.Context(), sessionID)

	writeJSON(w, http.StatusCreated, model.OrderResponse{
		Success: true,
		Order:   confirmation,
	})
}
