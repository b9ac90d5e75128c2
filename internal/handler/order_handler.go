package handler

import (
	"encoding/json"
	"net/http"

	"tabletap/internal/model"
	"tabletap/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order submission HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Submit handles POST /api/orders requests. Validation failures map to 400
// with field detail so the client knows to fix its input; persistence
// failures map to 500 so it knows to retry later.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	confirmation, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to submit order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.OrderResponse{
		Success: true,
		Order:   confirmation,
	})
}
