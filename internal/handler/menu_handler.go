package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"tabletap/internal/model"
	"tabletap/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// GetMenu handles GET /api/menu?restaurant={id}[&fasting=true] requests.
// Menu rows failing the integrity self-check surface as a 500, never as
// partial data.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	restaurantID := r.URL.Query().Get("restaurant")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant query parameter is required", h.logger)
		return
	}

	fastingOnly, _ := strconv.ParseBool(r.URL.Query().Get("fasting"))

	items, err := h.service.GetMenu(r.Context(), restaurantID, fastingOnly)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve menu", h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetUpsell handles GET /api/menu/{id}/upsell?restaurant={id}[&limit=n]
// requests.
func (h *MenuHandler) GetUpsell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/menu/{id}/upsell
	itemID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/menu/"), "/upsell")
	if itemID == "" || strings.Contains(itemID, "/") {
		writeError(w, http.StatusBadRequest, "menu item ID is required", h.logger)
		return
	}

	restaurantID := r.URL.Query().Get("restaurant")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant query parameter is required", h.logger)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer", h.logger)
			return
		}
		limit = parsed
	}

	items, err := h.service.GetUpsell(r.Context(), restaurantID, itemID, limit)
	if err != nil {
		writeDomainError(w, err, "failed to compute recommendations", h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// availabilityRequest is the admin payload for toggling item availability.
type availabilityRequest struct {
	Available *bool `json:"available"`
}

// SetAvailability handles PATCH /api/admin/menu/{id}/availability requests.
func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/admin/menu/{id}/availability
	itemID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/admin/menu/"), "/availability")
	if itemID == "" || strings.Contains(itemID, "/") {
		writeError(w, http.StatusBadRequest, "menu item ID is required", h.logger)
		return
	}

	restaurantID := r.URL.Query().Get("restaurant")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant query parameter is required", h.logger)
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Available == nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.SetAvailability(r.Context(), restaurantID, itemID, *req.Available); err != nil {
		writeDomainError(w, err, "failed to update availability", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": *req.Available})
}
