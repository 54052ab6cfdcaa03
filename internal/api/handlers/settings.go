package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/internal/settings"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// OwnerHeader identifies the caller for per-user settings
const OwnerHeader = "X-User-ID"

// DefaultOwner is used when the header is absent
const DefaultOwner = "default"

// SettingsHandler handles user preference endpoints
type SettingsHandler struct {
	store  settings.Store
	logger *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store settings.Store, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: log,
	}
}

// ColorSchemeRequest represents a color scheme update
type ColorSchemeRequest struct {
	ColorScheme string `json:"color_scheme"`
}

// GetSettings returns the caller's settings
// GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(r.Context(), ownerFrom(r))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get settings")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// AddFavorite marks a product as favorite
// PUT /api/settings/favorites/{product}
func (h *SettingsHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, true)
}

// RemoveFavorite unmarks a favorite product
// DELETE /api/settings/favorites/{product}
func (h *SettingsHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, false)
}

// SetColorScheme updates the color preference
// PUT /api/settings/color-scheme
func (h *SettingsHandler) SetColorScheme(w http.ResponseWriter, r *http.Request) {
	var req ColorSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	scheme := contracts.ColorScheme(strings.ToLower(strings.TrimSpace(req.ColorScheme)))
	s, err := h.store.SetColorScheme(r.Context(), ownerFrom(r), scheme)
	if err != nil {
		h.respondStoreError(w, err, "Failed to update color scheme")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) setFavorite(w http.ResponseWriter, r *http.Request, favorite bool) {
	product := mux.Vars(r)["product"]

	s, err := h.store.SetFavorite(r.Context(), ownerFrom(r), product, favorite)
	if err != nil {
		h.respondStoreError(w, err, "Failed to update favorites")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) respondStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, settings.ErrInvalidColorScheme) || errors.Is(err, settings.ErrInvalidProduct) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.WithError(err).Error(message)
	respondError(w, http.StatusInternalServerError, message)
}

func ownerFrom(r *http.Request) string {
	if owner := strings.TrimSpace(r.Header.Get(OwnerHeader)); owner != "" {
		return owner
	}
	return DefaultOwner
}
