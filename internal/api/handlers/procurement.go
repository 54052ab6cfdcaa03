package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/internal/procurement"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// ProcurementHandler handles procurement board endpoints
// ⭐ SSOT: 구매 윈도우 API 핸들러는 이 구조체에서만
type ProcurementHandler struct {
	service *procurement.Service
	logger  *logger.Logger
}

// NewProcurementHandler creates a new procurement handler
func NewProcurementHandler(service *procurement.Service, log *logger.Logger) *ProcurementHandler {
	return &ProcurementHandler{
		service: service,
		logger:  log,
	}
}

// SummaryResponse is the summary-only board view
type SummaryResponse struct {
	Product       string                 `json:"product"`
	ReferenceDate string                 `json:"reference_date"`
	Summary       []contracts.SummaryRow `json:"summary"`
	Nominated     int                    `json:"nominated"`
}

// RefreshResponse reports a stored snapshot
type RefreshResponse struct {
	Status  string `json:"status"`
	Product string `json:"product"`
	Saved   int    `json:"saved"`
}

// ListProducts returns the configured products with display info
// GET /api/procurement
func (h *ProcurementHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": h.service.Catalog(),
	})
}

// GetBoard returns the full procurement board
// GET /api/procurement/{product}?rows=N
func (h *ProcurementHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// GetSummary returns only the summary table
// GET /api/procurement/{product}/summary?rows=N
func (h *ProcurementHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, SummaryResponse{
		Product:       board.Product,
		ReferenceDate: board.ReferenceDate,
		Summary:       board.Summary,
		Nominated:     board.NominatedCount(),
	})
}

// Refresh pulls a new forecast snapshot from the upstream API
// POST /api/procurement/{product}/refresh
func (h *ProcurementHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	product := mux.Vars(r)["product"]

	saved, err := h.service.Refresh(r.Context(), product)
	if err != nil {
		h.respondServiceError(w, err, "Failed to refresh forecasts")
		return
	}

	normalized, _ := h.service.NormalizeProduct(product)
	respondJSON(w, http.StatusOK, RefreshResponse{
		Status:  "ok",
		Product: normalized,
		Saved:   saved,
	})
}

func (h *ProcurementHandler) loadBoard(w http.ResponseWriter, r *http.Request) (*contracts.ProcurementBoard, bool) {
	rows := 0
	if raw := r.URL.Query().Get("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid rows (must be a positive integer)")
			return nil, false
		}
		rows = n
	}

	board, err := h.service.Board(r.Context(), mux.Vars(r)["product"], rows)
	if err != nil {
		h.respondServiceError(w, err, "Failed to build procurement board")
		return nil, false
	}
	return board, true
}

func (h *ProcurementHandler) respondServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, procurement.ErrUnknownProduct):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, procurement.ErrRefreshUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.WithError(err).Error(message)
		respondError(w, http.StatusInternalServerError, message)
	}
}
