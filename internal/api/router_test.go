package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/api/handlers"
	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/internal/procurement"
	"github.com/wonny/bunkerwatch/backend/internal/settings"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

type staticSource map[string][]contracts.ForecastPoint

func (s staticSource) GetForecasts(ctx context.Context, product string) ([]contracts.ForecastPoint, error) {
	return s[product], nil
}

type countingStore struct {
	saved map[string]int
}

func (c *countingStore) SaveSnapshot(ctx context.Context, product string, points []contracts.ForecastPoint) (int, error) {
	c.saved[product] = len(points)
	return len(points), nil
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(contracts.DateLayout, s)
	require.NoError(t, err)
	return d
}

func fixturePoints(t *testing.T) []contracts.ForecastPoint {
	ref := mustDay(t, "2025-01-08")
	return []contracts.ForecastPoint{
		{CurrentDate: ref, PredictedDate: mustDay(t, "2025-01-09"), PredictedValue: 610, NDaysAhead: 1},
		{CurrentDate: ref, PredictedDate: mustDay(t, "2025-01-10"), PredictedValue: 600, NDaysAhead: 2},
		{CurrentDate: ref, PredictedDate: mustDay(t, "2025-01-13"), PredictedValue: 590, NDaysAhead: 5},
	}
}

func newTestRouter(t *testing.T, upstream procurement.ForecastSource, store procurement.SnapshotStore) http.Handler {
	log := logger.Nop()
	source := staticSource{"VLSFO": fixturePoints(t)}
	svc := procurement.NewService(procurement.Config{Products: []string{"VLSFO", "HSFO"}}, source, upstream, store, nil, log.Zerolog())

	return NewRouter(
		handlers.NewProcurementHandler(svc, log),
		handlers.NewSettingsHandler(settings.NewMemoryStore(), log),
		log,
	)
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListProducts(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/api/procurement", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []contracts.ProductInfo `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []contracts.ProductInfo{{Code: "VLSFO"}, {Code: "HSFO"}}, resp.Products)
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := do(t, router, http.MethodGet, "/api/procurement", "", nil)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	rec = do(t, router, http.MethodGet, "/api/procurement", "", map[string]string{RequestIDHeader: "trace-1"})
	assert.Equal(t, "trace-1", rec.Header().Get(RequestIDHeader))
}

func TestGetBoard(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/api/procurement/vlsfo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board contracts.ProcurementBoard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))

	assert.Equal(t, "VLSFO", board.Product)
	assert.Equal(t, "2025-01-08", board.ReferenceDate)
	assert.Equal(t, []string{"2025-01-09", "2025-01-10", "2025-01-13"}, board.Columns)
	require.Len(t, board.Summary, 5)
	assert.Equal(t, "2025-01-22", board.Summary[0].ETA)
	assert.Equal(t, "2025-01-09", board.Summary[0].DON)
	assert.Equal(t, 3, board.NominatedCount())

	require.Len(t, board.Detail, 5)
	assert.Equal(t, []contracts.CellClass{contracts.CellNaN, contracts.CellNaN, contracts.CellNaN}, board.Detail[4].Classes)
}

func TestGetSummary_Rows(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/api/procurement/VLSFO/summary?rows=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Summary, 2)
	assert.Equal(t, 2, resp.Nominated)
	assert.NotContains(t, rec.Body.String(), "detail")
}

func TestGetBoard_Errors(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"unknown product", "/api/procurement/LNG", http.StatusNotFound},
		{"invalid rows", "/api/procurement/VLSFO?rows=abc", http.StatusBadRequest},
		{"zero rows", "/api/procurement/VLSFO/summary?rows=0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRefresh(t *testing.T) {
	store := &countingStore{saved: map[string]int{}}
	upstream := staticSource{"HSFO": fixturePoints(t)}
	router := newTestRouter(t, upstream, store)

	rec := do(t, router, http.MethodPost, "/api/procurement/hsfo/refresh", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HSFO", resp.Product)
	assert.Equal(t, 3, resp.Saved)
	assert.Equal(t, 3, store.saved["HSFO"])
}

func TestRefresh_NotConfigured(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodPost, "/api/procurement/VLSFO/refresh", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	tests := []struct {
		name   string
		method string
		path   string
		allow  string
	}{
		{"refresh via GET", http.MethodGet, "/api/procurement/VLSFO/refresh", "POST"},
		{"board via POST", http.MethodPost, "/api/procurement/VLSFO", "GET"},
		{"summary via DELETE", http.MethodDelete, "/api/procurement/VLSFO/summary", "GET"},
		{"favorites via GET", http.MethodGet, "/api/settings/favorites/VLSFO", "PUT, DELETE"},
		{"color scheme via POST", http.MethodPost, "/api/settings/color-scheme", "PUT"},
		{"health via POST", http.MethodPost, "/health", "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestID_UnmatchedRoute(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := do(t, router, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	rec = do(t, router, http.MethodGet, "/api/procurement/VLSFO/extra/path", "", map[string]string{RequestIDHeader: "trace-404"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trace-404", rec.Header().Get(RequestIDHeader))
}

func TestSettingsFlow(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	alice := map[string]string{handlers.OwnerHeader: "alice"}

	decode := func(rec *httptest.ResponseRecorder) contracts.UserSettings {
		var s contracts.UserSettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		return s
	}

	rec := do(t, router, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s := decode(rec)
	assert.Equal(t, handlers.DefaultOwner, s.Owner)
	assert.Equal(t, contracts.ColorSystem, s.ColorScheme)
	assert.Empty(t, s.Favorites)

	rec = do(t, router, http.MethodPut, "/api/settings/favorites/vlsfo", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"VLSFO"}, decode(rec).Favorites)

	rec = do(t, router, http.MethodPut, "/api/settings/color-scheme", `{"color_scheme":"Dark"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contracts.ColorDark, decode(rec).ColorScheme)

	rec = do(t, router, http.MethodDelete, "/api/settings/favorites/VLSFO", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decode(rec)
	assert.Empty(t, s.Favorites)
	assert.Equal(t, contracts.ColorDark, s.ColorScheme)

	// 다른 사용자는 영향 없음
	rec = do(t, router, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, contracts.ColorSystem, decode(rec).ColorScheme)
}

func TestSettings_InvalidInput(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := do(t, router, http.MethodPut, "/api/settings/color-scheme", `{"color_scheme":"neon"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/settings/color-scheme", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := do(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
