package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wonny/bunkerwatch/backend/internal/api/handlers"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(procurementHandler *handlers.ProcurementHandler, settingsHandler *handlers.SettingsHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Procurement board endpoints
	api.HandleFunc("/procurement", procurementHandler.ListProducts).Methods("GET")
	api.HandleFunc("/procurement/{product}", procurementHandler.GetBoard).Methods("GET")
	api.HandleFunc("/procurement/{product}/summary", procurementHandler.GetSummary).Methods("GET")
	api.HandleFunc("/procurement/{product}/refresh", procurementHandler.Refresh).Methods("POST")

	// User settings endpoints
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	api.HandleFunc("/settings/favorites/{product}", settingsHandler.AddFavorite).Methods("PUT")
	api.HandleFunc("/settings/favorites/{product}", settingsHandler.RemoveFavorite).Methods("DELETE")
	api.HandleFunc("/settings/color-scheme", settingsHandler.SetColorScheme).Methods("PUT")

	// 경로는 맞고 메서드만 다른 요청 → 405
	// mux 는 뒤에 등록된 라우트가 메서드 불일치 결과를 지우므로 경로별로 직접 등록
	allowOnly(r, "/health", "GET")
	allowOnly(api, "/procurement", "GET")
	allowOnly(api, "/procurement/{product}", "GET")
	allowOnly(api, "/procurement/{product}/summary", "GET")
	allowOnly(api, "/procurement/{product}/refresh", "POST")
	allowOnly(api, "/settings", "GET")
	allowOnly(api, "/settings/favorites/{product}", "PUT", "DELETE")
	allowOnly(api, "/settings/color-scheme", "PUT")

	// 라우터 전체를 감싸야 매칭되지 않은 404 에도 적용됨
	return requestIDMiddleware(loggingMiddleware(log)(recoveryMiddleware(log)(r)))
}

// allowOnly registers a catch-all for path that answers 405 with an Allow header.
// Must be registered after the method-specific routes for the same path.
func allowOnly(r *mux.Router, path string, methods ...string) {
	allow := strings.Join(methods, ", ")
	r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", allow)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "method not allowed",
		})
	})
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "bunkerwatch-api",
	})
}

// RequestIDHeader carries the per-request trace ID
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware echoes the caller's request ID or assigns a new one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"request_id": r.Header.Get(RequestIDHeader),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"duration":   time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
