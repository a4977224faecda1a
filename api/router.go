// Package api exposes the dashboard over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"property-dashboard/models"
)

// ServerErrorPrefix precedes the cause in every 500 response.
const ServerErrorPrefix = "Ocurrió un error en el servidor: "

// Runner produces one dashboard result per call.
type Runner interface {
	Run(ctx context.Context) (*models.Result, error)
}

type handler struct {
	dashboard Runner
	logger    *zap.SugaredLogger
}

// NewRouter builds the HTTP routes. allowedOrigins configures CORS; an empty
// list allows any origin.
func NewRouter(dashboard Runner, allowedOrigins []string, logger *zap.SugaredLogger) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	h := &handler{dashboard: dashboard, logger: logger}

	r := chi.NewRouter()
	r.Use(requestLogging(logger))
	r.Use(recoverJSON(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)
	r.Get("/dashboard/metrics", h.metrics)
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) metrics(w http.ResponseWriter, r *http.Request) {
	res, err := h.dashboard.Run(r.Context())
	if err != nil {
		h.logger.Errorw("[api] Dashboard run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ServerErrorPrefix + err.Error()})
		return
	}
	if res.NoData() {
		writeJSON(w, http.StatusOK, map[string]string{"message": res.Message})
		return
	}
	writeJSON(w, http.StatusOK, res.Report)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// recoverJSON turns a handler panic into the same 500 body a failed
// dashboard run produces.
func recoverJSON(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Errorw("[api] Handler panicked", "panic", rec, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ServerErrorPrefix + fmt.Sprint(rec)})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogging logs each request with a unique request ID, method, path,
// status code and latency.
func requestLogging(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()
			w.Header().Set("X-Request-ID", requestID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Infow("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"latency_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
