package http

import (
	"net/http"

	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates the observability router. It carries no data-plane
// endpoints: the batch transform itself is file-to-file.
func NewRouter(httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Get("/healthz", handleHealthz)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
