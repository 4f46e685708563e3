package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/config"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Request logging; the X-Actor header identifies the caller in logs only
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			fields := log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"duration": time.Since(start),
			}
			if actor := req.Header.Get("X-Actor"); actor != "" {
				fields["actor"] = actor
			}
			log.WithFields(fields).Debug("handled request")
		})
	})

	// Request counting
	r.Use(deps.Metrics.CountRequests)
}
