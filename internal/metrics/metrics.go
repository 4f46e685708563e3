package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsCreated *prometheus.CounterVec
	RecordsDeleted *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "milplan_records_created_total",
			Help: "Total number of records created, by entity",
		}, []string{"entity"}),
		RecordsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "milplan_records_deleted_total",
			Help: "Total number of records deleted, by entity",
		}, []string{"entity"}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "milplan_http_requests_total",
			Help: "Total number of HTTP requests, by method and status code",
		}, []string{"method", "code"}),
	}
}

func (m *Metrics) RecordCreated(entity string) {
	m.RecordsCreated.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordDeleted(entity string) {
	m.RecordsDeleted.WithLabelValues(entity).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// CountRequests is an HTTP middleware incrementing the request counter.
func (m *Metrics) CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
