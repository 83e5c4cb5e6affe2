package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	cartUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_updates_total",
			Help: "Total number of persisted cart mutations.",
		},
	)
	cartLineItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cart_line_items",
			Help:    "Number of line items in a cart after a mutation.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
	quotationsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotations_issued_total",
			Help: "Total number of issued quotations.",
		},
	)
	quotationExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_exports_total",
			Help: "Quotation exports by channel and result.",
		},
		[]string{"channel", "result"},
	)
	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the loaded catalog.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// CartUpdated has the cart.SessionObserver signature.
func CartUpdated(_ string, items []models.CartItem) {
	cartUpdatesTotal.Inc()
	cartLineItems.Observe(float64(len(items)))
}

func QuotationIssued() {
	quotationsIssuedTotal.Inc()
}

func QuotationExported(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	quotationExportsTotal.WithLabelValues(channel, result).Inc()
}

func SetCatalogSize(n int) {
	catalogProducts.Set(float64(n))
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// pathLabel collapses numeric segments so /products/7/price and
// /products/8/price share a series.
func pathLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}

	return strings.Join(segments, "/")
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)
		path := pathLabel(r.URL.Path)

		defer func() {
			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
