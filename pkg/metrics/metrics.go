package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestCounter cuenta todas las peticiones HTTP con labels.
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// requestDuration registra la duración de las peticiones en segundos.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// quotaRejections cuenta rechazos del Quota Ledger por plan y categoría.
	quotaRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_rejections_total",
			Help: "Total number of quota ledger rejections",
		},
		[]string{"plan", "category"},
	)

	// shardFanouts cuenta búsquedas fan-out entre shards.
	shardFanouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shard_fanout_lookups_total",
			Help: "Total number of cross-shard fan-out lookups",
		},
		[]string{"outcome"}, // found, not_found, error
	)
)

// HTTPMetrics colector de métricas HTTP para el servicio.
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics crea y registra el colector. Debe llamarse una sola vez.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	prometheus.MustRegister(requestCounter, requestDuration, quotaRejections, shardFanouts)
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware devuelve un middleware Fiber que registra contador y duración por request.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		method := c.Method()
		path := c.Route().Path
		statusStr := strconv.Itoa(status)

		requestCounter.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
		requestDuration.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics en formato Prometheus (vía adaptor net/http → fiber).
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// QuotaRejection incrementa el contador de rechazos de cuota.
func QuotaRejection(plan, category string) {
	quotaRejections.WithLabelValues(plan, category).Inc()
}

// ShardFanout incrementa el contador de fan-outs con su resultado.
func ShardFanout(outcome string) {
	shardFanouts.WithLabelValues(outcome).Inc()
}
