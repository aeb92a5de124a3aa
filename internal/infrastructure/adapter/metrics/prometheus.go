package metrics

import (
	"database/sql"
	"strconv"
	"time"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lending"

// Collector records domain outcomes, HTTP traffic and pool usage.
// A nil Collector, or one built without a registerer, records nothing.
type Collector struct {
	operations *prometheus.CounterVec
	requests   *prometheus.HistogramVec
	poolOpen   prometheus.Gauge
	poolInUse  prometheus.Gauge
	poolIdle   prometheus.Gauge
	poolWaits  prometheus.Gauge
}

var _ coreport.Metrics = (*Collector)(nil)

// NewCollector registers the metrics on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return &Collector{}
	}

	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Domain operations by outcome.",
		}, []string{"operation", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		poolOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_open_connections",
			Help:      "Open database connections.",
		}),
		poolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_in_use_connections",
			Help:      "Database connections in use.",
		}),
		poolIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_idle_connections",
			Help:      "Idle database connections.",
		}),
		poolWaits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_wait_count",
			Help:      "Total waits for a database connection.",
		}),
	}
	reg.MustRegister(c.operations, c.requests, c.poolOpen, c.poolInUse, c.poolIdle, c.poolWaits)
	return c
}

// Record counts one domain operation outcome
func (c *Collector) Record(operation, outcome string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// ObserveRequest records the latency of one HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	if c == nil || c.requests == nil {
		return
	}
	c.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObservePool publishes a connection pool sample
func (c *Collector) ObservePool(stats sql.DBStats) {
	if c == nil || c.poolOpen == nil {
		return
	}
	c.poolOpen.Set(float64(stats.OpenConnections))
	c.poolInUse.Set(float64(stats.InUse))
	c.poolIdle.Set(float64(stats.Idle))
	c.poolWaits.Set(float64(stats.WaitCount))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
