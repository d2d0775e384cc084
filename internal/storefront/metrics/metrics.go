package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// SessionCounter reports how many sessions the store currently holds
type SessionCounter interface {
	Count(ctx context.Context) (int, error)
}

// Metrics holds every Prometheus collector the storefront exports
type Metrics struct {
	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	requestSummary  *prometheus.SummaryVec
	cartAdditions   prometheus.Counter
	cartUnits       prometheus.Counter
	purchases       prometheus.Counter
	revenue         prometheus.Counter
	analyses        *prometheus.CounterVec
	activeSessions  prometheus.GaugeFunc
	sessionsCreated prometheus.Counter
	sessionsDeleted prometheus.Counter
	overlaysShown   prometheus.Counter
	navigationCount *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. The active
// sessions gauge asks sessions on every scrape, so expired sessions drop
// out without an explicit delete.
func New(reg prometheus.Registerer, sessions SessionCounter) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_requests_total",
				Help: "Total number of requests to the storefront service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_request_duration_seconds",
				Help:    "Duration of storefront requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		requestSummary: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "storefront_request_duration_summary_seconds",
				Help:       "Quantiles of storefront request duration",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"endpoint"},
		),
		cartAdditions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_additions_total",
			Help: "Successful add-to-cart operations",
		}),
		cartUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_units_added_total",
			Help: "Units added to carts",
		}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_purchases_total",
			Help: "Completed purchases",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_purchase_revenue_won_total",
			Help: "Sum of completed order totals in won",
		}),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_room_analyses_total",
				Help: "Room analyses by outcome",
			},
			[]string{"outcome"},
		),
		activeSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Live sessions in the session store",
		}, func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := sessions.Count(ctx)
			if err != nil {
				return -1
			}
			return float64(n)
		}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_sessions_created_total",
			Help: "Sessions created",
		}),
		sessionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_sessions_deleted_total",
			Help: "Sessions ended by an explicit delete",
		}),
		overlaysShown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_overlays_shown_total",
			Help: "Added-to-cart notifications shown",
		}),
		navigationCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_navigation_total",
				Help: "Navigation transitions by action",
			},
			[]string{"action"},
		),
	}

	reg.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.requestSummary,
		m.cartAdditions,
		m.cartUnits,
		m.purchases,
		m.revenue,
		m.analyses,
		m.activeSessions,
		m.sessionsCreated,
		m.sessionsDeleted,
		m.overlaysShown,
		m.navigationCount,
	)
	return m
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, endpoint string, status int, d time.Duration) {
	m.requestLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	m.requestSummary.WithLabelValues(endpoint).Observe(d.Seconds())
	m.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// CartItemAdded records a successful add of qty units
func (m *Metrics) CartItemAdded(qty int) {
	m.cartAdditions.Inc()
	m.cartUnits.Add(float64(qty))
	m.overlaysShown.Inc()
}

// PurchaseCompleted records an order and its total
func (m *Metrics) PurchaseCompleted(total int64) {
	m.purchases.Inc()
	m.revenue.Add(float64(total))
}

// AnalysisFinished records an analysis outcome
func (m *Metrics) AnalysisFinished(outcome string) {
	m.analyses.WithLabelValues(outcome).Inc()
}

// Navigated records a navigation action
func (m *Metrics) Navigated(action string) {
	m.navigationCount.WithLabelValues(action).Inc()
}

// SessionStarted records a created session
func (m *Metrics) SessionStarted() { m.sessionsCreated.Inc() }

// SessionEnded records an explicitly deleted session
func (m *Metrics) SessionEnded() { m.sessionsDeleted.Inc() }
