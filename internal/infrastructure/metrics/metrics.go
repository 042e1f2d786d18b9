package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProcessingMetrics covers the matching and settlement pipeline.
type ProcessingMetrics struct {
	NotificationsProcessedTotal *prometheus.CounterVec
	MatchesTotal                prometheus.Counter
	SettlementsTotal            *prometheus.CounterVec
	TransactionsExpiredTotal    prometheus.Counter
	CallbacksTotal              *prometheus.CounterVec
	MatcherTickDuration         prometheus.Histogram
}

func NewProcessingMetrics(reg prometheus.Registerer) *ProcessingMetrics {
	factory := promauto.With(reg)

	return &ProcessingMetrics{
		NotificationsProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_processed_total",
				Help: "Consumed bank notifications by processing outcome",
			},
			[]string{"reason"},
		),
		MatchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notification_matches_total",
				Help: "Notifications matched to a pending transaction",
			},
		),
		SettlementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_settlements_total",
				Help: "Applied settlement transitions",
			},
			[]string{"status", "type"},
		),
		TransactionsExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transactions_expired_total",
				Help: "Transactions transitioned to EXPIRED by the sweep",
			},
		),
		CallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "merchant_callbacks_total",
				Help: "Outbound merchant callbacks by delivery outcome",
			},
			[]string{"outcome"},
		),
		MatcherTickDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "matcher_tick_duration_seconds",
				Help:    "Duration of one matcher polling tick",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
