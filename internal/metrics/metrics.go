package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP requests served, by route pattern and status code
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amanah_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// Latency of HTTP handlers
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "amanah_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Outbound transfers by kind (transfer, zakat) and outcome
	Transfers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amanah_transfers_total",
		Help: "Outbound chain transfers by type and outcome",
	}, []string{"type", "outcome"})

	// Time from broadcast to the required number of confirmations
	ConfirmationWait = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "amanah_confirmation_wait_seconds",
		Help:    "Time spent waiting for transaction confirmations",
		Buckets: []float64{1, 2, 5, 10, 15, 20, 30, 60},
	})

	BalancePollDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "amanah_balance_poll_duration_seconds",
		Help:    "Duration of a full balance poll cycle",
		Buckets: prometheus.DefBuckets,
	})

	BalancePollFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amanah_balance_poll_failures_total",
		Help: "Wallets whose balance could not be refreshed",
	})

	BalanceUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amanah_balance_updates_total",
		Help: "Cached balances changed by the poller",
	})

	PriceFeedFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amanah_price_feed_failures_total",
		Help: "Failed price feed refreshes",
	})

	// Open live update connections
	LiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "amanah_live_connections",
		Help: "Number of connected live update clients",
	})

	LiveDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amanah_live_messages_dropped_total",
		Help: "Live messages dropped because no client was connected or its buffer was full",
	})
)

var once sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequests,
			HTTPRequestDuration,
			Transfers,
			ConfirmationWait,
			BalancePollDuration,
			BalancePollFailures,
			BalanceUpdates,
			PriceFeedFailures,
			LiveConnections,
			LiveDropped,
		)
	})
}
