package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_errors_total",
			Help: "Total number of logged errors per app instance, error type and log level.",
		},
		[]string{"app", "type", "level"},
	)
	JobsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_jobs_created_total",
			Help: "Total number of posted jobs.",
		},
	)
	BidsPlacedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_bids_placed_total",
			Help: "Total number of placed bids.",
		},
	)
	BidDecisionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_bid_decisions_total",
			Help: "Total number of bids moved to a terminal status.",
		},
		[]string{"status"},
	)
	NotificationsCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_notifications_created_total",
			Help: "Total number of created notifications.",
		},
		[]string{"type"},
	)
	LoginAttemptsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_login_attempts_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)
	BidsCountDriftCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_bids_count_drift_total",
			Help: "Total number of jobs whose bids counter had to be corrected.",
		},
	)
	TelegramDeliveriesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_telegram_deliveries_total",
			Help: "Total number of notifications forwarded to Telegram.",
		},
		[]string{"result"},
	)
	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(JobsCreatedCounter)
		prometheus.MustRegister(BidsPlacedCounter)
		prometheus.MustRegister(BidDecisionsCounter)
		prometheus.MustRegister(NotificationsCreatedCounter)
		prometheus.MustRegister(LoginAttemptsCounter)
		prometheus.MustRegister(BidsCountDriftCounter)
		prometheus.MustRegister(TelegramDeliveriesCounter)
		prometheus.MustRegister(HttpRequestDuration)
	})
}
