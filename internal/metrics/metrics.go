package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tour_admin"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	flagToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_flag_toggles_total",
			Help:      "Count of booking flag toggles by flag and result.",
		},
		[]string{"flag", "result"},
	)

	paymentUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_payment_updates_total",
			Help:      "Count of booking payment updates by result.",
		},
		[]string{"result"},
	)

	channelsClassified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_channels_classified_total",
			Help:      "Count of booking rows rewritten by channel classification.",
		},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Count of notification attempts by channel and status.",
		},
		[]string{"channel", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, flagToggles, paymentUpdates, channelsClassified, notificationsSent)
	})
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func IncFlagToggle(flag, result string) {
	flagToggles.WithLabelValues(flag, result).Inc()
}

func IncPaymentUpdate(result string) {
	paymentUpdates.WithLabelValues(result).Inc()
}

func AddChannelsClassified(n int64) {
	channelsClassified.Add(float64(n))
}

func IncNotification(channel, status string) {
	notificationsSent.WithLabelValues(channel, status).Inc()
}
