package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewatch_runs_total",
			Help: "Total number of stock check runs.",
		},
		[]string{"outcome"},
	)
	devicesChecked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storewatch_devices_checked_total",
			Help: "Total number of per-device availability fetches.",
		},
	)
	fetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewatch_fetch_failures_total",
			Help: "Total number of upstream fetch failures by kind.",
		},
		[]string{"kind"},
	)
	availabilityEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storewatch_availability_events_total",
			Help: "Total number of notify-worthy availability events.",
		},
	)
	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewatch_notifications_sent_total",
			Help: "Total number of notifications sent by channel.",
		},
		[]string{"channel"},
	)
	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewatch_notification_failures_total",
			Help: "Total number of notification transport failures by channel.",
		},
		[]string{"channel"},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(devicesChecked)
	prometheus.MustRegister(fetchFailures)
	prometheus.MustRegister(availabilityEvents)
	prometheus.MustRegister(notificationsSent)
	prometheus.MustRegister(notificationFailures)
}

// RecordRun records a completed check run with its outcome label
func RecordRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

// RecordDeviceChecked records one per-device availability fetch
func RecordDeviceChecked() {
	devicesChecked.Inc()
}

// RecordFetchFailure records an upstream fetch failure by kind
func RecordFetchFailure(kind string) {
	fetchFailures.WithLabelValues(kind).Inc()
}

// RecordAvailabilityEvent records one notify-worthy availability event
func RecordAvailabilityEvent() {
	availabilityEvents.Inc()
}

// RecordNotificationSent records a delivered notification
func RecordNotificationSent(channel string) {
	notificationsSent.WithLabelValues(channel).Inc()
}

// RecordNotificationFailure records a failed notification delivery
func RecordNotificationFailure(channel string) {
	notificationFailures.WithLabelValues(channel).Inc()
}

// Handler returns the HTTP handler exporting Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
