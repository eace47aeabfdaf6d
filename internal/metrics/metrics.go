package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		},
		[]string{"method"},
	)
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of job applications created.",
		},
	)
	NotificationsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Total number of notification events emitted.",
		},
		[]string{"event"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ApplicationsSubmitted)
	prometheus.MustRegister(NotificationsEmitted)
}

// Handler serves the metrics endpoint; mounted on the API mux.
func Handler() http.Handler {
	return promhttp.Handler()
}
