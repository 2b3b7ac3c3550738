package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yulebook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yulebook",
			Name:      "bookings_created_total",
			Help:      "Successfully created bookings.",
		},
	)

	bookingValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "yulebook",
			Name:      "booking_value_pounds",
			Help:      "Total amount of created bookings.",
			Buckets:   []float64{10, 25, 50, 100, 200, 500},
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingValue)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// BookingCreated records a successful booking and its value.
func BookingCreated(amount float64) {
	bookingsCreated.Inc()
	bookingValue.Observe(amount)
}
