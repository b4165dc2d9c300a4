// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Order metrics
	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	// Upload metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploads to object storage by driver and result",
		},
		[]string{"driver", "result"},
	)

	// Payment gateway metrics
	PaymentCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_gateway_calls_total",
			Help:      "Calls to payment gateways by gateway, operation and result",
		},
		[]string{"gateway", "operation", "result"},
	)
)

// RecordStatusChange counts one order status change.
func RecordStatusChange(from, to string) {
	OrderStatusChanges.WithLabelValues(from, to).Inc()
}

// RecordUpload counts one upload attempt.
func RecordUpload(driver string, err error) {
	UploadsTotal.WithLabelValues(driver, result(err)).Inc()
}

// RecordPaymentCall counts one payment gateway call.
func RecordPaymentCall(gateway, operation string, err error) {
	PaymentCallsTotal.WithLabelValues(gateway, operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
