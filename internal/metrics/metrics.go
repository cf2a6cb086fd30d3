package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plumbdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plumbdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plumbdesk_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"source", "emergency"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plumbdesk_booking_conflicts_total",
			Help: "Booking requests rejected because the slot was taken",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plumbdesk_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plumbdesk_payments_total",
			Help: "Total number of recorded payments",
		},
		[]string{"method", "status"},
	)

	PaymentLinksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plumbdesk_payment_links_total",
			Help: "Total number of payment links created",
		},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plumbdesk_webhook_events_total",
			Help: "Payment provider webhook events by outcome",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plumbdesk_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "plumbdesk_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(source string, emergency bool) {
	em := "no"
	if emergency {
		em = "yes"
	}
	BookingsTotal.WithLabelValues(source, em).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordPayment(method, status string) {
	PaymentsTotal.WithLabelValues(method, status).Inc()
}

func RecordPaymentLink() {
	PaymentLinksTotal.Inc()
}

func RecordWebhookEvent(result string) {
	WebhookEventsTotal.WithLabelValues(result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
