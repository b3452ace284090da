package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Portfolio API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)

	// Contact submissions by result: saved, failed, unavailable
	ContactsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contacts_total",
			Help:      "Contact form submissions by result",
		},
		[]string{"result"},
	)

	// Contact notifications by outcome: sent, skipped, failed
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "notifications_total",
			Help:      "Contact email notifications by outcome",
		},
		[]string{"outcome"},
	)

	// Resume download tracking by result: tracked, failed
	ResumeDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "resume_downloads_total",
			Help:      "Resume downloads by tracking result",
		},
		[]string{"result"},
	)

	// Number of projects returned by the last listing
	ProjectsListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "portfolio",
			Name:      "projects_listed",
			Help:      "Number of projects returned by the most recent listing",
		},
	)
)
