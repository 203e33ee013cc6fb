// Package metrics exposes Prometheus counters and gauges for the
// booking workflow.  The registry is served on /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successfully committed bookings.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Number of bookings committed.",
	})

	// BookingsCancelled counts cancelled bookings.
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_cancelled_total",
		Help: "Number of bookings cancelled.",
	})

	// BookingConflicts counts bookings rejected at commit time because
	// a selected seat was already booked.
	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Number of bookings rejected by the commit-time availability check.",
	})

	// SeatsBooked tracks how many seats are currently booked.
	SeatsBooked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "seats_booked",
		Help: "Seats currently referenced by a booking.",
	})

	// InventoryResets counts admin inventory resets.
	InventoryResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_resets_total",
		Help: "Number of full inventory resets.",
	})
)
