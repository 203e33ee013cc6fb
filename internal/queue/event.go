// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for booking lifecycle events.  One durable queue per
// event type, declared idempotently by publisher and consumer.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
	InventoryResetQueue   = "inventory.reset"
)

// BookingCreatedEvent is published when a selection is committed into a
// booking.  It carries enough information for downstream consumers to
// log or notify without querying the service.
type BookingCreatedEvent struct {
	BookingID  string   `json:"booking_id"`
	UserID     uint64   `json:"user_id"`
	SeatIDs    []uint64 `json:"seat_ids"`
	SeatLabels []string `json:"seats"`
	CreatedAt  string   `json:"created_at"`
}

// BookingCancelledEvent is published when an owner cancels a booking
// and its seats return to the free pool.
type BookingCancelledEvent struct {
	BookingID   string   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	SeatIDs     []uint64 `json:"seat_ids"`
	SeatLabels  []string `json:"seats"`
	CancelledAt string   `json:"cancelled_at"`
}

// InventoryResetEvent is published when an admin wipes all bookings and
// regenerates the seat inventory.
type InventoryResetEvent struct {
	AdminID    uint64 `json:"admin_id"`
	TotalSeats int    `json:"total_seats"`
	ResetAt    string `json:"reset_at"`
}
