package model

import "time"

// Booking is a confirmed association between a user and a set of seats.
// Bookings live in the ledger from the moment they are committed until
// they are cancelled.  Seat sets of distinct bookings never overlap.
//
// Fields:
//  ID        – unique booking token (uuid).
//  UserID    – owner of the booking.
//  SeatIDs   – non-empty set of seat identities, in selection order.
//  CreatedAt – commit timestamp in UTC.
type Booking struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	SeatIDs   []uint64  `json:"seat_ids"`
	CreatedAt time.Time `json:"created_at"`
}
