package model

// Seat describes a single bookable seat in the train car.  Seats are
// generated once per inventory and keep the same identity for the
// lifetime of the process.  The seat number is a display label derived
// from the row and the seat's position within it (1A, 1B, ...).
//
// Fields:
//  ID         – stable identity, sequential from 1.
//  Row        – 1-based row number.
//  SeatNumber – display label `{row}{letter}`.
//  IsBooked   – true iff a booking in the ledger references this seat.
//  BookedBy   – ID of the owning user, nil while the seat is free.
//  BookingID  – ID of the owning booking, empty while the seat is free.
type Seat struct {
	ID         uint64  `json:"id"`
	Row        uint32  `json:"row"`
	SeatNumber string  `json:"seat_number"`
	IsBooked   bool    `json:"is_booked"`
	BookedBy   *uint64 `json:"booked_by,omitempty"`
	BookingID  string  `json:"booking_id,omitempty"`
}
