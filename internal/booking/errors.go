// Package booking implements the seat inventory, the per-user selection
// buffers and the booking ledger.  All state transitions go through the
// Engine, which is the only writer of seats and bookings.  Operations
// return sentinel errors so handlers can translate failures into HTTP
// statuses and user-facing notifications instead of the engine
// side-effecting notifications itself.
package booking

import "errors"

// ErrSeatNotFound is returned when a seat identity does not exist in the
// current inventory.  Handlers should translate this into HTTP 404.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatBooked is returned when a selection or a commit touches a seat
// that is already booked.  This is the conflict case the commit-time
// re-validation exists for; handlers map it to HTTP 409.
var ErrSeatBooked = errors.New("seat already booked")

// ErrSeatSelected is returned on a second select of a seat already in
// the caller's buffer.
var ErrSeatSelected = errors.New("seat already selected")

// ErrSelectionFull is returned when the selection buffer is at its
// maximum size.
var ErrSelectionFull = errors.New("selection limit reached")

// ErrEmptySelection is returned when Book is called with nothing
// selected.
var ErrEmptySelection = errors.New("no seats selected")

// ErrBookingNotFound is returned when a booking id is not present in
// the ledger.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNotBookingOwner is returned when a caller tries to cancel a
// booking that belongs to a different user.  Handlers should translate
// this into HTTP 403.
var ErrNotBookingOwner = errors.New("booking belongs to another user")
