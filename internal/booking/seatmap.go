package booking

import (
	"fmt"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// Layout describes the shape of the generated seat inventory and the
// selection limit enforced per user.
type Layout struct {
	TotalSeats   int // total number of seats in the car
	SeatsPerRow  int // seats in every full row
	LastRowSeats int // seats in the final partial row
	MaxSelection int // upper bound of a selection buffer
}

// DefaultLayout matches the standard car: 11 full rows of 7 plus a
// last row of 3, and at most 7 seats per booking.
var DefaultLayout = Layout{
	TotalSeats:   80,
	SeatsPerRow:  7,
	LastRowSeats: 3,
	MaxSelection: 7,
}

// Rows returns the total number of rows the layout produces, including
// the partial one.
func (l Layout) Rows() int {
	return (l.TotalSeats-l.LastRowSeats)/l.SeatsPerRow + 1
}

// GenerateSeats builds the initial seat inventory for a layout.  It is
// a pure function of the layout: identities are sequential from 1, rows
// from 1, full rows first, then the partial last row.  Every seat
// starts unbooked.
func GenerateSeats(l Layout) []model.Seat {
	seats := make([]model.Seat, 0, l.TotalSeats)
	id := uint64(1)
	fullRows := (l.TotalSeats - l.LastRowSeats) / l.SeatsPerRow
	for row := 1; row <= fullRows; row++ {
		for pos := 1; pos <= l.SeatsPerRow; pos++ {
			seats = append(seats, model.Seat{
				ID:         id,
				Row:        uint32(row),
				SeatNumber: seatLabel(row, pos),
			})
			id++
		}
	}
	lastRow := fullRows + 1
	for pos := 1; pos <= l.LastRowSeats; pos++ {
		seats = append(seats, model.Seat{
			ID:         id,
			Row:        uint32(lastRow),
			SeatNumber: seatLabel(lastRow, pos),
		})
		id++
	}
	return seats
}

// seatLabel renders the display label for a seat: row number followed
// by the alphabetic position within the row (1A, 1B, ... 12C).
func seatLabel(row, pos int) string {
	return fmt.Sprintf("%d%c", row, rune('A'+pos-1))
}
