package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// SeatHandler serves the seating chart.  Both endpoints are public so
// guests can inspect availability before logging in.
type SeatHandler struct {
	Engine *booking.Engine
}

func NewSeatHandler(e *booking.Engine) *SeatHandler {
	if e == nil {
		panic("nil engine passed to NewSeatHandler")
	}
	return &SeatHandler{Engine: e}
}

// ListSeats handles GET /v1/seats and returns the flat seat list in id
// order together with the layout bounds.
func (h *SeatHandler) ListSeats(c echo.Context) error {
	seats := h.Engine.Seats()
	l := h.Engine.Layout()
	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(seats),
		"rows":          l.Rows(),
		"max_selection": l.MaxSelection,
		"items":         seats,
	})
}

// SeatLayout handles GET /v1/seats/layout and returns the seats grouped
// by row, the shape the seat map renders from.
func (h *SeatHandler) SeatLayout(c echo.Context) error {
	seats := h.Engine.Seats()
	type rowOut struct {
		Row   uint32       `json:"row"`
		Seats []model.Seat `json:"seats"`
	}
	rows := make([]rowOut, 0, h.Engine.Layout().Rows())
	for _, s := range seats {
		// Seats come back in id order, so rows appear in order too.
		if len(rows) == 0 || rows[len(rows)-1].Row != s.Row {
			rows = append(rows, rowOut{Row: s.Row})
		}
		rows[len(rows)-1].Seats = append(rows[len(rows)-1].Seats, s)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rows":  rows,
		"count": len(seats),
	})
}
