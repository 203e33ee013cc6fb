package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/metrics"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
)

// BookingHandler commits selections into bookings and cancels them.
// Event publishing is best effort: a broker outage never fails the
// request, the commit already happened in the engine.
type BookingHandler struct {
	Engine        *booking.Engine
	PublishEvents bool // disabled in tests and when no broker is configured
}

func NewBookingHandler(e *booking.Engine, publishEvents bool) *BookingHandler {
	if e == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: e, PublishEvents: publishEvents}
}

// CreateBooking handles POST /v1/bookings.  It books the caller's
// current selection as one all-or-nothing commit.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Engine.Book(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, booking.ErrSeatBooked) {
			metrics.BookingConflicts.Inc()
		}
		return engineError(c, err)
	}
	metrics.BookingsCreated.Inc()
	metrics.SeatsBooked.Add(float64(len(b.SeatIDs)))

	if h.PublishEvents {
		go func() {
			ev := queue.BookingCreatedEvent{
				BookingID:  b.ID,
				UserID:     b.UserID,
				SeatIDs:    b.SeatIDs,
				SeatLabels: h.Engine.SeatLabels(b.SeatIDs),
				CreatedAt:  b.CreatedAt.Format(time.RFC3339),
			}
			_ = queue.Publish(context.Background(), queue.BookingCreatedQueue, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": b,
		"notification": success("Booking successful",
			fmt.Sprintf("Successfully booked %d seat(s)", len(b.SeatIDs))),
	})
}

// ListBookings handles GET /v1/bookings and returns the caller's
// bookings, oldest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items := h.Engine.Bookings(userID)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"items": items,
	})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only the owning user
// may cancel; the freed seats return to the pool immediately.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")
	if bookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Engine.Cancel(c.Request().Context(), userID, bookingID)
	if err != nil {
		return engineError(c, err)
	}
	metrics.BookingsCancelled.Inc()
	metrics.SeatsBooked.Sub(float64(len(b.SeatIDs)))

	if h.PublishEvents {
		go func() {
			ev := queue.BookingCancelledEvent{
				BookingID:   b.ID,
				UserID:      b.UserID,
				SeatIDs:     b.SeatIDs,
				SeatLabels:  h.Engine.SeatLabels(b.SeatIDs),
				CancelledAt: time.Now().UTC().Format(time.RFC3339),
			}
			_ = queue.Publish(context.Background(), queue.BookingCancelledQueue, ev)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notification": success("Booking cancelled", "Your booking has been successfully cancelled"),
	})
}
