package handler // handler defines the HTTP handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT numbers decode as float64, tests may store uint64
// directly, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getUsername returns the username claim, empty when absent.
func getUsername(c echo.Context) string {
	if s, ok := c.Get("username").(string); ok {
		return s
	}
	return ""
}

// engineError translates a booking engine sentinel into an HTTP
// response with a user-facing notification.  Unknown errors become 500.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Seat not found", "The requested seat does not exist"),
		})
	case errors.Is(err, booking.ErrSeatBooked):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Seat unavailable", "This seat has already been booked"),
		})
	case errors.Is(err, booking.ErrSeatSelected):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Seat already selected", "This seat is already in your selection"),
		})
	case errors.Is(err, booking.ErrSelectionFull):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Maximum seats exceeded", "You have reached the seat selection limit"),
		})
	case errors.Is(err, booking.ErrEmptySelection):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":        err.Error(),
			"notification": destructive("No seats selected", "Please select at least one seat to book"),
		})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Booking not found", "The requested booking could not be found"),
		})
	case errors.Is(err, booking.ErrNotBookingOwner):
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":        err.Error(),
			"notification": destructive("Unauthorized", "You can only cancel your own bookings"),
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
