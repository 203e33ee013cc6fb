package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/metrics"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
)

// AdminHandler holds the privileged operations.  Routes using it must
// be guarded by RequireRole(ADMIN).
type AdminHandler struct {
	Engine        *booking.Engine
	PublishEvents bool
}

func NewAdminHandler(e *booking.Engine, publishEvents bool) *AdminHandler {
	if e == nil {
		panic("nil engine passed to NewAdminHandler")
	}
	return &AdminHandler{Engine: e, PublishEvents: publishEvents}
}

// ResetAll handles POST /v1/admin/reset.  It regenerates the entire
// seat inventory and clears the ledger and every selection buffer in
// one full replace.
func (h *AdminHandler) ResetAll(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Engine.ResetAll(c.Request().Context())
	metrics.InventoryResets.Inc()
	metrics.SeatsBooked.Set(0)

	if h.PublishEvents {
		go func() {
			ev := queue.InventoryResetEvent{
				AdminID:    adminID,
				TotalSeats: h.Engine.Layout().TotalSeats,
				ResetAt:    time.Now().UTC().Format(time.RFC3339),
			}
			_ = queue.Publish(context.Background(), queue.InventoryResetQueue, ev)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notification": success("All bookings reset", "All seat bookings have been cleared"),
	})
}
