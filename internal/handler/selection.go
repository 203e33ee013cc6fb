package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
)

// SelectionHandler manages the caller's selection buffer.  All methods
// assume JWT authentication ran earlier in the chain.
type SelectionHandler struct {
	Engine *booking.Engine
}

func NewSelectionHandler(e *booking.Engine) *SelectionHandler {
	if e == nil {
		panic("nil engine passed to NewSelectionHandler")
	}
	return &SelectionHandler{Engine: e}
}

// Select handles POST /v1/selection/seats/:id and appends the seat to
// the caller's buffer.
func (h *SelectionHandler) Select(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	if err := h.Engine.Select(userID, seatID); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"selected": h.Engine.Selection(userID),
	})
}

// Deselect handles DELETE /v1/selection/seats/:id.  Removing a seat
// that is not selected succeeds silently.
func (h *SelectionHandler) Deselect(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	h.Engine.Deselect(userID, seatID)
	return c.JSON(http.StatusOK, echo.Map{
		"selected": h.Engine.Selection(userID),
	})
}

// ClearSelection handles DELETE /v1/selection and drops the whole
// buffer.
func (h *SelectionHandler) ClearSelection(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Engine.ClearSelection(userID)
	return c.JSON(http.StatusOK, echo.Map{"selected": []uint64{}})
}

// GetSelection handles GET /v1/selection and returns the buffer in
// selection order.
func (h *SelectionHandler) GetSelection(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sel := h.Engine.Selection(userID)
	return c.JSON(http.StatusOK, echo.Map{
		"selected": sel,
		"count":    len(sel),
	})
}
