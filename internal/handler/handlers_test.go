package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// fakeAuth injects identity claims the way JWTAuth does, without
// requiring a signed token.
func fakeAuth(userID uint64, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			c.Set("role", role)
			c.Set("username", fmt.Sprintf("user%d", userID))
			return next(c)
		}
	}
}

func setupRouter(engine *booking.Engine, userID uint64, role string) *echo.Echo {
	e := echo.New()
	seats := NewSeatHandler(engine)
	sel := NewSelectionHandler(engine)
	bk := NewBookingHandler(engine, false)
	adm := NewAdminHandler(engine, false)

	e.GET("/v1/seats", seats.ListSeats)
	e.GET("/v1/seats/layout", seats.SeatLayout)

	g := e.Group("/v1")
	g.Use(fakeAuth(userID, role))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	g.POST("/selection/seats/:id", sel.Select)
	g.DELETE("/selection/seats/:id", sel.Deselect)
	g.GET("/selection", sel.GetSelection)
	g.DELETE("/selection", sel.ClearSelection)
	g.POST("/bookings", bk.CreateBooking)
	g.GET("/bookings", bk.ListBookings)
	g.DELETE("/bookings/:id", bk.CancelBooking)

	admin := e.Group("/v1/admin")
	admin.Use(fakeAuth(userID, role))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/reset", adm.ResetAll)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestListSeats(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 1, model.RoleCustomer)

	w := do(t, e, http.MethodGet, "/v1/seats")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int          `json:"count"`
		Rows  int          `json:"rows"`
		Items []model.Seat `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 80, resp.Count)
	assert.Equal(t, 12, resp.Rows)
	assert.Equal(t, "12C", resp.Items[79].SeatNumber)
}

func TestSeatLayoutGroupsRows(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 1, model.RoleCustomer)

	w := do(t, e, http.MethodGet, "/v1/seats/layout")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows []struct {
			Row   uint32       `json:"row"`
			Seats []model.Seat `json:"seats"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 12)
	assert.Len(t, resp.Rows[0].Seats, 7)
	assert.Len(t, resp.Rows[11].Seats, 3)
}

func TestSelectAndBookFlow(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 7, model.RoleCustomer)

	for _, id := range []int{1, 2, 3} {
		w := do(t, e, http.MethodPost, fmt.Sprintf("/v1/selection/seats/%d", id))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, e, http.MethodGet, "/v1/selection")
	var selResp struct {
		Selected []uint64 `json:"selected"`
		Count    int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &selResp))
	assert.Equal(t, []uint64{1, 2, 3}, selResp.Selected)

	w = do(t, e, http.MethodPost, "/v1/bookings")
	require.Equal(t, http.StatusCreated, w.Code)

	var bookResp struct {
		Booking      model.Booking `json:"booking"`
		Notification Notification  `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookResp))
	assert.Equal(t, []uint64{1, 2, 3}, bookResp.Booking.SeatIDs)
	assert.Equal(t, "success", bookResp.Notification.Severity)
	assert.Equal(t, "Booking successful", bookResp.Notification.Title)

	// Buffer cleared after commit.
	w = do(t, e, http.MethodGet, "/v1/selection")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &selResp))
	assert.Empty(t, selResp.Selected)

	require.NoError(t, engine.Verify())
}

func TestSelectBookedSeatConflict(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	owner := setupRouter(engine, 1, model.RoleCustomer)
	other := setupRouter(engine, 2, model.RoleCustomer)

	do(t, owner, http.MethodPost, "/v1/selection/seats/5")
	w := do(t, owner, http.MethodPost, "/v1/bookings")
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, other, http.MethodPost, "/v1/selection/seats/5")
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Notification Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "destructive", resp.Notification.Severity)
}

func TestClearSelection(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 4, model.RoleCustomer)

	do(t, e, http.MethodPost, "/v1/selection/seats/1")
	do(t, e, http.MethodPost, "/v1/selection/seats/2")

	w := do(t, e, http.MethodDelete, "/v1/selection")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, engine.Selection(4))
}

func TestBookEmptySelection(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 1, model.RoleCustomer)

	w := do(t, e, http.MethodPost, "/v1/bookings")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBooking(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	owner := setupRouter(engine, 1, model.RoleCustomer)
	other := setupRouter(engine, 2, model.RoleCustomer)

	do(t, owner, http.MethodPost, "/v1/selection/seats/9")
	w := do(t, owner, http.MethodPost, "/v1/bookings")
	require.Equal(t, http.StatusCreated, w.Code)
	var bookResp struct {
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookResp))

	// Someone else cannot cancel it.
	w = do(t, other, http.MethodDelete, "/v1/bookings/"+bookResp.Booking.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner can.
	w = do(t, owner, http.MethodDelete, "/v1/bookings/"+bookResp.Booking.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// Cancelling again reports not found.
	w = do(t, owner, http.MethodDelete, "/v1/bookings/"+bookResp.Booking.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookings(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	e := setupRouter(engine, 3, model.RoleCustomer)

	do(t, e, http.MethodPost, "/v1/selection/seats/1")
	do(t, e, http.MethodPost, "/v1/bookings")
	do(t, e, http.MethodPost, "/v1/selection/seats/2")
	do(t, e, http.MethodPost, "/v1/bookings")

	w := do(t, e, http.MethodGet, "/v1/bookings")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int             `json:"count"`
		Items []model.Booking `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestResetRequiresAdmin(t *testing.T) {
	engine := booking.NewEngine(booking.DefaultLayout, nil)
	customer := setupRouter(engine, 1, model.RoleCustomer)
	admin := setupRouter(engine, 99, model.RoleAdmin)

	do(t, customer, http.MethodPost, "/v1/selection/seats/1")
	do(t, customer, http.MethodPost, "/v1/bookings")

	w := do(t, customer, http.MethodPost, "/v1/admin/reset")
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, engine.AllBookings(), 1)

	w = do(t, admin, http.MethodPost, "/v1/admin/reset")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, engine.AllBookings())
	for _, s := range engine.Seats() {
		assert.False(t, s.IsBooked)
	}
}
