// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// The rate limiter runs after JWTAuth on protected groups so it can key
// counters by the authenticated user; on public routes it falls back to
// the client IP. Health and metrics are never limited.

// RegisterRoutes registers routes that do not require authentication:
// the health check, the Prometheus metrics endpoint and the public
// seating chart.
func RegisterRoutes(e *echo.Echo, seats *handler.SeatHandler, rl echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/v1/seats", seats.ListSeats, rl)
	e.GET("/v1/seats/layout", seats.SeatLayout, rl)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me and /v1/logout-all require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(rl)
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterBooking registers the seat selection and booking workflow.
// All endpoints require a valid access token; the reset endpoint is
// restricted to admins on top of that.
func RegisterBooking(e *echo.Echo, sel *handler.SelectionHandler, b *handler.BookingHandler, admin *handler.AdminHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(rl)
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))

	g.POST("/selection/seats/:id", sel.Select)
	g.DELETE("/selection/seats/:id", sel.Deselect)
	g.GET("/selection", sel.GetSelection)
	g.DELETE("/selection", sel.ClearSelection)

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListBookings)
	g.DELETE("/bookings/:id", b.CancelBooking)

	adm := e.Group("/v1/admin")
	adm.Use(middleware.JWTAuth(jwtSecret))
	adm.Use(rl)
	adm.Use(middleware.RequireRole(model.RoleAdmin))
	adm.POST("/reset", admin.ResetAll)
}
