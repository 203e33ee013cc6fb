package main // Entry point package

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/database"
	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
	"github.com/iliyamo/train-seat-reservation/internal/router"
	"github.com/iliyamo/train-seat-reservation/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	// Redis backs the state snapshot and the rate limiter; both degrade
	// gracefully when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: running without persistence and rate limiting")
	}

	layout := booking.Layout{
		TotalSeats:   cfg.TotalSeats,
		SeatsPerRow:  cfg.SeatsPerRow,
		LastRowSeats: cfg.LastRowSeats,
		MaxSelection: cfg.MaxSelection,
	}
	var snap booking.Store
	if rdb != nil {
		snap = store.NewRedisStore(rdb)
	}
	engine := booking.NewEngine(layout, snap)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := engine.Restore(ctx); err != nil {
		log.Printf("snapshot restore failed, starting fresh: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	publishEvents := os.Getenv("EVENTS_DISABLED") != "true"
	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	seatHandler := handler.NewSeatHandler(engine)
	selHandler := handler.NewSelectionHandler(engine)
	bookingHandler := handler.NewBookingHandler(engine, publishEvents)
	adminHandler := handler.NewAdminHandler(engine, publishEvents)

	if publishEvents {
		go queue.StartAuditConsumer(queue.BookingCreatedQueue)
		go queue.StartAuditConsumer(queue.BookingCancelledQueue)
		go queue.StartAuditConsumer(queue.InventoryResetQueue)
	}

	e := echo.New()
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, seatHandler, rl)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rl)
	router.RegisterBooking(e, selHandler, bookingHandler, adminHandler, cfg.JWTSecret, rl)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, seats=%d)", addr, cfg.Env, cfg.TotalSeats)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
