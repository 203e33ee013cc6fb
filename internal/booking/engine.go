package booking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// Store persists engine snapshots.  Load methods return (nil, nil) when
// no snapshot exists.  Implementations must be safe for concurrent use;
// the engine calls them while holding its own lock.
type Store interface {
	SaveSeats(ctx context.Context, seats []model.Seat) error
	SaveBookings(ctx context.Context, bookings []model.Booking) error
	LoadSeats(ctx context.Context) ([]model.Seat, error)
	LoadBookings(ctx context.Context) ([]model.Booking, error)
}

// Engine owns the seat inventory, the booking ledger and every user's
// selection buffer.  No other component writes seats or bookings.  All
// operations take the engine lock, so a booking commit observes a
// consistent inventory: availability is re-checked against the ledger
// in the same critical section that marks the seats, which is what
// keeps two callers from booking the same seat.
type Engine struct {
	mu         sync.Mutex
	layout     Layout
	seats      []model.Seat
	byID       map[uint64]int      // seat id -> index into seats
	ledger     map[string]model.Booking
	selections map[uint64][]uint64 // user id -> ordered selected seat ids
	store      Store               // nil disables persistence

	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine with a freshly generated inventory.  The
// store may be nil, in which case state lives only in memory.
func NewEngine(layout Layout, store Store) *Engine {
	e := &Engine{
		layout:     layout,
		ledger:     make(map[string]model.Booking),
		selections: make(map[uint64][]uint64),
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.NewString() },
	}
	e.rebuild(GenerateSeats(layout))
	return e
}

func (e *Engine) rebuild(seats []model.Seat) {
	e.seats = seats
	e.byID = make(map[uint64]int, len(seats))
	for i, s := range seats {
		e.byID[s.ID] = i
	}
}

// Restore loads a previously persisted snapshot, if any.  The ledger is
// authoritative: booked flags are recomputed from the bookings rather
// than trusted from the stored seats, and bookings referencing unknown
// seats are dropped.  With no store or no snapshot the generated
// inventory stays in place.
func (e *Engine) Restore(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	seats, err := e.store.LoadSeats(ctx)
	if err != nil {
		return fmt.Errorf("load seats: %w", err)
	}
	bookings, err := e.store.LoadBookings(ctx)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(seats) > 0 {
		e.rebuild(seats)
	}
	// Reset derived state, then replay the ledger.
	for i := range e.seats {
		e.seats[i].IsBooked = false
		e.seats[i].BookedBy = nil
		e.seats[i].BookingID = ""
	}
	e.ledger = make(map[string]model.Booking, len(bookings))
	for _, b := range bookings {
		valid := true
		for _, sid := range b.SeatIDs {
			if _, ok := e.byID[sid]; !ok {
				valid = false
				break
			}
		}
		if !valid || len(b.SeatIDs) == 0 {
			log.Printf("booking: dropping inconsistent booking %s from snapshot", b.ID)
			continue
		}
		for _, sid := range b.SeatIDs {
			seat := &e.seats[e.byID[sid]]
			uid := b.UserID
			seat.IsBooked = true
			seat.BookedBy = &uid
			seat.BookingID = b.ID
		}
		e.ledger[b.ID] = b
	}
	return nil
}

// Seats returns a copy of the current inventory in id order.
func (e *Engine) Seats() []model.Seat {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Seat, len(e.seats))
	copy(out, e.seats)
	return out
}

// Layout returns the layout the inventory was generated from.
func (e *Engine) Layout() Layout { return e.layout }

// Select appends a seat to the user's selection buffer.  It fails when
// the seat does not exist, is already booked, is already in the buffer,
// or the buffer is at the layout's maximum.
func (e *Engine) Select(userID, seatID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.byID[seatID]
	if !ok {
		return ErrSeatNotFound
	}
	if e.seats[idx].IsBooked {
		return ErrSeatBooked
	}
	sel := e.selections[userID]
	if len(sel) >= e.layout.MaxSelection {
		return ErrSelectionFull
	}
	for _, id := range sel {
		if id == seatID {
			return ErrSeatSelected
		}
	}
	e.selections[userID] = append(sel, seatID)
	return nil
}

// Deselect removes a seat from the user's buffer.  Removing a seat that
// is not selected is a no-op.
func (e *Engine) Deselect(userID, seatID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel := e.selections[userID]
	for i, id := range sel {
		if id == seatID {
			e.selections[userID] = append(sel[:i], sel[i+1:]...)
			return
		}
	}
}

// Selection returns a copy of the user's buffer in selection order.
func (e *Engine) Selection(userID uint64) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel := e.selections[userID]
	out := make([]uint64, len(sel))
	copy(out, sel)
	return out
}

// ClearSelection drops the user's buffer, e.g. on logout.
func (e *Engine) ClearSelection(userID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.selections, userID)
}

// Book commits the user's current selection as a new booking.  The
// whole operation happens under the engine lock: every selected seat is
// validated against the ledger-backed booked flags first, and only if
// all of them are free are any of them marked.  A single conflicting
// seat fails the entire booking and leaves all state untouched.
// On success the selection buffer is cleared and the booked seats are
// pruned from every other user's buffer.
func (e *Engine) Book(ctx context.Context, userID uint64) (model.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel := e.selections[userID]
	if len(sel) == 0 {
		return model.Booking{}, ErrEmptySelection
	}
	// Validate, then commit.
	for _, sid := range sel {
		idx, ok := e.byID[sid]
		if !ok {
			return model.Booking{}, ErrSeatNotFound
		}
		if e.seats[idx].IsBooked {
			return model.Booking{}, ErrSeatBooked
		}
	}
	b := model.Booking{
		ID:        e.newID(),
		UserID:    userID,
		SeatIDs:   append([]uint64(nil), sel...),
		CreatedAt: e.now(),
	}
	for _, sid := range sel {
		seat := &e.seats[e.byID[sid]]
		uid := userID
		seat.IsBooked = true
		seat.BookedBy = &uid
		seat.BookingID = b.ID
	}
	e.ledger[b.ID] = b
	delete(e.selections, userID)
	e.pruneSelectionsLocked(b.SeatIDs)
	e.persistLocked(ctx)
	return b, nil
}

// Cancel removes a booking from the ledger and frees all of its seats.
// Only the owning user may cancel.  The removed booking is returned so
// callers can publish events about it.
func (e *Engine) Cancel(ctx context.Context, userID uint64, bookingID string) (model.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.ledger[bookingID]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	if b.UserID != userID {
		return model.Booking{}, ErrNotBookingOwner
	}
	for _, sid := range b.SeatIDs {
		if idx, ok := e.byID[sid]; ok {
			e.seats[idx].IsBooked = false
			e.seats[idx].BookedBy = nil
			e.seats[idx].BookingID = ""
		}
	}
	delete(e.ledger, bookingID)
	e.persistLocked(ctx)
	return b, nil
}

// Bookings returns the user's bookings ordered oldest first.
func (e *Engine) Bookings(userID uint64) []model.Booking {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Booking, 0)
	for _, b := range e.ledger {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out
}

// AllBookings returns every booking in the ledger, oldest first.
func (e *Engine) AllBookings() []model.Booking {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Booking, 0, len(e.ledger))
	for _, b := range e.ledger {
		out = append(out, b)
	}
	sortBookings(out)
	return out
}

// ResetAll regenerates the inventory from scratch and clears the ledger
// and every selection buffer.  Full replace, no partial-failure mode.
func (e *Engine) ResetAll(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuild(GenerateSeats(e.layout))
	e.ledger = make(map[string]model.Booking)
	e.selections = make(map[uint64][]uint64)
	e.persistLocked(ctx)
}

// SeatLabels maps seat ids to their display labels, skipping unknown
// ids.  Used when building event payloads.
func (e *Engine) SeatLabels(ids []uint64) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if idx, ok := e.byID[id]; ok {
			labels = append(labels, e.seats[idx].SeatNumber)
		}
	}
	return labels
}

// Verify checks the ledger/inventory consistency invariants: a seat is
// booked iff exactly one booking references it, every referenced seat
// exists, and no booking is empty.  It is used by tests and can be run
// after a snapshot restore.
func (e *Engine) Verify() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	refs := make(map[uint64]int, len(e.seats))
	for id, b := range e.ledger {
		if len(b.SeatIDs) == 0 {
			return fmt.Errorf("booking %s has no seats", id)
		}
		for _, sid := range b.SeatIDs {
			if _, ok := e.byID[sid]; !ok {
				return fmt.Errorf("booking %s references unknown seat %d", id, sid)
			}
			refs[sid]++
		}
	}
	for _, s := range e.seats {
		n := refs[s.ID]
		if n > 1 {
			return fmt.Errorf("seat %d referenced by %d bookings", s.ID, n)
		}
		if s.IsBooked != (n == 1) {
			return fmt.Errorf("seat %d booked flag disagrees with ledger", s.ID)
		}
	}
	return nil
}

// pruneSelectionsLocked removes the given seats from every buffer so no
// buffer ever holds a booked seat.  Caller must hold e.mu.
func (e *Engine) pruneSelectionsLocked(seatIDs []uint64) {
	booked := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		booked[id] = struct{}{}
	}
	for uid, sel := range e.selections {
		kept := sel[:0]
		for _, id := range sel {
			if _, ok := booked[id]; !ok {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(e.selections, uid)
		} else {
			e.selections[uid] = kept
		}
	}
}

// persistLocked snapshots seats and ledger to the store, best effort.
// A failed write must not fail the booking operation; state is already
// committed in memory.  Caller must hold e.mu.
func (e *Engine) persistLocked(ctx context.Context) {
	if e.store == nil {
		return
	}
	seats := make([]model.Seat, len(e.seats))
	copy(seats, e.seats)
	if err := e.store.SaveSeats(ctx, seats); err != nil {
		log.Printf("booking: persist seats failed: %v", err)
	}
	bookings := make([]model.Booking, 0, len(e.ledger))
	for _, b := range e.ledger {
		bookings = append(bookings, b)
	}
	sortBookings(bookings)
	if err := e.store.SaveBookings(ctx, bookings); err != nil {
		log.Printf("booking: persist bookings failed: %v", err)
	}
}

func sortBookings(bs []model.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].ID < bs[j].ID
		}
		return bs[i].CreatedAt.Before(bs[j].CreatedAt)
	})
}
