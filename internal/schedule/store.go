package schedule

import (
	"context"
	"time"

	"github.com/Soumyadip04/MindMesh/internal/model"
)

// Filter narrows FindActive results. Zero values mean "any".
type Filter struct {
	Date       string
	RoomNumber string
}

// BookingStore is the persistence boundary for ad-hoc bookings. The key
// invariant every implementation must uphold: at most one active booking per
// (roomNumber, date, timeSlot), with the existence check and the insert being
// effectively atomic so concurrent identical creates cannot both succeed.
type BookingStore interface {
	// Create persists b with status active and fills in its generated ID.
	// Returns ErrConflict when an active booking already holds the key.
	Create(ctx context.Context, b *model.Booking) error

	// CancelByID marks the booking cancelled. Returns ErrNotFound when the
	// id is unknown or the booking is not active.
	CancelByID(ctx context.Context, id uint64) error

	// CancelByKey cancels the active booking for (room, date, slot).
	// Returns ErrNotFound when no active booking holds the key.
	CancelByKey(ctx context.Context, room, date, slot string) error

	// FindActive returns active bookings matching f, ordered by
	// (date, timeSlot).
	FindActive(ctx context.Context, f Filter) ([]model.Booking, error)
}

// RecurringSource yields the weekly template entries for one weekday.
type RecurringSource interface {
	ForWeekday(ctx context.Context, wd time.Weekday) ([]model.RecurringClass, error)
}
