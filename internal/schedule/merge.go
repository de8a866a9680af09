package schedule

import (
	"context"
	"fmt"
	"time"
)

// Entry is one occupied (room, slot) cell of the merged daily view.
// Source tells clients whether the cell comes from the weekly template or
// from an ad-hoc booking; BookingID is set only for bookings.
type Entry struct {
	BatchName   string `json:"batchName"`
	TeacherName string `json:"teacherName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	Source      string `json:"source"` // "recurring" | "booking"
	BookingID   uint64 `json:"bookingId,omitempty"`
}

// Sources of a merged-view entry.
const (
	SourceRecurring = "recurring"
	SourceBooking   = "booking"
)

// DaySchedule maps roomNumber -> timeSlot -> occupant. Keys with neither a
// recurring class nor an active booking are absent, which means "free".
type DaySchedule map[string]map[string]Entry

// Merger assembles the daily view from the two differently indexed sources:
// recurring classes are keyed by weekday, ad-hoc bookings by date.
type Merger struct {
	store     BookingStore
	recurring RecurringSource
}

// NewMerger wires a Merger; both sources must be non-nil.
func NewMerger(store BookingStore, recurring RecurringSource) *Merger {
	if store == nil || recurring == nil {
		panic("nil source passed to NewMerger")
	}
	return &Merger{store: store, recurring: recurring}
}

// MergedForDate computes the schedule for one date. The per-slot maps are
// seeded from the recurring template for that date's weekday, then every
// active booking on the date is overlaid on top; a booking always replaces a
// recurring entry at the same (room, slot) key.
func (m *Merger) MergedForDate(ctx context.Context, date string) (DaySchedule, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	day := make(DaySchedule)
	set := func(room, slot string, e Entry) {
		slots, ok := day[room]
		if !ok {
			slots = make(map[string]Entry)
			day[room] = slots
		}
		slots[slot] = e
	}

	classes, err := m.recurring.ForWeekday(ctx, d.Weekday())
	if err != nil {
		return nil, fmt.Errorf("load recurring classes: %w", err)
	}
	for _, c := range classes {
		set(c.RoomNumber, c.TimeSlot, Entry{
			BatchName:   c.BatchName,
			TeacherName: deref(c.TeacherName),
			CourseName:  deref(c.CourseName),
			Source:      SourceRecurring,
		})
	}

	bookings, err := m.store.FindActive(ctx, Filter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	for _, b := range bookings {
		set(b.RoomNumber, b.TimeSlot, Entry{
			BatchName:   b.BatchName,
			TeacherName: deref(b.TeacherName),
			CourseName:  deref(b.CourseName),
			Source:      SourceBooking,
			BookingID:   b.ID,
		})
	}
	return day, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
