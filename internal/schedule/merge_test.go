package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soumyadip04/MindMesh/internal/model"
)

// staticRecurring serves a fixed weekly template from memory.
type staticRecurring map[time.Weekday][]model.RecurringClass

func (s staticRecurring) ForWeekday(_ context.Context, wd time.Weekday) ([]model.RecurringClass, error) {
	return s[wd], nil
}

func strp(s string) *string { return &s }

// 2026-03-03 is a Tuesday.
const mergeDate = "2026-03-03"

func newMergeFixture(t *testing.T) (*Merger, *MemoryStore) {
	t.Helper()
	recurring := staticRecurring{
		time.Tuesday: {
			{RoomNumber: "CSE-201", TimeSlot: "09:00-10:00", BatchName: "CSE-3A", TeacherName: strp("Dr. Sen"), CourseName: strp("Operating Systems")},
			{RoomNumber: "CSE-202", TimeSlot: "10:00-11:00", BatchName: "CSE-3B", CourseName: strp("Databases")},
		},
		time.Wednesday: {
			{RoomNumber: "CSE-201", TimeSlot: "11:00-12:00", BatchName: "CSE-2A"},
		},
	}
	store := NewMemoryStore()
	return NewMerger(store, recurring), store
}

func TestMergedForDateRecurringOnly(t *testing.T) {
	m, _ := newMergeFixture(t)

	day, err := m.MergedForDate(context.Background(), mergeDate)
	require.NoError(t, err)

	e, ok := day["CSE-201"]["09:00-10:00"]
	require.True(t, ok)
	assert.Equal(t, SourceRecurring, e.Source)
	assert.Equal(t, "CSE-3A", e.BatchName)
	assert.Equal(t, "Dr. Sen", e.TeacherName)
	assert.Zero(t, e.BookingID)

	// Wednesday's template row must not leak into Tuesday.
	_, ok = day["CSE-201"]["11:00-12:00"]
	assert.False(t, ok)
}

func TestMergedForDateBookingWinsOverRecurring(t *testing.T) {
	m, store := newMergeFixture(t)

	b := &model.Booking{
		RoomNumber: "CSE-201",
		Date:       mergeDate,
		TimeSlot:   "09:00-10:00",
		BatchName:  "ECE-1A",
	}
	require.NoError(t, store.Create(context.Background(), b))

	day, err := m.MergedForDate(context.Background(), mergeDate)
	require.NoError(t, err)

	e := day["CSE-201"]["09:00-10:00"]
	assert.Equal(t, SourceBooking, e.Source)
	assert.Equal(t, "ECE-1A", e.BatchName)
	assert.Equal(t, b.ID, e.BookingID)

	// The untouched recurring cell survives next to the overlay.
	assert.Equal(t, SourceRecurring, day["CSE-202"]["10:00-11:00"].Source)
}

func TestMergedForDateOmitsFreeCells(t *testing.T) {
	m, store := newMergeFixture(t)

	require.NoError(t, store.Create(context.Background(), &model.Booking{
		RoomNumber: "CSE-305", Date: mergeDate, TimeSlot: "14:00-15:00", BatchName: "MBA-1",
	}))
	// A booking on another date must not appear.
	require.NoError(t, store.Create(context.Background(), &model.Booking{
		RoomNumber: "CSE-305", Date: "2026-03-04", TimeSlot: "14:00-15:00", BatchName: "MBA-2",
	}))

	day, err := m.MergedForDate(context.Background(), mergeDate)
	require.NoError(t, err)

	// Every present cell has at least one source; spot-check the booked one
	// and the absence of everything else for that room.
	require.Len(t, day["CSE-305"], 1)
	assert.Equal(t, "MBA-1", day["CSE-305"]["14:00-15:00"].BatchName)
	_, ok := day["CSE-305"]["09:00-10:00"]
	assert.False(t, ok)

	// A cancelled booking frees its cell again.
	require.NoError(t, store.CancelByKey(context.Background(), "CSE-305", mergeDate, "14:00-15:00"))
	day, err = m.MergedForDate(context.Background(), mergeDate)
	require.NoError(t, err)
	_, ok = day["CSE-305"]
	assert.False(t, ok)
}

func TestMergedForDateRejectsBadDate(t *testing.T) {
	m, _ := newMergeFixture(t)
	_, err := m.MergedForDate(context.Background(), "03-03-2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
