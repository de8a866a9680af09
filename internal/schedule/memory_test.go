package schedule

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soumyadip04/MindMesh/internal/model"
)

func booking(room, date, slot string) *model.Booking {
	return &model.Booking{RoomNumber: room, Date: date, TimeSlot: slot, BatchName: "CSE-3A"}
}

func TestMemoryStoreCreateConflict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := booking("CSE-201", "2026-03-03", "09:00-10:00")
	require.NoError(t, s.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, model.BookingActive, first.Status)

	err := s.Create(ctx, booking("CSE-201", "2026-03-03", "09:00-10:00"))
	assert.ErrorIs(t, err, ErrConflict)

	// Different slot, room or date is fine.
	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-03", "10:00-11:00")))
	require.NoError(t, s.Create(ctx, booking("CSE-202", "2026-03-03", "09:00-10:00")))
	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-04", "09:00-10:00")))
}

// Exactly one of N parallel identical creates may succeed.
func TestMemoryStoreConcurrentCreates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Create(ctx, booking("CSE-201", "2026-03-03", "09:00-10:00"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestMemoryStoreCancelThenRecreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := booking("CSE-201", "2026-03-03", "09:00-10:00")
	require.NoError(t, s.Create(ctx, b))
	require.NoError(t, s.CancelByID(ctx, b.ID))

	got, ok := s.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, model.BookingCancelled, got.Status)

	// The key is free again.
	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-03", "09:00-10:00")))

	// Re-cancelling the old id is rejected: there is no active booking behind it.
	assert.ErrorIs(t, s.CancelByID(ctx, b.ID), ErrNotFound)
}

func TestMemoryStoreCancelByKey(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-03", "09:00-10:00")))
	assert.ErrorIs(t, s.CancelByKey(ctx, "CSE-201", "2026-03-03", "10:00-11:00"), ErrNotFound)
	require.NoError(t, s.CancelByKey(ctx, "CSE-201", "2026-03-03", "09:00-10:00"))
	assert.ErrorIs(t, s.CancelByKey(ctx, "CSE-201", "2026-03-03", "09:00-10:00"), ErrNotFound)

	assert.ErrorIs(t, s.CancelByID(ctx, 999), ErrNotFound)
}

func TestMemoryStoreFindActiveOrderAndFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, booking("CSE-202", "2026-03-04", "09:00-10:00")))
	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-03", "14:00-15:00")))
	require.NoError(t, s.Create(ctx, booking("CSE-201", "2026-03-03", "09:00-10:00")))
	cancelled := booking("CSE-203", "2026-03-03", "09:00-10:00")
	require.NoError(t, s.Create(ctx, cancelled))
	require.NoError(t, s.CancelByID(ctx, cancelled.ID))

	all, err := s.FindActive(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-03", all[0].Date)
	assert.Equal(t, "09:00-10:00", all[0].TimeSlot)
	assert.Equal(t, "14:00-15:00", all[1].TimeSlot)
	assert.Equal(t, "2026-03-04", all[2].Date)

	byDate, err := s.FindActive(ctx, Filter{Date: "2026-03-03"})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byRoom, err := s.FindActive(ctx, Filter{Date: "2026-03-03", RoomNumber: "CSE-201"})
	require.NoError(t, err)
	assert.Len(t, byRoom, 2)

	none, err := s.FindActive(ctx, Filter{RoomNumber: "CSE-999"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
