package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Soumyadip04/MindMesh/internal/model"
)

// MemoryStore is an in-process BookingStore used by tests. A single mutex
// serializes the check-and-insert so it gives the same conflict guarantees as
// the SQL store's unique index. Production wiring uses the MySQL repository.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]*model.Booking
	active map[[3]string]uint64 // (room, date, slot) -> active booking id
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		byID:   make(map[uint64]*model.Booking),
		active: make(map[[3]string]uint64),
	}
}

func key(room, date, slot string) [3]string { return [3]string{room, date, slot} }

// Create inserts b as active, failing with ErrConflict when the key is taken.
func (s *MemoryStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(b.RoomNumber, b.Date, b.TimeSlot)
	if _, taken := s.active[k]; taken {
		return ErrConflict
	}
	b.ID = s.nextID
	s.nextID++
	b.Status = model.BookingActive
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	s.byID[cp.ID] = &cp
	s.active[k] = cp.ID
	return nil
}

// CancelByID cancels an active booking by id.
func (s *MemoryStore) CancelByID(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok || !b.Active() {
		return ErrNotFound
	}
	s.cancel(b)
	return nil
}

// CancelByKey cancels the active booking holding (room, date, slot).
func (s *MemoryStore) CancelByKey(_ context.Context, room, date, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.active[key(room, date, slot)]
	if !ok {
		return ErrNotFound
	}
	s.cancel(s.byID[id])
	return nil
}

func (s *MemoryStore) cancel(b *model.Booking) {
	b.Status = model.BookingCancelled
	b.UpdatedAt = time.Now().UTC()
	delete(s.active, key(b.RoomNumber, b.Date, b.TimeSlot))
}

// FindActive returns active bookings matching f, ordered by (date, timeSlot).
func (s *MemoryStore) FindActive(_ context.Context, f Filter) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Booking, 0)
	for _, id := range s.active {
		b := s.byID[id]
		if f.Date != "" && b.Date != f.Date {
			continue
		}
		if f.RoomNumber != "" && b.RoomNumber != f.RoomNumber {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

// Get returns a copy of the booking with the given id, if any.
func (s *MemoryStore) Get(id uint64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return model.Booking{}, false
	}
	return *b, true
}

var _ BookingStore = (*MemoryStore)(nil)
