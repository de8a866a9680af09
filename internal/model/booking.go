package model

import "time"

// Booking statuses. A booking is never hard-deleted; cancellation flips the
// status and frees the (room, date, slot) key for a new active booking.
const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
)

// Booking mirrors the `bookings` table. Date is stored as a YYYY-MM-DD
// string, matching the wire format, so equality and ordering are plain
// string operations.
type Booking struct {
	ID          uint64  // bookings.id
	RoomNumber  string  // bookings.room_number
	Date        string  // bookings.booking_date (YYYY-MM-DD)
	TimeSlot    string  // bookings.time_slot
	BatchName   string  // bookings.batch_name
	TeacherName *string // bookings.teacher_name (nullable)
	CourseName  *string // bookings.course_name (nullable)
	CreatedBy   uint64  // bookings.created_by (users.id, 0 when unknown)
	Status      string  // bookings.status (active|cancelled)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active reports whether the booking still occupies its key.
func (b *Booking) Active() bool { return b.Status == BookingActive }
