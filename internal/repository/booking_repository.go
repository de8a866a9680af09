package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
)

// BookingRepo provides access to the bookings table. It implements
// schedule.BookingStore: the uniqueness of an active (room, date, slot)
// triple is enforced by the uq_bookings_room_date_slot index, so Create is a
// single INSERT and concurrent duplicates lose with a 1062 duplicate-key
// error rather than racing a read-then-write check.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for handlers that manage transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingCols = `id, room_number, booking_date, time_slot, batch_name,
       teacher_name, course_name, COALESCE(created_by, 0), status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.RoomNumber, &b.Date, &b.TimeSlot, &b.BatchName,
		&b.TeacherName, &b.CourseName, &b.CreatedBy, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new active booking and fills in the generated id.
// A duplicate-key error on the active index maps to schedule.ErrConflict.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	var createdBy any
	if b.CreatedBy != 0 {
		createdBy = b.CreatedBy
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (room_number, booking_date, time_slot, batch_name, teacher_name, course_name, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.RoomNumber, b.Date, b.TimeSlot, b.BatchName, b.TeacherName, b.CourseName, createdBy)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return schedule.ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingActive
	return nil
}

// CancelByID marks an active booking cancelled. Cancelling clears active_key
// so the unique index frees the slot for a future booking.
func (r *BookingRepo) CancelByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status='cancelled', active_key=NULL WHERE id=? AND status='active'`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

// CancelByKey cancels the active booking for (room, date, slot).
func (r *BookingRepo) CancelByKey(ctx context.Context, room, date, slot string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status='cancelled', active_key=NULL
		 WHERE room_number=? AND booking_date=? AND time_slot=? AND status='active'`,
		room, date, slot)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

// FindActive returns active bookings matching the filter, ordered by
// (date, time slot).
func (r *BookingRepo) FindActive(ctx context.Context, f schedule.Filter) ([]model.Booking, error) {
	return r.list(ctx, model.BookingActive, f.Date, f.RoomNumber)
}

// List returns bookings for the admin surface. status may be "active",
// "cancelled" or empty for both; date and room narrow the result.
func (r *BookingRepo) List(ctx context.Context, status, date, room string) ([]model.Booking, error) {
	return r.list(ctx, status, date, room)
}

func (r *BookingRepo) list(ctx context.Context, status, date, room string) ([]model.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE 1=1`
	args := make([]any, 0, 3)
	if status != "" {
		query += ` AND status=?`
		args = append(args, status)
	}
	if date != "" {
		query += ` AND booking_date=?`
		args = append(args, date)
	}
	if room != "" {
		query += ` AND room_number=?`
		args = append(args, room)
	}
	query += ` ORDER BY booking_date, time_slot`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID loads one booking regardless of status. Returns
// schedule.ErrNotFound when the id is unknown.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id=?`, id), &b)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateDetails changes the descriptive fields of a booking. The key fields
// (room, date, slot) are immutable after creation: changing them would dodge
// the uniqueness index, so callers cancel and rebook instead.
func (r *BookingRepo) UpdateDetails(ctx context.Context, id uint64, batch string, teacher, course *string) (*model.Booking, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET batch_name=?, teacher_name=?, course_name=? WHERE id=?`,
		batch, teacher, course, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	_ = n // zero rows can mean "no change"; existence is checked below
	return r.GetByID(ctx, id)
}

var _ schedule.BookingStore = (*BookingRepo)(nil)
