package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
)

// RecurringRepo reads the weekly teaching template. The table is seeded by
// migration and never written at runtime, so this repository is query-only.
type RecurringRepo struct {
	db *sql.DB
}

// NewRecurringRepo returns a RecurringRepo bound to the given database.
func NewRecurringRepo(db *sql.DB) *RecurringRepo { return &RecurringRepo{db: db} }

// ForWeekday returns every template entry for one weekday, ordered by room
// and slot for deterministic output.
func (r *RecurringRepo) ForWeekday(ctx context.Context, wd time.Weekday) ([]model.RecurringClass, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, room_number, weekday, time_slot, batch_name, teacher_name, course_name
		 FROM recurring_classes WHERE weekday=? ORDER BY room_number, time_slot`, int(wd))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RecurringClass, 0)
	for rows.Next() {
		var c model.RecurringClass
		var day int
		if err := rows.Scan(&c.ID, &c.RoomNumber, &day, &c.TimeSlot, &c.BatchName, &c.TeacherName, &c.CourseName); err != nil {
			return nil, err
		}
		c.Weekday = time.Weekday(day)
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ schedule.RecurringSource = (*RecurringRepo)(nil)
