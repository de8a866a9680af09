package model

import "time"

// RecurringClass is one row of the weekly teaching template: a class that
// occupies a room at a fixed slot every week on the same weekday. The table
// is seeded by migration and read-only at runtime.
type RecurringClass struct {
	ID          uint64       // recurring_classes.id
	RoomNumber  string       // recurring_classes.room_number
	Weekday     time.Weekday // recurring_classes.weekday (0=Sunday .. 6=Saturday)
	TimeSlot    string       // recurring_classes.time_slot
	BatchName   string       // recurring_classes.batch_name
	TeacherName *string      // recurring_classes.teacher_name (nullable)
	CourseName  *string      // recurring_classes.course_name (nullable)
}
