package schedule

import (
	"regexp"
	"strings"
	"time"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Request carries the fields of a booking attempt before any persistence.
// TeacherName and CourseName are optional.
type Request struct {
	RoomNumber  string `json:"roomNumber" validate:"required"`
	Date        string `json:"date" validate:"required"`
	TimeSlot    string `json:"timeSlot" validate:"required"`
	BatchName   string `json:"batchName" validate:"required"`
	TeacherName string `json:"teacherName"`
	CourseName  string `json:"courseName"`
}

// Validator applies the booking policy to a Request. It is pure: the outcome
// depends only on the request and the supplied reference time. The staff-room
// set comes from configuration so there is exactly one source of truth.
type Validator struct {
	staffRooms map[string]bool
}

// NewValidator builds a Validator excluding the given staff rooms from
// booking. Room names are matched case-insensitively.
func NewValidator(staffRooms []string) *Validator {
	m := make(map[string]bool, len(staffRooms))
	for _, r := range staffRooms {
		if r = strings.TrimSpace(r); r != "" {
			m[strings.ToUpper(r)] = true
		}
	}
	return &Validator{staffRooms: m}
}

// StaffRoom reports whether room is reserved for staff.
func (v *Validator) StaffRoom(room string) bool {
	return v.staffRooms[strings.ToUpper(strings.TrimSpace(room))]
}

// Validate checks req against the booking policy. Rules run in a fixed order
// and the first violation wins:
//
//  1. required fields present
//  2. date is YYYY-MM-DD
//  3. date is today or later (date-only comparison, in now's location)
//  4. date is a weekday
//  5. time slot is one of the known slots
//  6. room is not a staff room
func (v *Validator) Validate(req Request, now time.Time) error {
	if strings.TrimSpace(req.RoomNumber) == "" ||
		strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.TimeSlot) == "" ||
		strings.TrimSpace(req.BatchName) == "" {
		return ErrMissingFields
	}
	if !dateRe.MatchString(req.Date) {
		return ErrInvalidDate
	}
	d, err := time.ParseInLocation(DateLayout, req.Date, now.Location())
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return ErrPastDate
	}
	if !Weekday(d) {
		return ErrWeekend
	}
	if !ValidSlot(req.TimeSlot) {
		return ErrInvalidTimeSlot
	}
	if v.StaffRoom(req.RoomNumber) {
		return ErrStaffRoom
	}
	return nil
}
