package schedule

import "errors"

// Sentinel errors returned by the validator and the booking store. Handlers
// translate them into HTTP statuses: the validation group maps to 400,
// ErrConflict to 409 and ErrNotFound to 404. Anything else is a 500.
var (
	ErrMissingFields   = errors.New("missing required fields: roomNumber, date, timeSlot, batchName")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPastDate        = errors.New("booking date must be today or in the future")
	ErrWeekend         = errors.New("bookings are allowed on weekdays only")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrStaffRoom       = errors.New("staff rooms cannot be booked")

	ErrConflict = errors.New("room is already booked for this time slot")
	ErrNotFound = errors.New("booking not found")
)

// IsValidation reports whether err belongs to the validator's error group.
func IsValidation(err error) bool {
	for _, e := range []error{ErrMissingFields, ErrInvalidDate, ErrPastDate, ErrWeekend, ErrInvalidTimeSlot, ErrStaffRoom} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
