package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference "now": Monday 2026-03-02, mid-morning.
var testNow = time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC)

func validReq() Request {
	return Request{
		RoomNumber: "CSE-201",
		Date:       "2026-03-03", // the next Tuesday
		TimeSlot:   "09:00-10:00",
		BatchName:  "CSE-3A",
	}
}

func nextWeekendDate(t *testing.T) string {
	t.Helper()
	d := testNow
	for Weekday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(DateLayout)
}

func TestValidatorAcceptsUpcomingWeekday(t *testing.T) {
	v := NewValidator([]string{"CSE-103", "CSE-104", "CSE-203"})

	req := validReq()
	require.NoError(t, v.Validate(req, testNow))

	// Booking for today itself is allowed.
	req.Date = testNow.Format(DateLayout)
	require.NoError(t, v.Validate(req, testNow))

	// Optional fields do not affect the outcome.
	req = validReq()
	req.TeacherName = "Dr. Sen"
	req.CourseName = "Operating Systems"
	require.NoError(t, v.Validate(req, testNow))
}

func TestValidatorRuleOrder(t *testing.T) {
	v := NewValidator([]string{"CSE-103"})

	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing room", func(r *Request) { r.RoomNumber = "  " }, ErrMissingFields},
		{"missing batch", func(r *Request) { r.BatchName = "" }, ErrMissingFields},
		{"bad date format", func(r *Request) { r.Date = "03/02/2026" }, ErrInvalidDate},
		{"impossible date", func(r *Request) { r.Date = "2026-13-40" }, ErrInvalidDate},
		{"past date", func(r *Request) { r.Date = "2020-01-01" }, ErrPastDate},
		{"yesterday", func(r *Request) { r.Date = "2026-03-01" }, ErrPastDate},
		{"weekend", func(r *Request) { r.Date = nextWeekendDate(t) }, ErrWeekend},
		{"unknown slot", func(r *Request) { r.TimeSlot = "13:00-14:00" }, ErrInvalidTimeSlot},
		{"staff room", func(r *Request) { r.RoomNumber = "CSE-103" }, ErrStaffRoom},
		{"staff room case-insensitive", func(r *Request) { r.RoomNumber = "cse-103" }, ErrStaffRoom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq()
			tc.mutate(&req)
			err := v.Validate(req, testNow)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsValidation(err))
		})
	}
}

// A past weekend date must fail as past, not as weekend: rules run in order.
func TestValidatorPastBeatsWeekend(t *testing.T) {
	v := NewValidator(nil)
	req := validReq()
	req.Date = "2026-03-01" // the Sunday before testNow
	assert.ErrorIs(t, v.Validate(req, testNow), ErrPastDate)
}

// Staff rooms are rejected on every valid future weekday and slot.
func TestValidatorStaffRoomAlwaysRejected(t *testing.T) {
	v := NewValidator([]string{"CSE-103", "CSE-104", "CSE-203"})
	d := testNow
	for i := 0; i < 5; i++ {
		for !Weekday(d) {
			d = d.AddDate(0, 0, 1)
		}
		for _, slot := range TimeSlots {
			req := validReq()
			req.RoomNumber = "CSE-103"
			req.Date = d.Format(DateLayout)
			req.TimeSlot = slot
			assert.ErrorIs(t, v.Validate(req, testNow), ErrStaffRoom)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestValidSlot(t *testing.T) {
	for _, s := range TimeSlots {
		assert.True(t, ValidSlot(s))
	}
	assert.False(t, ValidSlot("13:00-14:00")) // lunch break, never bookable
	assert.False(t, ValidSlot("9:00-10:00"))  // not zero-padded
	assert.False(t, ValidSlot(""))
}
