// Package schedule contains the booking domain core: the time-slot
// enumeration, the booking request validator, the store abstraction and the
// merge of recurring weekly classes with ad-hoc bookings into a daily view.
package schedule

import "time"

// DateLayout is the wire format for booking dates (date only, no time
// component). All comparisons in this package are done on this layout.
const DateLayout = "2006-01-02"

// TimeSlots lists every bookable range of a teaching day, in chronological
// order. The literals are zero-padded so their lexicographic order matches
// their chronological order; FindActive relies on that when sorting.
var TimeSlots = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

var slotSet = func() map[string]bool {
	m := make(map[string]bool, len(TimeSlots))
	for _, s := range TimeSlots {
		m[s] = true
	}
	return m
}()

// ValidSlot reports whether s is one of the known time slots.
func ValidSlot(s string) bool { return slotSet[s] }

// Weekday reports whether d falls on Monday through Friday.
func Weekday(d time.Time) bool {
	wd := d.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}
