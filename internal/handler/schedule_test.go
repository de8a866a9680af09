package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/queue"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
)

// stubRecurring serves a fixed template for a single weekday.
type stubRecurring struct {
	weekday time.Weekday
	classes []model.RecurringClass
}

func (s *stubRecurring) ForWeekday(_ context.Context, wd time.Weekday) ([]model.RecurringClass, error) {
	if wd == s.weekday {
		return s.classes, nil
	}
	return nil, nil
}

// recordingEvents captures published events for assertions.
type recordingEvents struct {
	created   []queue.BookingCreatedEvent
	cancelled []queue.BookingCancelledEvent
}

func (r *recordingEvents) BookingCreated(_ context.Context, ev queue.BookingCreatedEvent) {
	r.created = append(r.created, ev)
}
func (r *recordingEvents) BookingCancelled(_ context.Context, ev queue.BookingCancelledEvent) {
	r.cancelled = append(r.cancelled, ev)
}

// nextWeekday returns the first weekday on or after tomorrow, so requests
// are always in the future regardless of when the tests run.
func nextWeekday(t *testing.T) time.Time {
	t.Helper()
	d := time.Now().AddDate(0, 0, 1)
	for !schedule.Weekday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

type scheduleFixture struct {
	handler *ScheduleHandler
	store   *schedule.MemoryStore
	events  *recordingEvents
	date    string
	echo    *echo.Echo
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	day := nextWeekday(t)
	store := schedule.NewMemoryStore()
	recurring := &stubRecurring{
		weekday: day.Weekday(),
		classes: []model.RecurringClass{
			{RoomNumber: "CSE-201", Weekday: day.Weekday(), TimeSlot: "09:00-10:00", BatchName: "CSE-3A"},
		},
	}
	events := &recordingEvents{}
	h := NewScheduleHandler(
		schedule.NewValidator([]string{"CSE-103", "CSE-104", "CSE-203"}),
		store,
		schedule.NewMerger(store, recurring),
		events,
	)
	e := echo.New()
	e.Validator = NewValidator()
	return &scheduleFixture{handler: h, store: store, events: events, date: day.Format(schedule.DateLayout), echo: e}
}

func (f *scheduleFixture) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/schedule", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, f.handler.Post(f.echo.NewContext(req, rec)))
	return rec
}

func (f *scheduleFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, f.handler.Get(f.echo.NewContext(req, rec)))
	return rec
}

func (f *scheduleFixture) del(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, f.handler.Delete(f.echo.NewContext(req, rec)))
	return rec
}

func TestSchedulePostCreatesBooking(t *testing.T) {
	f := newScheduleFixture(t)

	rec := f.post(t, `{"roomNumber":"CSE-202","date":"`+f.date+`","timeSlot":"10:00-11:00","batchName":"CSE-3B","courseName":"Databases"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "CSE-202", resp.RoomNumber)
	assert.Equal(t, model.BookingActive, resp.Status)

	require.Len(t, f.events.created, 1)
	assert.Equal(t, resp.ID, f.events.created[0].BookingID)
}

func TestSchedulePostConflict(t *testing.T) {
	f := newScheduleFixture(t)
	body := `{"roomNumber":"CSE-202","date":"` + f.date + `","timeSlot":"10:00-11:00","batchName":"CSE-3B"}`

	require.Equal(t, http.StatusCreated, f.post(t, body).Code)
	rec := f.post(t, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
	assert.Len(t, f.events.created, 1)
}

func TestSchedulePostValidationFailures(t *testing.T) {
	f := newScheduleFixture(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"roomNumber":"CSE-202","date":"` + f.date + `"}`, "missing required fields"},
		{"staff room", `{"roomNumber":"CSE-103","date":"` + f.date + `","timeSlot":"10:00-11:00","batchName":"CSE-3B"}`, "staff rooms"},
		{"past date", `{"roomNumber":"CSE-202","date":"2020-01-01","timeSlot":"10:00-11:00","batchName":"CSE-3B"}`, "future"},
		{"bad slot", `{"roomNumber":"CSE-202","date":"` + f.date + `","timeSlot":"13:00-14:00","batchName":"CSE-3B"}`, "invalid time slot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.post(t, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
	assert.Empty(t, f.events.created)
}

func TestScheduleGetMergedView(t *testing.T) {
	f := newScheduleFixture(t)

	// Overlay the recurring 09:00 class in CSE-201 with an ad-hoc booking.
	require.Equal(t, http.StatusCreated,
		f.post(t, `{"roomNumber":"CSE-201","date":"`+f.date+`","timeSlot":"09:00-10:00","batchName":"ECE-1A"}`).Code)

	rec := f.get(t, "/v1/schedule?date="+f.date)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date     string               `json:"date"`
		Schedule schedule.DaySchedule `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, f.date, resp.Date)

	e := resp.Schedule["CSE-201"]["09:00-10:00"]
	assert.Equal(t, schedule.SourceBooking, e.Source)
	assert.Equal(t, "ECE-1A", e.BatchName)

	// Free cells stay absent.
	_, ok := resp.Schedule["CSE-201"]["10:00-11:00"]
	assert.False(t, ok)
}

func TestScheduleGetDefaultsToToday(t *testing.T) {
	f := newScheduleFixture(t)
	rec := f.get(t, "/v1/schedule")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), time.Now().Format(schedule.DateLayout))
}

func TestScheduleGetRejectsBadDate(t *testing.T) {
	f := newScheduleFixture(t)
	rec := f.get(t, "/v1/schedule?date=01-02-2026")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleDelete(t *testing.T) {
	f := newScheduleFixture(t)
	require.Equal(t, http.StatusCreated,
		f.post(t, `{"roomNumber":"CSE-202","date":"`+f.date+`","timeSlot":"10:00-11:00","batchName":"CSE-3B"}`).Code)

	// Missing params and unknown slots are rejected up front.
	assert.Equal(t, http.StatusBadRequest, f.del(t, "/v1/schedule?date="+f.date).Code)
	assert.Equal(t, http.StatusBadRequest,
		f.del(t, "/v1/schedule?date="+f.date+"&roomNumber=CSE-202&timeSlot=13:00-14:00").Code)

	// Cancel succeeds once, then the key is gone.
	target := "/v1/schedule?date=" + f.date + "&roomNumber=CSE-202&timeSlot=10:00-11:00"
	assert.Equal(t, http.StatusOK, f.del(t, target).Code)
	assert.Equal(t, http.StatusNotFound, f.del(t, target).Code)
	require.Len(t, f.events.cancelled, 1)

	// Cancel-then-recreate must succeed.
	assert.Equal(t, http.StatusCreated,
		f.post(t, `{"roomNumber":"CSE-202","date":"`+f.date+`","timeSlot":"10:00-11:00","batchName":"CSE-2A"}`).Code)
}
