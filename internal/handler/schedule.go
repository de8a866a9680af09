package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/queue"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
)

// BookingEvents publishes booking lifecycle events. Publishing is fire and
// forget; a broker outage must never fail a request.
type BookingEvents interface {
	BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent)
	BookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent)
}

// ScheduleHandler serves the merged daily schedule and ad-hoc booking
// operations. It speaks only to the domain layer: the validator decides
// policy, the store decides conflicts, the merger builds the view.
type ScheduleHandler struct {
	Validator *schedule.Validator
	Store     schedule.BookingStore
	Merger    *schedule.Merger
	Events    BookingEvents // optional
}

// NewScheduleHandler constructs a ScheduleHandler; events may be nil.
func NewScheduleHandler(v *schedule.Validator, s schedule.BookingStore, m *schedule.Merger, ev BookingEvents) *ScheduleHandler {
	if v == nil || s == nil || m == nil {
		panic("nil dependency passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Validator: v, Store: s, Merger: m, Events: ev}
}

// bookingResp mirrors the wire shape of a booking.
type bookingResp struct {
	ID          uint64 `json:"id"`
	RoomNumber  string `json:"roomNumber"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	BatchName   string `json:"batchName"`
	TeacherName string `json:"teacherName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	Status      string `json:"status"`
}

func toBookingResp(b *model.Booking) bookingResp {
	resp := bookingResp{
		ID:         b.ID,
		RoomNumber: b.RoomNumber,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		BatchName:  b.BatchName,
		Status:     b.Status,
	}
	if b.TeacherName != nil {
		resp.TeacherName = *b.TeacherName
	}
	if b.CourseName != nil {
		resp.CourseName = *b.CourseName
	}
	return resp
}

// Get handles GET /v1/schedule?date=YYYY-MM-DD. Without a date it returns
// today's schedule.
func (h *ScheduleHandler) Get(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format(schedule.DateLayout)
	}
	day, err := h.Merger.MergedForDate(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": schedule.ErrInvalidDate.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedule failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "schedule": day})
}

// Post handles POST /v1/schedule: validate, then a single atomic create.
func (h *ScheduleHandler) Post(c echo.Context) error {
	var req schedule.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Validator.Validate(req, time.Now()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b := &model.Booking{
		RoomNumber: req.RoomNumber,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		BatchName:  req.BatchName,
	}
	if req.TeacherName != "" {
		b.TeacherName = &req.TeacherName
	}
	if req.CourseName != "" {
		b.CourseName = &req.CourseName
	}
	if uid, err := getUserID(c); err == nil {
		b.CreatedBy = uid
	}

	if err := h.Store.Create(c.Request().Context(), b); err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": schedule.ErrConflict.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if h.Events != nil {
		h.Events.BookingCreated(c.Request().Context(), queue.BookingCreatedEvent{
			BookingID:  b.ID,
			RoomNumber: b.RoomNumber,
			Date:       b.Date,
			TimeSlot:   b.TimeSlot,
			BatchName:  b.BatchName,
			CreatedBy:  b.CreatedBy,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// Delete handles DELETE /v1/schedule?date=&roomNumber=&timeSlot=: it cancels
// the active booking for that key.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	date := c.QueryParam("date")
	room := c.QueryParam("roomNumber")
	slot := c.QueryParam("timeSlot")
	if date == "" || room == "" || slot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required query params: date, roomNumber, timeSlot"})
	}
	if !schedule.ValidSlot(slot) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": schedule.ErrInvalidTimeSlot.Error()})
	}

	if err := h.Store.CancelByKey(c.Request().Context(), room, date, slot); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": schedule.ErrNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}

	if h.Events != nil {
		h.Events.BookingCancelled(c.Request().Context(), queue.BookingCancelledEvent{
			RoomNumber:  room,
			Date:        date,
			TimeSlot:    slot,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
