package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/queue"
	"github.com/Soumyadip04/MindMesh/internal/repository"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
)

// BookingHandler is the admin CRUD surface over bookings. It goes through
// the same validator and the same conflict-safe create as the public
// schedule endpoint; the difference is richer filtering and id-addressed
// updates and cancellations.
type BookingHandler struct {
	Validator *schedule.Validator
	Bookings  *repository.BookingRepo
	Events    BookingEvents // optional
}

// NewBookingHandler constructs a BookingHandler; events may be nil.
func NewBookingHandler(v *schedule.Validator, b *repository.BookingRepo, ev BookingEvents) *BookingHandler {
	if v == nil || b == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Validator: v, Bookings: b, Events: ev}
}

// List handles GET /v1/bookings?date=&roomNumber=&status=. status defaults
// to active; pass "cancelled" or "all" to widen it.
func (h *BookingHandler) List(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "":
		status = model.BookingActive
	case "all":
		status = ""
	case model.BookingActive, model.BookingCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}

	bookings, err := h.Bookings.List(c.Request().Context(), status, c.QueryParam("date"), c.QueryParam("roomNumber"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResp(&bookings[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": schedule.ErrNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Create handles POST /v1/bookings with the same semantics as the schedule
// endpoint.
func (h *BookingHandler) Create(c echo.Context) error {
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

	if err := h.Bookings.Create(c.Request().Context(), b); err != nil {
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

type updateBookingReq struct {
	BatchName   string `json:"batchName" validate:"required"`
	TeacherName string `json:"teacherName"`
	CourseName  string `json:"courseName"`
}

// Update handles PUT /v1/bookings/:id. Only descriptive fields change; the
// (room, date, slot) key is immutable so the uniqueness index stays honest.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if _, err := h.Bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": schedule.ErrNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}

	var teacher, course *string
	if req.TeacherName != "" {
		teacher = &req.TeacherName
	}
	if req.CourseName != "" {
		course = &req.CourseName
	}
	b, err := h.Bookings.UpdateDetails(ctx, id, req.BatchName, teacher, course)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Cancel handles DELETE /v1/bookings/:id (soft delete).
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": schedule.ErrNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if err := h.Bookings.CancelByID(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": schedule.ErrNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}

	if h.Events != nil {
		h.Events.BookingCancelled(ctx, queue.BookingCancelledEvent{
			BookingID:   b.ID,
			RoomNumber:  b.RoomNumber,
			Date:        b.Date,
			TimeSlot:    b.TimeSlot,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
