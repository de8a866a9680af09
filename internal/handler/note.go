package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Soumyadip04/MindMesh/internal/model"
	"github.com/Soumyadip04/MindMesh/internal/repository"
)

// NoteHandler serves the notes-sharing surface: faculty publish metadata for
// course material hosted on external storage, students browse it.
type NoteHandler struct {
	Notes *repository.NoteRepo
}

func NewNoteHandler(n *repository.NoteRepo) *NoteHandler {
	if n == nil {
		panic("nil repository passed to NewNoteHandler")
	}
	return &NoteHandler{Notes: n}
}

type createNoteReq struct {
	Title   string `json:"title" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	FileURL string `json:"fileUrl" validate:"required,url"`
}

type noteResp struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	FileURL    string `json:"fileUrl"`
	UploadedBy uint64 `json:"uploadedBy"`
	CreatedAt  string `json:"createdAt"`
}

func toNoteResp(n *model.Note) noteResp {
	return noteResp{
		ID:         n.PublicID,
		Title:      n.Title,
		Subject:    n.Subject,
		FileURL:    n.FileURL,
		UploadedBy: n.UploadedBy,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/notes (FACULTY or ADMIN).
func (h *NoteHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	n := &model.Note{
		Title:      strings.TrimSpace(req.Title),
		Subject:    strings.TrimSpace(req.Subject),
		FileURL:    strings.TrimSpace(req.FileURL),
		UploadedBy: uid,
	}
	if err := h.Notes.Create(c.Request().Context(), n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create note failed"})
	}
	n.CreatedAt = time.Now().UTC()
	return c.JSON(http.StatusCreated, toNoteResp(n))
}

// List handles GET /v1/notes?subject= for every authenticated role.
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.Notes.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("subject")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notes failed"})
	}
	out := make([]noteResp, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResp(&notes[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// Delete handles DELETE /v1/notes/:id. The uploader may delete their own
// note; admins may delete any.
func (h *NoteHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	publicID := c.Param("id")
	if publicID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}

	admin := getRole(c) == model.RoleAdmin
	if err := h.Notes.Delete(c.Request().Context(), publicID, uid, admin); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoteNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete note failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
