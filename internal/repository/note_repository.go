package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Soumyadip04/MindMesh/internal/model"
)

// ErrNoteNotFound is returned when a note public id has no row.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepo provides access to the notes table. Notes carry only metadata;
// the file itself lives on external storage behind FileURL.
type NoteRepo struct{ db *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// Create inserts a note and assigns it a fresh public uuid.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	n.PublicID = uuid.NewString()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (public_id, title, subject, file_url, uploaded_by) VALUES (?,?,?,?,?)`,
		n.PublicID, n.Title, n.Subject, n.FileURL, n.UploadedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// List returns notes newest first, optionally narrowed to one subject.
func (r *NoteRepo) List(ctx context.Context, subject string) ([]model.Note, error) {
	query := `SELECT id, public_id, title, subject, file_url, uploaded_by, created_at, updated_at FROM notes`
	args := []any{}
	if subject != "" {
		query += ` WHERE subject=?`
		args = append(args, subject)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.PublicID, &n.Title, &n.Subject, &n.FileURL, &n.UploadedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete removes a note by public id. Only the uploader may delete unless
// admin is set; a mismatch returns ErrForbidden.
func (r *NoteRepo) Delete(ctx context.Context, publicID string, userID uint64, admin bool) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT uploaded_by FROM notes WHERE public_id=?`, publicID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrNoteNotFound
	}
	if err != nil {
		return err
	}
	if !admin && owner != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM notes WHERE public_id=?`, publicID)
	return err
}
