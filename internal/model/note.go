package model

import "time"

// Note is a pointer to course material a faculty member has published for
// students. The file itself lives on external storage; only its URL is kept
// here. PublicID is the uuid exposed over the API instead of the row id.
type Note struct {
	ID         uint64 // notes.id
	PublicID   string // notes.public_id (uuid)
	Title      string // notes.title
	Subject    string // notes.subject
	FileURL    string // notes.file_url
	UploadedBy uint64 // notes.uploaded_by (users.id)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
