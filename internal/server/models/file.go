package models

import "time"

// File is the metadata record of one uploaded file. The content lives in the
// object store at BlobURL.
type File struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`
	UserID    string `json:"user_id" db:"user_id"`
	// Filename is the normalized relative path the client uploaded,
	// e.g. "src/components/App.tsx".
	Filename  string    `json:"filename" db:"filename"`
	BlobURL   string    `json:"blob_url" db:"blob_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
