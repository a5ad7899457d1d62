package api

import "time"

type Project struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type File struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Filename  string    `json:"filename"`
	BlobURL   string    `json:"blob_url"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type UploadResult struct {
	Success bool          `json:"success"`
	Files   []File        `json:"files"`
	Errors  []UploadError `json:"errors,omitempty"`
}

type ParsedFile struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id"`
}

type parseResponse struct {
	Success bool       `json:"success"`
	File    ParsedFile `json:"file"`
}

type errorResponse struct {
	Error string `json:"error"`
}
