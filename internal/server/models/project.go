// Package models defines server-side data models persisted in the database.
package models

import "time"

// Project is a user-owned container of uploaded files.
type Project struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
