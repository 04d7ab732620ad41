package models

import "time"

// Note is a transient copy of a note owned by the remote service.
// Body holds sanitized HTML.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// NewNote is the body of POST /notes.
type NewNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
