package domain

import "time"

// Template is a saved default used to pre-fill quest creation. It has no
// lifecycle of its own beyond CRUD.
type Template struct {
	ID               string
	Title            string
	Description      string
	Priority         int
	EstimatedMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
