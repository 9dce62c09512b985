package domain

import (
	"strings"
	"time"
)

// Resource is a shared bookmark: a URL or local path with lightweight
// metadata for finding it again.
type Resource struct {
	ID           string
	Title        string
	URL          string
	Category     string
	Tags         string // comma-joined
	Memo         string
	IsFavorite   bool
	ViewCount    int
	LastViewedAt *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TagList splits the comma-joined tag field, dropping blanks.
func (r *Resource) TagList() []string {
	var tags []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
