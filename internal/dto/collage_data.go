package dto

import (
	"encoding/json"
	"time"
)

// CollageInfo describes one persisted collage in listing responses.
type CollageInfo struct {
	Filename    string    `json:"filename"`
	CreatedAt   time.Time `json:"createdAt"`
	SourceCount int       `json:"sourceCount"`
}

// MarshalJSON formats CreatedAt the way the gallery frontend expects.
func (c CollageInfo) MarshalJSON() ([]byte, error) {
	type Alias CollageInfo
	return json.Marshal(&struct {
		CreatedAt string `json:"createdAt"`
		Alias
	}{
		CreatedAt: c.CreatedAt.Format("02-01-2006 15:04:05"),
		Alias:     (Alias)(c),
	})
}

// CollagesData is a paginated response payload for the collage gallery.
type CollagesData struct {
	Collages    []CollageInfo `json:"collages"`
	Length      int           `json:"length"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Limit       int           `json:"pageSize"`
}

// CollageStats summarizes the collage index.
type CollageStats struct {
	TotalCollages int        `json:"totalCollages"`
	TotalSources  int        `json:"totalSources"`
	FirstCreated  *time.Time `json:"firstCreated,omitempty"`
	LastCreated   *time.Time `json:"lastCreated,omitempty"`
}
