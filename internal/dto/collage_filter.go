package dto

import "time"

// CollageFilters contains filtering options for querying collages.
type CollageFilters struct {
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Limit         int
	Offset        int
}
