package model

import "time"

// UploadedImage represents a single accepted upload. ID is the stored
// filename (uuid + original extension) and doubles as the public handle
// broadcast to viewers. Records are immutable once registered.
type UploadedImage struct {
	ID         string    `json:"id"`
	FilePath   string    `json:"filepath"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Collage represents one composed canvas persisted to disk.
type Collage struct {
	ID             int64     `json:"id"`
	Filename       string    `json:"filename"`
	FilePath       string    `json:"filepath"`
	SourceImageIDs []string  `json:"sourceImageIds"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CollageSnapshot is the process-wide "most recent collage" state.
// It is replaced as a whole value on every scheduler tick so readers
// never observe a half-updated filename/time pair.
type CollageSnapshot struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
}
