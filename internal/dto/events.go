package dto

// Envelope wraps every message pushed to websocket viewers.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Event names used on the wire.
const (
	EventUploadOccurred = "upload-occurred"
	EventCollageCreated = "collage-created"
	EventInitialState   = "initial-state"
)

// UploadOccurred announces a newly accepted upload. UploadedImages carries
// every id currently tracked by the store, not just the new one.
type UploadOccurred struct {
	ImageID        string   `json:"imageId"`
	UploadedImages []string `json:"uploadedImages"`
}

// CollageCreated announces a freshly persisted collage. UploadedImages lists
// all currently tracked ids, including ones not placed in this collage.
type CollageCreated struct {
	Filename       string   `json:"filename"`
	UploadedImages []string `json:"uploadedImages"`
}

// InitialState is sent once to each viewer on connect. RecentCollage is nil
// until the first tick has produced one. RemainingSeconds counts down to the
// next scheduled tick.
type InitialState struct {
	UploadedImages   []string `json:"uploadedImages"`
	RecentCollage    *string  `json:"recentCollage"`
	RemainingSeconds int      `json:"remainingSeconds"`
}
