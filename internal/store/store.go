package store

import (
	"sync"
	"time"

	"collageserver/internal/model"
)

// ImageStore owns the ordered collection of uploaded-image records together
// with the most-recent-collage snapshot. All access goes through its methods;
// nothing else touches the underlying slice. Insertion order is preserved and
// determines placement order in composed collages.
type ImageStore struct {
	mu     sync.RWMutex
	images []model.UploadedImage
	latest model.CollageSnapshot
}

func New() *ImageStore {
	return &ImageStore{
		images: make([]model.UploadedImage, 0),
		// Countdown for early subscribers runs from process start until
		// the first tick commits a real snapshot.
		latest: model.CollageSnapshot{CreatedAt: time.Now()},
	}
}

// Append adds an image record to the end of the collection. Safe to call
// concurrently with Window and Prune.
func (s *ImageStore) Append(img model.UploadedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, img)
}

// Window returns a copy of all records with now - receivedAt <= interval,
// in insertion order. The copy is the caller's private snapshot; rendering
// works on it without holding the store lock.
func (s *ImageStore) Window(now time.Time, interval time.Duration) []model.UploadedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := make([]model.UploadedImage, 0, len(s.images))
	for _, img := range s.images {
		if now.Sub(img.ReceivedAt) <= interval {
			window = append(window, img)
		}
	}
	return window
}

// Prune removes all records with now - receivedAt > interval. Called with the
// same now a cycle used for Window, so an Append that raced in mid-cycle is
// never dropped: its age relative to that now is below the interval.
func (s *ImageStore) Prune(now time.Time, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.images[:0]
	for _, img := range s.images {
		if now.Sub(img.ReceivedAt) <= interval {
			kept = append(kept, img)
		}
	}
	s.images = kept
}

// TrackedIDs returns the ids of every record currently in the store, in
// insertion order. Broadcast payloads carry the full tracked set, not just
// the composition window.
func (s *ImageStore) TrackedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.images))
	for _, img := range s.images {
		ids = append(ids, img.ID)
	}
	return ids
}

// Len returns the number of records currently tracked.
func (s *ImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// CommitCollage replaces the most-recent-collage snapshot as a whole value.
func (s *ImageStore) CommitCollage(snap model.CollageSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snap
}

// Latest returns the current most-recent-collage snapshot. The filename is
// empty until the first tick commits one.
func (s *ImageStore) Latest() model.CollageSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
