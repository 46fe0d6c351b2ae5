package services

import (
	"encoding/json"
	"sync"
	"time"

	gws "github.com/gorilla/websocket"

	"collageserver/internal/config"
	"collageserver/internal/dto"
	"collageserver/internal/logger"
	"collageserver/internal/model"
	"collageserver/internal/store"
)

// Publisher delivers serialized events to subscribers in the order they are
// handed over. Satisfied by websocket.HubService.
type Publisher interface {
	Broadcast(message []byte)
}

// Hub tracks viewer connections. Satisfied by websocket.HubService.
type Hub interface {
	Register(client *gws.Conn)
	Unregister(client *gws.Conn)
}

// Manager coordinates the image store and the notification publisher. It is
// the single entry point for store mutations that must be announced: holding
// mu across append+publish keeps broadcast order identical to append order.
type Manager struct {
	store     *store.ImageStore
	publisher Publisher
	logger    *logger.Logger
	interval  time.Duration

	mu sync.Mutex
}

func NewManager(store *store.ImageStore, publisher Publisher, cfg *config.Config, logger *logger.Logger) *Manager {
	return &Manager{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  time.Duration(cfg.CollageInterval) * time.Second,
	}
}

// RegisterUpload appends an accepted upload to the store and announces it.
func (m *Manager) RegisterUpload(img model.UploadedImage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Append(img)
	m.publish(dto.EventUploadOccurred, dto.UploadOccurred{
		ImageID:        img.ID,
		UploadedImages: m.store.TrackedIDs(),
	})
}

// PublishCollage announces a freshly committed collage. The payload lists
// every id still tracked by the store, not just those placed on the canvas.
func (m *Manager) PublishCollage(filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.publish(dto.EventCollageCreated, dto.CollageCreated{
		Filename:       filename,
		UploadedImages: m.store.TrackedIDs(),
	})
}

// InitialState builds the snapshot sent to a viewer on connect.
func (m *Manager) InitialState(now time.Time) dto.InitialState {
	latest := m.store.Latest()

	var recent *string
	if latest.Filename != "" {
		recent = &latest.Filename
	}

	remaining := m.interval - now.Sub(latest.CreatedAt)
	if remaining < 0 {
		remaining = 0
	}

	return dto.InitialState{
		UploadedImages:   m.store.TrackedIDs(),
		RecentCollage:    recent,
		RemainingSeconds: int(remaining.Seconds()),
	}
}

// GetStore returns the shared image store.
func (m *Manager) GetStore() *store.ImageStore {
	return m.store
}

func (m *Manager) publish(event string, data interface{}) {
	message, err := json.Marshal(dto.Envelope{Event: event, Data: data})
	if err != nil {
		m.logger.Error("Error encoding %s event: %v", event, err)
		return
	}
	m.publisher.Broadcast(message)
}
