package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"collageserver/internal/config"
	"collageserver/internal/logger"
	"collageserver/internal/services"
	"collageserver/internal/store"
)

type nopPublisher struct{}

func (nopPublisher) Broadcast(message []byte) {}

func setupUploadHandler(t *testing.T) (http.HandlerFunc, *store.ImageStore, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		UploadDirectory: t.TempDir(),
		CollageInterval: 60,
		MaxUploadSize:   8,
		LogDirectory:    t.TempDir(),
	}
	log := logger.NewLogger(cfg)
	imageStore := store.New()
	manager := services.NewManager(imageStore, nopPublisher{}, cfg, log)

	return UploadHandler(manager, nil, cfg, log), imageStore, cfg
}

// multipartRequest builds a POST /upload request carrying one file field.
func multipartRequest(t *testing.T, fieldName, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_AcceptsAllowedExtension(t *testing.T) {
	handler, imageStore, cfg := setupUploadHandler(t)

	rec := httptest.NewRecorder()
	handler(rec, multipartRequest(t, "file", "holiday.JPG", []byte("jpeg bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	filename := resp["filename"]
	if filename == "" {
		t.Fatal("Response has no filename")
	}
	if filepath.Ext(filename) != ".jpg" {
		t.Errorf("Stored extension = %q, expected lowercased .jpg", filepath.Ext(filename))
	}

	if _, err := os.Stat(filepath.Join(cfg.UploadDirectory, filename)); err != nil {
		t.Errorf("Uploaded file not stored: %v", err)
	}

	ids := imageStore.TrackedIDs()
	if len(ids) != 1 || ids[0] != filename {
		t.Errorf("TrackedIDs = %v, expected [%s]", ids, filename)
	}
}

func TestUploadHandler_RejectsDisallowedExtension(t *testing.T) {
	handler, imageStore, cfg := setupUploadHandler(t)

	rec := httptest.NewRecorder()
	handler(rec, multipartRequest(t, "file", "notes.txt", []byte("plain text")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, expected 400", rec.Code)
	}

	if got := imageStore.Len(); got != 0 {
		t.Errorf("Store has %d entries after rejected upload, expected 0", got)
	}

	files, err := os.ReadDir(cfg.UploadDirectory)
	if err != nil {
		t.Fatalf("Failed to read upload dir: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Rejected upload left %d file(s) on disk", len(files))
	}
}

func TestUploadHandler_MissingFilePart(t *testing.T) {
	handler, imageStore, _ := setupUploadHandler(t)

	rec := httptest.NewRecorder()
	handler(rec, multipartRequest(t, "attachment", "holiday.jpg", []byte("jpeg bytes")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, expected 400", rec.Code)
	}
	if got := imageStore.Len(); got != 0 {
		t.Errorf("Store has %d entries, expected 0", got)
	}
}

func TestUploadHandler_RejectsNonPost(t *testing.T) {
	handler, _, _ := setupUploadHandler(t)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Status = %d, expected 405", rec.Code)
	}
}

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"animation.GIF", true},
		{"archive.zip", false},
		{"script.js", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedFile(tt.filename); got != tt.expected {
			t.Errorf("AllowedFile(%q) = %v, expected %v", tt.filename, got, tt.expected)
		}
	}
}
