package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"collageserver/internal/config"
	"collageserver/internal/logger"
	"collageserver/internal/model"
	"collageserver/internal/repository"
	"collageserver/internal/services"
)

// allowedExtensions lists accepted upload extensions, lowercase.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedFile reports whether the filename carries an accepted image
// extension (case-insensitive).
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// UploadHandler accepts a multipart image upload, stores it under a
// uuid-derived name, registers it with the store and announces it to viewers.
// A rejected upload leaves the store untouched.
func UploadHandler(manager *services.Manager, uploads repository.UploadRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize<<20)

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, "No file part", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeJSONError(w, "No selected file", http.StatusBadRequest)
			return
		}

		if !AllowedFile(header.Filename) {
			writeJSONError(w, "File type not allowed", http.StatusBadRequest)
			return
		}

		filename := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
		path := filepath.Join(cfg.UploadDirectory, filename)

		if err := saveUpload(file, path); err != nil {
			logger.Error("Failed to store upload %s: %v", filename, err)
			writeJSONError(w, "Failed to store file", http.StatusInternalServerError)
			return
		}

		img := model.UploadedImage{
			ID:         filename,
			FilePath:   path,
			ReceivedAt: time.Now(),
		}

		manager.RegisterUpload(img)

		if uploads != nil {
			if err := uploads.Insert(&img); err != nil {
				logger.Error("Failed to index upload %s: %v", filename, err)
			}
		}

		logger.Info("Upload accepted: %s", filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "File uploaded successfully",
			"filename": filename,
		})
	}
}

// saveUpload writes the uploaded bytes to disk.
func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// writeJSONError sends an error payload in the shape the frontend expects.
func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
