package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"collageserver/internal/config"
)

// ServeUploadHandler serves stored upload files under /uploads/<filename>.
func ServeUploadHandler(cfg *config.Config) http.HandlerFunc {
	return serveDirectory("/uploads/", func() string { return cfg.UploadDirectory })
}

// ServeCollageHandler serves persisted collages under /collages/<filename>.
func ServeCollageHandler(cfg *config.Config) http.HandlerFunc {
	return serveDirectory("/collages/", func() string { return cfg.CollageDirectory })
}

// serveDirectory serves single files from dir, rejecting anything that is
// not a bare filename.
func serveDirectory(prefix string, dir func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		if name == "" || name != filepath.Base(name) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir(), name))
	}
}
