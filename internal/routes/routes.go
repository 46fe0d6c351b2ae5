package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"collageserver/internal/config"
	"collageserver/internal/handlers"
	"collageserver/internal/logger"
	"collageserver/internal/middleware"
	"collageserver/internal/repository"
	"collageserver/internal/services"
	"collageserver/internal/services/websocket"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers HTTP routes, static file serving and API endpoints,
// and wraps the mux with the request-logging middleware.
func SetupRoutes(manager *services.Manager, hub *websocket.HubService, uploads repository.UploadRepository, collages repository.CollageRepository, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Upload intake and viewer stream
	mux.HandleFunc("/upload", handlers.UploadHandler(manager, uploads, cfg, logger))
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(manager, hub, logger))

	// Collage index
	mux.HandleFunc("/api/collages", handlers.ListCollagesHandler(collages, logger))
	mux.HandleFunc("/api/collages/stats", handlers.GetCollageStatsHandler(collages, logger))

	// Stored files
	mux.HandleFunc("/uploads/", handlers.ServeUploadHandler(cfg))
	mux.HandleFunc("/collages/", handlers.ServeCollageHandler(cfg))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(logger))

	// Automatic HTML handler mapping for example: /gallery -> /static/gallery.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.RequestLogger(logger)(mux)
}
