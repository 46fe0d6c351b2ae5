package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"collageserver/internal/collage"
	"collageserver/internal/config"
	"collageserver/internal/logger"
	"collageserver/internal/repository/sqlite"
	"collageserver/internal/routes"
	"collageserver/internal/scheduler"
	"collageserver/internal/services"
	"collageserver/internal/services/websocket"
	"collageserver/internal/store"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	store      *store.ImageStore
	hubService *websocket.HubService
	manager    *services.Manager
	scheduler  *scheduler.Scheduler
	uploads    *sqlite.UploadRepository
	collages   *sqlite.CollageRepository
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	for _, dir := range []string{cfg.UploadDirectory, cfg.CollageDirectory} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	uploads := sqlite.NewUploadRepository(db)
	collages := sqlite.NewCollageRepository(db)

	imageStore := store.New()
	hub := websocket.NewHubService(log)
	manager := services.NewManager(imageStore, hub, cfg, log)
	composer := collage.NewComposer(cfg, log)
	sched := scheduler.New(imageStore, composer, manager, collages, cfg, log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		store:      imageStore,
		hubService: hub,
		manager:    manager,
		scheduler:  sched,
		uploads:    uploads,
		collages:   collages,
	}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background services
	go a.hubService.Run(ctx)
	go a.scheduler.Run(ctx)

	// Setup routes
	router := routes.SetupRoutes(a.manager, a.hubService, a.uploads, a.collages, a.config, a.logger)

	fmt.Printf("🖼️  Collage Wall Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Uploads: %s\n", a.config.UploadDirectory)
	fmt.Printf("🧩 Collages: %s (every %ds)\n", a.config.CollageDirectory, a.config.CollageInterval)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Server shutdown error: %v", err)
		}
		a.db.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
