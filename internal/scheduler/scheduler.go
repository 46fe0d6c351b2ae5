package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"collageserver/internal/collage"
	"collageserver/internal/config"
	"collageserver/internal/logger"
	"collageserver/internal/model"
	"collageserver/internal/repository"
	"collageserver/internal/services"
	"collageserver/internal/store"
)

// Scheduler drives the periodic collage cycle: snapshot the current window,
// compose, persist, commit, announce, prune. One cycle per interval; if a
// cycle overruns, the pending tick fires immediately afterwards and missed
// ticks are dropped rather than accumulated.
type Scheduler struct {
	store      *store.ImageStore
	composer   *collage.Composer
	manager    *services.Manager
	collages   repository.CollageRepository
	logger     *logger.Logger
	interval   time.Duration
	collageDir string
}

func New(store *store.ImageStore, composer *collage.Composer, manager *services.Manager, collages repository.CollageRepository, cfg *config.Config, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		store:      store,
		composer:   composer,
		manager:    manager,
		collages:   collages,
		logger:     logger,
		interval:   time.Duration(cfg.CollageInterval) * time.Second,
		collageDir: cfg.CollageDirectory,
	}
}

// Run executes collage cycles until the context is canceled. A failed cycle
// is logged and retried at the next scheduled tick; there is no mid-interval
// retry.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Collage scheduler started, interval %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Collage scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunCycle(time.Now()); err != nil {
				s.logger.Error("Collage cycle failed: %v", err)
			}
		}
	}
}

// RunCycle performs one complete collage cycle against the given now and
// returns the filename of the persisted collage. On persistence failure
// nothing is committed: the snapshot, broadcast, prune and index insert all
// happen only after the file is safely on disk.
func (s *Scheduler) RunCycle(now time.Time) (string, error) {
	window := s.store.Window(now, s.interval)

	// Rendering works on the private window copy, off the store lock.
	canvas, placed := s.composer.Compose(window)

	filename := fmt.Sprintf("collage_%s.jpg", now.Format("20060102_150405"))
	path := filepath.Join(s.collageDir, filename)

	if err := imaging.Save(canvas, path); err != nil {
		return "", fmt.Errorf("failed to save collage %s: %w", filename, err)
	}

	s.store.CommitCollage(model.CollageSnapshot{Filename: filename, CreatedAt: now})
	s.manager.PublishCollage(filename)
	s.store.Prune(now, s.interval)

	if s.collages != nil {
		_, err := s.collages.Insert(&model.Collage{
			Filename:       filename,
			FilePath:       path,
			SourceImageIDs: placed,
			CreatedAt:      now,
		})
		if err != nil {
			// Index trouble must not block the next cycle; the file
			// itself is already persisted.
			s.logger.Error("Failed to index collage %s: %v", filename, err)
		}
	}

	s.logger.Info("Collage %s created from %d image(s), %d tracked", filename, len(placed), s.store.Len())
	return filename, nil
}
