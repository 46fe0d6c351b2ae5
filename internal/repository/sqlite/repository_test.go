package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"collageserver/internal/dto"
	"collageserver/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "collage_repo_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	db, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(tempDir)
	})

	return db
}

func TestUploadRepository_InsertAndGet(t *testing.T) {
	repo := NewUploadRepository(setupTestDB(t))

	img := &model.UploadedImage{
		ID:         "abc123.png",
		FilePath:   "/uploads/abc123.png",
		ReceivedAt: time.Now(),
	}
	if err := repo.Insert(img); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.GetByID("abc123.png")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing upload")
	}
	if got.FilePath != img.FilePath {
		t.Errorf("FilePath = %q, expected %q", got.FilePath, img.FilePath)
	}
	if got.ReceivedAt.Unix() != img.ReceivedAt.Unix() {
		t.Errorf("ReceivedAt = %v, expected %v", got.ReceivedAt, img.ReceivedAt)
	}

	missing, err := repo.GetByID("nope.png")
	if err != nil {
		t.Fatalf("GetByID failed for missing id: %v", err)
	}
	if missing != nil {
		t.Error("GetByID returned a record for a missing id")
	}
}

func TestUploadRepository_GetRecentAndCount(t *testing.T) {
	repo := NewUploadRepository(setupTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		err := repo.Insert(&model.UploadedImage{
			ID:         string(rune('a'+i)) + ".png",
			FilePath:   "/uploads/x",
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	recent, err := repo.GetRecent(3)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("GetRecent returned %d records, expected 3", len(recent))
	}
	if recent[0].ID != "e.png" {
		t.Errorf("Newest upload = %q, expected e.png", recent[0].ID)
	}

	count, err := repo.GetTotalCount()
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 5 {
		t.Errorf("GetTotalCount = %d, expected 5", count)
	}
}

func TestUploadRepository_Delete(t *testing.T) {
	repo := NewUploadRepository(setupTestDB(t))

	if err := repo.Insert(&model.UploadedImage{ID: "gone.png", FilePath: "/uploads/gone.png", ReceivedAt: time.Now()}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.DeleteByID("gone.png"); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}

	got, err := repo.GetByID("gone.png")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("Upload still present after delete")
	}
}

func TestCollageRepository_InsertAndGetLatest(t *testing.T) {
	repo := NewCollageRepository(setupTestDB(t))

	latest, err := repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest failed on empty index: %v", err)
	}
	if latest != nil {
		t.Fatal("GetLatest returned a collage from an empty index")
	}

	first := &model.Collage{
		Filename:       "collage_20260823_120000.jpg",
		FilePath:       "/collages/collage_20260823_120000.jpg",
		SourceImageIDs: []string{"a.png", "b.png"},
		CreatedAt:      time.Now().Add(-2 * time.Minute),
	}
	second := &model.Collage{
		Filename:       "collage_20260823_120100.jpg",
		FilePath:       "/collages/collage_20260823_120100.jpg",
		SourceImageIDs: []string{"c.png"},
		CreatedAt:      time.Now().Add(-time.Minute),
	}

	if _, err := repo.Insert(first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := repo.Insert(second); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	latest, err = repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest.Filename != second.Filename {
		t.Errorf("GetLatest = %q, expected %q", latest.Filename, second.Filename)
	}
	if len(latest.SourceImageIDs) != 1 || latest.SourceImageIDs[0] != "c.png" {
		t.Errorf("Latest sources = %v, expected [c.png]", latest.SourceImageIDs)
	}
}

func TestCollageRepository_GetAllPaginationAndOrder(t *testing.T) {
	repo := NewCollageRepository(setupTestDB(t))

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createdAt := base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Insert(&model.Collage{
			Filename:  "collage_" + createdAt.Format("20060102_150405") + ".jpg",
			FilePath:  "/collages/x",
			CreatedAt: createdAt,
		})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	page, err := repo.GetAll(&dto.CollageFilters{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("GetAll returned %d records, expected 2", len(page))
	}
	if page[0].Filename != "collage_20260823_120400.jpg" {
		t.Errorf("First record = %q, expected newest first", page[0].Filename)
	}

	total, err := repo.GetTotalCount(&dto.CollageFilters{})
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if total != 5 {
		t.Errorf("GetTotalCount = %d, expected 5", total)
	}

	filtered, err := repo.GetAll(&dto.CollageFilters{
		CreatedAfter: base.Add(3 * time.Minute),
	})
	if err != nil {
		t.Fatalf("GetAll with filter failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("Filtered GetAll returned %d records, expected 2", len(filtered))
	}
}

func TestCollageRepository_Stats(t *testing.T) {
	repo := NewCollageRepository(setupTestDB(t))

	stats, err := repo.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed on empty index: %v", err)
	}
	if stats.TotalCollages != 0 || stats.TotalSources != 0 {
		t.Errorf("Empty index stats = %+v", stats)
	}

	_, err = repo.Insert(&model.Collage{
		Filename:       "collage_20260823_120000.jpg",
		FilePath:       "/collages/x",
		SourceImageIDs: []string{"a.png", "b.png", "c.png"},
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	stats, err = repo.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalCollages != 1 {
		t.Errorf("TotalCollages = %d, expected 1", stats.TotalCollages)
	}
	if stats.TotalSources != 3 {
		t.Errorf("TotalSources = %d, expected 3", stats.TotalSources)
	}
	if stats.FirstCreated == nil || stats.LastCreated == nil {
		t.Error("Stats time range missing for non-empty index")
	}
}

func TestCollageRepository_DeleteByFilename(t *testing.T) {
	repo := NewCollageRepository(setupTestDB(t))

	_, err := repo.Insert(&model.Collage{
		Filename:       "collage_20260823_120000.jpg",
		FilePath:       "/collages/x",
		SourceImageIDs: []string{"a.png"},
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := repo.DeleteByFilename("collage_20260823_120000.jpg"); err != nil {
		t.Fatalf("DeleteByFilename failed: %v", err)
	}

	latest, err := repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest != nil {
		t.Error("Collage still present after delete")
	}
}
