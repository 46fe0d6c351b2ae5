package sqlite

import (
	"database/sql"
	"fmt"

	"collageserver/internal/model"
)

// UploadRepository implements repository.UploadRepository for SQLite.
type UploadRepository struct {
	db *DB
}

// NewUploadRepository creates a new SQLite upload repository.
func NewUploadRepository(db *DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Insert adds a new upload record.
func (r *UploadRepository) Insert(img *model.UploadedImage) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT INTO uploads (id, filepath, received_at)
		VALUES (?, ?, ?)
	`, img.ID, img.FilePath, img.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

// GetByID retrieves an upload record by its id.
func (r *UploadRepository) GetByID(id string) (*model.UploadedImage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var img model.UploadedImage
	err := r.db.Conn().QueryRow(`
		SELECT id, filepath, received_at
		FROM uploads WHERE id = ?
	`, id).Scan(&img.ID, &img.FilePath, &img.ReceivedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return &img, nil
}

// GetRecent retrieves the newest upload records, newest first.
func (r *UploadRepository) GetRecent(limit int) ([]model.UploadedImage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, filepath, received_at
		FROM uploads
		ORDER BY received_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	var uploads []model.UploadedImage
	for rows.Next() {
		var img model.UploadedImage
		if err := rows.Scan(&img.ID, &img.FilePath, &img.ReceivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, img)
	}
	return uploads, rows.Err()
}

// GetTotalCount returns the number of upload records.
func (r *UploadRepository) GetTotalCount() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM uploads`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count uploads: %w", err)
	}
	return count, nil
}

// DeleteByID removes an upload record by its id.
func (r *UploadRepository) DeleteByID(id string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

// DeleteAll removes all upload records.
func (r *UploadRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM uploads`)
	if err != nil {
		return fmt.Errorf("failed to clear uploads: %w", err)
	}
	return nil
}
