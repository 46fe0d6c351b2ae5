package sqlite

import (
	"database/sql"
	"fmt"

	"collageserver/internal/dto"
	"collageserver/internal/model"
)

// CollageRepository implements repository.CollageRepository for SQLite.
type CollageRepository struct {
	db *DB
}

// NewCollageRepository creates a new SQLite collage repository.
func NewCollageRepository(db *DB) *CollageRepository {
	return &CollageRepository{db: db}
}

// Insert adds a collage record and its source image ids in one transaction.
func (r *CollageRepository) Insert(col *model.Collage) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO collages (filename, filepath, created_at)
		VALUES (?, ?, ?)
	`, col.Filename, col.FilePath, col.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert collage: %w", err)
	}

	collageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	for _, imageID := range col.SourceImageIDs {
		_, err := tx.Exec(`
			INSERT INTO collage_sources (collage_id, image_id)
			VALUES (?, ?)
		`, collageID, imageID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert collage source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return collageID, nil
}

// GetLatest returns the most recently created collage, or nil when the index
// is empty.
func (r *CollageRepository) GetLatest() (*model.Collage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var col model.Collage
	err := r.db.Conn().QueryRow(`
		SELECT id, filename, filepath, created_at
		FROM collages
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&col.ID, &col.Filename, &col.FilePath, &col.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest collage: %w", err)
	}

	if err := r.loadSources(&col); err != nil {
		return nil, err
	}
	return &col, nil
}

// GetAll retrieves collage records matching the filter, newest first.
func (r *CollageRepository) GetAll(filter *dto.CollageFilters) ([]model.Collage, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT id, filename, filepath, created_at
		FROM collages
		WHERE 1=1
	`
	args := []interface{}{}

	if !filter.CreatedAfter.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.CreatedAfter)
	}
	if !filter.CreatedBefore.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.CreatedBefore)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collages: %w", err)
	}
	defer rows.Close()

	var collages []model.Collage
	for rows.Next() {
		var col model.Collage
		if err := rows.Scan(&col.ID, &col.Filename, &col.FilePath, &col.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collage: %w", err)
		}
		collages = append(collages, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range collages {
		if err := r.loadSources(&collages[i]); err != nil {
			return nil, err
		}
	}
	return collages, nil
}

// GetTotalCount returns the number of collages matching the filter.
func (r *CollageRepository) GetTotalCount(filter *dto.CollageFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `SELECT COUNT(*) FROM collages WHERE 1=1`
	args := []interface{}{}

	if !filter.CreatedAfter.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.CreatedAfter)
	}
	if !filter.CreatedBefore.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.CreatedBefore)
	}

	var count int
	if err := r.db.Conn().QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count collages: %w", err)
	}
	return count, nil
}

// GetStats summarizes the collage index.
func (r *CollageRepository) GetStats() (*dto.CollageStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &dto.CollageStats{}

	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM collages`).Scan(&stats.TotalCollages)
	if err != nil {
		return nil, fmt.Errorf("failed to count collages: %w", err)
	}

	err = r.db.Conn().QueryRow(`SELECT COUNT(*) FROM collage_sources`).Scan(&stats.TotalSources)
	if err != nil {
		return nil, fmt.Errorf("failed to count collage sources: %w", err)
	}

	if stats.TotalCollages > 0 {
		var first, last sql.NullTime
		err = r.db.Conn().QueryRow(`
			SELECT MIN(created_at), MAX(created_at) FROM collages
		`).Scan(&first, &last)
		if err != nil {
			return nil, fmt.Errorf("failed to get collage time range: %w", err)
		}
		if first.Valid {
			stats.FirstCreated = &first.Time
		}
		if last.Valid {
			stats.LastCreated = &last.Time
		}
	}

	return stats, nil
}

// DeleteByFilename removes a collage record; collage_sources rows cascade.
func (r *CollageRepository) DeleteByFilename(filename string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM collages WHERE filename = ?`, filename)
	if err != nil {
		return fmt.Errorf("failed to delete collage: %w", err)
	}
	return nil
}

// DeleteAll removes all collage records.
func (r *CollageRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM collage_sources`); err != nil {
		return fmt.Errorf("failed to clear collage sources: %w", err)
	}
	if _, err := r.db.Conn().Exec(`DELETE FROM collages`); err != nil {
		return fmt.Errorf("failed to clear collages: %w", err)
	}
	return nil
}

// loadSources fills in the source image ids for a collage row. Caller holds
// the read lock.
func (r *CollageRepository) loadSources(col *model.Collage) error {
	rows, err := r.db.Conn().Query(`
		SELECT image_id FROM collage_sources
		WHERE collage_id = ?
		ORDER BY id
	`, col.ID)
	if err != nil {
		return fmt.Errorf("failed to query collage sources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan collage source: %w", err)
		}
		col.SourceImageIDs = append(col.SourceImageIDs, id)
	}
	return rows.Err()
}
