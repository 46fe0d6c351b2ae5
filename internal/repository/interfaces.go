package repository

import (
	"collageserver/internal/dto"
	"collageserver/internal/model"
)

// UploadRepository defines the interface for uploaded-image index operations.
type UploadRepository interface {
	// Create operations
	Insert(img *model.UploadedImage) error

	// Read operations
	GetByID(id string) (*model.UploadedImage, error)
	GetRecent(limit int) ([]model.UploadedImage, error)
	GetTotalCount() (int, error)

	// Delete operations
	DeleteByID(id string) error
	DeleteAll() error
}

// CollageRepository defines the interface for collage index operations.
type CollageRepository interface {
	// Create operations
	Insert(col *model.Collage) (int64, error)

	// Read operations
	GetLatest() (*model.Collage, error)
	GetAll(filter *dto.CollageFilters) ([]model.Collage, error)
	GetTotalCount(filter *dto.CollageFilters) (int, error)
	GetStats() (*dto.CollageStats, error)

	// Delete operations
	DeleteByFilename(filename string) error
	DeleteAll() error
}
