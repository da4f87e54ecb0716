// Package image provides persistence operations for images stored in the database.
package image

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

const filenameQueryPattern = "filename = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrImageNotFound is returned when no image has the given filename.
	ErrImageNotFound = apperr.New(apperr.ErrNotFound, "Image not found")
	// ErrFilenameEmpty is returned when an image is stored or looked up without a filename.
	ErrFilenameEmpty = apperr.New(apperr.ErrValidation, "image filename cannot be empty")
)

// Create stores a new image.
func Create(db *gorm.DB, image *models.Image) error {
	if db == nil {
		return ErrDBNil
	}
	if image == nil || image.Filename == "" {
		return ErrFilenameEmpty
	}

	image.Size = int64(len(image.Data))

	return pkgerrors.Wrap(db.Create(image).Error, "failed to create image")
}

// Get retrieves an image by filename.
func Get(db *gorm.DB, filename string) (*models.Image, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if filename == "" {
		return nil, ErrFilenameEmpty
	}

	var image models.Image
	result := db.Where(filenameQueryPattern, filename).First(&image)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to get image")
	}

	return &image, nil
}

// Delete removes an image by filename.
func Delete(db *gorm.DB, filename string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(filenameQueryPattern, filename).Delete(&models.Image{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete image")
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}

	return nil
}
