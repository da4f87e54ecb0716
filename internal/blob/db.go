package blob

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/db/controller/image"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

// DBStore keeps image bytes in the images table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore returns a store backed by the given database.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Put implements Store.
func (s *DBStore) Put(ctx context.Context, obj Object) (string, error) {
	if obj.Filename == "" {
		obj.Filename = NewFilename(obj.ContentType)
	}

	err := image.Create(s.conn(ctx), &models.Image{
		Filename:    obj.Filename,
		ContentType: normalizeContentType(obj.ContentType),
		Data:        obj.Data,
	})
	if err != nil {
		return "", err
	}

	return obj.Filename, nil
}

// Get implements Store.
func (s *DBStore) Get(ctx context.Context, filename string) (*Object, error) {
	img, err := image.Get(s.conn(ctx), filename)
	if err != nil {
		if errors.Is(err, image.ErrImageNotFound) || errors.Is(err, image.ErrFilenameEmpty) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Object{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Data:        img.Data,
	}, nil
}

// Delete implements Store.
func (s *DBStore) Delete(ctx context.Context, filename string) error {
	err := image.Delete(s.conn(ctx), filename)
	if errors.Is(err, image.ErrImageNotFound) {
		return ErrNotFound
	}

	return err
}

func (s *DBStore) conn(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}

	return s.db.WithContext(ctx)
}
