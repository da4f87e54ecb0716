package image

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Image{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		image         *models.Image
		expectedError error
	}{
		{
			name:          "nil database",
			image:         &models.Image{Filename: "a.png"},
			expectedError: ErrDBNil,
		},
		{
			name:          "nil image",
			dbParam:       db,
			expectedError: ErrFilenameEmpty,
		},
		{
			name:          "empty filename",
			dbParam:       db,
			image:         &models.Image{ContentType: "image/png", Data: []byte{1}},
			expectedError: ErrFilenameEmpty,
		},
		{
			name:    "successful create",
			dbParam: db,
			image:   &models.Image{Filename: "a.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db.Exec("DELETE FROM images")

			err := Create(tc.dbParam, tc.image)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)

			stored, err := Get(db, tc.image.Filename)
			require.NoError(t, err)
			assert.Equal(t, tc.image.Data, stored.Data)
			assert.Equal(t, "image/png", stored.ContentType)
			assert.Equal(t, int64(3), stored.Size)
		})
	}
}

func TestGetAndDelete(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, "missing.png")
	require.ErrorIs(t, err, ErrImageNotFound)

	_, err = Get(db, "")
	require.ErrorIs(t, err, ErrFilenameEmpty)

	require.NoError(t, Create(db, &models.Image{Filename: "b.gif", ContentType: "image/gif", Data: []byte("GIF89a")}))

	require.NoError(t, Delete(db, "b.gif"))
	require.ErrorIs(t, Delete(db, "b.gif"), ErrImageNotFound)
	require.ErrorIs(t, Delete(nil, "b.gif"), ErrDBNil)
}
