package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

func TestOpenMigrateClose(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{GormEngine: config.GormEngineSQLite, Name: ":memory:", LogLevel: "silent"},
	}

	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}

	require.NoError(t, Close(db))
}

func TestDialectorUnknownEngine(t *testing.T) {
	_, err := Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestNilDB(t *testing.T) {
	require.ErrorIs(t, Migrate(nil), ErrDBNil)
	require.ErrorIs(t, Close(nil), ErrDBNil)
}
