// Package db opens, migrates and closes the gorm connection shared by all controllers.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/db/dsn"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

var (
	// ErrUnknownEngine is returned for a gorm engine without driver.
	ErrUnknownEngine = errors.New("unknown gorm engine")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Dialector returns the gorm driver for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.GormEnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg)), nil
	case config.GormEngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", cfg.DB.GormEngine)
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(cfg.DB.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Str("name", cfg.DB.Name).Msg("database connected")

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return errors.Wrap(db.AutoMigrate(models.All()...), "failed to migrate database")
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close database")
}

func logLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
