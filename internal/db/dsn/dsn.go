// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/dreamboard/dreamboard/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.GormEnginePostgres:
		return postgres(cfg.DB)
	case config.GormEngineSQLite:
		return sqlite(cfg.DB)
	default:
		return mysql(cfg.DB)
	}
}

func mysql(db config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// postgres builds a URL style connection string, Extras is appended as query.
func postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

func sqlite(db config.DB) string {
	if db.Extras == "" {
		return db.Name
	}

	return db.Name + "?" + db.Extras
}
