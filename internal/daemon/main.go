// Package daemon wires configuration, database, session storage, blob store and web service.
package daemon

import (
	"context"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/blob"
	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/db"
	"github.com/dreamboard/dreamboard/internal/db/dsn"
	"github.com/dreamboard/dreamboard/internal/logger"
	"github.com/dreamboard/dreamboard/internal/web"
	"github.com/dreamboard/dreamboard/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg            *config.Config
	db             *gorm.DB
	sessionStorage fiber.Storage
	webService     *web.Service
}

// Start serves http until SIGINT or SIGTERM, then shuts down and releases the database.
func (d *Daemon) Start() error {
	go func() {
		if err := d.webService.Start(d.webService.Addr()); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	log.Info().Str("addr", d.webService.Addr()).Str("url", d.cfg.Webserver.URL).Msg("dreamboard started")

	d.webService.WaitShutdown()

	return d.Close()
}

// Close releases the session storage and the database connection.
func (d *Daemon) Close() error {
	if d.sessionStorage != nil {
		if err := d.sessionStorage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	return db.Close(d.db)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err
	}

	seed(cfg, conn)

	sessionStorage := newSessionStorage(cfg)
	session.Init(sessionStorage)

	store, err := blob.New(context.Background(), cfg.Blob, conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init blob store")
	}

	log.Info().Str("backend", cfg.Blob.Backend).Msg("blob store ready")

	return &Daemon{
		cfg:            cfg,
		db:             conn,
		sessionStorage: sessionStorage,
		webService:     web.New(cfg, conn, store),
	}, nil
}

// newSessionStorage keeps sessions next to the data for server databases, in memory for sqlite.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.GormEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("sessions are kept in memory and lost on restart")
		return nil
	}
}
