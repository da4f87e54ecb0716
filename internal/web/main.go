package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/blob"
	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/dream"
	"github.com/dreamboard/dreamboard/internal/identity"
	fiberlogger "github.com/dreamboard/dreamboard/internal/logger/adapter/fiber"
	"github.com/dreamboard/dreamboard/internal/web/handler"
	"github.com/dreamboard/dreamboard/internal/web/handler/dreams"
	"github.com/dreamboard/dreamboard/internal/web/handler/home"
	"github.com/dreamboard/dreamboard/internal/web/handler/images"
	"github.com/dreamboard/dreamboard/internal/web/handler/upload"
	"github.com/dreamboard/dreamboard/internal/web/handler/wallet"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"

	// bodyLimitSlack is the room left for multipart framing above the upload limit.
	bodyLimitSlack = 1 << 20
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// Addr is the listen address of the configured port.
func (s *Service) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Webserver.Port)
}

// WaitShutdown waits for graceful shutdown of the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive endpoint for the configured time, then stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the check alive endpoint answers healthy.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// CheckAlive answers 200 while serving and 503 during shutdown.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, store blob.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if store == nil {
		panic("blob store cannot be nil")
	}

	templateEngine := newTemplateEngine(cfg)

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			BodyLimit:      int(cfg.Upload.MaxSize) + bodyLimitSlack,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(identity.Middleware)

	deps := handler.Deps{
		DB:     db,
		Dreams: dream.New(db, nil, cfg.Listing),
		Store:  store,
	}

	// init handlers
	handlers := []struct {
		name    string
		service handler.Service
	}{
		{"wallet", &wallet.Handler},
		{"dreams", &dreams.Handler},
		{"upload", &upload.Handler},
		{"images", &images.Handler},
		{"home", &home.Handler},
	}
	for _, h := range handlers {
		if err := h.service.Init(app, cfg, deps); err != nil {
			log.Fatal().Err(err).Str("handler", h.name).Msg("failed to init handler")
		}
	}

	return service
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("amount", func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	templateEngine.AddFunc("shortAddress", shortAddress)

	return templateEngine
}

// shortAddress abbreviates a wallet address to 0x1234…abcd.
func shortAddress(address string) string {
	const keep = 6

	if len(address) <= 2*keep {
		return address
	}

	return address[:keep] + "…" + address[len(address)-4:]
}
