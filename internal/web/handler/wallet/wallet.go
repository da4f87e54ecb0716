// Package wallet implements wallet login: the first login of an address registers it,
// every login starts a server session carrying the address.
package wallet

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/db/controller/user"
	"github.com/dreamboard/dreamboard/internal/db/models"
	"github.com/dreamboard/dreamboard/internal/identity"
	"github.com/dreamboard/dreamboard/internal/web/handler"
	"github.com/dreamboard/dreamboard/internal/web/session"
)

const (
	// Path is the route group of the wallet login.
	Path = handler.APIPath + "/auth"
)

// Request is the wallet login payload.
type Request struct {
	Address string `json:"address" form:"address"`
}

// UserResponse wraps the logged in user.
type UserResponse struct {
	User models.User `json:"user"`
}

// MeResponse reports the caller identity.
type MeResponse struct {
	Address string `json:"address"`
}

// Service is the wallet login handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the wallet login handler.
var Handler = Service{}

// Init initializes the wallet login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || cfg == nil || deps.DB == nil {
		return handler.ErrNilDependency
	}

	s.db = deps.DB
	s.cfg = cfg

	app.Route(Path, func(router fiber.Router) {
		router.Post("/wallet", s.Login)
		router.Post("/metamask", s.Login)
		router.Post("/logout", s.Logout)
		router.Get("/me", s.Me)
	})

	return nil
}

// Login registers or resolves the address and starts a session.
func (s *Service) Login(c *fiber.Ctx) error {
	var req Request
	if err := handler.ParseBody(c, &req); err != nil {
		return err
	}

	address, err := identity.Normalize(req.Address)
	if err != nil {
		return err
	}

	u, err := user.ResolveOrRegister(s.db, address)
	if err != nil {
		return err
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return err
	}

	data := &session.Data{Address: u.Address, CreatedAt: time.Now()}
	if err = data.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		return err
	}

	session.SetCookie(c, sessionID, s.cfg.Webserver.Session.ExpiryTime, s.cfg.DevMode)

	log.Info().Str("address", u.Address).Msg("wallet logged in")

	return c.JSON(UserResponse{User: *u})
}

// Logout destroys the session of the request.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := session.Destroy(c.Cookies(session.CookieName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	session.ClearCookie(c, s.cfg.DevMode)

	return c.JSON(fiber.Map{"success": true})
}

// Me returns the caller's wallet address.
func (s *Service) Me(c *fiber.Ctx) error {
	caller := identity.FromCtx(c)
	if !caller.Authenticated() {
		return errUnauthorized
	}

	return c.JSON(MeResponse{Address: caller.Address})
}
