// Package images serves stored images.
package images

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreamboard/dreamboard/internal/blob"
	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/web/handler"
)

// Path is the image namespace, images are addressed by filename below it.
const Path = handler.APIPath + "/images"

// Service is the images handler service.
type Service struct {
	handler.Service
	store blob.Store
}

// Handler is the images handler.
var Handler = Service{}

// Init initializes the images handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || deps.Store == nil {
		return handler.ErrNilDependency
	}

	s.store = deps.Store

	app.Get(Path+"/:filename", s.Get)

	return nil
}

// Get sends the image bytes with an immutable cache header.
func (s *Service) Get(c *fiber.Ctx) error {
	obj, err := s.store.Get(c.UserContext(), c.Params("filename"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderCacheControl, blob.CacheControl)

	return c.Send(obj.Data)
}
