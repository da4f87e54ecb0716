// Package dreams provides the JSON API of the dream collection.
package dreams

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreamboard/dreamboard/internal/config"
	dreamctl "github.com/dreamboard/dreamboard/internal/db/controller/dream"
	"github.com/dreamboard/dreamboard/internal/dream"
	"github.com/dreamboard/dreamboard/internal/identity"
	"github.com/dreamboard/dreamboard/internal/web/handler"
)

const (
	// Path is the path of the dream collection.
	Path = handler.APIPath + "/dreams"

	idParam = "id"
)

// DreamResponse wraps a single dream.
type DreamResponse struct {
	Dream dream.View `json:"dream"`
}

// SuccessResponse acknowledges an operation without payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Service is the dreams handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	dreams *dream.Service
}

// Handler is the dreams handler.
var Handler = Service{}

// Init initializes the dreams handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || cfg == nil || deps.Dreams == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.dreams = deps.Dreams

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:"+idParam, s.Get)
		router.Put("/:"+idParam, s.Update)
		router.Delete("/:"+idParam, s.Delete)
	})

	return nil
}

// List returns one page of dreams with the collection stats.
func (s *Service) List(c *fiber.Ctx) error {
	overview, err := s.dreams.Overview(ListOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(overview)
}

// Create stores a new dream.
func (s *Service) Create(c *fiber.Ctx) error {
	var in dream.CreateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return err
	}

	created, err := s.dreams.Create(in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(DreamResponse{Dream: dream.NewView(*created)})
}

// Get returns a single dream.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := s.dreams.Get(c.Params(idParam))
	if err != nil {
		return err
	}

	return c.JSON(DreamResponse{Dream: dream.NewView(*found)})
}

// Update applies a partial update on behalf of the caller.
func (s *Service) Update(c *fiber.Ctx) error {
	var in dream.UpdateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return err
	}

	updated, err := s.dreams.Update(identity.FromCtx(c), c.Params(idParam), in)
	if err != nil {
		return err
	}

	return c.JSON(DreamResponse{Dream: dream.NewView(*updated)})
}

// Delete removes a dream on behalf of the caller.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.dreams.Delete(identity.FromCtx(c), c.Params(idParam)); err != nil {
		return err
	}

	return c.JSON(SuccessResponse{Success: true})
}

// ListOptions reads sortBy, order and limit from the query string.
func ListOptions(c *fiber.Ctx) dreamctl.ListOptions {
	return dreamctl.ListOptions{
		SortBy: c.Query("sortBy", dreamctl.DefaultSortBy),
		Order:  c.Query("order", dreamctl.OrderDesc),
		Limit:  c.QueryInt("limit"),
	}
}
