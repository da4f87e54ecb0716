// Package home renders the dream listing page.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamboard/dreamboard/internal/config"
	dreamctl "github.com/dreamboard/dreamboard/internal/db/controller/dream"
	"github.com/dreamboard/dreamboard/internal/dream"
	"github.com/dreamboard/dreamboard/internal/identity"
	"github.com/dreamboard/dreamboard/internal/web/handler"
	"github.com/dreamboard/dreamboard/internal/web/handler/dreams"
	"github.com/dreamboard/dreamboard/internal/web/navigation"
)

const (
	// Path is the path of the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "home/home"
)

// sortLabels are the sort links shown above the listing, in display order.
var sortLabels = []struct{ field, label string }{
	{"createdAt", "Newest"},
	{"fundingGoal", "Goal"},
	{"currentFunding", "Raised"},
	{"title", "Title"},
	{"status", "Status"},
}

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	dreams *dream.Service
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || cfg == nil || deps.Dreams == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.dreams = deps.Dreams

	app.Get(Path, s.Get)

	return nil
}

// Get renders the listing with the collection stats. An unknown sort field falls back to the default order.
func (s *Service) Get(c *fiber.Ctx) error {
	overview, err := s.dreams.Overview(dreams.ListOptions(c))
	if errors.Is(err, dreamctl.ErrInvalidSortField) {
		overview, err = s.dreams.Overview(dreamctl.ListOptions{})
	}
	if err != nil {
		return err
	}

	nav := navigation.NewContext(s.cfg.Title, "home", Path).
		AddBreadcrumb("Home", Path, true).
		WithSort(overview.Sort.SortBy, overview.Sort.Order)
	for _, l := range sortLabels {
		nav.AddSortOption(l.field, l.label)
	}

	log.Debug().
		Int("dreams", len(overview.Dreams)).
		Str("sort_by", overview.Sort.SortBy).
		Str("order", overview.Sort.Order).
		Msg("home listing retrieved")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Title":      s.cfg.Title,
		"Dreams":     overview.Dreams,
		"Stats":      overview.Stats,
		"Caller":     identity.FromCtx(c),
	}, handler.BaseLayout)
}
