// Package dream implements the dream lifecycle on top of the persistence controllers:
// input validation, ownership checks and the listing overview.
package dream

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/config"
	dreamctl "github.com/dreamboard/dreamboard/internal/db/controller/dream"
	"github.com/dreamboard/dreamboard/internal/db/controller/stats"
	"github.com/dreamboard/dreamboard/internal/db/models"
	"github.com/dreamboard/dreamboard/internal/identity"
)

var (
	// ErrUnauthorized is returned for changes without a caller identity.
	ErrUnauthorized = apperr.New(apperr.ErrUnauthorized, "Wallet not connected")
	// ErrForbidden is returned when the caller is not the creator of the dream.
	ErrForbidden = apperr.New(apperr.ErrForbidden, "Only the creator can modify this dream")
)

// View is a dream with its derived progress figures.
type View struct {
	models.Dream
	Progress      float64 `json:"progress"`
	PercentFunded int     `json:"percentFunded"`
}

// NewView derives the progress figures of a dream.
func NewView(d models.Dream) View {
	return View{Dream: d, Progress: d.Progress(), PercentFunded: d.PercentFunded()}
}

// Overview is a page of dreams together with the collection stats.
type Overview struct {
	Dreams []View               `json:"dreams"`
	Stats  stats.Stats          `json:"stats"`
	Sort   dreamctl.ListOptions `json:"-"`
}

// Service runs the dream lifecycle against an injected database.
type Service struct {
	db       *gorm.DB
	validate *validator.Validate
	listing  config.Listing
}

// New returns a service. A nil validator gets a default one.
func New(db *gorm.DB, validate *validator.Validate, listing config.Listing) *Service {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}

	validate.RegisterTagNameFunc(jsonFieldName)

	return &Service{db: db, validate: validate, listing: listing}
}

// Create validates the input and stores a new active dream.
func (s *Service) Create(in CreateInput) (*models.Dream, error) {
	in.normalize()

	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	created, err := dreamctl.Create(s.db, in.model())
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", created.ID).Str("creator", created.Creator).Msg("dream created")

	return created, nil
}

// Get returns a dream by id.
func (s *Service) Get(id string) (*models.Dream, error) {
	return dreamctl.GetByID(s.db, id)
}

// List returns one page of dreams.
func (s *Service) List(opts dreamctl.ListOptions) ([]models.Dream, error) {
	return dreamctl.List(s.db, s.limit(opts))
}

// Overview returns one page of dreams and the collection stats.
func (s *Service) Overview(opts dreamctl.ListOptions) (*Overview, error) {
	opts, err := s.limit(opts).Normalize()
	if err != nil {
		return nil, err
	}

	dreams, err := dreamctl.List(s.db, opts)
	if err != nil {
		return nil, err
	}

	st, err := stats.Compute(s.db)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(dreams))
	for _, d := range dreams {
		views = append(views, NewView(d))
	}

	return &Overview{Dreams: views, Stats: st, Sort: opts}, nil
}

// Update applies a partial update on behalf of the dream's creator.
func (s *Service) Update(caller identity.Identity, id string, in UpdateInput) (*models.Dream, error) {
	if err := s.authorize(caller, id); err != nil {
		return nil, err
	}

	updated, err := dreamctl.UpdateByID(s.db, id, in.update())
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", id).Str("caller", caller.Address).Msg("dream updated")

	return updated, nil
}

// Delete removes a dream on behalf of its creator.
func (s *Service) Delete(caller identity.Identity, id string) error {
	if err := s.authorize(caller, id); err != nil {
		return err
	}

	if err := dreamctl.DeleteByID(s.db, id); err != nil {
		return err
	}

	log.Info().Str("id", id).Str("caller", caller.Address).Msg("dream deleted")

	return nil
}

// authorize checks that the caller created the dream.
func (s *Service) authorize(caller identity.Identity, id string) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}

	owner, err := dreamctl.Owner(s.db, id)
	if err != nil {
		return err
	}

	if !caller.Is(owner) {
		return ErrForbidden
	}

	return nil
}

// limit applies the configured page size bounds.
func (s *Service) limit(opts dreamctl.ListOptions) dreamctl.ListOptions {
	if opts.Limit < 1 && s.listing.DefaultLimit > 0 {
		opts.Limit = s.listing.DefaultLimit
	}

	if s.listing.MaxLimit > 0 && opts.Limit > s.listing.MaxLimit {
		opts.Limit = s.listing.MaxLimit
	}

	return opts
}

// validateInput lists every violated field in a single validation error.
func (s *Service) validateInput(in *CreateInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "gt":
			// zero is what an absent or unparsable amount decodes to
			if amount, ok := fe.Value().(Amount); ok && amount == 0 {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fe.Field())
		default:
			invalid = append(invalid, fe.Field())
		}
	}

	if len(missing) > 0 {
		return apperr.Validation("Missing required fields", missing...)
	}

	return apperr.Validation("Invalid fields", invalid...)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}
