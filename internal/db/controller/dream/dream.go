// Package dream provides persistence operations for dreams.
package dream

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

const (
	// DefaultLimit is the page size used when none or an invalid one is requested.
	DefaultLimit = 9
	// MaxLimit caps the page size.
	MaxLimit = 100

	// DefaultSortBy is the field used when no sort field is requested.
	DefaultSortBy = "createdAt"
	// OrderAsc selects ascending order, any other value sorts descending.
	OrderAsc = "asc"
	// OrderDesc is the default order.
	OrderDesc = "desc"

	idQueryPattern = "id = ?"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrDreamNotFound is returned for unknown or malformed dream ids.
	ErrDreamNotFound = apperr.New(apperr.ErrNotFound, "Dream not found")
	// ErrMissingFields is returned when a dream lacks a required field.
	ErrMissingFields = apperr.New(apperr.ErrValidation, "Missing required fields")
	// ErrInvalidFundingGoal is returned for a funding goal that is not a finite number.
	ErrInvalidFundingGoal = apperr.New(apperr.ErrValidation, "Invalid funding goal")
	// ErrInvalidStatus is returned for a status outside the lifecycle states.
	ErrInvalidStatus = apperr.New(apperr.ErrValidation, "Invalid status")
	// ErrInvalidSortField is returned for a sort field outside the allow-list.
	ErrInvalidSortField = apperr.New(apperr.ErrValidation, "Invalid sort field")
)

// sortColumns maps the public sort fields to their columns.
var sortColumns = map[string]string{
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
	"fundingGoal":    "funding_goal",
	"currentFunding": "current_funding",
	"title":          "title",
	"status":         "status",
}

// SortFields returns the accepted sort fields.
func SortFields() []string {
	return []string{"createdAt", "updatedAt", "fundingGoal", "currentFunding", "title", "status"}
}

// Update holds the optional fields of a partial update, nil fields stay untouched.
//
// Empty strings are ignored for Title, Description, Status and ImageURL, a FundingGoal <= 0 is ignored.
// Telegram is applied whenever set, the empty string clears the contact.
type Update struct {
	Title       *string
	Description *string
	FundingGoal *float64
	Status      *models.DreamStatus
	ImageURL    *string
	Telegram    *string
}

// ListOptions selects the ordering and page size of List.
type ListOptions struct {
	SortBy string
	Order  string
	Limit  int
}

// Create inserts a new dream, the id and lifecycle defaults are assigned here.
func Create(db *gorm.DB, dream *models.Dream) (*models.Dream, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if dream == nil || dream.Title == "" || dream.Description == "" || dream.FundingGoal <= 0 ||
		dream.Creator == "" || dream.Telegram == "" || dream.ImageURL == "" {
		return nil, ErrMissingFields
	}
	if !finite(dream.FundingGoal) {
		return nil, ErrInvalidFundingGoal
	}

	dream.ID = ""
	dream.Creator = strings.ToLower(dream.Creator)
	dream.CurrentFunding = 0
	dream.Status = models.DreamStatusActive

	if err := db.Create(dream).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create dream")
	}

	return dream, nil
}

// GetByID retrieves a dream by its id.
func GetByID(db *gorm.DB, id string) (*models.Dream, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if uuid.Validate(id) != nil {
		return nil, ErrDreamNotFound
	}

	var dream models.Dream
	result := db.Where(idQueryPattern, id).First(&dream)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDreamNotFound
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to get dream")
	}

	return &dream, nil
}

// Owner returns the creator address of a dream.
func Owner(db *gorm.DB, id string) (string, error) {
	dream, err := GetByID(db, id)
	if err != nil {
		return "", err
	}

	return dream.Creator, nil
}

// UpdateByID applies a partial update and returns the stored dream.
func UpdateByID(db *gorm.DB, id string, update Update) (*models.Dream, error) {
	dream, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	values, err := update.values()
	if err != nil {
		return nil, err
	}

	// an empty map still refreshes updated_at
	if err = db.Model(dream).Updates(values).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to update dream")
	}

	return GetByID(db, id)
}

// DeleteByID removes a dream.
func DeleteByID(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}
	if uuid.Validate(id) != nil {
		return ErrDreamNotFound
	}

	result := db.Where(idQueryPattern, id).Delete(&models.Dream{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete dream")
	}
	if result.RowsAffected == 0 {
		return ErrDreamNotFound
	}

	return nil
}

// List returns one page of dreams ordered by the requested field, ties broken by id.
func List(db *gorm.DB, opts ListOptions) ([]models.Dream, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	dreams := make([]models.Dream, 0, opts.Limit)
	result := db.
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortColumns[opts.SortBy]},
			Desc:   opts.Order == OrderDesc,
		}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(opts.Limit).
		Find(&dreams)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "failed to list dreams")
	}

	return dreams, nil
}

// Normalize fills the defaults and rejects unknown sort fields.
func (o ListOptions) Normalize() (ListOptions, error) {
	if o.SortBy == "" {
		o.SortBy = DefaultSortBy
	}
	if _, ok := sortColumns[o.SortBy]; !ok {
		return o, ErrInvalidSortField
	}

	if strings.EqualFold(o.Order, OrderAsc) {
		o.Order = OrderAsc
	} else {
		o.Order = OrderDesc
	}

	switch {
	case o.Limit < 1:
		o.Limit = DefaultLimit
	case o.Limit > MaxLimit:
		o.Limit = MaxLimit
	}

	return o, nil
}

func (u Update) values() (map[string]any, error) {
	values := make(map[string]any)

	if u.Title != nil && *u.Title != "" {
		values["title"] = *u.Title
	}
	if u.Description != nil && *u.Description != "" {
		values["description"] = *u.Description
	}
	if u.FundingGoal != nil && *u.FundingGoal > 0 {
		if !finite(*u.FundingGoal) {
			return nil, ErrInvalidFundingGoal
		}
		values["funding_goal"] = *u.FundingGoal
	}
	if u.Status != nil && *u.Status != "" {
		if !u.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		values["status"] = *u.Status
	}
	if u.ImageURL != nil && *u.ImageURL != "" {
		values["image_url"] = *u.ImageURL
	}
	if u.Telegram != nil {
		values["telegram"] = *u.Telegram
	}

	return values, nil
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
