// Package user provides persistence operations for wallet identities.
package user

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

const addressQueryPattern = "address = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUserNotFound is returned when no user has the given address.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")
	// ErrAddressEmpty is returned for an empty wallet address.
	ErrAddressEmpty = apperr.New(apperr.ErrValidation, "wallet address cannot be empty")
)

// Get retrieves a user by wallet address.
func Get(db *gorm.DB, address string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if address == "" {
		return nil, ErrAddressEmpty
	}

	var user models.User
	result := db.Where(addressQueryPattern, strings.ToLower(address)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to get user")
	}

	return &user, nil
}

// ResolveOrRegister returns the user of an address, registering it on first sight.
// Concurrent first logins of the same address insert a single row.
func ResolveOrRegister(db *gorm.DB, address string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if address == "" {
		return nil, ErrAddressEmpty
	}

	user := &models.User{Address: strings.ToLower(address)}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "failed to register user")
	}

	return Get(db, user.Address)
}

// Count returns the number of registered users.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "failed to count users")
	}

	return count, nil
}
