// Package stats aggregates figures over the whole dream collection.
package stats

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Stats are the collection wide figures shown next to every listing.
type Stats struct {
	TotalCount          int64   `json:"totalCount"`
	CompletedCount      int64   `json:"completedCount"`
	TotalFunding        float64 `json:"totalFunding"`
	UniqueCreatorsCount int64   `json:"uniqueCreatorsCount"`
}

// Compute reads the figures at call time. The queries are not isolated from concurrent writes.
func Compute(db *gorm.DB) (Stats, error) {
	var stats Stats

	if db == nil {
		return stats, ErrDBNil
	}

	dreams := func() *gorm.DB {
		return db.Model(&models.Dream{})
	}

	if err := dreams().Count(&stats.TotalCount).Error; err != nil {
		return stats, pkgerrors.Wrap(err, "failed to count dreams")
	}

	err := dreams().Where("status = ?", models.DreamStatusCompleted).Count(&stats.CompletedCount).Error
	if err != nil {
		return stats, pkgerrors.Wrap(err, "failed to count completed dreams")
	}

	err = dreams().Select("COALESCE(SUM(current_funding), 0)").Scan(&stats.TotalFunding).Error
	if err != nil {
		return stats, pkgerrors.Wrap(err, "failed to sum funding")
	}

	if err = dreams().Distinct("creator").Count(&stats.UniqueCreatorsCount).Error; err != nil {
		return stats, pkgerrors.Wrap(err, "failed to count creators")
	}

	return stats, nil
}
