package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DreamStatus is the lifecycle state of a dream.
type DreamStatus string

const (
	// DreamStatusActive is the state of every new dream.
	DreamStatusActive DreamStatus = "active"
	// DreamStatusFunded marks a dream whose creator declared the goal reached.
	DreamStatusFunded DreamStatus = "funded"
	// DreamStatusCompleted marks a dream that was fulfilled.
	DreamStatusCompleted DreamStatus = "completed"
	// DreamStatusCancelled marks a dream withdrawn by its creator.
	DreamStatusCancelled DreamStatus = "cancelled"
)

// Valid reports whether s is one of the known states.
func (s DreamStatus) Valid() bool {
	switch s {
	case DreamStatusActive, DreamStatusFunded, DreamStatusCompleted, DreamStatusCancelled:
		return true
	}

	return false
}

// Dream is a crowdfunding campaign.
// Reaching the funding goal does not change Status, transitions are explicit updates.
type Dream struct {
	ID             string      `gorm:"primaryKey;size:36"                     json:"id"`
	Title          string      `gorm:"size:255;not null"                      json:"title"`
	Description    string      `gorm:"type:text;not null"                     json:"description"`
	FundingGoal    float64     `gorm:"not null;index"                         json:"fundingGoal"`
	CurrentFunding float64     `gorm:"not null;default:0;index"               json:"currentFunding"`
	Creator        string      `gorm:"size:42;not null;index"                 json:"creator"`
	Telegram       string      `gorm:"size:255;not null"                      json:"telegram"`
	ImageURL       string      `gorm:"column:image_url;size:512;not null"     json:"imageUrl"`
	Status         DreamStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt      time.Time   `gorm:"index"                                  json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"index"                                  json:"updatedAt"`
}

// BeforeCreate assigns the id and the defaults of a new dream.
func (d *Dream) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	if d.Status == "" {
		d.Status = DreamStatusActive
	}

	return nil
}

// Progress is the funded share of the goal in percent, capped at 100.
func (d *Dream) Progress() float64 {
	if d.FundingGoal <= 0 {
		return 0
	}

	return math.Min(100, d.CurrentFunding/d.FundingGoal*100) //nolint:mnd
}

// PercentFunded is the rounded funded share of the goal, not capped.
func (d *Dream) PercentFunded() int {
	if d.FundingGoal <= 0 {
		return 0
	}

	return int(math.Round(d.CurrentFunding / d.FundingGoal * 100)) //nolint:mnd
}
