package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/config"
	dreamctl "github.com/dreamboard/dreamboard/internal/db/controller/dream"
	"github.com/dreamboard/dreamboard/internal/db/controller/stats"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

const (
	demoCreator = "0x0000000000000000000000000000000000000001"
	demoImage   = "/static/img/placeholder.svg"
)

// seed adds demo dreams to an empty database in dev mode.
func seed(cfg *config.Config, db *gorm.DB) {
	if !cfg.DevMode {
		return
	}

	st, err := stats.Compute(db)
	if err != nil || st.TotalCount > 0 {
		return
	}

	demos := []models.Dream{
		{Title: "Community garden", Description: "Raised beds and a tool shed for the neighbourhood.", FundingGoal: 1.5},
		{Title: "Open source telescope", Description: "A 3D printed telescope anyone can build.", FundingGoal: 0.8},
		{Title: "Street library", Description: "Weatherproof book boxes on every corner.", FundingGoal: 0.3},
	}

	for i := range demos {
		demos[i].Creator = demoCreator
		demos[i].Telegram = "@dreamboard"
		demos[i].ImageURL = demoImage

		if _, err = dreamctl.Create(db, &demos[i]); err != nil {
			log.Error().Err(err).Msg("failed to seed demo dream")
			return
		}
	}

	log.Info().Int("dreams", len(demos)).Msg("seeded demo dreams")
}
