package dream

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	dreamctl "github.com/dreamboard/dreamboard/internal/db/controller/dream"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

// Amount is a funding amount accepted as JSON number or numeric string.
// Strings that are not a finite number decode to zero and fail validation.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			*a = 0
			return nil //nolint:nilerr
		}

		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*a = Amount(f)

	return nil
}

// CreateInput is the payload of a new dream.
type CreateInput struct {
	Title       string `json:"title"       form:"title"       validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	FundingGoal Amount `json:"fundingGoal" form:"fundingGoal" validate:"gt=0"`
	Creator     string `json:"creator"     form:"creator"     validate:"required,eth_addr"`
	ImageURL    string `json:"imageUrl"    form:"imageUrl"    validate:"required"`
	Telegram    string `json:"telegram"    form:"telegram"    validate:"required"`
}

func (in *CreateInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Creator = strings.ToLower(strings.TrimSpace(in.Creator))
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Telegram = strings.TrimSpace(in.Telegram)
}

func (in *CreateInput) model() *models.Dream {
	return &models.Dream{
		Title:       in.Title,
		Description: in.Description,
		FundingGoal: float64(in.FundingGoal),
		Creator:     in.Creator,
		ImageURL:    in.ImageURL,
		Telegram:    in.Telegram,
	}
}

// UpdateInput is a partial update, absent fields stay untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	FundingGoal *Amount `json:"fundingGoal"`
	Status      *string `json:"status"`
	ImageURL    *string `json:"imageUrl"`
	Telegram    *string `json:"telegram"`
}

func (in *UpdateInput) update() dreamctl.Update {
	var update dreamctl.Update

	update.Title = trimmed(in.Title)
	update.Description = trimmed(in.Description)
	update.ImageURL = trimmed(in.ImageURL)
	update.Telegram = trimmed(in.Telegram)

	if in.FundingGoal != nil {
		goal := float64(*in.FundingGoal)
		update.FundingGoal = &goal
	}

	if in.Status != nil {
		status := models.DreamStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		update.Status = &status
	}

	return update
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)

	return &v
}
