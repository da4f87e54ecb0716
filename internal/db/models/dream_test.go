package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDreamStatusValid(t *testing.T) {
	for _, s := range []DreamStatus{DreamStatusActive, DreamStatusFunded, DreamStatusCompleted, DreamStatusCancelled} {
		assert.True(t, s.Valid(), s)
	}

	assert.False(t, DreamStatus("").Valid())
	assert.False(t, DreamStatus("ACTIVE").Valid())
	assert.False(t, DreamStatus("paused").Valid())
}

func TestDreamProgress(t *testing.T) {
	tests := []struct {
		name        string
		goal        float64
		current     float64
		wantCapped  float64
		wantPercent int
	}{
		{"nothing raised", 10, 0, 0, 0},
		{"half way", 10, 5, 50, 50},
		{"rounded", 3, 1, 100.0 / 3, 33},
		{"over funded", 10, 25, 100, 250},
		{"zero goal", 0, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dream{FundingGoal: tt.goal, CurrentFunding: tt.current}
			assert.InDelta(t, tt.wantCapped, d.Progress(), 1e-9)
			assert.Equal(t, tt.wantPercent, d.PercentFunded())
		})
	}
}

func TestDreamBeforeCreateDefaults(t *testing.T) {
	d := Dream{}
	assert.NoError(t, d.BeforeCreate(nil))
	assert.Len(t, d.ID, 36)
	assert.Equal(t, DreamStatusActive, d.Status)

	kept := Dream{ID: "fixed", Status: DreamStatusFunded}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, DreamStatusFunded, kept.Status)
}
