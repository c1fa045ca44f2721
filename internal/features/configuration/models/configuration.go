package models

import (
	"time"

	drawmodels "prize-draw-backend/internal/features/draw/models"
)

// NamedConfiguration is a saved, reusable drawing setup: the roster, the
// round settings and the rounds generated from them. Rounds are embedded so
// loading a configuration does not depend on re-running the planner.
type NamedConfiguration struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Participants  []drawmodels.Participant `json:"participants"`
	RoundSettings drawmodels.RoundSettings `json:"round_settings"`
	Rounds        []drawmodels.Round       `json:"rounds"`
	CreatedAt     time.Time                `json:"created_at"`
	LastModified  time.Time                `json:"last_modified"`
}

// ConfigurationCreate is the payload for saving a new configuration.
type ConfigurationCreate struct {
	Name          string                   `json:"name" binding:"required,min=1,max=100"`
	Participants  []drawmodels.Participant `json:"participants"`
	RoundSettings drawmodels.RoundSettings `json:"round_settings" binding:"required"`
}

// ConfigurationUpdate carries the editable fields of a configuration.
type ConfigurationUpdate struct {
	Name          string                   `json:"name" binding:"required,min=1,max=100"`
	Participants  []drawmodels.Participant `json:"participants"`
	RoundSettings drawmodels.RoundSettings `json:"round_settings" binding:"required"`
}
