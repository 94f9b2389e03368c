package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a user-authored player stored by the custom entities API
type Player struct {
	ID            uuid.UUID `json:"playerUUID"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	HeightFeet    int       `json:"heightFeet"`
	HeightInches  int       `json:"heightInches"`
	WeightPounds  int       `json:"weightPounds"`
	OverallRating int       `json:"overallRating"`
	Created       time.Time `json:"created"`
	IsCustom      bool      `json:"isCustom"`
}

// PlayerPayload is the full field set sent on create and update
type PlayerPayload struct {
	Name          string `json:"name"`
	Position      string `json:"position"`
	HeightFeet    int    `json:"heightFeet"`
	HeightInches  int    `json:"heightInches"`
	WeightPounds  int    `json:"weightPounds"`
	OverallRating int    `json:"overallRating"`
}

func (p PlayerPayload) DisplayName() string {
	return p.Name
}
