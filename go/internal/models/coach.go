package models

import (
	"time"

	"github.com/google/uuid"
)

// Coach is a user-authored coach stored by the custom entities API
type Coach struct {
	ID            uuid.UUID `json:"coachUUID"`
	Name          string    `json:"name"`
	OverallRating int       `json:"overallRating"`
	Specialty     string    `json:"specialty"`
	Created       time.Time `json:"created"`
	IsCustom      bool      `json:"isCustom"`
}

type CoachPayload struct {
	Name          string `json:"name"`
	OverallRating int    `json:"overallRating"`
	Specialty     string `json:"specialty"`
}

func (p CoachPayload) DisplayName() string {
	return p.Name
}
