package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// GM is a user-authored general manager. Teams holds the display names of
// the franchises the GM has run.
type GM struct {
	ID       uuid.UUID `json:"gmUUID"`
	Name     string    `json:"name"`
	Teams    []string  `json:"teams"`
	Created  time.Time `json:"created"`
	IsCustom bool      `json:"isCustom"`
}

type GMPayload struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

func (p GMPayload) DisplayName() string {
	return p.Name
}

// Clone returns a copy that shares no memory with g
func (g GM) Clone() GM {
	g.Teams = slices.Clone(g.Teams)
	return g
}
