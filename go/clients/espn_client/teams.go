package espn_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/courtside/go/internal/models"
)

// ESPN API response structures
type ESPNTeam struct {
	ID           string            `json:"id"`
	Abbreviation string            `json:"abbreviation"`
	DisplayName  string            `json:"displayName"`
	Logos        []models.TeamLogo `json:"logos"`
}

type ESPNTeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team ESPNTeam `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// GetTeams retrieves every NBA team with its logos
func (c *EspnClient) GetTeams(ctx context.Context) ([]models.TeamData, error) {
	var response ESPNTeamsResponse
	if err := c.GetJSON(ctx, TeamsEndpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get NBA teams: %w", err)
	}

	var teams []models.TeamData
	for _, sport := range response.Sports {
		for _, league := range sport.Leagues {
			for _, entry := range league.Teams {
				teams = append(teams, models.TeamData{
					Abbreviation: entry.Team.Abbreviation,
					DisplayName:  entry.Team.DisplayName,
					Logos:        entry.Team.Logos,
				})
			}
		}
	}

	return teams, nil
}
