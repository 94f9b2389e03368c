package espn_client

import (
	"context"
	"fmt"
	"strconv"
)

type ESPNStatus struct {
	DisplayClock string `json:"displayClock"`
	Period       int    `json:"period"`
	Type         struct {
		Name      string `json:"name"`
		Completed bool   `json:"completed"`
		Detail    string `json:"detail"`
	} `json:"type"`
}

type ESPNCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     ESPNTeam `json:"team"`
}

type ESPNEvent struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ShortName    string     `json:"shortName"`
	Date         string     `json:"date"`
	Status       ESPNStatus `json:"status"`
	Competitions []struct {
		Competitors []ESPNCompetitor `json:"competitors"`
	} `json:"competitions"`
}

type ESPNScoreboardResponse struct {
	Events []ESPNEvent `json:"events"`
}

// Side is one team's line in a game
type Side struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Score        int    `json:"score"`
}

// Game is a flattened scoreboard entry
type Game struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Detail string `json:"detail"`
	Clock  string `json:"clock"`
	Period int    `json:"period"`
	Home   Side   `json:"home"`
	Away   Side   `json:"away"`
}

// Live reports whether the game is being played right now
func (g Game) Live() bool {
	return g.Status == StatusInProgress
}

// Finished reports whether the game has a final score
func (g Game) Finished() bool {
	return g.Status == StatusFinal || g.Status == StatusCompleted
}

// GetScoreboard retrieves today's games
func (c *EspnClient) GetScoreboard(ctx context.Context) ([]Game, error) {
	var response ESPNScoreboardResponse
	if err := c.GetJSON(ctx, ScoreboardEndpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	games := make([]Game, 0, len(response.Events))
	for _, event := range response.Events {
		game := Game{
			ID:     event.ID,
			Name:   event.ShortName,
			Date:   event.Date,
			Status: event.Status.Type.Name,
			Detail: event.Status.Type.Detail,
			Clock:  event.Status.DisplayClock,
			Period: event.Status.Period,
		}
		if game.Name == "" {
			game.Name = event.Name
		}

		if len(event.Competitions) > 0 {
			for _, competitor := range event.Competitions[0].Competitors {
				side := Side{
					Abbreviation: competitor.Team.Abbreviation,
					DisplayName:  competitor.Team.DisplayName,
				}
				// Scheduled games carry an empty or "0" score
				if score, err := strconv.Atoi(competitor.Score); err == nil {
					side.Score = score
				}
				switch competitor.HomeAway {
				case "home":
					game.Home = side
				case "away":
					game.Away = side
				}
			}
		}

		games = append(games, game)
	}

	return games, nil
}
