package teams

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// LogoSource is what the store needs from the NBA data API
type LogoSource interface {
	GetTeams(ctx context.Context) ([]models.TeamData, error)
}

// StoreState is a snapshot of the team logo store
type StoreState struct {
	Teams   []models.TeamData `json:"teams"`
	Loading bool              `json:"loading"`
	Error   *string           `json:"error"`
}

// Store caches NBA team names and logos for the team builder
type Store struct {
	source LogoSource

	fetchMu sync.Mutex

	mu    sync.RWMutex
	state StoreState
}

func NewStore(source LogoSource) *Store {
	return &Store{
		source: source,
		state:  StoreState{Teams: []models.TeamData{}},
	}
}

// FetchTeamLogos reloads every team. Failures are recorded in the state.
func (s *Store) FetchTeamLogos(ctx context.Context) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = nil
	s.mu.Unlock()

	teams, err := s.source.GetTeams(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Failed to fetch team logos"
		}
		s.state.Error = &msg
		log.Error().Err(err).Msg("error fetching team logos")
		return
	}
	if teams == nil {
		teams = []models.TeamData{}
	}
	s.state.Teams = teams
}

func (s *Store) State() StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := StoreState{
		Teams:   slices.Clone(s.state.Teams),
		Loading: s.state.Loading,
	}
	if s.state.Error != nil {
		msg := *s.state.Error
		out.Error = &msg
	}
	return out
}

// Sorted returns the teams ordered by abbreviation
func (s *Store) Sorted() []models.TeamData {
	teams := s.State().Teams
	slices.SortStableFunc(teams, func(a, b models.TeamData) int {
		return strings.Compare(a.Abbreviation, b.Abbreviation)
	})
	return teams
}

// ByAbbreviation finds a team by its exact abbreviation
func (s *Store) ByAbbreviation(abbreviation string) (models.TeamData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, team := range s.state.Teams {
		if team.Abbreviation == abbreviation {
			return team, true
		}
	}
	return models.TeamData{}, false
}

// ByConference returns the loaded teams that belong to conference, sorted
func (s *Store) ByConference(conference Conference) []models.TeamData {
	out := []models.TeamData{}
	for _, team := range s.Sorted() {
		if c, ok := ConferenceOf(team.DisplayName); ok && c == conference {
			out = append(out, team)
		}
	}
	return out
}
