package clients

// ExternalSource represents different external data providers
type ExternalSource string

const (
	// ExternalSourceCustom is the REST API storing user-authored entities
	ExternalSourceCustom ExternalSource = "custom"

	// ExternalSourceESPN represents ESPN API
	ExternalSourceESPN ExternalSource = "espn"
)

// ExternalSourceConfig holds configuration for external sources
type ExternalSourceConfig struct {
	Source      ExternalSource `json:"source"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	BaseURL     string         `json:"base_url"`
	Active      bool           `json:"active"`
}

// GetExternalSources returns all configured external sources
func GetExternalSources() map[ExternalSource]ExternalSourceConfig {
	return map[ExternalSource]ExternalSourceConfig{
		ExternalSourceCustom: {
			Source:      ExternalSourceCustom,
			Name:        "Custom Entities API",
			Description: "Custom players, coaches and GMs",
			BaseURL:     "http://localhost:3000/api",
			Active:      true,
		},
		ExternalSourceESPN: {
			Source:      ExternalSourceESPN,
			Name:        "ESPN API",
			Description: "NBA teams, scoreboard and news",
			BaseURL:     "https://site.api.espn.com/apis/site/v2/sports/basketball/nba",
			Active:      true,
		},
	}
}

// ValidateExternalSource checks if the source is valid
func ValidateExternalSource(source ExternalSource) bool {
	sources := GetExternalSources()
	_, exists := sources[source]
	return exists
}

// DefaultBaseURL returns the base URL a source uses when none is configured
func DefaultBaseURL(source ExternalSource) string {
	return GetExternalSources()[source].BaseURL
}

// GetActiveExternalSources returns only active external sources
func GetActiveExternalSources() map[ExternalSource]ExternalSourceConfig {
	all := GetExternalSources()
	active := make(map[ExternalSource]ExternalSourceConfig)

	for source, config := range all {
		if config.Active {
			active[source] = config
		}
	}

	return active
}
