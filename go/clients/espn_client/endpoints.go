package espn_client

const (
	// Base URL of the public ESPN site API for the NBA
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"

	// API Endpoints
	TeamsEndpoint      = "/teams"
	ScoreboardEndpoint = "/scoreboard"
	NewsEndpoint       = "/news"

	// Headers
	JsonHeader      = "accept"
	JsonContentType = "application/json"
)

// Game status names reported by the scoreboard
const (
	StatusScheduled  = "STATUS_SCHEDULED"
	StatusInProgress = "STATUS_IN_PROGRESS"
	StatusCompleted  = "STATUS_COMPLETED"
	StatusFinal      = "STATUS_FINAL"
)

// ZeroClock is the display clock of a finished period
const ZeroClock = "0.0"
