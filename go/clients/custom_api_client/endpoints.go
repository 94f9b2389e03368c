package custom_api_client

const (
	// API Endpoints
	CustomPlayersEndpoint = "/custom/players"
	CustomCoachesEndpoint = "/custom/coaches"
	CustomGMsEndpoint     = "/custom/gms"

	// Collection keys inside list envelopes
	CustomPlayersKey = "customPlayers"
	CustomCoachesKey = "customCoaches"
	CustomGMsKey     = "customGMs"

	// ID fields sent alongside update payloads
	PlayerIDKey = "playerUUID"
	CoachIDKey  = "coachUUID"
	GMIDKey     = "gmUUID"

	// Headers
	AuthorizationHeader = "Authorization"
	AcceptHeader        = "Accept"
	JsonContentType     = "application/json"
)
