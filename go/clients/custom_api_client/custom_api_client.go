package custom_api_client

import (
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/models"
)

// CustomApiClient talks to the custom entities REST API
type CustomApiClient struct {
	*clients.BaseClient
}

func NewCustomApiClient(baseURL, apiToken string) *CustomApiClient {
	client := &CustomApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, JsonContentType)
	if apiToken != "" {
		client.SetHeader(AuthorizationHeader, "Bearer "+apiToken)
	}

	return client
}

func (c *CustomApiClient) Players() *Resource[models.Player, models.PlayerPayload] {
	return NewResource[models.Player, models.PlayerPayload](c, CustomPlayersEndpoint, CustomPlayersKey, PlayerIDKey)
}

func (c *CustomApiClient) Coaches() *Resource[models.Coach, models.CoachPayload] {
	return NewResource[models.Coach, models.CoachPayload](c, CustomCoachesEndpoint, CustomCoachesKey, CoachIDKey)
}

func (c *CustomApiClient) GMs() *Resource[models.GM, models.GMPayload] {
	return NewResource[models.GM, models.GMPayload](c, CustomGMsEndpoint, CustomGMsKey, GMIDKey)
}
