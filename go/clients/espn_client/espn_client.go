package espn_client

import (
	"github.com/mcdev12/courtside/go/clients"
)

// EspnClient reads NBA teams, scores and news from the ESPN site API.
// The API is public, so no key is attached.
type EspnClient struct {
	*clients.BaseClient
}

func NewEspnClient(baseURL string) *EspnClient {
	if baseURL == "" {
		baseURL = BaseURL
	}
	client := &EspnClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(JsonHeader, JsonContentType)

	return client
}
