package espn_client

import (
	"context"
	"fmt"
	"time"
)

type ESPNArticle struct {
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	Published   time.Time `json:"published"`
	Links       struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
}

type ESPNNewsResponse struct {
	Articles []ESPNArticle `json:"articles"`
}

// Article is a news feed entry
type Article struct {
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	Published   time.Time `json:"published"`
	Link        string    `json:"link"`
}

// GetNews retrieves the latest NBA headlines
func (c *EspnClient) GetNews(ctx context.Context) ([]Article, error) {
	var response ESPNNewsResponse
	if err := c.GetJSON(ctx, NewsEndpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	articles := make([]Article, 0, len(response.Articles))
	for _, a := range response.Articles {
		articles = append(articles, Article{
			Headline:    a.Headline,
			Description: a.Description,
			Published:   a.Published,
			Link:        a.Links.Web.Href,
		})
	}
	return articles, nil
}
