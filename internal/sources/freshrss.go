package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ObiAU/freshdigest/internal/models"
)

const streamContentsPath = "/reader/api/0/stream/contents"

// FreshRSSClient reads the reading-list stream of a FreshRSS instance through
// its Google Reader compatible API.
type FreshRSSClient struct {
	base
	apiURL    string
	authToken string
	limit     int
}

type FreshRSSResponse struct {
	Items []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Published int64  `json:"published"`
		Alternate []struct {
			Href string `json:"href"`
		} `json:"alternate"`
	} `json:"items"`
}

func NewFreshRSSClient(apiURL, authToken string, limit int, opts ...Option) *FreshRSSClient {
	return &FreshRSSClient{
		base:      newBase("freshrss", opts),
		apiURL:    strings.TrimRight(apiURL, "/"),
		authToken: authToken,
		limit:     limit,
	}
}

func (c *FreshRSSClient) FetchTodayArticles(ctx context.Context) ([]models.Article, error) {
	url := c.apiURL + streamContentsPath
	if c.limit > 0 {
		url = fmt.Sprintf("%s?n=%d", url, c.limit)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "GoogleLogin auth="+c.authToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freshrss request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read freshrss response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Source: c.GetName()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: c.GetName(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResp FreshRSSResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode freshrss response: %w", err)
	}

	articles := make([]models.Article, 0, len(apiResp.Items))
	for _, item := range apiResp.Items {
		var link string
		if len(item.Alternate) > 0 {
			link = item.Alternate[0].Href
		} else {
			c.log.WithField("title", item.Title).Warn("Entry has no alternate link")
		}

		articles = append(articles, models.Article{
			ID:        articleID(link, item.Title),
			Title:     item.Title,
			URL:       link,
			Published: item.Published,
		})
	}

	today := filterToday(articles, c.now(), c.loc)
	c.log.WithField("total", len(articles)).Infof("Found %d articles published today", len(today))
	return today, nil
}

func (c *FreshRSSClient) GetName() string {
	return "freshrss"
}
