package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ObiAU/freshdigest/internal/models"
	"github.com/mmcdole/gofeed"
)

// RSSClient reads a single RSS, Atom or JSON feed. It lets the digest run
// without a FreshRSS instance.
type RSSClient struct {
	base
	feedURL string
}

func NewRSSClient(feedURL string, opts ...Option) *RSSClient {
	return &RSSClient{
		base:    newBase("rss", opts),
		feedURL: feedURL,
	}
}

func (c *RSSClient) FetchTodayArticles(ctx context.Context) ([]models.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = c.client

	feed, err := parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized {
				return nil, &AuthError{Source: c.GetName()}
			}
			return nil, &FetchError{Source: c.GetName(), StatusCode: httpErr.StatusCode, Body: httpErr.Status}
		}
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil {
			c.log.WithField("title", item.Title).Debug("Dropping entry without a date")
			continue
		}

		link := item.Link
		if link == "" && len(item.Links) > 0 {
			link = item.Links[0]
		}

		articles = append(articles, models.Article{
			ID:        articleID(link, item.Title),
			Title:     item.Title,
			URL:       link,
			Published: published.Unix(),
		})
	}

	today := filterToday(articles, c.now(), c.loc)
	c.log.WithField("total", len(articles)).Infof("Found %d articles published today", len(today))
	return today, nil
}

func (c *RSSClient) GetName() string {
	return "rss"
}
