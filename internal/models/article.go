package models

import (
	"context"
	"time"
)

// Article is a feed entry published today. It lives for a single run.
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Published int64  `json:"published"`
}

func (a Article) PublishedAt(loc *time.Location) time.Time {
	return time.Unix(a.Published, 0).In(loc)
}

type FeedSource interface {
	FetchTodayArticles(ctx context.Context) ([]Article, error)
	GetName() string
}
