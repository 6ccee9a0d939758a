package sources

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ObiAU/freshdigest/internal/config"
	"github.com/ObiAU/freshdigest/internal/models"
	"github.com/sirupsen/logrus"
)

// base carries what every feed client needs to decide which entries are
// "today's".
type base struct {
	client *http.Client
	loc    *time.Location
	now    func() time.Time
	log    *logrus.Entry
}

type Option func(*base)

func WithHTTPClient(client *http.Client) Option {
	return func(b *base) { b.client = client }
}

// WithLocation sets the zone in which calendar dates are compared.
func WithLocation(loc *time.Location) Option {
	return func(b *base) { b.loc = loc }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithLogger(log *logrus.Entry) Option {
	return func(b *base) {
		if log != nil {
			b.log = log
		}
	}
}

func newBase(name string, opts []Option) base {
	b := base{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		loc: time.Local,
		now: time.Now,
		log: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.WithField("source", name)
	return b
}

// NewSource builds the feed client selected by FEED_SOURCE.
func NewSource(cfg *config.Config, log *logrus.Entry) (models.FeedSource, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Warnf("Using local time zone %s for today's date", loc)
	}

	opts := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		WithLocation(loc),
		WithLogger(log),
	}

	switch cfg.FeedSource {
	case config.FeedSourceFreshRSS:
		return NewFreshRSSClient(cfg.FreshRSSAPI, cfg.FreshRSSAuthToken, cfg.FetchLimit, opts...), nil
	case config.FeedSourceRSS:
		if cfg.FeedURL == "" {
			return nil, fmt.Errorf("FEED_URL is required when FEED_SOURCE=%s", config.FeedSourceRSS)
		}
		return NewRSSClient(cfg.FeedURL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", cfg.FeedSource)
	}
}
