package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
)

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxPageBytes     = 10 << 20
)

// Extractor turns an article URL into its plain-text body. The boolean is
// false when no text could be obtained, whatever the reason.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, bool)
}

// Readability downloads a page and runs it through go-readability.
type Readability struct {
	client    *http.Client
	userAgent string
	log       *logrus.Entry
}

func NewReadability(timeout time.Duration, log *logrus.Entry) *Readability {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Readability{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		log:       log.WithField("component", "extractor"),
	}
}

func (r *Readability) Extract(ctx context.Context, rawURL string) (string, bool) {
	text, err := r.extract(ctx, rawURL)
	if err != nil {
		r.log.WithField("url", rawURL).WithError(err).Debug("Extraction failed")
		return "", false
	}
	return text, true
}

func (r *Readability) extract(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("article URL is empty")
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid article URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return "", fmt.Errorf("unsupported content type %q", ct)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content")
	}

	return text, nil
}
