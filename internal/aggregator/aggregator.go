package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/ObiAU/freshdigest/internal/extract"
	"github.com/ObiAU/freshdigest/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	noArticlesNotice = "No articles published today."
	summaryHeading   = "Consolidated Summary"
)

// Analyzer produces the per-article analyses and the consolidated summary.
type Analyzer interface {
	AnalyzeArticle(ctx context.Context, article models.Article, content string) (string, error)
	Summarize(ctx context.Context, analyses []string) (string, error)
}

// Renderer displays each stage's output.
type Renderer interface {
	Heading(title string)
	Markdown(text string)
	Notice(msg string)
}

// Publisher receives the finished digest. Failures are logged, never fatal.
type Publisher interface {
	Publish(ctx context.Context, digest models.Digest) error
	Name() string
}

// Aggregator drives one run: fetch today's articles, extract and analyze each
// in feed order, then consolidate.
type Aggregator struct {
	source     models.FeedSource
	extractor  extract.Extractor
	analyzer   Analyzer
	renderer   Renderer
	publishers []Publisher
	now        func() time.Time
	log        *logrus.Entry
}

func New(source models.FeedSource, extractor extract.Extractor, analyzer Analyzer, renderer Renderer, log *logrus.Entry, publishers ...Publisher) *Aggregator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Aggregator{
		source:     source,
		extractor:  extractor,
		analyzer:   analyzer,
		renderer:   renderer,
		publishers: publishers,
		now:        time.Now,
		log:        log.WithField("component", "aggregator"),
	}
}

// Run returns a nil digest only with an error. Feed errors, aggregation
// errors and cancellation are fatal; per-article failures are reported inside
// that article's analysis.
func (a *Aggregator) Run(ctx context.Context) (*models.Digest, error) {
	articles, err := a.source.FetchTodayArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles from %s: %w", a.source.GetName(), err)
	}

	digest := &models.Digest{Date: a.now(), Articles: articles}

	if len(articles) == 0 {
		a.renderer.Notice(noArticlesNotice)
		return digest, nil
	}

	a.log.Infof("Analyzing %d articles", len(articles))

	digest.Analyses = make([]string, 0, len(articles))
	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a.renderer.Heading(article.Title)

		analysis, err := a.processArticle(ctx, article)
		if err != nil {
			return nil, err
		}

		a.renderer.Markdown(analysis)
		digest.Analyses = append(digest.Analyses, analysis)
		a.log.WithField("title", article.Title).Debugf("Article %d/%d done", i+1, len(articles))
	}

	summary, err := a.analyzer.Summarize(ctx, digest.Analyses)
	if err != nil {
		return nil, fmt.Errorf("failed to generate consolidated summary: %w", err)
	}
	digest.Summary = summary

	a.renderer.Heading(summaryHeading)
	a.renderer.Markdown(summary)

	a.publish(ctx, *digest)

	return digest, nil
}

// processArticle only returns an error when the run itself was cancelled.
func (a *Aggregator) processArticle(ctx context.Context, article models.Article) (string, error) {
	content, ok := a.extractor.Extract(ctx, article.URL)
	if !ok {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		a.log.WithField("url", article.URL).Warn("Could not extract content")
	}

	analysis, err := a.analyzer.AnalyzeArticle(ctx, article, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		a.log.WithError(err).WithField("title", article.Title).Error("Analysis failed")
		return FailurePlaceholder(article.Title, err), nil
	}

	return analysis, nil
}

func (a *Aggregator) publish(ctx context.Context, digest models.Digest) {
	for _, p := range a.publishers {
		if err := p.Publish(ctx, digest); err != nil {
			a.log.WithError(err).WithField("publisher", p.Name()).Error("Failed to publish digest")
			continue
		}
		a.log.WithField("publisher", p.Name()).Info("Digest published")
	}
}

// FailurePlaceholder is the analysis recorded for an article the model could
// not analyze.
func FailurePlaceholder(title string, err error) string {
	return fmt.Sprintf("**Error:** Failed to analyze *%s*: %v", title, err)
}
