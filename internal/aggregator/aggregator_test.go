package aggregator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ObiAU/freshdigest/internal/ai"
	"github.com/ObiAU/freshdigest/internal/models"
	"github.com/ObiAU/freshdigest/internal/sources"
	"github.com/go-playground/assert/v2"
)

type fakeSource struct {
	articles []models.Article
	err      error
}

func (f *fakeSource) FetchTodayArticles(ctx context.Context) ([]models.Article, error) {
	return f.articles, f.err
}

func (f *fakeSource) GetName() string { return "fake" }

type fakeExtractor map[string]string

func (f fakeExtractor) Extract(ctx context.Context, url string) (string, bool) {
	text, ok := f[url]
	return text, ok
}

// scriptedBackend answers the summary instruction with summary and every
// other call with the reply registered for the content's title line.
type scriptedBackend struct {
	replies map[string]string
	fail    map[string]error
	summary string
	calls   []string
	onCall  func()
}

func (b *scriptedBackend) Complete(ctx context.Context, instruction, content string) (string, error) {
	b.calls = append(b.calls, content)
	if b.onCall != nil {
		b.onCall()
	}
	if strings.HasPrefix(instruction, "You are a financial journalist tasked with summarizing") {
		if b.summary == "" {
			return "", ai.ErrEmptyResponse
		}
		return b.summary, nil
	}
	for title, err := range b.fail {
		if strings.Contains(content, "**Title:** "+title+"\n") {
			return "", err
		}
	}
	for title, reply := range b.replies {
		if strings.Contains(content, "**Title:** "+title+"\n") {
			return reply, nil
		}
	}
	return "", ai.ErrEmptyResponse
}

func (b *scriptedBackend) Name() string { return "scripted" }

type recordingRenderer struct {
	events []string
}

func (r *recordingRenderer) Heading(title string) { r.events = append(r.events, "heading:"+title) }
func (r *recordingRenderer) Markdown(text string)  { r.events = append(r.events, "markdown:"+text) }
func (r *recordingRenderer) Notice(msg string)     { r.events = append(r.events, "notice:"+msg) }

type recordingPublisher struct {
	digests []models.Digest
	err     error
}

func (p *recordingPublisher) Publish(ctx context.Context, digest models.Digest) error {
	p.digests = append(p.digests, digest)
	return p.err
}

func (p *recordingPublisher) Name() string { return "recording" }

func TestRunTwoArticlesOneUnextractable(t *testing.T) {
	source := &fakeSource{articles: []models.Article{
		{ID: "1", Title: "Acme beats estimates", URL: "https://example.com/acme"},
		{ID: "2", Title: "Paywalled scoop", URL: "https://example.com/paywall"},
	}}
	extractor := fakeExtractor{"https://example.com/acme": "Acme revenue rose to $4,200 million."}
	backend := &scriptedBackend{
		replies: map[string]string{"Acme beats estimates": "ACME: positive. Revenue $4,200 million."},
		summary: "Overall: ACME positive, $4,200 million quarter.",
	}
	renderer := &recordingRenderer{}
	publisher := &recordingPublisher{}

	agg := New(source, extractor, ai.NewAnalyst(backend, "English"), renderer, nil, publisher)
	digest, err := agg.Run(context.Background())

	assert.Equal(t, nil, err)

	analysis := "ACME: positive. Revenue `$4,200` million."
	skipped := ai.SkipPlaceholder("Paywalled scoop")
	assert.Equal(t, []string{analysis, skipped}, digest.Analyses)
	assert.Equal(t, "Overall: ACME positive, `$4,200` million quarter.", digest.Summary)

	// One article call plus one aggregation call; the skipped article never reaches the model.
	assert.Equal(t, 2, len(backend.calls))
	assert.Equal(t, analysis+"\n\n"+skipped, backend.calls[1])

	assert.Equal(t, []string{
		"heading:Acme beats estimates",
		"markdown:" + analysis,
		"heading:Paywalled scoop",
		"markdown:" + skipped,
		"heading:" + summaryHeading,
		"markdown:" + digest.Summary,
	}, renderer.events)

	assert.Equal(t, 1, len(publisher.digests))
	assert.Equal(t, digest.Summary, publisher.digests[0].Summary)
}

func TestRunNoArticles(t *testing.T) {
	backend := &scriptedBackend{}
	renderer := &recordingRenderer{}
	publisher := &recordingPublisher{}

	agg := New(&fakeSource{}, fakeExtractor{}, ai.NewAnalyst(backend, "English"), renderer, nil, publisher)
	digest, err := agg.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(digest.Articles))
	assert.Equal(t, []string{"notice:" + noArticlesNotice}, renderer.events)
	assert.Equal(t, 0, len(backend.calls))
	assert.Equal(t, 0, len(publisher.digests))
}

func TestRunFeedErrorIsFatal(t *testing.T) {
	source := &fakeSource{err: &sources.AuthError{Source: "freshrss"}}

	agg := New(source, fakeExtractor{}, ai.NewAnalyst(&scriptedBackend{}, "English"), &recordingRenderer{}, nil)
	digest, err := agg.Run(context.Background())

	var authErr *sources.AuthError
	assert.Equal(t, true, errors.As(err, &authErr))
	assert.Equal(t, true, digest == nil)
}

func TestRunAnalysisFailureStaysInBand(t *testing.T) {
	source := &fakeSource{articles: []models.Article{
		{Title: "Oil slips", URL: "u1"},
		{Title: "Gold steady", URL: "u2"},
	}}
	backend := &scriptedBackend{
		fail:    map[string]error{"Oil slips": errors.New("connection refused")},
		replies: map[string]string{"Gold steady": "Gold: neutral."},
		summary: "Mixed.",
	}

	agg := New(source, fakeExtractor{"u1": "oil text", "u2": "gold text"}, ai.NewAnalyst(backend, "English"), &recordingRenderer{}, nil)
	digest, err := agg.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(digest.Analyses))
	assert.Equal(t, true, strings.HasPrefix(digest.Analyses[0], "**Error:** Failed to analyze *Oil slips*:"))
	assert.Equal(t, true, strings.Contains(digest.Analyses[0], "connection refused"))
	assert.Equal(t, "Gold: neutral.", digest.Analyses[1])
	assert.Equal(t, "Mixed.", digest.Summary)
}

func TestRunSummaryErrorIsFatal(t *testing.T) {
	source := &fakeSource{articles: []models.Article{{Title: "A", URL: "u"}}}
	backend := &scriptedBackend{replies: map[string]string{"A": "fine"}}

	agg := New(source, fakeExtractor{"u": "text"}, ai.NewAnalyst(backend, "English"), &recordingRenderer{}, nil)
	_, err := agg.Run(context.Background())

	assert.Equal(t, true, errors.Is(err, ai.ErrEmptyResponse))
}

func TestRunStopsWhenCancelled(t *testing.T) {
	source := &fakeSource{articles: []models.Article{
		{Title: "First", URL: "u1"},
		{Title: "Second", URL: "u2"},
		{Title: "Third", URL: "u3"},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := &scriptedBackend{
		replies: map[string]string{"First": "one", "Second": "two", "Third": "three"},
		summary: "never",
		onCall:  cancel,
	}
	publisher := &recordingPublisher{}

	agg := New(source, fakeExtractor{"u1": "a", "u2": "b", "u3": "c"}, ai.NewAnalyst(backend, "English"), &recordingRenderer{}, nil, publisher)
	digest, err := agg.Run(ctx)

	assert.Equal(t, true, errors.Is(err, context.Canceled))
	assert.Equal(t, true, digest == nil)
	assert.Equal(t, 1, len(backend.calls))
	assert.Equal(t, 0, len(publisher.digests))
}

func TestPublisherFailureIsNotFatal(t *testing.T) {
	source := &fakeSource{articles: []models.Article{{Title: "A", URL: "u"}}}
	backend := &scriptedBackend{replies: map[string]string{"A": "fine"}, summary: "sum"}
	failing := &recordingPublisher{err: errors.New("disk full")}
	working := &recordingPublisher{}

	agg := New(source, fakeExtractor{"u": "text"}, ai.NewAnalyst(backend, "English"), &recordingRenderer{}, nil, failing, working)
	agg.now = func() time.Time { return time.Date(2026, time.October, 15, 7, 0, 0, 0, time.UTC) }
	digest, err := agg.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(failing.digests))
	assert.Equal(t, 1, len(working.digests))
	assert.Equal(t, 2026, digest.Date.Year())
}
