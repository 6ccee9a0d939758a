package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Chipmakers rally on record demand</title></head>
<body>
  <nav><a href="/">Home</a> | <a href="/markets">Markets</a></nav>
  <article>
    <h1>Chipmakers rally on record demand</h1>
    <p>Shares of major semiconductor companies rose sharply on Wednesday after several
    manufacturers reported order backlogs stretching well into next year, with analysts
    pointing to sustained spending on data centre hardware.</p>
    <p>Acme Semiconductor said quarterly revenue reached $4,200 million, ahead of the
    company's own guidance, while its largest rival raised its full-year outlook for the
    second time in three months as customers continued to expand capacity.</p>
    <p>Investors have been watching supply constraints closely. Executives on both earnings
    calls said lead times for advanced packaging remain long, and that new facilities will
    not meaningfully add output until the second half of next year at the earliest.</p>
  </article>
  <footer>Copyright Example News</footer>
</body>
</html>`

func TestExtractReadableArticle(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	extractor := NewReadability(5*time.Second, nil)
	text, ok := extractor.Extract(context.Background(), srv.URL+"/chips")

	assert.Equal(t, true, ok)
	assert.Equal(t, true, strings.Contains(text, "order backlogs"))
	assert.Equal(t, true, strings.Contains(text, "$4,200 million"))
	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestExtractFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/report.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.7"))
		case "/blank":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html><body></body></html>"))
		}
	}))
	defer srv.Close()

	extractor := NewReadability(5*time.Second, nil)

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"not found", srv.URL + "/missing"},
		{"not html", srv.URL + "/report.pdf"},
		{"no text", srv.URL + "/blank"},
		{"unreachable", "http://127.0.0.1:1/nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := extractor.Extract(context.Background(), tt.url)
			assert.Equal(t, false, ok)
			assert.Equal(t, "", text)
		})
	}
}

func TestExtractCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := NewReadability(5*time.Second, nil).Extract(ctx, srv.URL)
	assert.Equal(t, false, ok)
}
