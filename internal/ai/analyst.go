package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ObiAU/freshdigest/internal/models"
)

// NoAnalysesSummary stands in for the consolidated summary when there is
// nothing to consolidate. No model call is made in that case.
const NoAnalysesSummary = "**No analyses available.** Nothing was published today that could be summarized."

var currencyRe = regexp.MustCompile(`\$\s?\d[\d,.]*`)

// FormatCurrency wraps dollar amounts in inline code so Markdown renderers
// leave their digits and separators alone. Amounts already inside a code
// span are left as they are.
func FormatCurrency(text string) string {
	matches := currencyRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if strings.Count(text[:m[0]], "`")%2 == 1 {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString("`" + text[m[0]:m[1]] + "`")
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String()
}

// SkipPlaceholder is the analysis recorded for an article whose body could
// not be extracted.
func SkipPlaceholder(title string) string {
	return fmt.Sprintf("**Skipping article:** *%s* (Could not extract content).", title)
}

// Analyst runs the per-article and consolidated prompts against one backend
// in one output language.
type Analyst struct {
	backend  Backend
	language string
}

func NewAnalyst(backend Backend, language string) *Analyst {
	return &Analyst{backend: backend, language: language}
}

// AnalyzeArticle returns the analysis of one article. An empty content means
// extraction failed; the skip placeholder is returned without calling the model.
func (a *Analyst) AnalyzeArticle(ctx context.Context, article models.Article, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return SkipPlaceholder(article.Title), nil
	}

	analysis, err := a.backend.Complete(ctx, ArticleInstruction(a.language), articleContent(article.Title, content))
	if err != nil {
		return "", fmt.Errorf("%s analysis of %q failed: %w", a.backend.Name(), article.Title, err)
	}

	return FormatCurrency(analysis), nil
}

// Summarize consolidates the analyses, in order, with a single model call.
func (a *Analyst) Summarize(ctx context.Context, analyses []string) (string, error) {
	if len(analyses) == 0 {
		return NoAnalysesSummary, nil
	}

	summary, err := a.backend.Complete(ctx, SummaryInstruction(a.language), strings.Join(analyses, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("%s summary failed: %w", a.backend.Name(), err)
	}

	return FormatCurrency(summary), nil
}
