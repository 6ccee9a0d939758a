package sources

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ObiAU/freshdigest/internal/cache"
	"github.com/ObiAU/freshdigest/internal/models"
)

func generateHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

// articleID keys an article on its canonical URL, or on its title when the
// feed gave no link.
func articleID(url, title string) string {
	if url != "" {
		return generateHash(url)
	}
	return generateHash("title:" + title)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// filterToday keeps the articles whose publication falls on now's calendar
// date in loc. Feed order is preserved. Entries repeating an earlier link are
// dropped; entries without a link are always kept.
func filterToday(articles []models.Article, now time.Time, loc *time.Location) []models.Article {
	today := now.In(loc)
	seen := cache.New()

	filtered := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if !sameDay(article.PublishedAt(loc), today) {
			continue
		}
		if article.URL != "" && !seen.AddIfAbsent(article) {
			continue
		}
		filtered = append(filtered, article)
	}

	return filtered
}
