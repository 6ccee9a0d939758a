package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ObiAU/freshdigest/internal/models"
)

// DigestFile saves each run's digest as digest-YYYY-MM-DD.md in a directory.
// A later run on the same day overwrites the file.
type DigestFile struct {
	dir string
}

func NewDigestFile(dir string) *DigestFile {
	return &DigestFile{dir: dir}
}

func (d *DigestFile) Path(digest models.Digest) string {
	return filepath.Join(d.dir, fmt.Sprintf("digest-%s.md", digest.Date.Format("2006-01-02")))
}

func (d *DigestFile) Publish(ctx context.Context, digest models.Digest) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create digest directory: %w", err)
	}

	path := d.Path(digest)
	if err := os.WriteFile(path, []byte(FormatDigest(digest)), 0o644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}

	return nil
}

func (d *DigestFile) Name() string {
	return "file"
}

// FormatDigest lays the digest out as a single Markdown document.
func FormatDigest(digest models.Digest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Market digest %s\n\n", digest.Date.Format("2006-01-02")))

	for i, article := range digest.Articles {
		sb.WriteString(fmt.Sprintf("## %s\n\n", article.Title))
		if article.URL != "" {
			sb.WriteString(fmt.Sprintf("<%s>\n\n", article.URL))
		}
		if i < len(digest.Analyses) {
			sb.WriteString(strings.TrimSpace(digest.Analyses[i]))
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("## Consolidated Summary\n\n")
	sb.WriteString(strings.TrimSpace(digest.Summary))
	sb.WriteString("\n")

	return sb.String()
}
