package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/patternbook/catalog"
)

// Draft is a fetched page rendered as a catalog entry awaiting review.
type Draft struct {
	ID        string
	Category  catalog.Category
	Title     string
	Summary   string
	SourceURL string
	Body      string
	Path      string
}

// draftFrontmatter is the YAML header written at the top of a draft file.
type draftFrontmatter struct {
	ID        string `yaml:"id"`
	Category  string `yaml:"category"`
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary,omitempty"`
	SourceURL string `yaml:"source_url"`
	Draft     bool   `yaml:"draft"`
}

// Ingester fetches a page and writes it into the content directory as a
// draft entry. Drafts carry a uuid suffix in their id so repeated
// ingests of the same page never collide with curated entries.
type Ingester struct {
	fetcher   *Fetcher
	converter *Converter
	logger    *slog.Logger
}

// NewIngester creates an ingester.
func NewIngester(timeout time.Duration, userAgent string, maxContentSize int64, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		fetcher:   NewFetcher(timeout, userAgent, maxContentSize),
		converter: NewConverter(),
		logger:    logger,
	}
}

// Ingest fetches urlStr, extracts the readable article, and writes a
// draft markdown file under dir. The category is recorded as given and
// is expected to be corrected during review if wrong.
func (ing *Ingester) Ingest(ctx context.Context, urlStr string, category catalog.Category, dir string) (*Draft, error) {
	result, err := ing.fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", urlStr, err)
	}

	converted, err := ing.converter.Convert(result.Body, urlStr)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", urlStr, err)
	}

	title := converted.Title
	if title == "" {
		title = urlStr
	}

	id := catalog.Slugify(title) + "-" + uuid.NewString()[:8]

	draft := &Draft{
		ID:        id,
		Category:  category,
		Title:     title,
		Summary:   converted.Excerpt,
		SourceURL: urlStr,
		Body:      converted.Markdown,
	}

	path, err := ing.write(draft, dir)
	if err != nil {
		return nil, err
	}
	draft.Path = path

	ing.logger.Info("ingested draft entry",
		slog.String("id", draft.ID),
		slog.String("url", urlStr),
		slog.String("path", path))

	return draft, nil
}

func (ing *Ingester) write(draft *Draft, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	fm := draftFrontmatter{
		ID:        draft.ID,
		Category:  string(draft.Category),
		Title:     draft.Title,
		Summary:   draft.Summary,
		SourceURL: draft.SourceURL,
		Draft:     true,
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n")
	sb.WriteString(draft.Body)
	sb.WriteString("\n")

	path := filepath.Join(dir, draft.ID+".md")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}

	return path, nil
}
