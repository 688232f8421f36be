package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/patternbook/catalog"
)

// DefaultGlobs are the content file patterns scanned by default.
var DefaultGlobs = []string{"**/*.md", "**/*.markdown"}

// Loader reads catalog entries from a content directory.
type Loader struct {
	dir    string
	globs  []string
	logger *slog.Logger
}

// NewLoader creates a loader for the given content directory. Empty globs
// fall back to DefaultGlobs.
func NewLoader(dir string, globs []string, logger *slog.Logger) *Loader {
	if len(globs) == 0 {
		globs = DefaultGlobs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, globs: globs, logger: logger}
}

// Files returns the content files matching the loader's globs, relative to
// the content directory, deduplicated, in glob order.
func (l *Loader) Files() ([]string, error) {
	root := os.DirFS(l.dir)

	var files []string
	seen := make(map[string]bool)
	for _, pattern := range l.globs {
		matches, err := doublestar.Glob(root, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			info, err := fs.Stat(root, m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}

// Load populates the catalog with every entry found in the content
// directory. File-level parse failures abort the load; the catalog is left
// in Loading with prior entries intact.
func (l *Loader) Load(c *catalog.Catalog) error {
	files, err := l.Files()
	if err != nil {
		return err
	}

	for _, rel := range files {
		path := filepath.Join(l.dir, rel)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}

		entry, err := EntryFromDocument(rel, data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", rel, err)
		}

		if err := c.Put(entry); err != nil {
			return fmt.Errorf("load %s: %w", rel, err)
		}
		l.logger.Debug("Loaded entry",
			slog.String("id", entry.ID),
			slog.String("file", rel))
	}

	l.logger.Info("Content loaded",
		slog.String("dir", l.dir),
		slog.Int("entries", c.Len()))
	return nil
}

// EntryFromDocument converts one markdown content file into a catalog
// entry. The frontmatter supplies id, category, title, summary, related
// and language; the body supplies fallbacks (first heading as title, first
// paragraph as summary) and the example snippets from the Before/After
// sections.
func EntryFromDocument(relPath string, data []byte) (*catalog.Entry, error) {
	doc, err := ParseDocument(relPath, data)
	if err != nil {
		return nil, err
	}

	entry := &catalog.Entry{
		SourcePath:  relPath,
		ContentHash: catalog.ContentHash(data),
	}

	fm := doc.Frontmatter
	entry.ID = frontmatterString(fm, "id")
	entry.Title = frontmatterString(fm, "title")
	entry.Summary = frontmatterString(fm, "summary")
	entry.Related = frontmatterStrings(fm, "related")

	switch strings.ToLower(frontmatterString(fm, "category")) {
	case "pattern":
		entry.Category = catalog.CategoryPattern
	case "smell":
		entry.Category = catalog.CategorySmell
	case "":
		// Left invalid; the validator reports it.
	default:
		return nil, fmt.Errorf("unknown category %q", frontmatterString(fm, "category"))
	}

	if entry.Title == "" {
		entry.Title = doc.Title()
	}
	if entry.ID == "" {
		base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
		entry.ID = catalog.Slugify(base)
	}
	if entry.Summary == "" {
		entry.Summary = doc.FirstParagraph()
	}

	before := CodeBlock(doc.Section("Before"))
	after := CodeBlock(doc.Section("After"))
	if before != "" || after != "" {
		lang := frontmatterString(fm, "language")
		if lang == "" {
			lang = "php"
		}
		entry.Example = &catalog.Example{
			Language: lang,
			Before:   before,
			After:    after,
		}
	}

	return entry, nil
}

func frontmatterString(fm map[string]any, key string) string {
	if fm == nil {
		return ""
	}
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func frontmatterStrings(fm map[string]any, key string) []string {
	if fm == nil {
		return nil
	}
	raw, ok := fm[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// Build loads the content directory into a fresh catalog and finalizes it.
// When dir is empty the built-in definitions are used. The validation
// report is returned alongside the catalog; on validation failure the
// report details every problem.
func Build(dir string, globs []string, v *catalog.Validator, logger *slog.Logger) (*catalog.Catalog, *catalog.Report, error) {
	c := catalog.NewWithValidator(v)

	if dir == "" {
		for _, e := range Builtin() {
			if err := c.Put(e); err != nil {
				return nil, nil, fmt.Errorf("load builtin: %w", err)
			}
		}
	} else {
		if err := NewLoader(dir, globs, logger).Load(c); err != nil {
			return nil, nil, err
		}
	}

	report, err := c.Finalize()
	if err != nil {
		return nil, report, err
	}
	return c, report, nil
}
