// Package content supplies catalog entries from markdown files with YAML
// frontmatter, plus the built-in entry definitions.
package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document represents a parsed content file.
type Document struct {
	// Filename is the base name of the source file.
	Filename string

	// Content is the raw file content.
	Content string

	// Frontmatter holds the parsed YAML frontmatter, nil when absent.
	Frontmatter map[string]any

	// Body is the markdown content after the frontmatter.
	Body string
}

// HasFrontmatter reports whether the document carried YAML frontmatter.
func (d *Document) HasFrontmatter() bool {
	return d.Frontmatter != nil
}

// ParseDocument parses a markdown document, extracting frontmatter and body.
func ParseDocument(filename string, content []byte) (*Document, error) {
	doc := &Document{
		Filename: filepath.Base(filename),
		Content:  string(content),
	}

	str := string(content)
	if strings.HasPrefix(str, "---\n") || strings.HasPrefix(str, "---\r\n") {
		frontmatter, body, err := extractFrontmatter(str)
		if err != nil {
			// Unterminated or malformed frontmatter: treat the whole
			// file as body.
			doc.Body = str
		} else {
			doc.Frontmatter = frontmatter
			doc.Body = body
		}
	} else {
		doc.Body = str
	}

	return doc, nil
}

// extractFrontmatter parses YAML frontmatter from markdown content.
// Returns the parsed frontmatter map, the remaining body, and any error.
func extractFrontmatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delimiter)
	}
	if closeIdx == -1 {
		return nil, content, fmt.Errorf("no closing frontmatter delimiter")
	}

	yamlContent := content[start : start+closeIdx]

	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}

	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &frontmatter); err != nil {
		return nil, content, fmt.Errorf("parse YAML frontmatter: %w", err)
	}

	return frontmatter, body, nil
}

var (
	titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\r?\n(.*?)```")
)

// Title extracts the first level-1 heading from the body.
func (d *Document) Title() string {
	m := titleRe.FindStringSubmatch(d.Body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Section returns the content of the level-2 section with the given
// heading, case-insensitively, up to the next section header.
func (d *Document) Section(heading string) string {
	re := regexp.MustCompile(`(?mi)^##\s+` + regexp.QuoteMeta(heading) + `\s*$`)
	loc := re.FindStringIndex(d.Body)
	if loc == nil {
		return ""
	}

	rest := d.Body[loc[1]:]
	next := regexp.MustCompile(`(?m)^#{1,2}\s+`).FindStringIndex(rest)
	if next != nil {
		rest = rest[:next[0]]
	}
	return strings.TrimSpace(rest)
}

// CodeBlock returns the content of the first fenced code block in s, or ""
// when there is none.
func CodeBlock(s string) string {
	m := fenceRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], "\r\n")
}

// FirstParagraph returns the first non-heading paragraph of the body,
// used as a summary fallback when the frontmatter omits one.
func (d *Document) FirstParagraph() string {
	for _, block := range strings.Split(d.Body, "\n\n") {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "```") {
			continue
		}
		return strings.Join(strings.Fields(trimmed), " ")
	}
	return ""
}
