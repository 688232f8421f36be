package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_NoFrontmatter(t *testing.T) {
	content := `# Feature Envy

A method more interested in another object's data than its own.

## Before

Some prose.
`

	doc, err := ParseDocument("feature-envy.md", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "feature-envy.md", doc.Filename)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, content, doc.Body)
	assert.False(t, doc.HasFrontmatter())
	assert.Equal(t, "Feature Envy", doc.Title())
}

func TestParseDocument_WithFrontmatter(t *testing.T) {
	content := `---
id: feature-envy
category: smell
title: Feature Envy
summary: A method more interested in another object's data than its own.
related:
  - tell-dont-ask
language: php
---
# Feature Envy

Body text.
`

	doc, err := ParseDocument("feature-envy.md", []byte(content))
	require.NoError(t, err)

	require.True(t, doc.HasFrontmatter())
	assert.Equal(t, "feature-envy", doc.Frontmatter["id"])
	assert.Equal(t, "smell", doc.Frontmatter["category"])
	assert.Contains(t, doc.Body, "# Feature Envy")
	assert.NotContains(t, doc.Body, "category:")
}

func TestParseDocument_UnterminatedFrontmatter(t *testing.T) {
	content := "---\nid: broken\n# No closing delimiter\n"

	doc, err := ParseDocument("broken.md", []byte(content))
	require.NoError(t, err)

	// Falls back to treating the whole file as body.
	assert.False(t, doc.HasFrontmatter())
	assert.Equal(t, content, doc.Body)
}

func TestDocumentSection(t *testing.T) {
	doc := &Document{Body: `# Title

Intro paragraph.

## Before

` + "```php\n$a = 1;\n```" + `

## After

` + "```php\n$a = ONE;\n```" + `
`}

	before := doc.Section("Before")
	assert.Contains(t, before, "$a = 1;")
	assert.NotContains(t, before, "ONE")

	after := doc.Section("After")
	assert.Contains(t, after, "$a = ONE;")

	assert.Empty(t, doc.Section("Missing"))
}

func TestCodeBlock(t *testing.T) {
	section := "Lead-in text.\n\n```php\n$x = 1;\n$y = 2;\n```\n\nTrailing text."
	assert.Equal(t, "$x = 1;\n$y = 2;", CodeBlock(section))

	assert.Empty(t, CodeBlock("no fence here"))
}

func TestDocumentFirstParagraph(t *testing.T) {
	doc := &Document{Body: `# Title

## Empty Section

First real paragraph
spanning two lines.

Second paragraph.
`}

	assert.Equal(t, "First real paragraph spanning two lines.", doc.FirstParagraph())
}
