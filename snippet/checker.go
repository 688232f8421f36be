// Package snippet validates example code snippets with tree-sitter grammars.
package snippet

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
)

// Checker parses snippets and reports syntax errors. It satisfies the
// catalog SnippetChecker interface; unknown languages are skipped rather
// than rejected so catalogs can carry examples in languages without a
// bundled grammar.
type Checker struct {
	languages map[string]*sitter.Language
}

// NewChecker creates a checker with the bundled grammars.
func NewChecker() *Checker {
	return &Checker{
		languages: map[string]*sitter.Language{
			"php":    php.GetLanguage(),
			"go":     golang.GetLanguage(),
			"golang": golang.GetLanguage(),
			"java":   java.GetLanguage(),
			"python": python.GetLanguage(),
		},
	}
}

// Supports reports whether a grammar is bundled for the given language.
func (c *Checker) Supports(language string) bool {
	_, ok := c.languages[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

// Check parses src with the grammar for language and returns an error
// describing the first syntax problems found. Unknown languages and
// empty snippets pass.
func (c *Checker) Check(language, src string) error {
	lang, ok := c.languages[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil
	}
	if strings.TrimSpace(src) == "" {
		return nil
	}

	// PHP snippets in catalog entries usually omit the opening tag; the
	// grammar treats tag-less input as inline HTML, so add one.
	if lang == c.languages["php"] && !strings.Contains(src, "<?php") {
		src = "<?php\n" + src
	}

	p := sitter.NewParser()
	p.SetLanguage(lang)

	tree, err := p.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		return fmt.Errorf("parse snippet: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	count, line := countErrors(root)
	return fmt.Errorf("%d syntax error(s), first at line %d", count, line+1)
}

// countErrors walks the tree counting ERROR and missing nodes, returning
// the count and the row of the first one.
func countErrors(root *sitter.Node) (int, int) {
	count := 0
	firstLine := -1

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" || n.IsMissing() {
			count++
			if firstLine < 0 {
				firstLine = int(n.StartPoint().Row)
			}
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if count == 0 {
		// HasError was set but no ERROR node surfaced; report the root.
		count = 1
		firstLine = 0
	}
	return count, firstLine
}
