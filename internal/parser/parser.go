// Package parser wraps the tree-sitter bindings behind a small language
// registry. Parsing is the external collaborator of the extraction engine:
// it turns UTF-8 source text into a navigable tree with position metadata.
package parser

import (
	"fmt"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Parser binds a tree-sitter parser to one language grammar.
// Always call Close() when done; the bindings hold CGO resources.
type Parser struct {
	inner *sitter.Parser
	lang  string
}

// New creates a parser for the given language id as returned by
// DetectLanguage.
func New(lang string) (*Parser, error) {
	p := sitter.NewParser()
	if p == nil {
		return nil, fmt.Errorf("failed to create tree-sitter parser")
	}

	var language *sitter.Language
	switch lang {
	case "python":
		language = sitter.NewLanguage(tree_sitter_python.Language())
	case "javascript", "jsx":
		language = sitter.NewLanguage(tree_sitter_javascript.Language())
	case "typescript":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case "tsx":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	case "go":
		language = sitter.NewLanguage(tree_sitter_go.Language())
	default:
		p.Close()
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	if err := p.SetLanguage(language); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &Parser{inner: p, lang: lang}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p.inner != nil {
		p.inner.Close()
	}
}

// Parse parses source bytes and returns the syntax tree.
// Caller must call tree.Close() when done.
func (p *Parser) Parse(src []byte) (*sitter.Tree, error) {
	tree := p.inner.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s source", p.lang)
	}
	return tree, nil
}

// DetectLanguage returns the language id for a file path, or "" when the
// extension is not supported.
func DetectLanguage(path string) string {
	langMap := map[string]string{
		".py":  "python",
		".pyi": "python",
		".pyw": "python",
		".js":  "javascript",
		".mjs": "javascript",
		".cjs": "javascript",
		".jsx": "jsx",
		".ts":  "typescript",
		".mts": "typescript",
		".cts": "typescript",
		".tsx": "tsx",
		".go":  "go",
	}
	return langMap[filepath.Ext(path)]
}
