// Package extract converts one source file's syntax tree into a structural
// code graph: typed entities (file, classes, functions, methods, parameters,
// variables, module references) and typed relationships between them. Only a
// fixed subset of constructs is extracted; anything else is skipped via
// structural recursion into its children. Name resolution, cross-file linking
// and type inference are deliberately out of scope — call and import targets
// are emitted as unresolved, name-keyed placeholders.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"codegraph/internal/graph"
	"codegraph/internal/parser"
)

// FromFile reads, parses and extracts one source file. path must already be
// absolute and slash-normalized; the caller is responsible for existence
// checks and error-document plumbing.
func FromFile(path string) (*graph.Document, error) {
	lang := parser.DetectLanguage(path)
	if lang == "" {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return FromSource(path, src, lang)
}

// FromSource extracts the graph for source bytes already in memory. Each call
// builds a fresh scope context and builder; the run either completes with a
// full graph or fails — partial graphs are never returned.
func FromSource(path string, src []byte, lang string) (*graph.Document, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("content is not valid UTF-8")
	}

	rules, err := rulesetFor(lang)
	if err != nil {
		return nil, err
	}

	p, err := parser.New(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	tree, err := p.Parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}
	if root.HasError() {
		return nil, fmt.Errorf("source contains syntax errors")
	}

	b := graph.NewBuilder(path, rules.language())
	e := &extractor{rules: rules, src: src, b: b}

	// The File node comes first and fixes the module identity for the run.
	b.AddNode(graph.KindFile, filepath.Base(path), filepath.Base(path), fileLocation(), graph.Ref{}, nil)

	e.walk(root)

	return b.Document(), nil
}
