// Package scanner walks a workspace and extracts a graph document for every
// supported source file, honoring the workspace's .gitignore.
package scanner

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"codegraph/internal/extract"
	"codegraph/internal/graph"
	"codegraph/internal/parser"
	"codegraph/util"
)

// DefaultMaxFileSize caps the size of files the scanner will extract.
const DefaultMaxFileSize = 2 * 1024 * 1024

// Scanner extracts graph documents for all supported files under a root.
type Scanner struct {
	maxFileSize int64
}

// New creates a Scanner with the default file size cap.
func New() *Scanner {
	return &Scanner{maxFileSize: DefaultMaxFileSize}
}

// Scan walks root depth-first and returns one document per extracted file.
// Files that fail to parse are skipped with a warning; the scan itself only
// fails on a walk error or context cancellation.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*graph.Document, error) {
	var matcher *ignore.GitIgnore
	if m, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = m
	}

	var docs []*graph.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if parser.DetectLanguage(path) == "" {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > s.maxFileSize {
			return nil
		}

		norm, err := util.NormalizePath(path)
		if err != nil {
			return nil
		}
		doc, err := extract.FromFile(norm)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", rel, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// FilePaths returns the normalized paths covered by a set of documents.
func FilePaths(docs []*graph.Document) []string {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.FilePath)
	}
	return paths
}
