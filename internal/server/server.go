// Package server exposes the extractor and the workspace graph index over
// the Model Context Protocol (stdio transport).
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codegraph/internal/scanner"
	"codegraph/internal/store"
)

// IndexStatus tracks the lifecycle of the workspace index.
type IndexStatus string

const (
	IndexStatusPending    IndexStatus = "pending"
	IndexStatusInProgress IndexStatus = "in_progress"
	IndexStatusReady      IndexStatus = "ready"
	IndexStatusFailed     IndexStatus = "failed"
)

// Server wires the scanner, the store and the MCP tool surface together.
type Server struct {
	mcpServer *mcp.Server
	store     *store.Store
	scanner   *scanner.Scanner
	root      string

	indexMu       sync.RWMutex
	indexStatus   IndexStatus
	indexErr      error
	indexDuration time.Duration
	indexReady    chan struct{}
}

// New creates a server rooted at the given workspace directory.
func New(st *store.Store, root string) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "codegraph",
			Version: "0.1.0",
		}, nil),
		store:       st,
		scanner:     scanner.New(),
		root:        root,
		indexStatus: IndexStatusPending,
		indexReady:  make(chan struct{}),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run starts an initial background index and serves MCP over stdio until the
// context is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if msg := s.runIndex(ctx); msg != "" {
			log.Printf("initial index: %s", msg)
		}
	}()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// runIndex performs one full scan-and-store cycle and returns a summary
// message, or "" when another index run is already in flight.
func (s *Server) runIndex(ctx context.Context) string {
	s.indexMu.Lock()
	if s.indexStatus == IndexStatusInProgress {
		s.indexMu.Unlock()
		return ""
	}
	if s.indexStatus == IndexStatusReady || s.indexStatus == IndexStatusFailed {
		s.indexReady = make(chan struct{})
	}
	s.indexStatus = IndexStatusInProgress
	s.indexErr = nil
	s.indexMu.Unlock()

	start := time.Now()

	docs, err := s.scanner.Scan(ctx, s.root)
	if err != nil {
		s.setIndexStatus(IndexStatusFailed, fmt.Errorf("scan failed: %w", err), time.Since(start))
		return fmt.Sprintf("scan failed: %v", err)
	}

	var nodeCount, edgeCount int
	for _, doc := range docs {
		if err := s.store.UpsertDocument(ctx, doc); err != nil {
			s.setIndexStatus(IndexStatusFailed, fmt.Errorf("failed to store %s: %w", doc.FilePath, err), time.Since(start))
			return fmt.Sprintf("failed to store %s: %v", doc.FilePath, err)
		}
		nodeCount += len(doc.Nodes)
		edgeCount += len(doc.Relationships)
	}

	if err := s.store.PruneStaleFiles(ctx, scanner.FilePaths(docs)); err != nil {
		// Stale rows are a quality issue, not a failed index.
		log.Printf("Warning: failed to prune stale files: %v", err)
	}

	duration := time.Since(start)
	s.setIndexStatus(IndexStatusReady, nil, duration)
	return fmt.Sprintf("Indexed %d files (%d nodes, %d edges) in %.2fs",
		len(docs), nodeCount, edgeCount, duration.Seconds())
}

func (s *Server) setIndexStatus(status IndexStatus, err error, duration time.Duration) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	s.indexStatus = status
	s.indexErr = err
	s.indexDuration = duration
	if status == IndexStatusReady || status == IndexStatusFailed {
		select {
		case <-s.indexReady:
		default:
			close(s.indexReady)
		}
	}
}

// GetIndexStatus returns the current status, its error (if failed) and the
// duration of the last completed run.
func (s *Server) GetIndexStatus() (IndexStatus, error, time.Duration) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return s.indexStatus, s.indexErr, s.indexDuration
}

// WaitForIndex blocks until the current index run settles or ctx expires.
func (s *Server) WaitForIndex(ctx context.Context) error {
	s.indexMu.RLock()
	ready := s.indexReady
	s.indexMu.RUnlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// awaitIndex waits for a usable index and returns an error message for the
// tool caller, or "" when queries may proceed.
func (s *Server) awaitIndex(ctx context.Context) string {
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.WaitForIndex(waitCtx); err != nil {
		status, indexErr, _ := s.GetIndexStatus()
		if indexErr != nil {
			return fmt.Sprintf("Indexing failed: %v", indexErr)
		}
		if status == IndexStatusInProgress {
			return "Indexing in progress, please try again"
		}
		return fmt.Sprintf("Indexing wait failed: %v", err)
	}
	status, indexErr, _ := s.GetIndexStatus()
	if status == IndexStatusFailed {
		return fmt.Sprintf("Indexing failed: %v", indexErr)
	}
	return ""
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
