// Command codegraph-mcp serves the extractor and the workspace graph index
// over the Model Context Protocol on stdio.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"codegraph/internal/server"
	"codegraph/internal/store"
	"codegraph/util"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to determine working directory: %v", err)
	}
	root := util.WorkspaceRoot(cwd)

	dbPath := os.Getenv("CODEGRAPH_DB")
	if dbPath == "" {
		dbPath = filepath.Join(root, ".codegraph", "index.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("failed to create index directory: %v", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open index: %v", err)
	}
	defer st.Close()

	log.Printf("codegraph MCP server starting (root=%s, db=%s)", root, dbPath)

	srv := server.New(st, root)
	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
