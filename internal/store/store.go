// Package store persists extracted graph documents in SQLite so the MCP
// server can answer symbol queries without re-parsing the workspace.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"codegraph/internal/graph"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	entity_id    TEXT PRIMARY KEY,
	kind         TEXT NOT NULL,
	name         TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	start_line   INTEGER NOT NULL,
	end_line     INTEGER NOT NULL,
	start_column INTEGER NOT NULL,
	end_column   INTEGER NOT NULL,
	language     TEXT NOT NULL,
	parent_id    TEXT,
	properties   TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file_path);
CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);

CREATE TABLE IF NOT EXISTS edges (
	entity_id  TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	source_id  TEXT NOT NULL,
	target_id  TEXT NOT NULL,
	file_path  TEXT NOT NULL,
	properties TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_edges_file ON edges(file_path);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
`

// Store wraps the SQLite graph index.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the index database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertDocument stores one file's nodes and relationships in a single
// transaction. Existing rows for the same entity identities are replaced, so
// re-indexing an unchanged file is idempotent.
func (s *Store) UpsertDocument(ctx context.Context, doc *graph.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO nodes
		(entity_id, kind, name, file_path, start_line, end_line, start_column, end_column, language, parent_id, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	for _, n := range doc.Nodes {
		props, err := json.Marshal(n.Properties)
		if err != nil {
			return fmt.Errorf("failed to encode properties for %s: %w", n.EntityID, err)
		}
		if _, err := nodeStmt.ExecContext(ctx,
			n.EntityID, string(n.Kind), n.Name, n.FilePath,
			n.StartLine, n.EndLine, n.StartColumn, n.EndColumn,
			n.Language, n.ParentID, string(props)); err != nil {
			return fmt.Errorf("failed to upsert node %s: %w", n.EntityID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO edges
		(entity_id, type, source_id, target_id, file_path, properties)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()

	for _, e := range doc.Relationships {
		props, err := json.Marshal(e.Properties)
		if err != nil {
			return fmt.Errorf("failed to encode properties for %s: %w", e.EntityID, err)
		}
		if _, err := edgeStmt.ExecContext(ctx,
			e.EntityID, string(e.Type), e.SourceID, e.TargetID,
			doc.FilePath, string(props)); err != nil {
			return fmt.Errorf("failed to upsert edge %s: %w", e.EntityID, err)
		}
	}

	return tx.Commit()
}

// PruneStaleFiles removes nodes and edges belonging to files outside the
// given set, so deleted files disappear from the index after a re-scan.
func (s *Store) PruneStaleFiles(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
			return err
		}
		_, err := s.db.ExecContext(ctx, `DELETE FROM edges`)
		return err
	}

	placeholders := strings.Repeat("?,", len(keep))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(keep))
	for i, p := range keep {
		args[i] = p
	}

	if _, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM nodes WHERE file_path NOT IN (%s)`, placeholders), args...); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM edges WHERE file_path NOT IN (%s)`, placeholders), args...)
	return err
}

// NodesInFile returns all entities extracted from one file, in source order.
func (s *Store) NodesInFile(ctx context.Context, filePath string) ([]*graph.Node, error) {
	return s.queryNodes(ctx, `
		SELECT entity_id, kind, name, file_path, start_line, end_line, start_column, end_column, language, parent_id, properties
		FROM nodes WHERE file_path = ? ORDER BY start_line, entity_id`, filePath)
}

// LookupSymbol returns all entities with the given bare name.
func (s *Store) LookupSymbol(ctx context.Context, name string) ([]*graph.Node, error) {
	return s.queryNodes(ctx, `
		SELECT entity_id, kind, name, file_path, start_line, end_line, start_column, end_column, language, parent_id, properties
		FROM nodes WHERE name = ? ORDER BY file_path, start_line`, name)
}

// FindCallers returns the entities that carry a CALLS edge whose best-effort
// callee name matches. The match is name-keyed: unrelated callees sharing a
// name will conflate, mirroring the extraction heuristic.
func (s *Store) FindCallers(ctx context.Context, name string) ([]*graph.Node, error) {
	return s.queryNodes(ctx, `
		SELECT DISTINCT n.entity_id, n.kind, n.name, n.file_path, n.start_line, n.end_line, n.start_column, n.end_column, n.language, n.parent_id, n.properties
		FROM edges e JOIN nodes n ON n.entity_id = e.source_id
		WHERE e.type = 'CALLS' AND json_extract(e.properties, '$.calledName') = ?
		ORDER BY n.file_path, n.start_line`, name)
}

func (s *Store) queryNodes(ctx context.Context, query string, args ...any) ([]*graph.Node, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var nodes []*graph.Node
	for rows.Next() {
		var n graph.Node
		var kind, props string
		var parent sql.NullString
		if err := rows.Scan(&n.EntityID, &kind, &n.Name, &n.FilePath,
			&n.StartLine, &n.EndLine, &n.StartColumn, &n.EndColumn,
			&n.Language, &parent, &props); err != nil {
			return nil, err
		}
		n.Kind = graph.Kind(kind)
		n.ParentID = parent.String
		if err := json.Unmarshal([]byte(props), &n.Properties); err != nil {
			n.Properties = map[string]any{}
		}
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}
