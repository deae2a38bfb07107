package store

import (
	"context"
	"path/filepath"
	"testing"

	"codegraph/internal/extract"
	"codegraph/internal/graph"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleDoc(t *testing.T, path, src string) *graph.Document {
	t.Helper()
	doc, err := extract.FromSource(path, []byte(src), "python")
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	return doc
}

const greeterSrc = `class Greeter:
    def hello(self, name):
        print(name)
`

func TestUpsertAndNodesInFile(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	doc := sampleDoc(t, "/work/a.py", greeterSrc)

	if err := st.UpsertDocument(ctx, doc); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	nodes, err := st.NodesInFile(ctx, "/work/a.py")
	if err != nil {
		t.Fatalf("NodesInFile: %v", err)
	}
	if len(nodes) != len(doc.Nodes) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(doc.Nodes))
	}

	var method *graph.Node
	for _, n := range nodes {
		if n.Kind == graph.KindMethod {
			method = n
		}
	}
	if method == nil {
		t.Fatal("method row missing")
	}
	if method.EntityID != "method:/work/a.py:Greeter.hello" {
		t.Errorf("method id = %q", method.EntityID)
	}
	if method.ParentID == "" {
		t.Error("parent id must survive the round trip")
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	doc := sampleDoc(t, "/work/a.py", greeterSrc)

	for i := 0; i < 2; i++ {
		if err := st.UpsertDocument(ctx, doc); err != nil {
			t.Fatalf("UpsertDocument run %d: %v", i, err)
		}
	}

	nodes, err := st.NodesInFile(ctx, "/work/a.py")
	if err != nil {
		t.Fatalf("NodesInFile: %v", err)
	}
	if len(nodes) != len(doc.Nodes) {
		t.Errorf("re-index duplicated rows: got %d nodes, want %d", len(nodes), len(doc.Nodes))
	}
}

func TestLookupSymbolAcrossFiles(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"/work/a.py", "/work/b.py"} {
		if err := st.UpsertDocument(ctx, sampleDoc(t, path, "def setup():\n    pass\n")); err != nil {
			t.Fatalf("UpsertDocument %s: %v", path, err)
		}
	}

	nodes, err := st.LookupSymbol(ctx, "setup")
	if err != nil {
		t.Fatalf("LookupSymbol: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d matches, want 2", len(nodes))
	}
	if nodes[0].FilePath != "/work/a.py" || nodes[1].FilePath != "/work/b.py" {
		t.Errorf("results not ordered by file: %q, %q", nodes[0].FilePath, nodes[1].FilePath)
	}
}

func TestFindCallers(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	doc := sampleDoc(t, "/work/a.py", `def boot():
    configure()

def shutdown():
    cleanup()
`)
	if err := st.UpsertDocument(ctx, doc); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	callers, err := st.FindCallers(ctx, "configure")
	if err != nil {
		t.Fatalf("FindCallers: %v", err)
	}
	if len(callers) != 1 {
		t.Fatalf("got %d callers, want 1", len(callers))
	}
	if callers[0].Name != "boot" {
		t.Errorf("caller = %q, want boot", callers[0].Name)
	}

	none, err := st.FindCallers(ctx, "never_called")
	if err != nil {
		t.Fatalf("FindCallers: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no callers, got %d", len(none))
	}
}

func TestPruneStaleFiles(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"/work/keep.py", "/work/gone.py"} {
		if err := st.UpsertDocument(ctx, sampleDoc(t, path, "x = 1\n")); err != nil {
			t.Fatalf("UpsertDocument %s: %v", path, err)
		}
	}

	if err := st.PruneStaleFiles(ctx, []string{"/work/keep.py"}); err != nil {
		t.Fatalf("PruneStaleFiles: %v", err)
	}

	kept, err := st.NodesInFile(ctx, "/work/keep.py")
	if err != nil {
		t.Fatalf("NodesInFile: %v", err)
	}
	if len(kept) == 0 {
		t.Error("kept file was pruned")
	}
	gone, err := st.NodesInFile(ctx, "/work/gone.py")
	if err != nil {
		t.Fatalf("NodesInFile: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("stale file still has %d nodes", len(gone))
	}
}

func TestPruneStaleFilesEmptySetClearsIndex(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.UpsertDocument(ctx, sampleDoc(t, "/work/a.py", "x = 1\n")); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if err := st.PruneStaleFiles(ctx, nil); err != nil {
		t.Fatalf("PruneStaleFiles: %v", err)
	}

	nodes, err := st.NodesInFile(ctx, "/work/a.py")
	if err != nil {
		t.Fatalf("NodesInFile: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("empty keep set must clear the index, %d nodes remain", len(nodes))
	}
}
