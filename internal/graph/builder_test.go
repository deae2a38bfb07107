package graph

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuilderModuleAnchor(t *testing.T) {
	b := NewBuilder("/w/a.py", "Python")
	fileID := b.AddNode(KindFile, "a.py", "a.py", Location{StartLine: 1, EndLine: 1}, Ref{}, nil)

	if got := b.Module().EntityID(); got != fileID {
		t.Errorf("Module() = %q, want %q", got, fileID)
	}
	if !b.Module().Resolved() {
		t.Error("module ref must be resolved")
	}
}

func TestBuilderAddNode(t *testing.T) {
	b := NewBuilder("/w/a.py", "Python")
	fileID := b.AddNode(KindFile, "a.py", "a.py", Location{StartLine: 1, EndLine: 1}, Ref{}, nil)
	clsID := b.AddNode(KindClass, "Greeter", "Greeter", Location{StartLine: 1, EndLine: 3}, b.Module(), nil)

	doc := b.Document()
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}

	file := doc.Nodes[0]
	if file.ParentID != "" {
		t.Errorf("file node must have no parent, got %q", file.ParentID)
	}
	if file.Properties == nil {
		t.Error("properties must never be nil")
	}

	cls := doc.Nodes[1]
	if cls.EntityID != clsID {
		t.Errorf("node entityId = %q, want %q", cls.EntityID, clsID)
	}
	if cls.ParentID != fileID {
		t.Errorf("class parent = %q, want file %q", cls.ParentID, fileID)
	}
	if cls.Language != "Python" {
		t.Errorf("language = %q", cls.Language)
	}
}

func TestBuilderRelationshipsNotDeduplicated(t *testing.T) {
	b := NewBuilder("/w/a.py", "Python")
	b.AddNode(KindFile, "a.py", "a.py", Location{StartLine: 1, EndLine: 1}, Ref{}, nil)
	target := PlaceholderRef(KindFunction, "/w/a.py", "print")

	b.AddRelationship(RelCalls, b.Module(), target, map[string]any{"calledName": "print"})
	b.AddRelationship(RelCalls, b.Module(), target, map[string]any{"calledName": "print"})

	doc := b.Document()
	if len(doc.Relationships) != 2 {
		t.Fatalf("expected both duplicate edges preserved, got %d", len(doc.Relationships))
	}
	if doc.Relationships[0].EntityID != doc.Relationships[1].EntityID {
		t.Error("duplicate edges must collapse to the same derived identity")
	}
}

func TestDocumentEncode(t *testing.T) {
	b := NewBuilder("/w/a.py", "Python")
	b.AddNode(KindFile, "a.py", "a.py", Location{StartLine: 1, EndLine: 1}, Ref{}, nil)

	var buf bytes.Buffer
	if err := b.Document().Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"filePath": "/w/a.py"`, `"nodes"`, `"relationships": []`, `"entityId": "file:/w/a.py:a.py"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDocumentEmptyListsNotNull(t *testing.T) {
	b := NewBuilder("/w/empty.py", "Python")

	var buf bytes.Buffer
	if err := b.Document().Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "null") {
		t.Errorf("empty graph must serialize as [] not null:\n%s", out)
	}
}
