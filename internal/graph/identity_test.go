package graph

import "testing"

func TestEntityID(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		qualified string
		line      int
		want      string
	}{
		{"class omits line", KindClass, "Greeter", 10, "class:/w/a.py:Greeter"},
		{"function omits line", KindFunction, "main", 3, "function:/w/a.py:main"},
		{"method uses qualified name", KindMethod, "Greeter.hello", 2, "method:/w/a.py:Greeter.hello"},
		{"variable folds line", KindVariable, "x", 7, "variable:/w/a.py:x:7"},
		{"parameter folds line", KindParameter, "self", 2, "parameter:/w/a.py:self:2"},
		{"file", KindFile, "a.py", 1, "file:/w/a.py:a.py"},
		{"module reference", KindModuleReference, "os", 1, "modulereference:/w/a.py:os"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntityID(tt.kind, "/w/a.py", tt.qualified, tt.line)
			if got != tt.want {
				t.Errorf("EntityID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntityIDLineDisambiguation(t *testing.T) {
	a := EntityID(KindVariable, "/w/a.py", "x", 1)
	b := EntityID(KindVariable, "/w/a.py", "x", 2)
	if a == b {
		t.Errorf("same-name variables on different lines must differ: %q", a)
	}

	f1 := EntityID(KindFunction, "/w/a.py", "dup", 1)
	f2 := EntityID(KindFunction, "/w/a.py", "dup", 20)
	if f1 != f2 {
		t.Errorf("same-name functions must collide: %q vs %q", f1, f2)
	}
}

func TestRelationshipID(t *testing.T) {
	got := RelationshipID(RelHasMethod, "class:/w/a.py:Greeter", "method:/w/a.py:Greeter.hello")
	want := "has_method:class:/w/a.py:Greeter:method:/w/a.py:Greeter.hello"
	if got != want {
		t.Errorf("RelationshipID = %q, want %q", got, want)
	}
}

func TestRefVariants(t *testing.T) {
	r := ResolvedRef("function:/w/a.py:main")
	if !r.Resolved() {
		t.Error("ResolvedRef must report resolved")
	}
	if r.EntityID() != "function:/w/a.py:main" {
		t.Errorf("unexpected id %q", r.EntityID())
	}

	p := PlaceholderRef(KindFunction, "/w/a.py", "print")
	if p.Resolved() {
		t.Error("PlaceholderRef must not report resolved")
	}
	if p.Name() != "print" {
		t.Errorf("placeholder name = %q, want print", p.Name())
	}
	if p.EntityID() != "function:/w/a.py:print" {
		t.Errorf("placeholder id = %q", p.EntityID())
	}
}
