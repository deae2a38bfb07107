package parser

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/work/app.py", "python"},
		{"/work/stubs.pyi", "python"},
		{"/work/app.js", "javascript"},
		{"/work/mod.mjs", "javascript"},
		{"/work/view.jsx", "jsx"},
		{"/work/app.ts", "typescript"},
		{"/work/view.tsx", "tsx"},
		{"/work/main.go", "go"},
		{"/work/README.md", ""},
		{"/work/Makefile", ""},
		{"/work/data.json", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewUnsupportedLanguage(t *testing.T) {
	if _, err := New("cobol"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestParseAllLanguages(t *testing.T) {
	tests := []struct {
		lang string
		src  string
	}{
		{"python", "def f():\n    pass\n"},
		{"javascript", "function f() {}\n"},
		{"jsx", "const v = <div/>;\n"},
		{"typescript", "function f(x: number): void {}\n"},
		{"tsx", "const v = <div/>;\n"},
		{"go", "package main\n\nfunc f() {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			p, err := New(tt.lang)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.lang, err)
			}
			defer p.Close()

			tree, err := p.Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			defer tree.Close()

			root := tree.RootNode()
			if root == nil {
				t.Fatal("no root node")
			}
			if root.HasError() {
				t.Errorf("unexpected syntax errors in %s sample", tt.lang)
			}
		})
	}
}
