package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codegraph/internal/graph"
)

// golangRules maps the Go grammar onto the entity model. Receiver types are
// not lexical scopes in Go, so methods are emitted as Function entities with
// a `Type.name` qualified name rather than as Method entities — a Method node
// must always have its class present in the same document, and a method
// declaration can precede (or live in a different file from) its type.
type golangRules struct{}

func (golangRules) language() string { return "Go" }

func (golangRules) classify(kind string) construct {
	switch kind {
	case "function_declaration", "method_declaration":
		return constructFunction
	case "type_spec":
		return constructClass
	case "import_spec":
		return constructImport
	case "var_spec", "short_var_declaration":
		return constructAssignment
	case "call_expression":
		return constructCall
	default:
		return constructOther
	}
}

func (golangRules) functionDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	name := e.text(nameNode)
	qualified := name
	if recv := goReceiverType(e, n); recv != "" {
		qualified = recv + "." + name
	}
	e.emitFunctionNode(n, graph.KindFunction, name, qualified, goParameters(n))
}

// goReceiverType returns the bare receiver type name of a method declaration,
// stripping pointer and generic type arguments.
func goReceiverType(e *extractor, n *sitter.Node) string {
	recv := n.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	var typeName string
	var visit func(*sitter.Node)
	visit = func(c *sitter.Node) {
		if c == nil || typeName != "" {
			return
		}
		if c.Kind() == "type_identifier" {
			typeName = e.text(c)
			return
		}
		for i := uint(0); i < c.ChildCount(); i++ {
			visit(c.Child(i))
		}
	}
	visit(recv)
	return typeName
}

// goParameters collects parameter name identifiers. A single declaration can
// bind several names (`a, b int`); variadic declarations are not modeled.
func goParameters(n *sitter.Node) []*sitter.Node {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < params.ChildCount(); i++ {
		p := params.Child(i)
		if p.Kind() != "parameter_declaration" {
			continue
		}
		for j := uint(0); j < p.ChildCount(); j++ {
			if c := p.Child(j); c.Kind() == "identifier" {
				out = append(out, c)
			}
		}
	}
	return out
}

// classDef maps a type_spec to a Class entity. The body traversal runs with
// the class scope active, but Go type bodies contain no further constructs.
func (golangRules) classDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	e.emitClass(n, e.text(nameNode))
}

// importDecl handles one import_spec: the module reference is keyed by the
// full import path, and the effective name honors an alias when present.
func (golangRules) importDecl(e *extractor, n *sitter.Node) {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return
	}
	path := strings.Trim(e.text(pathNode), `"`)
	if path == "" {
		return
	}
	effective := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		effective = path[idx+1:]
	}
	if alias := n.ChildByFieldName("name"); alias != nil {
		effective = e.text(alias)
	}
	e.emitImport(n, path, map[string]any{"importedName": effective})
}

func (golangRules) importFrom(e *extractor, n *sitter.Node) {
	e.walkChildren(n)
}

// assignment emits variables for var specs and short variable declarations
// with simple identifier names, then recurses into the assigned values.
func (golangRules) assignment(e *extractor, n *sitter.Node) {
	switch n.Kind() {
	case "var_spec":
		for i := uint(0); i < n.ChildCount(); i++ {
			if c := n.Child(i); c.Kind() == "identifier" {
				e.emitVariable(n, e.text(c))
			}
		}
	case "short_var_declaration":
		if left := n.ChildByFieldName("left"); left != nil {
			for i := uint(0); i < left.ChildCount(); i++ {
				if c := left.Child(i); c.Kind() == "identifier" {
					e.emitVariable(n, e.text(c))
				}
			}
		}
	}
	e.walkChildren(n)
}

// call resolves the callee name from an identifier or the field of a
// selector expression, ignoring the receiver.
func (golangRules) call(e *extractor, n *sitter.Node) {
	var name string
	if fn := n.ChildByFieldName("function"); fn != nil {
		switch fn.Kind() {
		case "identifier":
			name = e.text(fn)
		case "selector_expression":
			if field := fn.ChildByFieldName("field"); field != nil {
				name = e.text(field)
			}
		}
	}
	if name != "" {
		e.emitCall(name)
	}
	e.walkChildren(n)
}
