package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// scriptRules maps the JavaScript and TypeScript grammars onto the entity
// model. The two grammars share node kinds for everything this engine
// extracts; only the language tag differs. Arrow functions are not modeled as
// definitions — a `const f = () => {}` surfaces as the variable f.
type scriptRules struct {
	lang string
}

func (r scriptRules) language() string { return r.lang }

func (scriptRules) classify(kind string) construct {
	switch kind {
	case "function_declaration", "generator_function_declaration", "method_definition":
		return constructFunction
	case "class_declaration":
		return constructClass
	case "import_statement":
		return constructImportFrom
	case "variable_declarator":
		return constructAssignment
	case "call_expression":
		return constructCall
	default:
		return constructOther
	}
}

func (scriptRules) functionDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	e.emitFunction(n, e.text(nameNode), scriptParameters(n))
}

// scriptParameters collects plain, defaulted and TypeScript-annotated
// parameter identifiers. Rest parameters and destructuring patterns are not
// modeled.
func scriptParameters(n *sitter.Node) []*sitter.Node {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < params.ChildCount(); i++ {
		p := params.Child(i)
		switch p.Kind() {
		case "identifier":
			out = append(out, p)
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				out = append(out, left)
			}
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil && pat.Kind() == "identifier" {
				out = append(out, pat)
			}
		}
	}
	return out
}

func (scriptRules) classDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	e.emitClass(n, e.text(nameNode))
}

// importDecl is unreachable for these grammars; all imports carry a source
// module and dispatch as importFrom.
func (scriptRules) importDecl(e *extractor, n *sitter.Node) {
	e.walkChildren(n)
}

// importFrom handles `import d, { a as b } from "mod"` and side-effect
// imports. The module reference is keyed by the unquoted source string.
func (r scriptRules) importFrom(e *extractor, n *sitter.Node) {
	source := n.ChildByFieldName("source")
	if source == nil {
		e.walkChildren(n)
		return
	}
	module := strings.Trim(e.text(source), "\"'`")

	names := make([]string, 0)
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == "import_clause" {
			collectScriptImportNames(e, child, &names)
		}
	}

	e.emitImport(n, module, map[string]any{"importedNames": names, "fromModule": module})
}

// collectScriptImportNames gathers the effective local names bound by an
// import clause: default imports, namespace imports and named specifiers
// (honoring aliases).
func collectScriptImportNames(e *extractor, n *sitter.Node, names *[]string) {
	switch n.Kind() {
	case "import_specifier":
		if a := n.ChildByFieldName("alias"); a != nil {
			*names = append(*names, e.text(a))
		} else if m := n.ChildByFieldName("name"); m != nil {
			*names = append(*names, e.text(m))
		}
		return
	case "identifier":
		*names = append(*names, e.text(n))
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		collectScriptImportNames(e, n.Child(i), names)
	}
}

// assignment emits a variable for a declarator with a simple identifier name,
// then recurses into the initializer.
func (scriptRules) assignment(e *extractor, n *sitter.Node) {
	if name := n.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
		e.emitVariable(n, e.text(name))
	}
	e.walkChildren(n)
}

// call resolves the callee name from an identifier or the property of a
// member expression, ignoring the receiver.
func (scriptRules) call(e *extractor, n *sitter.Node) {
	var name string
	if fn := n.ChildByFieldName("function"); fn != nil {
		switch fn.Kind() {
		case "identifier":
			name = e.text(fn)
		case "member_expression":
			if prop := fn.ChildByFieldName("property"); prop != nil {
				name = e.text(prop)
			}
		}
	}
	if name != "" {
		e.emitCall(name)
	}
	e.walkChildren(n)
}
