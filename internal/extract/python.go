package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pythonRules carries the extraction rules for the Python grammar. Async
// function definitions share the function_definition node kind, so they get
// identical treatment to synchronous ones; asynchrony is not modeled.
type pythonRules struct{}

func (pythonRules) language() string { return "Python" }

func (pythonRules) classify(kind string) construct {
	switch kind {
	case "function_definition":
		return constructFunction
	case "class_definition":
		return constructClass
	case "import_statement":
		return constructImport
	case "import_from_statement":
		return constructImportFrom
	case "assignment":
		return constructAssignment
	case "call":
		return constructCall
	default:
		return constructOther
	}
}

func (pythonRules) functionDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	e.emitFunction(n, e.text(nameNode), pythonParameters(n))
}

// pythonParameters collects the positional parameter identifiers, including
// annotated and defaulted forms. Splat patterns (*args, **kwargs) and bare
// separators are not modeled.
func pythonParameters(n *sitter.Node) []*sitter.Node {
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
		case "typed_parameter":
			for j := uint(0); j < p.ChildCount(); j++ {
				if c := p.Child(j); c.Kind() == "identifier" {
					out = append(out, c)
					break
				}
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				out = append(out, name)
			}
		}
	}
	return out
}

func (pythonRules) classDef(e *extractor, n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		e.walkChildren(n)
		return
	}
	e.emitClass(n, e.text(nameNode))
}

// importDecl handles `import foo` and `import foo as bar`, one module
// reference and IMPORTS edge per imported name.
func (pythonRules) importDecl(e *extractor, n *sitter.Node) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "dotted_name":
			name := e.text(child)
			e.emitImport(n, name, map[string]any{"importedName": name})
		case "aliased_import":
			var name, alias string
			if m := child.ChildByFieldName("name"); m != nil {
				name = e.text(m)
			}
			if a := child.ChildByFieldName("alias"); a != nil {
				alias = e.text(a)
			}
			if name == "" {
				continue
			}
			effective := alias
			if effective == "" {
				effective = name
			}
			e.emitImport(n, name, map[string]any{"importedName": effective})
		}
	}
}

// importFrom handles `from x import a, b as c`. One module reference is
// emitted for the source module ("." for relative imports with no named
// module) and one IMPORTS edge carrying the effective imported names.
func (pythonRules) importFrom(e *extractor, n *sitter.Node) {
	module := "."
	if m := n.ChildByFieldName("module_name"); m != nil {
		if t := e.text(m); t != "" {
			module = t
		}
	}

	names := make([]string, 0)
	sawImport := false
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "import":
			sawImport = true
		case "dotted_name", "identifier":
			if sawImport {
				names = append(names, e.text(child))
			}
		case "aliased_import":
			if a := child.ChildByFieldName("alias"); a != nil {
				names = append(names, e.text(a))
			} else if m := child.ChildByFieldName("name"); m != nil {
				names = append(names, e.text(m))
			}
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	e.emitImport(n, module, map[string]any{"importedNames": names, "fromModule": module})
}

// assignment emits a variable for a simple name target. Tuple, attribute and
// subscript targets are not modeled. Chained assignments nest on the right
// and are picked up by the recursion into the assigned value.
func (pythonRules) assignment(e *extractor, n *sitter.Node) {
	if left := n.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
		e.emitVariable(n, e.text(left))
	}
	e.walkChildren(n)
}

// call resolves a best-effort callee name: the identifier of a plain call, or
// the trailing attribute of a method-style call. The receiver is ignored, so
// unrelated methods sharing a name conflate — a documented heuristic, not a
// correctness guarantee.
func (pythonRules) call(e *extractor, n *sitter.Node) {
	var name string
	if fn := n.ChildByFieldName("function"); fn != nil {
		switch fn.Kind() {
		case "identifier":
			name = e.text(fn)
		case "attribute":
			if attr := fn.ChildByFieldName("attribute"); attr != nil {
				name = e.text(attr)
			}
		}
	}
	if name != "" {
		e.emitCall(name)
	}
	e.walkChildren(n)
}
