package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codegraph/internal/graph"
)

// construct is the closed set of syntax constructs the traversal dispatches
// on. Every node kind a grammar produces is either mapped to one of these by
// the language's ruleset or falls through to structural recursion.
type construct int

const (
	constructOther construct = iota
	constructFunction
	constructClass
	constructImport
	constructImportFrom
	constructAssignment
	constructCall
)

// ruleset supplies the grammar-specific half of the traversal: classification
// of node kinds into constructs, and the extraction rule for each construct.
// Rules are responsible for recursing into children (directly or through the
// shared emit helpers) so that scope push/pop brackets the body traversal.
type ruleset interface {
	language() string
	classify(kind string) construct
	functionDef(e *extractor, n *sitter.Node)
	classDef(e *extractor, n *sitter.Node)
	importDecl(e *extractor, n *sitter.Node)
	importFrom(e *extractor, n *sitter.Node)
	assignment(e *extractor, n *sitter.Node)
	call(e *extractor, n *sitter.Node)
}

// rulesetFor returns the extraction rules for a language id.
func rulesetFor(lang string) (ruleset, error) {
	switch lang {
	case "python":
		return pythonRules{}, nil
	case "javascript", "jsx":
		return scriptRules{lang: "JavaScript"}, nil
	case "typescript", "tsx":
		return scriptRules{lang: "TypeScript"}, nil
	case "go":
		return golangRules{}, nil
	}
	return nil, fmt.Errorf("no extraction rules for language: %s", lang)
}

// extractor owns one depth-first traversal: the source bytes, the graph
// builder and the scope context. Scope state lives here, never in package
// state, so concurrent extractions cannot interfere.
type extractor struct {
	rules ruleset
	src   []byte
	b     *graph.Builder

	// Scope context: the innermost enclosing class and function/method.
	// Each slot is restored to its prior value when the construct's body
	// has been fully traversed.
	currentClassName string
	currentClass     graph.Ref
	currentFunc      graph.Ref
}

func (e *extractor) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch e.rules.classify(n.Kind()) {
	case constructFunction:
		e.rules.functionDef(e, n)
	case constructClass:
		e.rules.classDef(e, n)
	case constructImport:
		e.rules.importDecl(e, n)
	case constructImportFrom:
		e.rules.importFrom(e, n)
	case constructAssignment:
		e.rules.assignment(e, n)
	case constructCall:
		e.rules.call(e, n)
	case constructOther:
		e.walkChildren(n)
	}
}

func (e *extractor) walkChildren(n *sitter.Node) {
	for i := uint(0); i < n.ChildCount(); i++ {
		e.walk(n.Child(i))
	}
}

// text returns the source text covered by a node.
func (e *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(e.src) {
		end = uint(len(e.src))
	}
	return string(e.src[start:end])
}

// scopeParent returns the innermost active scope in priority order:
// enclosing function, enclosing class, then the module itself.
func (e *extractor) scopeParent() graph.Ref {
	if e.currentFunc.Resolved() {
		return e.currentFunc
	}
	if e.currentClass.Resolved() {
		return e.currentClass
	}
	return e.b.Module()
}

// callSource returns the edge source for a call expression: the innermost
// enclosing function, else the module. Class bodies are not call sources.
func (e *extractor) callSource() graph.Ref {
	if e.currentFunc.Resolved() {
		return e.currentFunc
	}
	return e.b.Module()
}

// emitFunction materializes a function, classifying it as a method when a
// class scope is active, with the qualified name prefixed by the class name.
func (e *extractor) emitFunction(n *sitter.Node, name string, params []*sitter.Node) {
	kind, qualified := graph.KindFunction, name
	if e.currentClass.Resolved() {
		kind, qualified = graph.KindMethod, e.currentClassName+"."+name
	}
	e.emitFunctionNode(n, kind, name, qualified, params)
}

// emitFunctionNode adds the function/method node, its containment edge and
// its parameters, then traverses the definition's children with the new
// function as the active scope. The previous scope is restored afterwards.
func (e *extractor) emitFunctionNode(n *sitter.Node, kind graph.Kind, name, qualified string, params []*sitter.Node) {
	id := e.b.AddNode(kind, name, qualified, nodeLocation(n), e.scopeParent(), nil)
	fn := graph.ResolvedRef(id)

	if kind == graph.KindMethod {
		e.b.AddRelationship(graph.RelHasMethod, e.currentClass, fn, nil)
	} else {
		e.b.AddRelationship(graph.RelDefinesFunction, e.b.Module(), fn, nil)
	}

	for _, p := range params {
		e.emitParameter(p, fn)
	}

	prev := e.currentFunc
	e.currentFunc = fn
	e.walkChildren(n)
	e.currentFunc = prev
}

// emitParameter adds one parameter node owned by fn.
func (e *extractor) emitParameter(n *sitter.Node, fn graph.Ref) {
	name := e.text(n)
	if name == "" {
		return
	}
	id := e.b.AddNode(graph.KindParameter, name, name, nodeLocation(n), fn, nil)
	e.b.AddRelationship(graph.RelHasParameter, fn, graph.ResolvedRef(id), nil)
}

// emitClass adds a class node and its DEFINES_CLASS edge from the module,
// then traverses the class body with this class as the active class scope.
func (e *extractor) emitClass(n *sitter.Node, name string) {
	id := e.b.AddNode(graph.KindClass, name, name, nodeLocation(n), e.scopeParent(), nil)
	cls := graph.ResolvedRef(id)
	e.b.AddRelationship(graph.RelDefinesClass, e.b.Module(), cls, nil)

	prevName, prevClass := e.currentClassName, e.currentClass
	e.currentClassName, e.currentClass = name, cls
	e.walkChildren(n)
	e.currentClassName, e.currentClass = prevName, prevClass
}

// emitImport records one imported module: a reference node anchored at the
// import statement's span, and an IMPORTS edge from the module to a
// name-keyed placeholder target.
func (e *extractor) emitImport(stmt *sitter.Node, moduleName string, props map[string]any) {
	e.b.AddNode(graph.KindModuleReference, moduleName, moduleName, nodeLocation(stmt), e.b.Module(), nil)
	target := graph.PlaceholderRef(graph.KindModuleReference, e.b.FilePath(), moduleName)
	e.b.AddRelationship(graph.RelImports, e.b.Module(), target, props)
}

// emitVariable adds a variable node parented to the innermost active scope.
// The declaring statement's span is used as the variable's location.
func (e *extractor) emitVariable(stmt *sitter.Node, name string) {
	e.b.AddNode(graph.KindVariable, name, name, nodeLocation(stmt), e.scopeParent(), nil)
}

// emitCall records a CALLS edge from the innermost active function (else the
// module) to a placeholder keyed only by the best-effort callee name.
func (e *extractor) emitCall(name string) {
	target := graph.PlaceholderRef(graph.KindFunction, e.b.FilePath(), name)
	e.b.AddRelationship(graph.RelCalls, e.callSource(), target, map[string]any{"calledName": name})
}
