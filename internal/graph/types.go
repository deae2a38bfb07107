package graph

// Kind is the closed set of entity kinds in the output graph.
type Kind string

const (
	KindFile            Kind = "File"
	KindModuleReference Kind = "ModuleReference"
	KindClass           Kind = "Class"
	KindFunction        Kind = "Function"
	KindMethod          Kind = "Method"
	KindParameter       Kind = "Parameter"
	KindVariable        Kind = "Variable"
)

// Relation is the closed set of relationship types between entities.
type Relation string

const (
	RelDefinesFunction Relation = "DEFINES_FUNCTION"
	RelDefinesClass    Relation = "DEFINES_CLASS"
	RelHasMethod       Relation = "HAS_METHOD"
	RelHasParameter    Relation = "HAS_PARAMETER"
	RelImports         Relation = "IMPORTS"
	RelCalls           Relation = "CALLS"
)

// Location is a normalized source span. Lines are 1-based, columns 0-based.
type Location struct {
	StartLine   int `json:"startLine"`
	EndLine     int `json:"endLine"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// Node represents a discovered code construct.
type Node struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
	EntityID string `json:"entityId"`
	Location
	Language   string         `json:"language"`
	Properties map[string]any `json:"properties"`
	ParentID   string         `json:"parentId,omitempty"`
}

// Edge is a typed, directed link between two entity identities. Endpoints are
// not required to resolve to nodes in the same document: call and import
// targets are name-keyed placeholders resolved by a downstream corpus index.
type Edge struct {
	Type       Relation       `json:"type"`
	SourceID   string         `json:"sourceId"`
	TargetID   string         `json:"targetId"`
	EntityID   string         `json:"entityId"`
	Properties map[string]any `json:"properties"`
}

// Ref identifies a relationship endpoint. A resolved ref points at an entity
// materialized earlier in this document; a placeholder ref is keyed only by
// name and stands for a guess that a later stage must confirm. Keeping the two
// distinct in the type system stops a guess from being treated as a link.
type Ref struct {
	id       string
	name     string
	resolved bool
}

// ResolvedRef wraps the identity of an entity present in the current document.
func ResolvedRef(entityID string) Ref {
	return Ref{id: entityID, resolved: true}
}

// PlaceholderRef builds an unresolved, name-keyed endpoint for the given kind.
func PlaceholderRef(kind Kind, filePath, name string) Ref {
	return Ref{id: EntityID(kind, filePath, name, 0), name: name}
}

// EntityID returns the endpoint key used on the wire.
func (r Ref) EntityID() string { return r.id }

// Resolved reports whether the ref points at a materialized entity.
func (r Ref) Resolved() bool { return r.resolved }

// Name returns the bare name of a placeholder ref, empty for resolved refs.
func (r Ref) Name() string { return r.name }

func (r Ref) valid() bool { return r.id != "" }
