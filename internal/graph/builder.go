package graph

// Builder accumulates the nodes and relationships discovered during one
// traversal. It is append-only: nothing is mutated or removed once added, and
// output order is the append order. A fresh Builder is constructed per run.
type Builder struct {
	filePath string
	language string
	nodes    []Node
	edges    []Edge
	moduleID string
}

// NewBuilder creates a builder for one file. filePath must already be
// absolute and slash-normalized.
func NewBuilder(filePath, language string) *Builder {
	return &Builder{
		filePath: filePath,
		language: language,
		nodes:    make([]Node, 0),
		edges:    make([]Edge, 0),
	}
}

// FilePath returns the normalized path the builder was created for.
func (b *Builder) FilePath() string { return b.filePath }

// Module returns a resolved ref to the file's own node, the default parent
// and edge source for constructs not nested inside a class or function.
func (b *Builder) Module() Ref { return ResolvedRef(b.moduleID) }

// AddNode computes the entity's identity, appends the node record and returns
// the identity for the caller to link. The File node additionally anchors the
// module identity for the rest of the run.
func (b *Builder) AddNode(kind Kind, name, qualifiedName string, loc Location, parent Ref, props map[string]any) string {
	id := EntityID(kind, b.filePath, qualifiedName, loc.StartLine)
	if props == nil {
		props = map[string]any{}
	}
	n := Node{
		Kind:       kind,
		Name:       name,
		FilePath:   b.filePath,
		EntityID:   id,
		Location:   loc,
		Language:   b.language,
		Properties: props,
	}
	if parent.valid() {
		n.ParentID = parent.EntityID()
	}
	if kind == KindFile {
		b.moduleID = id
	}
	b.nodes = append(b.nodes, n)
	return id
}

// AddRelationship appends an edge between two endpoints. No deduplication is
// performed; duplicate edges repeat in the list under the same derived
// identity.
func (b *Builder) AddRelationship(rel Relation, source, target Ref, props map[string]any) {
	if props == nil {
		props = map[string]any{}
	}
	b.edges = append(b.edges, Edge{
		Type:       rel,
		SourceID:   source.EntityID(),
		TargetID:   target.EntityID(),
		EntityID:   RelationshipID(rel, source.EntityID(), target.EntityID()),
		Properties: props,
	})
}

// Document packages the accumulated graph into the single result document.
func (b *Builder) Document() *Document {
	return &Document{
		FilePath:      b.filePath,
		Nodes:         b.nodes,
		Relationships: b.edges,
	}
}
