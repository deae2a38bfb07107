package graph

import (
	"fmt"
	"strings"
)

// EntityID builds the deterministic key for an entity from its kind, owning
// file and qualified name. Variables and parameters fold the declaration line
// into the key, so same-named declarations on different lines stay distinct.
// Every other kind is keyed by qualified name alone; re-declaring the same
// class or function name in one file collides to one identity, and callers
// must tolerate the collision rather than treat it as an error.
func EntityID(kind Kind, filePath, qualifiedName string, line int) string {
	k := strings.ToLower(string(kind))
	if kind == KindVariable || kind == KindParameter {
		return fmt.Sprintf("%s:%s:%s:%d", k, filePath, qualifiedName, line)
	}
	return fmt.Sprintf("%s:%s:%s", k, filePath, qualifiedName)
}

// RelationshipID derives the edge key from its type and endpoints, so repeated
// identical edges collapse to one identity for exactly-once consumers.
func RelationshipID(rel Relation, sourceID, targetID string) string {
	return fmt.Sprintf("%s:%s:%s", strings.ToLower(string(rel)), sourceID, targetID)
}
