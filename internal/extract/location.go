package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"codegraph/internal/graph"
)

// fileLocation is the fixed span for the whole-file node. It stands for the
// file itself, not a text range, so it never varies with file length.
func fileLocation() graph.Location {
	return graph.Location{StartLine: 1, EndLine: 1, StartColumn: 0, EndColumn: 0}
}

// nodeLocation maps a tree node to a normalized 1-based span. A missing node
// degrades to the all-zero span instead of failing, so one malformed node
// never aborts extraction of the rest of the file.
func nodeLocation(n *sitter.Node) graph.Location {
	if n == nil {
		return graph.Location{}
	}
	start := n.StartPosition()
	end := n.EndPosition()
	return graph.Location{
		StartLine:   int(start.Row) + 1,
		EndLine:     int(end.Row) + 1,
		StartColumn: int(start.Column),
		EndColumn:   int(end.Column),
	}
}
