package graph

import (
	"encoding/json"
	"io"
)

// Document is the self-contained result for one source file. Nodes and
// relationships appear in traversal-append order, so two runs over identical
// input produce byte-identical documents.
type Document struct {
	FilePath      string `json:"filePath"`
	Nodes         []Node `json:"nodes"`
	Relationships []Edge `json:"relationships"`
}

// Encode writes the document as pretty-printed JSON.
func (d *Document) Encode(w io.Writer) error {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// ErrorDocument replaces the graph document when any stage fails. Partial
// graphs are never emitted; the message is the only differentiator between
// failure kinds.
type ErrorDocument struct {
	Error string `json:"error"`
}

// WriteError emits an error document on w.
func WriteError(w io.Writer, msg string) {
	_ = json.NewEncoder(w).Encode(ErrorDocument{Error: msg})
}
