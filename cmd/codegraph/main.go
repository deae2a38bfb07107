// Command codegraph extracts the structural code graph of a single source
// file and prints it as one JSON document on stdout. Any failure — bad
// argument count, missing file, parse or traversal error — emits one error
// document on stderr and exits non-zero. Partial graphs are never emitted.
package main

import (
	"fmt"
	"os"

	"codegraph/internal/extract"
	"codegraph/internal/graph"
	"codegraph/util"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		graph.WriteError(os.Stderr, "File path argument required.")
		return 1
	}

	path, err := util.NormalizePath(args[0])
	if err != nil {
		graph.WriteError(os.Stderr, fmt.Sprintf("Error resolving %s: %v", args[0], err))
		return 1
	}

	if _, err := os.Stat(path); err != nil {
		graph.WriteError(os.Stderr, fmt.Sprintf("File not found (checked absolute path): %s", path))
		return 1
	}

	doc, err := extract.FromFile(path)
	if err != nil {
		graph.WriteError(os.Stderr, fmt.Sprintf("Error parsing %s: %v", path, err))
		return 1
	}

	if err := doc.Encode(os.Stdout); err != nil {
		graph.WriteError(os.Stderr, fmt.Sprintf("Error encoding result for %s: %v", path, err))
		return 1
	}
	return 0
}
