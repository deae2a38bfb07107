package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codegraph/internal/extract"
	"codegraph/internal/graph"
	"codegraph/util"
)

// Arguments structs

type ExtractFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:Path to the source file to extract"`
}

type IndexArgs struct{}

type IndexStatusArgs struct{}

type GetSymbolsInFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:The absolute path to the file to inspect"`
}

type FindCallersArgs struct {
	SymbolName string `json:"symbol_name" jsonschema:"required,description:The bare name of the called symbol"`
}

type GetSymbolArgs struct {
	SymbolName string `json:"symbol_name" jsonschema:"required,description:The name of the symbol to locate"`
	WithSource bool   `json:"with_source" jsonschema:"description:If true, includes the source code of the symbol in the response"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "extract_file",
		Description: "Extracts the structural code graph of one source file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ExtractFileArgs) (*mcp.CallToolResult, any, error) {
		path, err := util.NormalizePath(args.FilePath)
		if err != nil {
			return errorResult(fmt.Sprintf("Error resolving %s: %v", args.FilePath, err)), nil, nil
		}
		if _, err := os.Stat(path); err != nil {
			return errorResult(fmt.Sprintf("File not found (checked absolute path): %s", path)), nil, nil
		}
		doc, err := extract.FromFile(path)
		if err != nil {
			return errorResult(fmt.Sprintf("Error parsing %s: %v", path, err)), nil, nil
		}
		var sb strings.Builder
		if err := doc.Encode(&sb); err != nil {
			return errorResult(fmt.Sprintf("Error encoding result for %s: %v", path, err)), nil, nil
		}
		return textResult(sb.String()), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "index",
		Description: "Scans the workspace and rebuilds the code graph index",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IndexArgs) (*mcp.CallToolResult, any, error) {
		if status, _, _ := s.GetIndexStatus(); status == IndexStatusInProgress {
			return errorResult("Indexing already in progress"), nil, nil
		}
		msg := s.runIndex(ctx)
		if msg == "" {
			return errorResult("Indexing already in progress"), nil, nil
		}
		if status, _, _ := s.GetIndexStatus(); status == IndexStatusFailed {
			return errorResult(msg), nil, nil
		}
		return textResult(msg), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "index_status",
		Description: "Returns the current indexing status of the workspace",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IndexStatusArgs) (*mcp.CallToolResult, any, error) {
		status, err, duration := s.GetIndexStatus()

		result := map[string]any{
			"status": string(status),
		}
		if duration > 0 {
			result["duration_seconds"] = duration.Seconds()
		}
		if err != nil {
			result["error"] = err.Error()
		}

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_symbols_in_file",
		Description: "Returns the extracted entities of a file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetSymbolsInFileArgs) (*mcp.CallToolResult, any, error) {
		if msg := s.awaitIndex(ctx); msg != "" {
			return errorResult(msg), nil, nil
		}

		path, err := util.NormalizePath(args.FilePath)
		if err != nil {
			return errorResult(fmt.Sprintf("Error resolving %s: %v", args.FilePath, err)), nil, nil
		}
		nodes, err := s.store.NodesInFile(ctx, path)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}

		type SimpleNode struct {
			Name  string `json:"name"`
			Kind  string `json:"kind"`
			Range string `json:"range"`
		}
		var simple []SimpleNode
		for _, n := range nodes {
			simple = append(simple, SimpleNode{
				Name:  n.Name,
				Kind:  string(n.Kind),
				Range: fmt.Sprintf("%d:%d-%d:%d", n.StartLine, n.StartColumn, n.EndLine, n.EndColumn),
			})
		}

		jsonBytes, _ := json.MarshalIndent(simple, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_callers",
		Description: "Finds the functions and modules that call a named symbol",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindCallersArgs) (*mcp.CallToolResult, any, error) {
		if msg := s.awaitIndex(ctx); msg != "" {
			return errorResult(msg), nil, nil
		}

		nodes, err := s.store.FindCallers(ctx, args.SymbolName)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}
		if len(nodes) == 0 {
			return textResult("No callers found."), nil, nil
		}

		type CallerNode struct {
			Name     string `json:"name"`
			FilePath string `json:"file_path"`
			Kind     string `json:"kind"`
		}
		var callers []CallerNode
		for _, n := range nodes {
			callers = append(callers, CallerNode{
				Name:     n.Name,
				FilePath: n.FilePath,
				Kind:     string(n.Kind),
			})
		}

		jsonBytes, _ := json.MarshalIndent(callers, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_symbol",
		Description: "Finds the location and optionally the source code of a symbol",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetSymbolArgs) (*mcp.CallToolResult, any, error) {
		if msg := s.awaitIndex(ctx); msg != "" {
			return errorResult(msg), nil, nil
		}

		nodes, err := s.store.LookupSymbol(ctx, args.SymbolName)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}
		if len(nodes) == 0 {
			return textResult("Symbol not found."), nil, nil
		}

		type SymbolInfo struct {
			graph.Node
			Source string `json:"source,omitempty"`
		}

		var info []SymbolInfo
		for _, n := range nodes {
			si := SymbolInfo{Node: *n}
			if args.WithSource {
				source, err := readSource(n.FilePath, n.StartLine, n.EndLine)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to read source for %s in %s: %v\n", n.Name, n.FilePath, err)
				} else {
					si.Source = source
				}
			}
			info = append(info, si)
		}

		jsonBytes, _ := json.MarshalIndent(info, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})
}

// readSource returns the inclusive line range of a file.
func readSource(filePath string, lineStart, lineEnd int) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var builder strings.Builder
	sc := bufio.NewScanner(f)
	currentLine := 1
	first := true
	for sc.Scan() {
		if currentLine > lineEnd {
			break
		}
		if currentLine >= lineStart {
			if !first {
				builder.WriteByte('\n')
			}
			builder.Write(sc.Bytes())
			first = false
		}
		currentLine++
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return builder.String(), nil
}
