// Package tools provides the tool catalog and request dispatcher for the
// Wiki.js MCP server. Tools are defined declaratively and registered with
// untyped handlers so argument validation stays duck-typed: each handler
// checks presence and primitive type of its fields against the schema it
// declares, and every failure becomes an error-flagged text result rather
// than a protocol rejection.
package tools

import "encoding/json"

// ToolSpec defines a tool's metadata for declarative registration.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "wiki_get_page")
	Name string

	// Title is the human-readable tool title for annotations
	Title string

	// Description is the tool description shown to LLMs
	Description string

	// InputSchema is the raw JSON schema for the tool's arguments
	InputSchema json.RawMessage

	// ReadOnly indicates the tool doesn't modify wiki content
	ReadOnly bool

	// Destructive indicates the tool can overwrite existing content
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
