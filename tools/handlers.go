package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"runtime/debug"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/olgasafonova/wikijs-mcp-server/metrics"
	"github.com/olgasafonova/wikijs-mcp-server/tracing"
	"github.com/olgasafonova/wikijs-mcp-server/wiki"
)

// PageService is the subset of the wiki client the handlers depend on.
// Tests substitute a fake.
type PageService interface {
	ListPages(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error)
	GetPageByID(ctx context.Context, id int) (*wiki.Page, error)
	GetPageByPath(ctx context.Context, path string) (*wiki.Page, error)
	CreatePage(ctx context.Context, input wiki.CreatePageInput) (*wiki.PageRef, error)
	UpdatePage(ctx context.Context, input wiki.UpdatePageInput) (*wiki.PageRef, error)
}

// HandlerRegistry routes tool calls to the wiki client and shapes every
// outcome into a text result. Nothing escapes the dispatcher boundary:
// argument violations, lookup misses, upstream failures, and panics all
// resolve to a CallToolResult with IsError set.
type HandlerRegistry struct {
	client PageService
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client PageService, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{client: client, logger: logger}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		server.AddTool(buildTool(spec), h.toolHandler(spec))
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// buildTool creates an mcp.Tool from a ToolSpec.
func buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: spec.InputSchema,
		Annotations: annotations,
	}
}

// toolHandler wraps the dispatcher with tracing, metrics, and logging.
func (h *HandlerRegistry) toolHandler(spec ToolSpec) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result := h.Dispatch(ctx, spec.Name, req.Params.Arguments)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))
		if result.IsError {
			span.SetStatus(codes.Error, resultText(result))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		metrics.RecordRequest(spec.Name, duration, !result.IsError)

		h.logger.Info("Tool executed",
			"tool", spec.Name,
			"is_error", result.IsError,
			"duration_seconds", duration)

		return result, nil
	}
}

// Dispatch validates the argument bag for the named tool and routes to its
// handler. It always returns a result; panics are recovered and converted
// to error results at this boundary.
func (h *HandlerRegistry) Dispatch(ctx context.Context, name string, rawArgs json.RawMessage) (result *mcp.CallToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.PanicsRecovered.WithLabelValues(name).Inc()
			h.logger.Error("Panic recovered",
				"tool", name,
				"panic", rec,
				"stack", string(debug.Stack()))
			result = errorResult(fmt.Sprintf("internal error in %s: %v", name, rec))
		}
	}()

	args, err := decodeArgs(rawArgs)
	if err != nil {
		return errorResult(err.Error())
	}

	switch name {
	case "wiki_list_pages":
		return h.handleListPages(ctx, args)
	case "wiki_get_page":
		return h.handleGetPage(ctx, args)
	case "wiki_create_page":
		return h.handleCreatePage(ctx, args)
	case "wiki_update_page":
		return h.handleUpdatePage(ctx, args)
	default:
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}
}

func (h *HandlerRegistry) handleListPages(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	orderBy, ok, err := stringArg(args, "orderBy")
	if err != nil {
		return errorResult(err.Error())
	}
	if !ok {
		orderBy = wiki.DefaultOrderBy
	} else if !wiki.ValidOrderBy(orderBy) {
		return errorResult(wiki.NewValidationError("orderBy",
			fmt.Sprintf("must be one of %s", strings.Join(wiki.OrderByValues, ", "))).Error())
	}

	limit, ok, err := intArg(args, "limit")
	if err != nil {
		return errorResult(err.Error())
	}
	if !ok {
		limit = wiki.DefaultListLimit
	}

	pages, err := h.client.ListPages(ctx, wiki.ListPagesArgs{OrderBy: orderBy, Limit: limit})
	if err != nil {
		return errorResult(err.Error())
	}
	if len(pages) == 0 {
		return textResult("No pages found")
	}

	entries := make([]string, 0, len(pages))
	for _, p := range pages {
		entry := fmt.Sprintf("%s (ID: %d) - %s", p.Title, p.ID, p.Path)
		if updated := formatTimestamp(p.UpdatedAt); updated != "" {
			entry += fmt.Sprintf("\nUpdated: %s", updated)
		}
		entries = append(entries, entry)
	}
	return textResult(strings.Join(entries, "\n\n"))
}

func (h *HandlerRegistry) handleGetPage(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	id, hasID, err := intArg(args, "id")
	if err != nil {
		return errorResult(err.Error())
	}
	path, hasPath, err := stringArg(args, "path")
	if err != nil {
		return errorResult(err.Error())
	}
	if hasID == hasPath {
		return errorResult(wiki.NewValidationError("",
			`provide exactly one of "id" or "path"`).Error())
	}

	var page *wiki.Page
	if hasID {
		page, err = h.client.GetPageByID(ctx, id)
	} else {
		page, err = h.client.GetPageByPath(ctx, path)
	}
	if err != nil {
		return errorResult(err.Error())
	}

	return textResult(fmt.Sprintf("# %s\n\n%s", page.Title, page.Content))
}

func (h *HandlerRegistry) handleCreatePage(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	path, err := requiredString(args, "path")
	if err != nil {
		return errorResult(err.Error())
	}
	title, err := requiredString(args, "title")
	if err != nil {
		return errorResult(err.Error())
	}
	content, err := requiredString(args, "content")
	if err != nil {
		return errorResult(err.Error())
	}

	editor, ok, err := stringArg(args, "editor")
	if err != nil {
		return errorResult(err.Error())
	}
	if !ok {
		editor = wiki.DefaultEditor
	}
	isPublished, ok, err := boolArg(args, "isPublished")
	if err != nil {
		return errorResult(err.Error())
	}
	if !ok {
		isPublished = true
	}

	page, err := h.client.CreatePage(ctx, wiki.CreatePageInput{
		Path:        path,
		Title:       title,
		Content:     content,
		Editor:      editor,
		IsPublished: isPublished,
	})
	if err != nil {
		return errorResult(err.Error())
	}

	return textResult(fmt.Sprintf("Page created successfully!\nTitle: %s\nID: %d\nPath: %s",
		page.Title, page.ID, page.Path))
}

func (h *HandlerRegistry) handleUpdatePage(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	id, hasID, err := intArg(args, "id")
	if err != nil {
		return errorResult(err.Error())
	}
	path, hasPath, err := stringArg(args, "path")
	if err != nil {
		return errorResult(err.Error())
	}
	if !hasID && !hasPath {
		return errorResult(wiki.NewValidationError("",
			`either "id" or "path" is required`).Error())
	}

	// Resolve path to an id before mutating. A failed resolution aborts
	// the update entirely.
	if !hasID {
		page, err := h.client.GetPageByPath(ctx, path)
		if err != nil {
			return errorResult(err.Error())
		}
		id = page.ID
	}

	input := wiki.UpdatePageInput{ID: id}
	if title, ok, err := stringArg(args, "title"); err != nil {
		return errorResult(err.Error())
	} else if ok {
		input.Title = &title
	}
	if content, ok, err := stringArg(args, "content"); err != nil {
		return errorResult(err.Error())
	} else if ok {
		input.Content = &content
	}
	if editor, ok, err := stringArg(args, "editor"); err != nil {
		return errorResult(err.Error())
	} else if ok {
		input.Editor = &editor
	}
	if isPublished, ok, err := boolArg(args, "isPublished"); err != nil {
		return errorResult(err.Error())
	} else if ok {
		input.IsPublished = &isPublished
	}

	ref, err := h.client.UpdatePage(ctx, input)
	if err != nil {
		return errorResult(err.Error())
	}

	if ref != nil {
		return textResult(fmt.Sprintf("Page updated successfully!\nTitle: %s\nID: %d\nPath: %s",
			ref.Title, ref.ID, ref.Path))
	}
	return textResult(fmt.Sprintf("Page updated successfully!\nID: %d", id))
}

// decodeArgs parses the raw argument bag. An absent bag is treated as
// empty; an explicit null or non-object bag is an argument violation.
func decodeArgs(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, wiki.NewValidationError("", "arguments must be an object")
	}
	if args == nil {
		return nil, wiki.NewValidationError("", "arguments must not be null")
	}
	return args, nil
}

// stringArg extracts an optional string field from the argument bag.
// The second return reports presence; a present non-string is an error.
func stringArg(args map[string]any, key string) (string, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, wiki.NewValidationError(key, "must be a string")
	}
	return s, true, nil
}

// intArg extracts an optional integer field. JSON numbers arrive as
// float64; fractional values are rejected.
func intArg(args map[string]any, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false, wiki.NewValidationError(key, "must be an integer")
	}
	return int(f), true, nil
}

// boolArg extracts an optional boolean field.
func boolArg(args map[string]any, key string) (bool, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, wiki.NewValidationError(key, "must be a boolean")
	}
	return b, true, nil
}

// requiredString extracts a mandatory string field.
func requiredString(args map[string]any, key string) (string, error) {
	s, ok, err := stringArg(args, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", wiki.NewValidationError(key, "is required")
	}
	return s, nil
}

// formatTimestamp renders an RFC 3339 timestamp in the server's locale.
// Unparseable values are shown as-is; empty stays empty.
func formatTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// resultText returns the first text block of a result, for logging and
// span status.
func resultText(r *mcp.CallToolResult) string {
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
