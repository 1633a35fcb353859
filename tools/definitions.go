package tools

import "encoding/json"

// AllTools contains all tool specifications for the Wiki.js MCP server.
// Tool descriptions follow a structured format for optimal LLM tool
// selection: USE WHEN triggers, PARAMETERS with defaults, RETURNS.
var AllTools = []ToolSpec{
	{
		Name:  "wiki_list_pages",
		Title: "List Wiki Pages",
		Description: `List pages on the wiki, ordered and capped.

USE WHEN: User asks "what pages exist", "show me the wiki contents", or needs page ids/paths for other tools.

PARAMETERS:
- orderBy: Sort order, one of ID, PATH, TITLE, CREATED, UPDATED (default TITLE)
- limit: Max pages to return (default 10)

RETURNS: One entry per page with title, id, path, and last-updated time.`,
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"orderBy": {
					"type": "string",
					"enum": ["ID", "PATH", "TITLE", "CREATED", "UPDATED"],
					"description": "Sort order for the listing (default TITLE)"
				},
				"limit": {
					"type": "integer",
					"description": "Maximum number of pages to return (default 10)"
				}
			}
		}`),
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:  "wiki_get_page",
		Title: "Get Wiki Page",
		Description: `Retrieve a single page's full content by numeric id or by path.

USE WHEN: User asks to read, show, or quote a specific page.

PARAMETERS:
- id: Numeric page id (exactly one of id or path is required)
- path: Page path, with or without a leading slash (e.g. "home" or "/home")

RETURNS: The page title as a heading followed by the raw content.`,
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"description": "Numeric page id"
				},
				"path": {
					"type": "string",
					"description": "Page path (leading slash optional)"
				}
			}
		}`),
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:  "wiki_create_page",
		Title: "Create Wiki Page",
		Description: `Create a new page on the wiki.

USE WHEN: User asks to add a new page. NOT FOR editing existing pages (use wiki_update_page).

PARAMETERS:
- path: Page path (required)
- title: Page title (required)
- content: Page content (required)
- editor: Editor type (default "markdown")
- isPublished: Publish immediately (default true)

RETURNS: The new page's title, id, and path.`,
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Page path (leading slash optional)"
				},
				"title": {
					"type": "string",
					"description": "Page title"
				},
				"content": {
					"type": "string",
					"description": "Page content"
				},
				"editor": {
					"type": "string",
					"description": "Editor type (default markdown)"
				},
				"isPublished": {
					"type": "boolean",
					"description": "Publish the page immediately (default true)"
				}
			},
			"required": ["path", "title", "content"]
		}`),
		OpenWorld: true,
	},
	{
		Name:  "wiki_update_page",
		Title: "Update Wiki Page",
		Description: `Update an existing page. Only the fields provided are changed.

USE WHEN: User asks to edit, rewrite, retitle, publish, or unpublish an existing page. WARNING: a provided content field replaces the page content entirely.

PARAMETERS:
- id: Numeric page id (id or path required; path is resolved to an id first)
- path: Page path (leading slash optional)
- title, content, editor, isPublished: Fields to change (all optional)

RETURNS: Confirmation with the updated page's id.`,
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"description": "Numeric page id"
				},
				"path": {
					"type": "string",
					"description": "Page path, resolved to an id before updating"
				},
				"title": {
					"type": "string",
					"description": "New page title"
				},
				"content": {
					"type": "string",
					"description": "New page content (replaces existing content)"
				},
				"editor": {
					"type": "string",
					"description": "Editor type"
				},
				"isPublished": {
					"type": "boolean",
					"description": "Published state"
				}
			}
		}`),
		Destructive: true,
		OpenWorld:   true,
	},
}
