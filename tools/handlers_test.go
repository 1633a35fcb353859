package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/olgasafonova/wikijs-mcp-server/wiki"
)

// fakeService implements PageService with per-method function hooks and call
// counters. A hooked method left nil fails the call so handler tests never
// silently reach a method they did not expect.
type fakeService struct {
	listFn   func(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error)
	byIDFn   func(ctx context.Context, id int) (*wiki.Page, error)
	byPathFn func(ctx context.Context, path string) (*wiki.Page, error)
	createFn func(ctx context.Context, input wiki.CreatePageInput) (*wiki.PageRef, error)
	updateFn func(ctx context.Context, input wiki.UpdatePageInput) (*wiki.PageRef, error)

	listCalls   int
	byIDCalls   int
	byPathCalls int
	createCalls int
	updateCalls int
}

func (f *fakeService) ListPages(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error) {
	f.listCalls++
	if f.listFn == nil {
		return nil, errors.New("unexpected ListPages call")
	}
	return f.listFn(ctx, args)
}

func (f *fakeService) GetPageByID(ctx context.Context, id int) (*wiki.Page, error) {
	f.byIDCalls++
	if f.byIDFn == nil {
		return nil, errors.New("unexpected GetPageByID call")
	}
	return f.byIDFn(ctx, id)
}

func (f *fakeService) GetPageByPath(ctx context.Context, path string) (*wiki.Page, error) {
	f.byPathCalls++
	if f.byPathFn == nil {
		return nil, errors.New("unexpected GetPageByPath call")
	}
	return f.byPathFn(ctx, path)
}

func (f *fakeService) CreatePage(ctx context.Context, input wiki.CreatePageInput) (*wiki.PageRef, error) {
	f.createCalls++
	if f.createFn == nil {
		return nil, errors.New("unexpected CreatePage call")
	}
	return f.createFn(ctx, input)
}

func (f *fakeService) UpdatePage(ctx context.Context, input wiki.UpdatePageInput) (*wiki.PageRef, error) {
	f.updateCalls++
	if f.updateFn == nil {
		return nil, errors.New("unexpected UpdatePage call")
	}
	return f.updateFn(ctx, input)
}

func (f *fakeService) totalCalls() int {
	return f.listCalls + f.byIDCalls + f.byPathCalls + f.createCalls + f.updateCalls
}

func newTestRegistry(svc *fakeService) *HandlerRegistry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlerRegistry(svc, logger)
}

func dispatch(t *testing.T, h *HandlerRegistry, tool, args string) (string, bool) {
	t.Helper()
	result := h.Dispatch(context.Background(), tool, json.RawMessage(args))
	if result == nil {
		t.Fatalf("Dispatch(%s) returned nil result", tool)
	}
	return resultText(result), result.IsError
}

func TestDispatchUnknownTool(t *testing.T) {
	svc := &fakeService{}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_delete_page", `{}`)
	if !isError {
		t.Error("unknown tool should produce an error result")
	}
	if !strings.Contains(text, "unknown tool") {
		t.Errorf("result %q should name the failure", text)
	}
	if svc.totalCalls() != 0 {
		t.Errorf("unknown tool made %d service calls, want 0", svc.totalCalls())
	}
}

func TestDispatchNullArguments(t *testing.T) {
	h := newTestRegistry(&fakeService{})

	text, isError := dispatch(t, h, "wiki_list_pages", `null`)
	if !isError {
		t.Error("null arguments should produce an error result")
	}
	if !strings.Contains(text, "null") {
		t.Errorf("result %q should mention the null bag", text)
	}
}

func TestDispatchNonObjectArguments(t *testing.T) {
	h := newTestRegistry(&fakeService{})

	_, isError := dispatch(t, h, "wiki_list_pages", `[1, 2]`)
	if !isError {
		t.Error("array arguments should produce an error result")
	}
}

func TestDispatchEmptyArguments(t *testing.T) {
	h := newTestRegistry(&fakeService{
		listFn: func(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error) {
			return nil, nil
		},
	})

	_, isError := dispatch(t, h, "wiki_list_pages", ``)
	if isError {
		t.Error("an absent argument bag should be treated as empty")
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	h := newTestRegistry(&fakeService{
		listFn: func(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error) {
			panic("boom")
		},
	})

	text, isError := dispatch(t, h, "wiki_list_pages", `{}`)
	if !isError {
		t.Error("a handler panic should resolve to an error result")
	}
	if !strings.Contains(text, "internal error") || !strings.Contains(text, "boom") {
		t.Errorf("result %q should report the recovered panic", text)
	}
}

func TestListPagesDefaultArguments(t *testing.T) {
	var got wiki.ListPagesArgs
	h := newTestRegistry(&fakeService{
		listFn: func(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error) {
			got = args
			return nil, nil
		},
	})

	text, isError := dispatch(t, h, "wiki_list_pages", `{}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if got.OrderBy != wiki.DefaultOrderBy || got.Limit != wiki.DefaultListLimit {
		t.Errorf("args = %+v, want defaults %s/%d", got, wiki.DefaultOrderBy, wiki.DefaultListLimit)
	}
	if text != "No pages found" {
		t.Errorf("result = %q, want No pages found for an empty wiki", text)
	}
}

func TestListPagesInvalidOrderBy(t *testing.T) {
	svc := &fakeService{}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_list_pages", `{"orderBy": "SIZE"}`)
	if !isError {
		t.Error("invalid orderBy should produce an error result")
	}
	if !strings.Contains(text, "orderBy") {
		t.Errorf("result %q should name the bad field", text)
	}
	if svc.totalCalls() != 0 {
		t.Errorf("invalid arguments made %d service calls, want 0", svc.totalCalls())
	}
}

func TestListPagesFractionalLimit(t *testing.T) {
	svc := &fakeService{}
	h := newTestRegistry(svc)

	_, isError := dispatch(t, h, "wiki_list_pages", `{"limit": 2.5}`)
	if !isError {
		t.Error("fractional limit should produce an error result")
	}
	if svc.totalCalls() != 0 {
		t.Errorf("invalid arguments made %d service calls, want 0", svc.totalCalls())
	}
}

func TestListPagesFormatsEntries(t *testing.T) {
	h := newTestRegistry(&fakeService{
		listFn: func(ctx context.Context, args wiki.ListPagesArgs) ([]wiki.PageListItem, error) {
			return []wiki.PageListItem{
				{ID: 1, Path: "home", Title: "Home", UpdatedAt: "2024-06-01T12:30:00Z"},
				{ID: 2, Path: "docs/setup", Title: "Setup"},
			}, nil
		},
	})

	text, isError := dispatch(t, h, "wiki_list_pages", `{}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if !strings.Contains(text, "Home (ID: 1) - home") {
		t.Errorf("result %q should list the first page", text)
	}
	if !strings.Contains(text, "Setup (ID: 2) - docs/setup") {
		t.Errorf("result %q should list the second page", text)
	}
	if !strings.Contains(text, "Updated: ") {
		t.Errorf("result %q should show the update timestamp when present", text)
	}
	if !strings.Contains(text, "\n\n") {
		t.Errorf("result %q should separate entries with a blank line", text)
	}
}

func TestGetPageRequiresExactlyOneKey(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{"neither", `{}`},
		{"both", `{"id": 1, "path": "home"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := newTestRegistry(svc)

			text, isError := dispatch(t, h, "wiki_get_page", tt.args)
			if !isError {
				t.Error("expected an error result")
			}
			if !strings.Contains(text, `exactly one of "id" or "path"`) {
				t.Errorf("result %q should state the exclusivity rule", text)
			}
			if svc.totalCalls() != 0 {
				t.Errorf("made %d service calls, want 0", svc.totalCalls())
			}
		})
	}
}

func TestGetPageByIDSingleLookup(t *testing.T) {
	svc := &fakeService{
		byIDFn: func(ctx context.Context, id int) (*wiki.Page, error) {
			if id != 42 {
				t.Errorf("id = %d, want 42", id)
			}
			return &wiki.Page{ID: 42, Title: "Setup Guide", Content: "# Install"}, nil
		},
	}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_get_page", `{"id": 42}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if svc.byIDCalls != 1 || svc.byPathCalls != 0 {
		t.Errorf("calls byID=%d byPath=%d, want 1/0", svc.byIDCalls, svc.byPathCalls)
	}
	if !strings.HasPrefix(text, "# Setup Guide\n\n") {
		t.Errorf("result %q should lead with the page title as a heading", text)
	}
	if !strings.Contains(text, "# Install") {
		t.Errorf("result %q should include the page content", text)
	}
}

func TestGetPageByPathRoutesToPathLookup(t *testing.T) {
	svc := &fakeService{
		byPathFn: func(ctx context.Context, path string) (*wiki.Page, error) {
			if path != "/docs/setup" {
				t.Errorf("path = %q, want raw /docs/setup", path)
			}
			return &wiki.Page{ID: 7, Title: "Setup", Content: "body"}, nil
		},
	}
	h := newTestRegistry(svc)

	_, isError := dispatch(t, h, "wiki_get_page", `{"path": "/docs/setup"}`)
	if isError {
		t.Error("unexpected error result")
	}
	if svc.byPathCalls != 1 || svc.byIDCalls != 0 {
		t.Errorf("calls byPath=%d byID=%d, want 1/0", svc.byPathCalls, svc.byIDCalls)
	}
}

func TestGetPageNotFound(t *testing.T) {
	h := newTestRegistry(&fakeService{
		byIDFn: func(ctx context.Context, id int) (*wiki.Page, error) {
			return nil, &wiki.NotFoundError{Key: "id", Value: "99"}
		},
	})

	text, isError := dispatch(t, h, "wiki_get_page", `{"id": 99}`)
	if !isError {
		t.Error("a missing page should produce an error result")
	}
	if !strings.Contains(text, "no page found") {
		t.Errorf("result %q should report the miss", text)
	}
}

func TestCreatePageMissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"missing path", `{"title": "T", "content": "c"}`, "path"},
		{"missing title", `{"path": "p", "content": "c"}`, "title"},
		{"missing content", `{"path": "p", "title": "T"}`, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := newTestRegistry(svc)

			text, isError := dispatch(t, h, "wiki_create_page", tt.args)
			if !isError {
				t.Error("expected an error result")
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("result %q should name the missing field %q", text, tt.want)
			}
			if svc.totalCalls() != 0 {
				t.Errorf("made %d service calls, want 0", svc.totalCalls())
			}
		})
	}
}

func TestCreatePageDefaultsAndSuccessText(t *testing.T) {
	var got wiki.CreatePageInput
	h := newTestRegistry(&fakeService{
		createFn: func(ctx context.Context, input wiki.CreatePageInput) (*wiki.PageRef, error) {
			got = input
			return &wiki.PageRef{ID: 11, Path: "docs/new", Title: "T"}, nil
		},
	})

	text, isError := dispatch(t, h, "wiki_create_page",
		`{"path": "docs/new", "title": "T", "content": "body"}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if got.Editor != wiki.DefaultEditor {
		t.Errorf("editor = %q, want default %q", got.Editor, wiki.DefaultEditor)
	}
	if !got.IsPublished {
		t.Error("isPublished should default to true")
	}
	for _, want := range []string{"Page created successfully!", "Title: T", "ID: 11", "Path: docs/new"} {
		if !strings.Contains(text, want) {
			t.Errorf("result %q should contain %q", text, want)
		}
	}
}

func TestCreatePageExplicitUnpublished(t *testing.T) {
	var got wiki.CreatePageInput
	h := newTestRegistry(&fakeService{
		createFn: func(ctx context.Context, input wiki.CreatePageInput) (*wiki.PageRef, error) {
			got = input
			return &wiki.PageRef{ID: 1, Path: "draft", Title: "D"}, nil
		},
	})

	_, isError := dispatch(t, h, "wiki_create_page",
		`{"path": "draft", "title": "D", "content": "x", "isPublished": false, "editor": "code"}`)
	if isError {
		t.Error("unexpected error result")
	}
	if got.IsPublished {
		t.Error("explicit isPublished=false should be passed through")
	}
	if got.Editor != "code" {
		t.Errorf("editor = %q, want code", got.Editor)
	}
}

func TestUpdatePageRequiresIDOrPath(t *testing.T) {
	svc := &fakeService{}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_update_page", `{"title": "T"}`)
	if !isError {
		t.Error("expected an error result")
	}
	if !strings.Contains(text, `either "id" or "path" is required`) {
		t.Errorf("result %q should state the requirement", text)
	}
	if svc.totalCalls() != 0 {
		t.Errorf("made %d service calls, want 0", svc.totalCalls())
	}
}

func TestUpdatePageByIDSkipsResolution(t *testing.T) {
	var got wiki.UpdatePageInput
	svc := &fakeService{
		updateFn: func(ctx context.Context, input wiki.UpdatePageInput) (*wiki.PageRef, error) {
			got = input
			return &wiki.PageRef{ID: 5, Path: "docs/setup", Title: "Renamed"}, nil
		},
	}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_update_page", `{"id": 5, "title": "Renamed"}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if svc.byPathCalls != 0 {
		t.Errorf("update by id resolved a path %d times, want 0", svc.byPathCalls)
	}
	if got.ID != 5 {
		t.Errorf("id = %d, want 5", got.ID)
	}
	if got.Title == nil || *got.Title != "Renamed" {
		t.Errorf("title = %v, want Renamed", got.Title)
	}
	if got.Content != nil || got.Editor != nil || got.IsPublished != nil {
		t.Errorf("unset fields should stay nil, got %+v", got)
	}
	if !strings.Contains(text, "Page updated successfully!") {
		t.Errorf("result %q should confirm the update", text)
	}
}

func TestUpdatePageByPathResolvesFirst(t *testing.T) {
	svc := &fakeService{
		byPathFn: func(ctx context.Context, path string) (*wiki.Page, error) {
			return &wiki.Page{ID: 8, Path: "docs/setup", Title: "Setup"}, nil
		},
		updateFn: func(ctx context.Context, input wiki.UpdatePageInput) (*wiki.PageRef, error) {
			if input.ID != 8 {
				t.Errorf("update id = %d, want resolved 8", input.ID)
			}
			return nil, nil
		},
	}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_update_page", `{"path": "docs/setup", "content": "new"}`)
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if svc.byPathCalls != 1 || svc.updateCalls != 1 {
		t.Errorf("calls byPath=%d update=%d, want 1/1", svc.byPathCalls, svc.updateCalls)
	}
	if !strings.Contains(text, "ID: 8") {
		t.Errorf("result %q should fall back to the resolved id when no ref returned", text)
	}
}

func TestUpdatePageFailedResolutionAbortsMutation(t *testing.T) {
	svc := &fakeService{
		byPathFn: func(ctx context.Context, path string) (*wiki.Page, error) {
			return nil, &wiki.NotFoundError{Key: "path", Value: "missing"}
		},
	}
	h := newTestRegistry(svc)

	_, isError := dispatch(t, h, "wiki_update_page", `{"path": "missing", "content": "x"}`)
	if !isError {
		t.Error("a failed path resolution should produce an error result")
	}
	if svc.updateCalls != 0 {
		t.Errorf("update was issued %d times after a failed resolution, want 0", svc.updateCalls)
	}
}

func TestUpdatePageWrongArgumentType(t *testing.T) {
	svc := &fakeService{}
	h := newTestRegistry(svc)

	text, isError := dispatch(t, h, "wiki_update_page", `{"id": "five"}`)
	if !isError {
		t.Error("a non-integer id should produce an error result")
	}
	if !strings.Contains(text, "id") {
		t.Errorf("result %q should name the bad field", text)
	}
	if svc.totalCalls() != 0 {
		t.Errorf("made %d service calls, want 0", svc.totalCalls())
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty stays empty", "", ""},
		{"unparseable passes through", "yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTimestamp(tt.raw); got != tt.want {
				t.Errorf("formatTimestamp(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	t.Run("valid RFC 3339", func(t *testing.T) {
		got := formatTimestamp("2024-06-01T12:30:00Z")
		if got == "" || got == "2024-06-01T12:30:00Z" {
			t.Errorf("formatTimestamp() = %q, want a reformatted local time", got)
		}
		if !strings.Contains(got, "2024") {
			t.Errorf("formatTimestamp() = %q, want the year preserved", got)
		}
	})
}
