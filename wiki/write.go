package wiki

import (
	"context"
	"fmt"
	"strings"

	"github.com/olgasafonova/wikijs-mcp-server/metrics"
)

const createPageMutation = `mutation ($path: String!, $title: String!, $content: String!, $editor: String!, $isPublished: Boolean!, $description: String!) {
  pages {
    create(path: $path, title: $title, content: $content, editor: $editor, isPublished: $isPublished, description: $description) {
      responseResult {
        succeeded
        errorCode
        slug
        message
      }
      page {
        id
        path
        title
      }
    }
  }
}`

// CreatePage creates a page, issuing one create mutation per path variant
// until the wiki accepts one or the policy is exhausted. Stopping at the
// first success keeps a fallback from creating duplicate pages.
func (c *Client) CreatePage(ctx context.Context, input CreatePageInput) (*PageRef, error) {
	editor := input.Editor
	if editor == "" {
		editor = DefaultEditor
	}

	variants := c.paths.Variants(input.Path)
	var lastMessage string

	for i, candidate := range variants {
		if i > 0 {
			metrics.PathFallbackAttempts.Inc()
		}

		var resp struct {
			Pages struct {
				Create MutationOutcome `json:"create"`
			} `json:"pages"`
		}
		vars := map[string]any{
			"path":        candidate,
			"title":       input.Title,
			"content":     input.Content,
			"editor":      editor,
			"isPublished": input.IsPublished,
			"description": "",
		}
		if err := c.exec(ctx, "create", createPageMutation, vars, &resp); err != nil {
			return nil, err
		}

		outcome := resp.Pages.Create
		if outcome.Result.Succeeded && outcome.Page != nil {
			return outcome.Page, nil
		}
		lastMessage = outcome.Result.Message
		c.logger.Debug("Create attempt rejected",
			"path", candidate,
			"error_code", outcome.Result.ErrorCode,
			"message", lastMessage)
	}

	return nil, &CreateFailedError{
		Path:        NormalizePath(input.Path),
		Attempts:    len(variants),
		LastMessage: lastMessage,
	}
}

// UpdatePage issues exactly one update mutation for a resolved page id.
// Unset optional fields are omitted from the mutation entirely so the
// server leaves them unchanged; the mutation text is assembled from the
// fields actually present.
func (c *Client) UpdatePage(ctx context.Context, input UpdatePageInput) (*PageRef, error) {
	decls := []string{"$id: Int!"}
	args := []string{"id: $id"}
	vars := map[string]any{"id": input.ID}

	setField := func(name, gqlType string, value any) {
		decls = append(decls, fmt.Sprintf("$%s: %s", name, gqlType))
		args = append(args, fmt.Sprintf("%s: $%s", name, name))
		vars[name] = value
	}
	if input.Title != nil {
		setField("title", "String", *input.Title)
	}
	if input.Content != nil {
		setField("content", "String", *input.Content)
	}
	if input.Editor != nil {
		setField("editor", "String", *input.Editor)
	}
	if input.IsPublished != nil {
		setField("isPublished", "Boolean", *input.IsPublished)
	}

	query := fmt.Sprintf(`mutation (%s) {
  pages {
    update(%s) {
      responseResult {
        succeeded
        errorCode
        slug
        message
      }
      page {
        id
        path
        title
      }
    }
  }
}`, strings.Join(decls, ", "), strings.Join(args, ", "))

	var resp struct {
		Pages struct {
			Update MutationOutcome `json:"update"`
		} `json:"pages"`
	}
	if err := c.exec(ctx, "update", query, vars, &resp); err != nil {
		return nil, err
	}

	outcome := resp.Pages.Update
	if outcome.Result.Succeeded {
		return outcome.Page, nil
	}

	if IsKnownUpdateQuirk(outcome.Result.Message) {
		// The update went through despite what the envelope says; see the
		// signature list in errors.go.
		metrics.KnownQuirksMasked.Inc()
		c.logger.Warn("Update reported known upstream defect, treating as success",
			"id", input.ID,
			"message", outcome.Result.Message)
		return outcome.Page, nil
	}

	detail := outcome.Result.Message
	if detail == "" {
		detail = fmt.Sprintf("error code %d", outcome.Result.ErrorCode)
	}
	return nil, &UpstreamError{Operation: "update", Err: fmt.Errorf("update rejected: %s", detail)}
}
