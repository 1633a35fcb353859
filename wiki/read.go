package wiki

import (
	"context"
	"strconv"

	"github.com/olgasafonova/wikijs-mcp-server/metrics"
)

const listPagesQuery = `query ($orderBy: PageOrderBy!, $limit: Int!) {
  pages {
    list(orderBy: $orderBy, limit: $limit) {
      id
      path
      title
      createdAt
      updatedAt
    }
  }
}`

const singlePageQuery = `query ($id: Int!) {
  pages {
    single(id: $id) {
      id
      path
      title
      description
      content
      createdAt
      updatedAt
      editor
      isPublished
    }
  }
}`

const singleByPathQuery = `query ($path: String!) {
  pages {
    singleByPath(path: $path) {
      id
      path
      title
      description
      content
      createdAt
      updatedAt
      editor
      isPublished
    }
  }
}`

// ListPages returns a page listing ordered and capped per args.
// Zero-valued args select the defaults (TITLE ordering, 10 pages).
func (c *Client) ListPages(ctx context.Context, args ListPagesArgs) ([]PageListItem, error) {
	orderBy := args.OrderBy
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}
	limit := args.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var resp struct {
		Pages struct {
			List []PageListItem `json:"list"`
		} `json:"pages"`
	}
	vars := map[string]any{"orderBy": orderBy, "limit": limit}
	if err := c.exec(ctx, "list", listPagesQuery, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Pages.List, nil
}

// GetPageByID fetches a page by its numeric id. A single lookup is issued;
// there is no retry.
func (c *Client) GetPageByID(ctx context.Context, id int) (*Page, error) {
	var resp struct {
		Pages struct {
			Single *Page `json:"single"`
		} `json:"pages"`
	}
	err := c.exec(ctx, "single", singlePageQuery, map[string]any{"id": id}, &resp)
	if err != nil {
		if isUpstreamNotFound(err) {
			return nil, &NotFoundError{Key: "id", Value: strconv.Itoa(id)}
		}
		return nil, err
	}
	if resp.Pages.Single == nil {
		return nil, &NotFoundError{Key: "id", Value: strconv.Itoa(id)}
	}
	return resp.Pages.Single, nil
}

// GetPageByPath fetches a page by path, trying each candidate from the path
// policy in order and stopping at the first hit. Attempted variants are
// kept only as diagnostic detail on the NotFoundError.
func (c *Client) GetPageByPath(ctx context.Context, rawPath string) (*Page, error) {
	variants := c.paths.Variants(rawPath)
	attempted := make([]string, 0, len(variants))

	for i, candidate := range variants {
		if i > 0 {
			metrics.PathFallbackAttempts.Inc()
		}
		attempted = append(attempted, candidate)

		var resp struct {
			Pages struct {
				Single *Page `json:"singleByPath"`
			} `json:"pages"`
		}
		err := c.exec(ctx, "singleByPath", singleByPathQuery, map[string]any{"path": candidate}, &resp)
		if err != nil {
			if isUpstreamNotFound(err) {
				c.logger.Debug("Page lookup missed", "path", candidate)
				continue
			}
			return nil, err
		}
		if resp.Pages.Single == nil {
			c.logger.Debug("Page lookup returned no record", "path", candidate)
			continue
		}
		return resp.Pages.Single, nil
	}

	return nil, &NotFoundError{Key: "path", Value: NormalizePath(rawPath), Attempts: attempted}
}
