// Package wiki provides a client for the Wiki.js GraphQL API, exposing the
// page operations the MCP tools are built on: list, get by id or path,
// create, and update. All operations are stateless across calls; the only
// shared state is the read-only configured GraphQL handle.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/olgasafonova/wikijs-mcp-server/metrics"
)

// authTransport injects the bearer token on every GraphQL request
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}

// Client handles communication with the Wiki.js GraphQL API
type Client struct {
	config *Config
	gql    *graphql.Client
	logger *slog.Logger
	paths  PathPolicy
}

// NewClient creates a new Wiki.js API client. The endpoint URL and bearer
// token are fixed for the life of the client.
func NewClient(config *Config, logger *slog.Logger) *Client {
	// Configure HTTP transport for connection reuse
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &authTransport{
			token: config.Token,
			base:  transport,
		},
	}

	return &Client{
		config: config,
		gql:    graphql.NewClient(config.Endpoint(), httpClient),
		logger: logger,
		paths:  NewPathPolicy(config.PathFallbacks, config.DefaultLocale),
	}
}

// exec runs one GraphQL operation and decodes the data payload into out.
// Transport failures and GraphQL-level errors both surface as UpstreamError;
// callers that need to distinguish a not-found report use isUpstreamNotFound.
func (c *Client) exec(ctx context.Context, operation, query string, vars map[string]any, out any) error {
	start := time.Now()
	raw, err := c.gql.ExecRaw(ctx, query, vars)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordGraphQLCall(operation, duration, false)
		c.logger.Debug("GraphQL call failed",
			"operation", operation,
			"duration_seconds", duration,
			"error", err)
		return &UpstreamError{Operation: operation, Err: err}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		metrics.RecordGraphQLCall(operation, duration, false)
		return &UpstreamError{Operation: operation, Err: fmt.Errorf("unexpected response shape: %w", err)}
	}

	metrics.RecordGraphQLCall(operation, duration, true)
	return nil
}

// isUpstreamNotFound reports whether an upstream failure looks like the wiki
// telling us the page does not exist, as opposed to a transport or server
// fault. Wiki.js phrases this differently across versions so the check is
// by message, not code.
func isUpstreamNotFound(err error) bool {
	ue, ok := err.(*UpstreamError)
	if !ok {
		return false
	}
	msg := strings.ToLower(ue.Err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}
