package wiki

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config holds Wiki.js connection settings
type Config struct {
	// APIURL is the wiki base URL (e.g., https://wiki.example.com).
	// The GraphQL endpoint is derived by appending /graphql.
	APIURL string

	// Token is the API bearer token sent on every GraphQL call
	Token string

	// Timeout for GraphQL requests
	Timeout time.Duration

	// DefaultLocale is the language segment used by locale-prefix path fallbacks
	DefaultLocale string

	// PathFallbacks names the path variants tried, in order, when a lookup
	// by the normalized path reports not found. Empty means no fallbacks.
	PathFallbacks []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiURL := os.Getenv("WIKI_API_URL")
	if apiURL == "" {
		return nil, errors.New("WIKI_API_URL environment variable is required")
	}

	token := os.Getenv("WIKI_API_TOKEN")
	if token == "" {
		return nil, errors.New("WIKI_API_TOKEN environment variable is required")
	}

	timeout := 30 * time.Second
	if t := os.Getenv("WIKI_REQUEST_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			timeout = d
		}
	}

	locale := os.Getenv("WIKI_DEFAULT_LOCALE")
	if locale == "" {
		locale = "en"
	}

	var fallbacks []string
	if f := os.Getenv("WIKI_PATH_FALLBACKS"); f != "" {
		for _, name := range strings.Split(f, ",") {
			if name = strings.TrimSpace(name); name != "" {
				fallbacks = append(fallbacks, name)
			}
		}
	}

	return &Config{
		APIURL:        apiURL,
		Token:         token,
		Timeout:       timeout,
		DefaultLocale: locale,
		PathFallbacks: fallbacks,
	}, nil
}

// Endpoint returns the GraphQL endpoint URL derived from the base URL
func (c *Config) Endpoint() string {
	return strings.TrimSuffix(c.APIURL, "/") + "/graphql"
}
