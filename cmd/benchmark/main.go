// Command benchmark measures round-trip latency of the wiki client against
// a live Wiki.js instance. It needs WIKI_API_URL and WIKI_API_TOKEN set and
// issues only read operations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/wikijs-mcp-server/wiki"
)

func main() {
	fmt.Println("Wiki.js MCP Server - Performance Measurements")
	fmt.Println("=============================================")
	fmt.Println()

	config, err := wiki.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wiki.NewClient(config, logger)
	ctx := context.Background()

	pages := measureConnectionReuse(ctx, client)
	if len(pages) > 0 {
		measurePageReads(ctx, client, pages)
		measurePathLookup(ctx, client, pages[0].Path)
	}

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key factors:")
	fmt.Println("• Connection reuse: HTTP/2 + pooling makes calls after the first cheaper")
	fmt.Println("• Path fallback: each configured variant is one extra round trip on a miss")
	fmt.Println("• Lookups by id skip path normalization entirely")
}

// measureConnectionReuse times a cold listing against warm repeats. The gap
// is mostly TLS and connection setup amortized by the pooled transport.
func measureConnectionReuse(ctx context.Context, client *wiki.Client) []wiki.PageListItem {
	fmt.Println("1. Connection Reuse (wiki_list_pages):")

	start := time.Now()
	pages, err := client.ListPages(ctx, wiki.ListPagesArgs{Limit: 5})
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return nil
	}
	cold := time.Since(start)
	fmt.Printf("   Cold call:  %v\n", cold)

	const warmRuns = 5
	var warmTotal time.Duration
	for i := 0; i < warmRuns; i++ {
		start = time.Now()
		if _, err := client.ListPages(ctx, wiki.ListPagesArgs{Limit: 5}); err != nil {
			fmt.Printf("   Error: %v\n", err)
			return pages
		}
		warmTotal += time.Since(start)
	}
	warm := warmTotal / warmRuns
	fmt.Printf("   Warm call:  %v (avg of %d)\n", warm, warmRuns)
	if warm > 0 {
		fmt.Printf("   Speedup: %.1fx\n", float64(cold)/float64(warm))
	}
	fmt.Println()
	return pages
}

// measurePageReads times sequential full-page fetches by id.
func measurePageReads(ctx context.Context, client *wiki.Client, pages []wiki.PageListItem) {
	fmt.Printf("2. Sequential Page Reads (%d pages by id):\n", len(pages))

	start := time.Now()
	fetched := 0
	for _, p := range pages {
		if _, err := client.GetPageByID(ctx, p.ID); err != nil {
			fmt.Printf("   Error fetching id %d: %v\n", p.ID, err)
			continue
		}
		fetched++
	}
	total := time.Since(start)
	if fetched > 0 {
		fmt.Printf("   Total: %v for %d pages\n", total, fetched)
		fmt.Printf("   Average per page: %v\n", total/time.Duration(fetched))
	}
	fmt.Println()
}

// measurePathLookup compares a direct path hit against a guaranteed miss,
// which walks every configured fallback variant.
func measurePathLookup(ctx context.Context, client *wiki.Client, knownPath string) {
	fmt.Println("3. Path Lookup (hit vs exhausted fallback):")

	start := time.Now()
	if _, err := client.GetPageByPath(ctx, knownPath); err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	hit := time.Since(start)
	fmt.Printf("   Direct hit (%s): %v\n", knownPath, hit)

	start = time.Now()
	_, err := client.GetPageByPath(ctx, "benchmark/nonexistent-page-path")
	miss := time.Since(start)
	if err == nil {
		fmt.Println("   Miss probe unexpectedly found a page, skipping")
		return
	}
	fmt.Printf("   Exhausted miss: %v\n", miss)
	if hit > 0 {
		fmt.Printf("   Miss cost: %.1fx a single hit\n", float64(miss)/float64(hit))
	}
	fmt.Println()
}
