// Command evals runs MCP tool selection evaluations for the wiki tools.
//
// Usage:
//
//	go run ./cmd/evals
//	go run ./cmd/evals -baseline -verbose
//
// By default it loads the embedded evaluation suites and reports coverage.
// With -baseline it also scores a keyword-matching selector against the
// suites, which gives a floor an LLM integration should beat. For actual
// LLM evaluation, implement the evals.ToolSelector interface.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/olgasafonova/wikijs-mcp-server/evals"
)

func main() {
	baseline := flag.Bool("baseline", false, "Score the keyword baseline selector against the suites")
	verbose := flag.Bool("verbose", false, "Show detailed test information")
	flag.Parse()

	fmt.Println("Wiki.js MCP Server - Evaluation Framework")
	fmt.Println("=========================================")
	fmt.Println()

	toolSelection, confusionPairs, arguments, err := evals.DefaultSuites()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading evals: %v\n", err)
		os.Exit(1)
	}

	printSummary(toolSelection, confusionPairs, arguments, *verbose)

	if *baseline {
		runBaseline(toolSelection, confusionPairs, arguments)
	}
}

func printSummary(toolSelection *evals.ToolSelectionSuite, confusionPairs *evals.ConfusionPairSuite, arguments *evals.ArgumentSuite, verbose bool) {
	confusionTests := 0
	for _, pair := range confusionPairs.Pairs {
		confusionTests += len(pair.Tests)
	}
	total := len(toolSelection.Tests) + confusionTests + len(arguments.Tests)

	fmt.Println("Summary:")
	fmt.Println("--------")
	fmt.Printf("Tool Selection Tests:   %d\n", len(toolSelection.Tests))
	fmt.Printf("Confusion Pair Tests:   %d (across %d pairs)\n", confusionTests, len(confusionPairs.Pairs))
	fmt.Printf("Argument Tests:         %d\n", len(arguments.Tests))
	fmt.Printf("Total Evaluation Tests: %d\n", total)
	fmt.Println()

	coverage := make(map[string]bool)
	for _, test := range toolSelection.Tests {
		coverage[test.ExpectedTool] = true
	}
	for _, pair := range confusionPairs.Pairs {
		for _, tool := range pair.Tools {
			coverage[tool] = true
		}
	}
	for _, test := range arguments.Tests {
		coverage[test.Tool] = true
	}
	fmt.Printf("Tool Coverage: %d unique tools tested\n", len(coverage))

	if verbose {
		fmt.Println("\nTool Selection Cases:")
		for _, test := range toolSelection.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    expected: %s\n", test.ExpectedTool)
			if len(test.NotTools) > 0 {
				fmt.Printf("    forbidden: %v\n", test.NotTools)
			}
		}

		fmt.Println("\nConfusion Pairs:")
		for _, pair := range confusionPairs.Pairs {
			fmt.Printf("  %s: %v\n", pair.ID, pair.Tools)
			fmt.Printf("    rule: %s\n", pair.Disambiguation)
		}

		fmt.Println("\nArgument Conventions:")
		fmt.Printf("  Path Format:     %s\n", arguments.ValidationRules.PathFormat)
		fmt.Printf("  ID Handling:     %s\n", arguments.ValidationRules.IDHandling)
		fmt.Printf("  Boolean Handling: %s\n", arguments.ValidationRules.BooleanHandling)
		fmt.Printf("  Content Handling: %s\n", arguments.ValidationRules.ContentHandling)
	}
	fmt.Println()
}

func runBaseline(toolSelection *evals.ToolSelectionSuite, confusionPairs *evals.ConfusionPairSuite, arguments *evals.ArgumentSuite) {
	selector := keywordSelector{}

	selMetrics, _ := evals.EvaluateToolSelection(toolSelection, selector)
	fmt.Print(evals.FormatMetrics(selMetrics, "Tool Selection (keyword baseline)"))

	pairMetrics, _ := evals.EvaluateConfusionPairs(confusionPairs, selector)
	fmt.Print(evals.FormatMetrics(pairMetrics, "Confusion Pairs (keyword baseline)"))

	argMetrics, _ := evals.EvaluateArguments(arguments, selector)
	fmt.Print(evals.FormatMetrics(argMetrics, "Argument Correctness (keyword baseline)"))
}

// keywordSelector is a deliberately naive selector: it picks a tool from
// surface keywords and extracts no arguments. Its score is the floor any
// real LLM integration should clear.
type keywordSelector struct{}

func (keywordSelector) SelectTool(input string) (string, map[string]any, error) {
	lower := strings.ToLower(input)
	switch {
	case containsAny(lower, "create", "add", "new page", "write up", "make"):
		return "wiki_create_page", nil, nil
	case containsAny(lower, "update", "change", "edit", "fix", "retitle", "rewrite", "publish", "unpublish", "append"):
		return "wiki_update_page", nil, nil
	case containsAny(lower, "list", "what pages", "everything", "documentation do we have"):
		return "wiki_list_pages", nil, nil
	default:
		return "wiki_get_page", nil, nil
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
