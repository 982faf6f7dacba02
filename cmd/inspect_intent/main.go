package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"trade-advisor-be/pkg/advisor/intent"
	"trade-advisor-be/pkg/advisor/websearch"

	"github.com/fatih/color"
)

// Prints the classifier verdicts for each message given as an argument, or
// for each line on stdin when no arguments are passed.
func main() {
	messages := os.Args[1:]
	if len(messages) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				messages = append(messages, line)
			}
		}
	}

	if len(messages) == 0 {
		color.Red("usage: inspect_intent \"message\" ... (or pipe messages on stdin)")
		os.Exit(1)
	}

	for _, msg := range messages {
		inspect(msg)
	}
}

func inspect(msg string) {
	color.Cyan("\n> %s", msg)

	rule := intent.CompetitorRule(msg)
	verdict("competitor lookup", intent.NeedsCompetitorLookup(msg), rule)
	verdict("web search", intent.NeedsWebSearch(msg), "")
	if intent.NeedsWebSearch(msg) && websearch.IsRegulatory(msg) {
		color.Yellow("  %-18s site-restricted to trusted domains", "")
	}
	verdict("high value", intent.IsHighValueQuery(msg), "")

	fmt.Printf("  %-18s %s\n", "topic", color.MagentaString(intent.ClassifyTopic(msg)))
}

func verdict(label string, on bool, detail string) {
	mark := color.RedString("no")
	if on {
		mark = color.GreenString("yes")
	}
	if detail != "" {
		mark += color.HiBlackString(" (%s)", detail)
	}
	fmt.Printf("  %-18s %s\n", label, mark)
}
