package trials

import (
	"fmt"
	"strings"
)

// maxRendered caps how many hits appear in a rendered reply. The full total
// is still reported so users know more results exist.
const maxRendered = 5

// NoResultsMessage is shown when a search succeeds with zero hits.
const NoResultsMessage = "No trials found for the given query."

// Render formats a search result as a markdown chat reply: a headline with
// the reported total, then up to the first five hits. Missing optional
// fields render as "N/A" instead of failing the reply.
func Render(result *SearchResult) string {
	if result == nil || len(result.Trials) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### I found %d trials. Here are the top results:\n", result.Total)

	trials := result.Trials
	if len(trials) > maxRendered {
		trials = trials[:maxRendered]
	}
	for idx, trial := range trials {
		fmt.Fprintf(&b, "**%d. %s**\n", idx+1, trial.Title)
		fmt.Fprintf(&b, "- **Status:** %s\n", orPlaceholder(trial.Status))
		fmt.Fprintf(&b, "- **Phase:** %s\n", orPlaceholder(trial.Phase))
		fmt.Fprintf(&b, "- **Conditions:** %s\n", orPlaceholder(strings.Join(trial.Conditions, ", ")))
		fmt.Fprintf(&b, "- **Sponsor:** %s\n", orPlaceholder(trial.Sponsor))
		b.WriteString("---\n")
	}
	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
