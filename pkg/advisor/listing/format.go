package listing

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// NoResultsMessage is returned on a successful search with zero rows. It is never cached.
	NoResultsMessage = "COMPETITOR SEARCH: No local businesses were found for this search. " +
		"Do NOT invent, guess or fabricate competitor names, addresses, phone numbers, ratings or prices. " +
		"Tell the user that no matching local competitors were found and offer general guidance instead."

	UnavailableMessage = "COMPETITOR SEARCH: Local business data is not available right now (business listing search is not configured)."
)

// ErrorMessage describes a failed lookup without exposing it as an error.
func ErrorMessage(err error) string {
	return fmt.Sprintf("COMPETITOR SEARCH: Local business data could not be retrieved (%v). Do not invent competitor details.", err)
}

// Dedupe keeps the first listing for each case-insensitive name.
func Dedupe(listings []BusinessListing) []BusinessListing {
	seen := make(map[string]bool, len(listings))
	out := make([]BusinessListing, 0, len(listings))
	for _, l := range listings {
		key := strings.ToLower(strings.TrimSpace(l.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

// Rank sorts by rating descending, then review count descending. Stable, so
// provider order breaks full ties.
func Rank(listings []BusinessListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Rating != listings[j].Rating {
			return listings[i].Rating > listings[j].Rating
		}
		return listings[i].ReviewCount > listings[j].ReviewCount
	})
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func statusLabel(status string) string {
	switch status {
	case "OPERATIONAL":
		return "Open"
	case "CLOSED_TEMPORARILY":
		return "Temporarily closed"
	case "CLOSED_PERMANENTLY":
		return "Permanently closed"
	default:
		return orNA(status)
	}
}

// Format renders the listings as the plain-text block handed to the model.
func Format(listings []BusinessListing, locationLabel string) string {
	var b strings.Builder
	if locationLabel != "" {
		fmt.Fprintf(&b, "LOCAL COMPETITOR DATA (near %s, ranked by rating):\n", locationLabel)
	} else {
		b.WriteString("LOCAL COMPETITOR DATA (ranked by rating):\n")
	}
	for i, l := range listings {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, l.Name)
		fmt.Fprintf(&b, "   Address: %s\n", orNA(l.Address))
		fmt.Fprintf(&b, "   Phone: %s\n", orNA(l.Phone))
		if l.Rating > 0 {
			fmt.Fprintf(&b, "   Rating: %.1f/5 (%d reviews)\n", l.Rating, l.ReviewCount)
		} else {
			b.WriteString("   Rating: N/A (0 reviews)\n")
		}
		fmt.Fprintf(&b, "   Website: %s\n", orNA(l.Website))
		fmt.Fprintf(&b, "   Status: %s\n", statusLabel(l.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}
