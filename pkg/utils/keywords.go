package utils

import (
	"sort"
	"strings"
	"unicode"
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true, "with": true, "you": true,
	"your": true, "are": true, "was": true, "were": true, "have": true, "has": true, "had": true,
	"not": true, "but": true, "from": true, "they": true, "their": true, "them": true, "will": true,
	"can": true, "all": true, "any": true, "our": true, "out": true, "about": true, "into": true,
	"more": true, "than": true, "then": true, "also": true, "each": true, "what": true, "when": true,
	"which": true, "who": true, "how": true, "per": true, "its": true, "it's": true, "there": true,
	"been": true, "being": true, "should": true, "would": true, "could": true, "may": true,
	"one": true, "two": true, "some": true, "such": true, "only": true, "other": true, "over": true,
}

// ExtractKeywords returns up to limit of the most frequent non-stop-word terms,
// ties broken by first appearance.
func ExtractKeywords(text string, limit int) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		w = strings.Trim(w, "'")
		if len([]rune(w)) < 3 || stopWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
