// Package intent holds the message heuristics that decide which context
// sources a chat turn consults. Every classifier is a first-match-wins walk
// over an ordered rule table, so rule order carries meaning.
package intent

import (
	"regexp"
	"strings"
)

type rule struct {
	name    string
	match   func(text string) bool
	verdict bool
}

func normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func phrases(terms ...string) func(string) bool {
	return func(text string) bool { return containsAny(text, terms) }
}

func patterns(exprs ...string) func(string) bool {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		compiled[i] = regexp.MustCompile(e)
	}
	return func(text string) bool { return matchesAny(text, compiled) }
}

// wordPrefix compiles terms into one pattern anchored at a word start, so
// "rate" matches "rates" but not "strategy".
func wordPrefix(terms ...string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)
}

// wholeWords is wordPrefix anchored at both ends.
func wholeWords(terms ...string) *regexp.Regexp {
	return regexp.MustCompile(wordPrefix(terms...).String() + `\b`)
}

func evaluate(rules []rule, text string) (string, bool) {
	for _, r := range rules {
		if r.match(text) {
			return r.name, r.verdict
		}
	}
	return "default", false
}
