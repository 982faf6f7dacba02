// Package websearch answers time-sensitive and regulatory questions from a
// general web search, memoised in the lookup cache.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/pkg/advisor/lookup"
)

const (
	ResultCount = 5

	NoResultsMessage = "WEB SEARCH: No relevant web results were found for this question. " +
		"Do NOT invent statistics, regulations, sources or links. Say that current information could not be found " +
		"and answer from general knowledge, clearly labelled as such."

	UnavailableMessage = "WEB SEARCH: Web search is not available right now (search provider is not configured)."
)

func ErrorMessage(err error) string {
	return fmt.Sprintf("WEB SEARCH: Web results could not be retrieved (%v). Do not invent sources or figures.", err)
}

var regulatoryPattern = regexp.MustCompile(`\b(licen[cs]\w*|permits?|regulations?|regulatory|tax(es)?|osha|code compliance|insurance requirements?|legal requirements?|zoning)\b`)

// IsRegulatory reports whether the query should be restricted to trusted domains.
func IsRegulatory(query string) bool {
	return regulatoryPattern.MatchString(strings.ToLower(query))
}

type Searcher struct {
	client         Client
	cache          *lookup.Cache
	logger         logger.ILogger
	trustedDomains []string
	enabled        bool
}

func NewSearcher(client Client, cache *lookup.Cache, log logger.ILogger, trustedDomains []string, enabled bool) *Searcher {
	return &Searcher{
		client:         client,
		cache:          cache,
		logger:         log,
		trustedDomains: trustedDomains,
		enabled:        enabled,
	}
}

// BuildQuery appends a site restriction over the trusted domains to regulatory queries.
func (s *Searcher) BuildQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if !IsRegulatory(query) || len(s.trustedDomains) == 0 {
		return query
	}
	sites := make([]string, len(s.trustedDomains))
	for i, d := range s.trustedDomains {
		sites[i] = "site:" + d
	}
	return query + " (" + strings.Join(sites, " OR ") + ")"
}

// Search never returns an error; failures come back as fixed text and are not cached.
func (s *Searcher) Search(ctx context.Context, query string) string {
	if !s.enabled {
		return UnavailableMessage
	}

	q := s.BuildQuery(query)
	key := lookup.Key{Provider: lookup.ProviderWebSearch, Query: q}

	if payload, ok := s.cache.Get(ctx, key); ok {
		return payload
	}

	results, err := s.client.Search(ctx, q, ResultCount)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return UnavailableMessage
		}
		s.logger.Error("WEB_SEARCH", "Web search failed", map[string]interface{}{"query": q, "error": err.Error()})
		return ErrorMessage(err)
	}
	if len(results) == 0 {
		return NoResultsMessage
	}

	block := Format(results)
	s.cache.Put(ctx, key, block)
	return block
}

func Format(results []Result) string {
	var b strings.Builder
	b.WriteString("WEB SEARCH RESULTS:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Source: %s (%s)\n", r.DisplayLink, r.Link)
		fmt.Fprintf(&b, "   %s\n", r.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}
