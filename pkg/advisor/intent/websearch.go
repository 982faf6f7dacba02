package intent

var webSearchTerms = wholeWords(
	// time-sensitive
	"latest", "current", "currently", "this year", "recent", "recently", "news", "trend", "trends", "trending", "2024", "2025", "2026", "right now", "today",
	// regulatory
	"regulation", "regulations", "license", "licensed", "licensing", "permit", "permits", "law", "laws",
	"legal requirements", "osha", "tax", "taxes", "insurance requirements", "code compliance", "compliance",
	// market data
	"statistics", "market size", "industry growth", "average salary", "wage", "wages", "inflation", "cost of materials", "fuel prices",
	// technology
	"software", "app", "apps", "tools", "ai", "automation", "crm", "scheduling tool",
)

// NeedsWebSearch reports whether the message touches a time-sensitive,
// regulatory, market-data or technology topic.
func NeedsWebSearch(text string) bool {
	return webSearchTerms.MatchString(normalize(text))
}
