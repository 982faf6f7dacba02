package intent

import "regexp"

// competitorIndicators are the four signal families of the combined-context rule.
var competitorIndicators = []*regexp.Regexp{
	// business
	wholeWords("business", "businesses", "company", "companies", "contractor", "contractors", "service provider",
		"service providers", "landscaper", "landscapers", "plumber", "plumbers", "electrician", "electricians",
		"roofer", "roofers", "cleaner", "cleaners", "shop", "shops", "crews"),
	// location
	wholeWords("near me", "in my area", "nearby", "local", "locally", "around here", "in town", "my city", "zip", "zip code"),
	// comparison
	wholeWords("compare", "compared", "comparison", "versus", "vs", "better than", "cheaper than", "best rated", "top rated", "top-rated"),
	// market
	wholeWords("market", "industry", "demand", "saturated", "pricing", "rates", "prices"),
}

var bareCompetitorWord = regexp.MustCompile(`\bcompetit(or|ors|ion|ive)\b`)

var nonCompete = regexp.MustCompile(`non[- ]?compet`)

// competitorRules is evaluated top to bottom. Positive cascades come before the
// negative patterns so an explicit competitor phrase always wins.
var competitorRules = []rule{
	{
		name: "explicit_competitor",
		match: phrases(
			"my competitors", "my competition", "competitors in", "competitors near",
			"competitor analysis", "competitive analysis", "competitive landscape",
			"who are my competitors", "who is my competition", "other companies in my area",
			"other businesses in my area", "market research", "businesses like mine",
			"companies like mine", "what are my competitors",
		),
		verdict: true,
	},
	{
		name: "pricing_comparison",
		match: patterns(
			`going rate`,
			`market rate`,
			`average (price|rate|cost)`,
			`other \w+ charg`,
			`what (do|are) (other|most) \w+ charg`,
			`how much (do|does|are) (other|most|local)? ?\w+ charg`,
			`what (is|are) (the )?(typical|normal|standard) (price|rate)s?`,
			`(prices|rates) in my area`,
		),
		verdict: true,
	},
	{
		name: "service_comparison",
		match: patterns(
			`what services do (other|most|local) `,
			`(other|local) \w+ (offer|provide)`,
			`services (that )?(my )?competitors`,
			`what (are|do) (other|similar) (businesses|companies) (offer|do)`,
		),
		verdict: true,
	},
	{
		name:    "combined_context",
		match:   combinedContext,
		verdict: true,
	},
	{
		name: "negative_pattern",
		match: patterns(
			`^how (do|can|should) i\b`,
			`^how to\b`,
			`\b(hire|train|schedule|payroll|onboard)\w* (my |an? )?(employee|staff|crew|team)`,
			`\b(invoice|invoicing|bookkeeping|quickbooks|accounting software)\b`,
			`\b(website|app|software|crm|login|password|bug)\b.*\b(fix|error|broken|set ?up|install)`,
			`^(give me|any) (tips|advice)\b`,
			`\b(customer complaint|refund|angry customer|bad review)\b`,
		),
		verdict: false,
	},
	{
		name: "bare_competitor",
		match: func(text string) bool {
			return bareCompetitorWord.MatchString(text) && !nonCompete.MatchString(text)
		},
		verdict: true,
	},
}

func combinedContext(text string) bool {
	hits := 0
	for _, ind := range competitorIndicators {
		if ind.MatchString(text) {
			hits++
		}
	}
	return hits >= 2
}

// NeedsCompetitorLookup reports whether the message warrants a business-listing lookup.
func NeedsCompetitorLookup(text string) bool {
	_, verdict := evaluate(competitorRules, normalize(text))
	return verdict
}

// CompetitorRule names the rule that decided NeedsCompetitorLookup.
func CompetitorRule(text string) string {
	name, _ := evaluate(competitorRules, normalize(text))
	return name
}
