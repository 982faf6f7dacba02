package intent

const highValueLength = 100

var highValueRules = []rule{
	{
		name:    "strategy",
		match:   phrases("strategy", "strategic", "business plan", "roadmap", "long-term plan", "5 year plan", "five year plan"),
		verdict: true,
	},
	{
		name:    "multi_step_how_to",
		match:   patterns(`how (do|can|should) i .* (and|then) `, `step[- ]by[- ]step`, `walk me through`),
		verdict: true,
	},
	{
		name:    "revenue_optimization",
		match:   patterns(`(increase|maximi[sz]e|boost|grow|double) (my )?(revenue|profit|margins?|sales)`, `profitab`),
		verdict: true,
	},
	{
		name:    "competitive_action",
		match:   patterns(`(compet\w+|market share).*(beat|win|outperform|differentiate|stand out)`, `(beat|outperform|differentiate from) .*compet`),
		verdict: true,
	},
	{
		name:    "growth_with_org",
		match:   patterns(`(scal(e|ing)|grow(ing|th)?|expand\w*).*(team|company|business|operation|crew|locations?)`),
		verdict: true,
	},
	{
		name:    "client_count",
		match:   patterns(`\b\d+\s*(clients|customers|accounts|jobs|contracts)\b`),
		verdict: true,
	},
	{
		name:    "campaign_marketing",
		match:   patterns(`campaign`, `multi[- ]?channel`, `omni[- ]?channel`, `marketing (plan|funnel|mix)`),
		verdict: true,
	},
	{
		name:    "long_message",
		match:   func(text string) bool { return len([]rune(text)) > highValueLength },
		verdict: true,
	},
}

// IsHighValueQuery reports whether the message should be routed to the premium completion path.
func IsHighValueQuery(text string) bool {
	_, verdict := evaluate(highValueRules, normalize(text))
	return verdict
}
