package moderation

import (
	"regexp"
	"strings"
)

// Policy is a business rule applied after the provider verdict allowed the content.
type Policy interface {
	Name() string
	// Check returns a blocking reason and user-facing message when the content violates the policy.
	Check(content string) (blocked bool, reason string, message string)
}

var financialCrimeTerms = []string{
	"fraud", "fraudulent", "money laundering", "launder money", "laundering money",
	"tax evasion", "evade taxes", "evading taxes", "embezzle", "embezzlement",
	"ponzi", "pyramid scheme", "kickback", "kickbacks", "bribe", "bribery",
	"fake invoice", "fake invoices", "cook the books", "structuring deposits",
	"identity theft", "check kiting", "counterfeit",
}

// FinancialCrimePolicy blocks requests that mention financial-crime terms.
type FinancialCrimePolicy struct {
	pattern *regexp.Regexp
}

func NewFinancialCrimePolicy() *FinancialCrimePolicy {
	quoted := make([]string, len(financialCrimeTerms))
	for i, t := range financialCrimeTerms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return &FinancialCrimePolicy{
		pattern: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

func (p *FinancialCrimePolicy) Name() string {
	return "financial_crime"
}

func (p *FinancialCrimePolicy) Check(content string) (bool, string, string) {
	match := p.pattern.FindString(strings.ToLower(content))
	if match == "" {
		return false, "", ""
	}
	return true, "financial crime policy: matched \"" + match + "\"", MessageFinancialCrime
}
