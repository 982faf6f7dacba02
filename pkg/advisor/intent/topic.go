package intent

import "regexp"

const (
	TopicSEO                 = "seo"
	TopicPricing             = "pricing"
	TopicMarketing           = "marketing"
	TopicCustomerAcquisition = "customer_acquisition"
	TopicCompetitiveAnalysis = "competitive_analysis"
	TopicServices            = "services"
	TopicSeasonal            = "seasonal"
	TopicTeamManagement      = "team_management"
	TopicBusinessGrowth      = "business_growth"
	TopicFinancial           = "financial"
	TopicGeneral             = "general"
)

type topicRule struct {
	topic string
	terms *regexp.Regexp
}

// topicRules is ordered; the first topic with a matching term wins.
var topicRules = []topicRule{
	{TopicSEO, wordPrefix("seo", "search engine", "google ranking", "rank on google", "google business profile", "keywords", "backlink")},
	{TopicPricing, wordPrefix("price", "pricing", "charge", "charging", "rate", "quote", "estimate", "how much")},
	{TopicMarketing, wordPrefix("marketing", "advertis", "social media", "facebook", "instagram", "flyer", "brand", "promotion")},
	{TopicCustomerAcquisition, wordPrefix("new customers", "more customers", "get clients", "find clients", "leads", "lead generation", "referral")},
	{TopicCompetitiveAnalysis, wordPrefix("competitor", "competition", "competitive", "other companies", "market share")},
	{TopicServices, wordPrefix("service", "offer", "add-on", "upsell", "package")},
	{TopicSeasonal, wordPrefix("season", "winter", "summer", "spring", "fall", "autumn", "holiday", "off-season", "snow")},
	{TopicTeamManagement, wordPrefix("employee", "staff", "hire", "hiring", "crew", "team", "payroll", "training")},
	{TopicBusinessGrowth, wordPrefix("grow", "growth", "scale", "scaling", "expand", "expansion")},
	{TopicFinancial, wordPrefix("profit", "revenue", "cash flow", "budget", "expense", "tax", "loan", "financing", "margin")},
}

// ClassifyTopic returns the first topic whose keywords appear in text, or TopicGeneral.
func ClassifyTopic(text string) string {
	t := normalize(text)
	for _, r := range topicRules {
		if r.terms.MatchString(t) {
			return r.topic
		}
	}
	return TopicGeneral
}
