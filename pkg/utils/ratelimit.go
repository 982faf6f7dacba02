package utils

import "golang.org/x/time/rate"

// NewProviderLimiter paces calls to a paid provider. rps <= 0 disables pacing.
func NewProviderLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
