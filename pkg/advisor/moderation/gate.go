package moderation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/pkg/events"
)

// EventPublisher receives ops events for blocks and provider outages.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Gate applies the provider verdict, then every business policy to inbound
// content, and writes one audit row per call.
type Gate struct {
	provider  Provider
	logs      contract.ModerationLogRepository
	policies  []Policy
	publisher EventPublisher
	logger    logger.ILogger
	now       func() time.Time
}

type Option func(*Gate)

func WithPolicies(policies ...Policy) Option {
	return func(g *Gate) { g.policies = append(g.policies, policies...) }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(g *Gate) { g.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(provider Provider, logs contract.ModerationLogRepository, log logger.ILogger, opts ...Option) *Gate {
	g := &Gate{
		provider: provider,
		logs:     logs,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Truncate cuts content to MaxContentLength runes.
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxContentLength {
		return content
	}
	return string(runes[:MaxContentLength])
}

// Moderate never returns an error: provider failure fails open and is recorded
// with ReasonProviderUnavailable.
func (g *Gate) Moderate(ctx context.Context, content string, contentType ContentType, callerID string) *Result {
	screened := Truncate(content)

	result := g.classify(ctx, screened, contentType)
	if result.Allowed && contentType != ContentReply {
		g.applyPolicies(screened, result)
	}

	g.writeLog(ctx, screened, contentType, callerID, result)
	g.publish(ctx, contentType, callerID, result)

	return result
}

func (g *Gate) classify(ctx context.Context, content string, contentType ContentType) *Result {
	verdict, err := g.provider.Classify(ctx, content)
	if err != nil {
		g.logger.Warn("MODERATION", "Provider unavailable, failing open", map[string]interface{}{
			"content_type": string(contentType),
			"error":        err.Error(),
		})
		return &Result{
			Allowed:           true,
			CategoryScores:    map[string]float64{},
			ProviderAvailable: false,
		}
	}

	result := &Result{
		Allowed:           true,
		CategoryScores:    verdict.Scores,
		ProviderAvailable: true,
	}
	if result.CategoryScores == nil {
		result.CategoryScores = map[string]float64{}
	}

	var reasons []string
	for category, score := range result.CategoryScores {
		if score > Threshold(contentType, category) {
			result.FlaggedCategories = append(result.FlaggedCategories, category)
		}
	}
	sort.Strings(result.FlaggedCategories)

	if len(result.FlaggedCategories) > 0 {
		for _, c := range result.FlaggedCategories {
			reasons = append(reasons, fmt.Sprintf("%s=%.3f>%.2f", c, result.CategoryScores[c], Threshold(contentType, c)))
		}
		result.Allowed = false
		result.BlockingReason = "flagged categories: " + strings.Join(reasons, ", ")
		result.UserFacingMessage = MessageBlocked
		if contentType == ContentFileContent || contentType == ContentFileUpload {
			result.UserFacingMessage = MessageFileBlocked
		}
	}
	return result
}

func (g *Gate) applyPolicies(content string, result *Result) {
	for _, p := range g.policies {
		blocked, reason, message := p.Check(content)
		if !blocked {
			continue
		}
		result.Allowed = false
		result.FlaggedCategories = append(result.FlaggedCategories, "policy:"+p.Name())
		result.BlockingReason = reason
		result.UserFacingMessage = message
		return
	}
}

func (g *Gate) writeLog(ctx context.Context, content string, contentType ContentType, callerID string, result *Result) {
	meta := requestMetaFrom(ctx)
	if callerID == "" {
		callerID = meta.CallerID
	}

	action := entity.ModerationActionAllowed
	if !result.Allowed {
		action = entity.ModerationActionBlocked
	}

	reason := result.BlockingReason
	if !result.ProviderAvailable {
		if reason == "" {
			reason = ReasonProviderUnavailable
		} else {
			reason = ReasonProviderUnavailable + "; " + reason
		}
	}

	row := &entity.ModerationLog{
		Content:           content,
		ContentType:       string(contentType),
		Flagged:           len(result.FlaggedCategories) > 0,
		FlaggedCategories: result.FlaggedCategories,
		CategoryScores:    result.CategoryScores,
		Action:            action,
		Reason:            reason,
		CallerId:          callerID,
		IpAddress:         meta.IPAddress,
		UserAgent:         meta.UserAgent,
		CreatedAt:         g.now(),
	}

	if err := g.logs.Create(ctx, row); err != nil {
		g.logger.Error("MODERATION", "Failed to write moderation log", map[string]interface{}{
			"content_type": string(contentType),
			"action":       action,
			"error":        err.Error(),
		})
	}
}

func (g *Gate) publish(ctx context.Context, contentType ContentType, callerID string, result *Result) {
	if g.publisher == nil {
		return
	}

	var eventType string
	switch {
	case !result.Allowed:
		eventType = events.ModerationBlocked
	case !result.ProviderAvailable:
		eventType = events.ModerationProviderUnavailable
	default:
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := g.publisher.Publish(pubCtx, events.NewEvent(eventType, map[string]interface{}{
		"content_type": string(contentType),
		"caller_id":    callerID,
		"categories":   result.FlaggedCategories,
		"reason":       result.BlockingReason,
	}))
	if err != nil {
		g.logger.Warn("MODERATION", "Failed to publish moderation event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
