package handler

import (
	"context"
	"sync"
	"time"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/pkg/serverutils"
	"trade-advisor-be/pkg/events"

	"github.com/gofiber/fiber/v2"
)

const (
	// OutageAlertThreshold provider outages inside OutageWindow raise an error-level alert.
	OutageAlertThreshold = 5
	OutageWindow         = 5 * time.Minute
)

type ModerationStats struct {
	Blocked             int64            `json:"blocked"`
	ProviderUnavailable int64            `json:"provider_unavailable"`
	BlockedByType       map[string]int64 `json:"blocked_by_type"`
	RecentOutages       int              `json:"recent_outages"`
}

// ModerationAlertHandler consumes moderation ops events, keeps counters and
// raises an alert when the provider keeps failing open.
type ModerationAlertHandler struct {
	mu            sync.Mutex
	logger        logger.ILogger
	now           func() time.Time
	blocked       int64
	unavailable   int64
	blockedByType map[string]int64
	outages       []time.Time
}

func NewModerationAlertHandler(log logger.ILogger) *ModerationAlertHandler {
	return &ModerationAlertHandler{
		logger:        log,
		now:           time.Now,
		blockedByType: make(map[string]int64),
	}
}

// Handle matches the NATS subscriber's EventHandler signature.
func (h *ModerationAlertHandler) Handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	contentType, _ := payload["content_type"].(string)

	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.EventType() {
	case events.ModerationBlocked:
		h.blocked++
		h.blockedByType[contentType]++
		h.logger.Warn("MODERATION_ALERT", "Content blocked", payload)

	case events.ModerationProviderUnavailable:
		h.unavailable++
		now := h.now()
		h.outages = append(h.pruneOutages(now), now)
		if len(h.outages) >= OutageAlertThreshold {
			h.logger.Error("MODERATION_ALERT", "Moderation provider repeatedly unavailable, requests are failing open", map[string]interface{}{
				"outages": len(h.outages),
				"window":  OutageWindow.String(),
			})
		}
	}
	return nil
}

func (h *ModerationAlertHandler) pruneOutages(now time.Time) []time.Time {
	cutoff := now.Add(-OutageWindow)
	kept := h.outages[:0]
	for _, t := range h.outages {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (h *ModerationAlertHandler) Stats() ModerationStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	byType := make(map[string]int64, len(h.blockedByType))
	for k, v := range h.blockedByType {
		byType[k] = v
	}
	h.outages = h.pruneOutages(h.now())
	return ModerationStats{
		Blocked:             h.blocked,
		ProviderUnavailable: h.unavailable,
		BlockedByType:       byType,
		RecentOutages:       len(h.outages),
	}
}

func (h *ModerationAlertHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(serverutils.SuccessResponse("Success get moderation stats", h.Stats()))
}

func (h *ModerationAlertHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	ops := router.Group("/ops/v1", auth)
	ops.Get("/moderation/stats", h.GetStats)
}
