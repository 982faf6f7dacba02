package handler

import (
	"context"
	"testing"
	"time"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationAlertHandler_CountsEvents(t *testing.T) {
	h := NewModerationAlertHandler(logger.NewNop())
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, events.NewEvent(events.ModerationBlocked, map[string]interface{}{"content_type": "message"})))
	require.NoError(t, h.Handle(ctx, events.NewEvent(events.ModerationBlocked, map[string]interface{}{"content_type": "file_content"})))
	require.NoError(t, h.Handle(ctx, events.NewEvent(events.ModerationBlocked, map[string]interface{}{"content_type": "message"})))
	require.NoError(t, h.Handle(ctx, events.NewEvent(events.ModerationProviderUnavailable, nil)))
	require.NoError(t, h.Handle(ctx, events.NewEvent("something.else", nil)))

	stats := h.Stats()
	assert.Equal(t, int64(3), stats.Blocked)
	assert.Equal(t, int64(2), stats.BlockedByType["message"])
	assert.Equal(t, int64(1), stats.ProviderUnavailable)
	assert.Equal(t, 1, stats.RecentOutages)
}

func TestModerationAlertHandler_OutageWindow(t *testing.T) {
	h := NewModerationAlertHandler(logger.NewNop())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	for i := 0; i < OutageAlertThreshold; i++ {
		require.NoError(t, h.Handle(context.Background(), events.NewEvent(events.ModerationProviderUnavailable, nil)))
	}
	assert.Equal(t, OutageAlertThreshold, h.Stats().RecentOutages)

	now = now.Add(OutageWindow + time.Second)
	stats := h.Stats()
	assert.Equal(t, 0, stats.RecentOutages)
	assert.Equal(t, int64(OutageAlertThreshold), stats.ProviderUnavailable)
}
