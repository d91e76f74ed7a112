package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/events"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_EvictIdle(t *testing.T) {
	now := testNow
	registry := newSessionRegistry(time.Hour, func() time.Time { return now })

	registry.add(&session{id: "idle"})
	registry.add(&session{id: "busy"})

	now = now.Add(45 * time.Minute)
	_, err := registry.get("busy")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, registry.evictIdle())
	assert.Equal(t, 1, registry.count())

	_, err = registry.get("idle")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = registry.get("busy")
	assert.NoError(t, err)
}

func TestSessionRegistry_ZeroTTLKeepsSessions(t *testing.T) {
	now := testNow
	registry := newSessionRegistry(0, func() time.Time { return now })
	registry.add(&session{id: "s-1"})

	now = now.Add(365 * 24 * time.Hour)
	assert.Zero(t, registry.evictIdle())
	assert.Equal(t, 1, registry.count())
}

func TestSessionService_StartEvictsAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	now := testNow
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewSessionService(
		testRepo(t),
		testCatalog(t),
		nil,
		newMemoryCache(),
		NewSessionEventService(publisher, testLogger()),
		testLogger(),
		validator.New(),
		SessionConfig{
			Study:       "nlm_fb",
			ProgressTTL: 2 * time.Hour,
			Keys:        func() string { return "lantern" },
			Clock:       func() time.Time { return now },
		},
	)

	req := &StartSessionRequest{ItemID: "2_fb_basket_box"}
	abandoned, err := service.Start(ctx, req)
	require.NoError(t, err)

	now = now.Add(3 * time.Hour)
	_, err = service.Start(ctx, req)
	require.NoError(t, err)

	_, err = service.Get(ctx, abandoned.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
