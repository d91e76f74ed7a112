package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/cache"
	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
)

// session is one participant's live run. mu serialises every use of the
// sequencer and its engines.
type session struct {
	mu          sync.Mutex
	id          string
	participant *models.Participant
	item        content.ItemContent
	sequencer   *timeline.Sequencer
	display     *sessionDisplay
}

// sessionRegistry holds the sessions of this process. Sessions idle for
// longer than ttl are dropped by evictIdle; a zero ttl keeps them all.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	lastSeen map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

func newSessionRegistry(ttl time.Duration, now func() time.Time) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		lastSeen: make(map[string]time.Time),
		ttl:      ttl,
		now:      now,
	}
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
	r.lastSeen[s.id] = r.now()
}

// get also marks the session as active.
func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	r.lastSeen[id] = r.now()
	return s, nil
}

// evictIdle removes sessions not seen within ttl and reports how many went.
func (r *sessionRegistry) evictIdle() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.sessions, id)
			delete(r.lastSeen, id)
			evicted++
		}
	}
	return evicted
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// progressSnapshot is what the cache keeps per session.
type progressSnapshot struct {
	Section   string         `json:"section"`
	Progress  progress.State `json:"progress"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func progressKey(sessionID string) string {
	return "session:" + sessionID + ":progress"
}

func sessionKeyPattern(sessionID string) string {
	return "session:" + sessionID + ":*"
}

// sessionDisplay is the timeline renderer of a session. Clients poll for
// screens, so rendering only logs; every progress repaint is mirrored to
// the cache.
type sessionDisplay struct {
	sessionID string
	cache     cache.CacheService
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger

	section string
}

func (d *sessionDisplay) Render(_ context.Context, screen timeline.Screen) error {
	d.logger.Debug("Screen ready",
		"session_id", d.sessionID,
		"section", d.section,
		"index", screen.Index,
		"trial_part", screen.Markup.Part,
	)
	return nil
}

func (d *sessionDisplay) PaintProgress(ctx context.Context, s progress.State) error {
	snapshot := progressSnapshot{Section: d.section, Progress: s, UpdatedAt: d.now()}
	return d.cache.Set(ctx, progressKey(d.sessionID), snapshot, d.ttl)
}

// sectionDisplay tags repaints with the section that produced them.
type sectionDisplay struct {
	name string
	*sessionDisplay
}

func (d sectionDisplay) Render(ctx context.Context, screen timeline.Screen) error {
	d.section = d.name
	return d.sessionDisplay.Render(ctx, screen)
}

func (d sectionDisplay) PaintProgress(ctx context.Context, s progress.State) error {
	d.section = d.name
	return d.sessionDisplay.PaintProgress(ctx, s)
}
