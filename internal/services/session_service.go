package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/cache"
	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/events"
	"github.com/SAP-F-2025/comprehension-service/internal/experiment"
	"github.com/SAP-F-2025/comprehension-service/internal/export"
	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"github.com/SAP-F-2025/comprehension-service/internal/scoring"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionConfig holds the tunables of the session service.
type SessionConfig struct {
	Study       string
	ProgressTTL time.Duration
	Keys        experiment.KeyGenerator
	Clock       func() time.Time
}

type sessionService struct {
	repo      repositories.Repository
	catalog   *content.Catalog
	exporter  export.Exporter
	cache     cache.CacheService
	events    SessionEventService
	registry  *sessionRegistry
	logger    *slog.Logger
	ops       *ServiceLogger
	validator *validator.Validator
	config    SessionConfig
}

func NewSessionService(
	repo repositories.Repository,
	catalog *content.Catalog,
	exporter export.Exporter,
	cacheService cache.CacheService,
	eventService SessionEventService,
	logger *slog.Logger,
	validator *validator.Validator,
	config SessionConfig,
) SessionService {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Keys == nil {
		config.Keys, _ = experiment.NewWordKeys(experiment.DefaultWordList)
	}
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &sessionService{
		repo:      repo,
		catalog:   catalog,
		exporter:  exporter,
		cache:     cacheService,
		events:    eventService,
		registry:  newSessionRegistry(config.ProgressTTL, config.Clock),
		logger:    logger,
		ops:       NewServiceLogger(logger, LogConfig{Service: "session", Component: "service"}),
		validator: validator,
		config:    config,
	}
}

// ===== CORE SESSION OPERATIONS =====

// Start creates the participant, builds the session's sections and shows
// the first screen.
func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest) (resp *SessionResponse, err error) {
	op := s.ops.WithOperation(ctx, "start_session")
	defer func() {
		var id string
		if resp != nil {
			id = resp.SessionID
		}
		op.LogResult(id, "session", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	store, err := s.catalog.Lookup(req.ItemID)
	if err != nil {
		if errors.Is(err, content.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemID)
		}
		return nil, err
	}

	participant, err := s.createParticipant(ctx, req)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:          uuid.NewString(),
		participant: participant,
		item:        store.Item(),
	}
	sess.display = &sessionDisplay{
		sessionID: sess.id,
		cache:     s.cache,
		ttl:       s.config.ProgressTTL,
		now:       s.config.Clock,
		logger:    s.logger,
	}

	sess.sequencer, err = s.buildSequencer(sess, store)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.sequencer.Start(ctx); err != nil {
		// A failed progress repaint still leaves a usable first screen.
		if sess.sequencer.Current().Engine.State().Status != timeline.AwaitingInput {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
		s.logger.Warn("Session started with display error", "session_id", sess.id, "error", err)
	}
	s.registry.add(sess)
	if evicted := s.registry.evictIdle(); evicted > 0 {
		s.logger.Info("Evicted idle sessions", "evicted", evicted, "active", s.registry.count())
	}

	if err := s.events.NotifySessionStarted(ctx, events.SessionStartedEvent{
		SessionID:     sess.id,
		ParticipantID: participant.ID,
		ItemID:        sess.item.ItemID,
		Study:         participant.Study,
		StartedAt:     participant.StartTime,
	}); err != nil {
		s.logger.Warn("Session started event not published", "session_id", sess.id, "error", err)
	}

	return s.response(sess), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionResponse, error) {
	sess, err := s.registry.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, resumed, err := sess.sequencer.Resume(ctx); resumed {
		if sess.sequencer.Current().Engine.State().Status == timeline.NotStarted {
			return nil, fmt.Errorf("failed to resume session: %w", err)
		}
		s.logger.Info("Session section resumed", "session_id", sessionID, "section", sess.sequencer.Current().Name, "error", err)
	}
	return s.response(sess), nil
}

// Submit forwards one participant input to the session. Display, export
// and event failures after an accepted input are logged; the participant
// still moves on.
func (s *sessionService) Submit(ctx context.Context, sessionID string, req *SubmitTrialRequest) (resp *SubmitResponse, err error) {
	op := s.ops.WithOperation(ctx, "submit_trial")
	defer func() { op.LogResult(sessionID, "session", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	in := trial.Input{
		Key:          req.Key,
		ReactionTime: time.Duration(req.ReactionTime) * time.Millisecond,
	}
	if req.Responses != "" {
		in.Responses, err = scoring.ParseResponses(req.Responses)
		if err != nil {
			return nil, validationFailed(NewValidationError("responses", err.Error(), req.Responses))
		}
	}

	sess, err := s.registry.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	step, stepErr := sess.sequencer.Submit(ctx, in)
	if stepErr != nil && !step.Accepted && step.Next == nil {
		return nil, stepErr
	}
	if stepErr != nil {
		s.logger.Error("Trial handled with errors",
			"session_id", sessionID,
			"section", step.Section,
			"error", stepErr)
	}

	if step.Accepted {
		if err := s.events.NotifyTrialCompleted(ctx, sessionID, sess.participant.ID, step); err != nil {
			s.logger.Warn("Trial completed event not published", "session_id", sessionID, "error", err)
		}
	}
	if step.Finished {
		if err := s.events.NotifySectionFinished(ctx, events.SectionFinishedEvent{
			SessionID:     sessionID,
			ParticipantID: sess.participant.ID,
			Section:       step.Section,
			Trials:        step.Progress.Completed,
		}); err != nil {
			s.logger.Warn("Section finished event not published", "session_id", sessionID, "error", err)
		}
	}

	return &SubmitResponse{SessionID: sessionID, Step: step}, nil
}

// Progress reads the cached snapshot first so that it also answers for
// sessions served by another instance.
func (s *sessionService) Progress(ctx context.Context, sessionID string) (*progress.State, error) {
	var snapshot progressSnapshot
	err := s.cache.Get(ctx, progressKey(sessionID), &snapshot)
	if err == nil {
		return &snapshot.Progress, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Progress cache read failed", "session_id", sessionID, "error", err)
	}

	sess, err := s.registry.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	st := sess.sequencer.Current().Engine.Progress()
	return &st, nil
}

// ===== HELPERS =====

func (s *sessionService) createParticipant(ctx context.Context, req *StartSessionRequest) (*models.Participant, error) {
	args := req.Args
	if args == nil {
		args = map[string][]string{}
	}
	getArgs, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request args: %w", err)
	}

	study := req.Study
	if study == "" {
		study = s.config.Study
	}

	participant := &models.Participant{
		IPAddress:    req.IPAddress,
		WorkerID:     req.WorkerID,
		AssignmentID: req.AssignmentID,
		GetArgs:      datatypes.JSON(getArgs),
		Key:          s.config.Keys(),
		Study:        study,
		ItemID:       req.ItemID,
		StartTime:    s.config.Clock(),
	}
	if err := s.repo.Participant().Create(ctx, nil, participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return participant, nil
}

func (s *sessionService) buildSequencer(sess *session, store content.Store) (*timeline.Sequencer, error) {
	logger := s.logger.With("session_id", sess.id)

	comprehension, err := experiment.NewComprehensionSection(store,
		timeline.WithRenderer(sectionDisplay{name: experiment.SectionComprehension, sessionDisplay: sess.display}),
		timeline.WithOnFinished(s.exportHook(sess)),
		timeline.WithLogger(logger),
		timeline.WithClock(s.config.Clock),
	)
	if err != nil {
		return nil, err
	}

	finish, err := experiment.NewFinishSection(store,
		timeline.WithRenderer(sectionDisplay{name: experiment.SectionFinish, sessionDisplay: sess.display}),
		timeline.WithLogger(logger),
		timeline.WithClock(s.config.Clock),
	)
	if err != nil {
		return nil, err
	}

	// Finished sessions stay registered so late submits get a sequence error.
	return timeline.NewSequencer([]timeline.Section{comprehension, finish}, func(ctx context.Context) error {
		return s.cache.DeletePattern(ctx, sessionKeyPattern(sess.id))
	})
}

// exportHook hands the comprehension results to the exporter.
func (s *sessionService) exportHook(sess *session) timeline.FinishedFunc {
	return func(ctx context.Context, summary timeline.Summary) error {
		if s.exporter == nil {
			return nil
		}
		return s.exporter.Export(ctx, export.Session{
			ID:          sess.id,
			Participant: sess.participant,
			Item:        sess.item,
			Results:     summary.Results,
			Progress:    summary.Progress,
			FinishedAt:  s.config.Clock(),
		})
	}
}

func (s *sessionService) response(sess *session) *SessionResponse {
	current := sess.sequencer.Current()
	resp := &SessionResponse{
		SessionID:     sess.id,
		ParticipantID: sess.participant.ID,
		Key:           sess.participant.Key,
		ItemID:        sess.item.ItemID,
		Section:       current.Name,
		Done:          sess.sequencer.Finished(),
		Progress:      current.Engine.Progress(),
	}
	if screen, ok := current.Engine.Current(); ok {
		resp.Screen = &screen
	}
	return resp
}
