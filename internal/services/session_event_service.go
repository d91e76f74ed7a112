package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/comprehension-service/internal/events"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
)

// SessionEventService publishes the lifecycle events of sessions.
type SessionEventService interface {
	NotifySessionStarted(ctx context.Context, data events.SessionStartedEvent) error
	NotifyTrialCompleted(ctx context.Context, sessionID string, participantID uint, step timeline.Step) error
	NotifySectionFinished(ctx context.Context, data events.SectionFinishedEvent) error
}

type sessionEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewSessionEventService(eventPublisher events.EventPublisher, logger *slog.Logger) SessionEventService {
	return &sessionEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *sessionEventService) NotifySessionStarted(ctx context.Context, data events.SessionStartedEvent) error {
	s.logger.Info("Publishing session started event", "session_id", data.SessionID, "item_id", data.ItemID)
	return s.publish(ctx, events.NewSessionStartedEvent(data))
}

// NotifyTrialCompleted publishes the result of an accepted step. Rejected
// steps carry no result and are not published.
func (s *sessionEventService) NotifyTrialCompleted(ctx context.Context, sessionID string, participantID uint, step timeline.Step) error {
	if !step.Accepted || step.Result == nil {
		return nil
	}

	r := step.Result
	return s.publish(ctx, events.NewTrialCompletedEvent(events.TrialCompletedEvent{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Section:       step.Section,
		TrialIndex:    r.Index,
		TrialPart:     r.TrialPart,
		ItemType:      string(r.ItemType),
		Scored:        r.Scored,
		IsCorrect:     r.IsCorrect,
		ReactionTime:  r.ReactionTime.Milliseconds(),
		Completed:     step.Progress.Completed,
		Total:         step.Progress.Total,
	}))
}

func (s *sessionEventService) NotifySectionFinished(ctx context.Context, data events.SectionFinishedEvent) error {
	s.logger.Info("Publishing section finished event", "session_id", data.SessionID, "section", data.Section)
	return s.publish(ctx, events.NewSectionFinishedEvent(data))
}

func (s *sessionEventService) publish(ctx context.Context, event *events.Event) error {
	if err := s.eventPublisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
