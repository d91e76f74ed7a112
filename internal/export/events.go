package export

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/events"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

// EventExporter announces a finished session.
type EventExporter struct {
	publisher events.EventPublisher
}

func NewEventExporter(publisher events.EventPublisher) *EventExporter {
	return &EventExporter{publisher: publisher}
}

func (e *EventExporter) Export(ctx context.Context, session Session) error {
	data := events.SessionFinishedEvent{
		SessionID:     session.ID,
		ParticipantID: session.ParticipantID(),
		ItemID:        session.Item.ItemID,
		FinishedAt:    session.FinishedAt,
	}
	for _, r := range session.Results {
		switch r.ItemType {
		case trial.RoleCritical:
			data.CriticalTrials++
		case trial.RoleAttentionCheck:
			data.AttnChecks++
			if r.IsCorrect {
				data.AttnCorrect++
			}
		}
	}

	if err := e.publisher.PublishEvent(ctx, events.NewSessionFinishedEvent(data)); err != nil {
		return fmt.Errorf("failed to publish session finished event: %w", err)
	}
	return nil
}
