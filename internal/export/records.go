package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNoParticipant = errors.New("session has no participant")

// RecordExporter writes the scored trials of a session to the database and
// stamps the participant's end time, in one transaction.
type RecordExporter struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRecordExporter(repo repositories.Repository, logger *slog.Logger) *RecordExporter {
	return &RecordExporter{repo: repo, logger: logger}
}

func (e *RecordExporter) Export(ctx context.Context, session Session) error {
	if session.Participant == nil {
		return ErrNoParticipant
	}

	critical, attnChecks, err := BuildRecords(session)
	if err != nil {
		return err
	}

	err = e.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if len(critical) > 0 {
			if err := e.repo.Trial().CreateCritical(ctx, tx, critical); err != nil {
				return err
			}
		}
		if len(attnChecks) > 0 {
			if err := e.repo.Trial().CreateAttentionChecks(ctx, tx, attnChecks); err != nil {
				return err
			}
		}
		return e.repo.Participant().MarkFinished(ctx, tx, session.Participant.ID, session.FinishedAt)
	})
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}

	e.logger.Info("Session results stored",
		"session_id", session.ID,
		"participant_id", session.Participant.ID,
		"critical_trials", len(critical),
		"attention_checks", len(attnChecks))
	return nil
}

// BuildRecords maps the result log of a session to trial rows. The passage
// reading time of critical trials is the reaction time of the passage
// screen.
func BuildRecords(session Session) ([]*models.CriticalTrial, []*models.AttentionCheckTrial, error) {
	var passageRT int64
	for _, r := range session.Results {
		if r.TrialPart == trial.PartPassage {
			passageRT = r.ReactionTime.Milliseconds()
			break
		}
	}

	item := session.Item
	participantID := session.ParticipantID()

	var critical []*models.CriticalTrial
	var attnChecks []*models.AttentionCheckTrial
	for _, r := range session.Results {
		if !r.Scored {
			continue
		}

		raw, err := json.Marshal(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode trial %d: %w", r.Index, err)
		}

		switch r.ItemType {
		case trial.RoleCritical:
			critical = append(critical, &models.CriticalTrial{
				ParticipantID:      participantID,
				ItemID:             item.ItemID,
				Item:               item.Item,
				ItemType:           string(r.ItemType),
				TrialIndex:         r.Index,
				Condition:          item.Condition,
				FirstMention:       item.FirstMention,
				RecentMention:      item.RecentMention,
				KnowledgeCue:       item.KnowledgeCue,
				Start:              item.Start,
				End:                item.End,
				CorrectAnswer:      r.CorrectAnswer,
				Response:           r.Response,
				IsCorrect:          r.IsCorrect,
				IsStart:            r.IsStart,
				IsEnd:              r.IsEnd,
				ReactionTime:       r.ReactionTime.Milliseconds(),
				PassageReadingTime: passageRT,
				RawData:            datatypes.JSON(raw),
			})
		case trial.RoleAttentionCheck:
			attnChecks = append(attnChecks, &models.AttentionCheckTrial{
				ParticipantID: participantID,
				ItemID:        item.ItemID,
				Item:          item.Item,
				ItemType:      string(r.ItemType),
				TrialIndex:    r.Index,
				QuestionID:    r.QuestionID,
				CorrectAnswer: r.CorrectAnswer,
				Response:      r.Response,
				IsCorrect:     r.IsCorrect,
				ReactionTime:  r.ReactionTime.Milliseconds(),
				RawData:       datatypes.JSON(raw),
			})
		}
	}
	return critical, attnChecks, nil
}
