package export

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

// Session is a finished comprehension section, handed over for storage.
type Session struct {
	ID          string              `json:"session_id"`
	Participant *models.Participant `json:"-"`
	Item        content.ItemContent `json:"item"`
	Results     []trial.Result      `json:"results"`
	Progress    progress.State      `json:"progress"`
	FinishedAt  time.Time           `json:"finished_at"`
}

// ParticipantID returns 0 when the session has no participant.
func (s Session) ParticipantID() uint {
	if s.Participant == nil {
		return 0
	}
	return s.Participant.ID
}

// Exporter stores the results of a finished session somewhere.
type Exporter interface {
	Export(ctx context.Context, session Session) error
}

type ExporterFunc func(ctx context.Context, session Session) error

func (f ExporterFunc) Export(ctx context.Context, session Session) error {
	return f(ctx, session)
}

type multi []Exporter

// Multi runs every exporter in order. A failing exporter does not stop the
// rest; all failures are returned joined.
func Multi(exporters ...Exporter) Exporter {
	return multi(exporters)
}

func (m multi) Export(ctx context.Context, session Session) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Export(ctx, session); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
