package services

import (
	"context"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
)

// SessionService runs experiment sessions: one participant working through
// the comprehension section and the closing screen.
type SessionService interface {
	Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*SessionResponse, error)
	Submit(ctx context.Context, sessionID string, req *SubmitTrialRequest) (*SubmitResponse, error)
	Progress(ctx context.Context, sessionID string) (*progress.State, error)
}

type ParticipantService interface {
	GetWithTrials(ctx context.Context, id uint) (*models.Participant, error)
	UpdateDevice(ctx context.Context, id uint, req *DeviceRequest) error
	RecordDemographics(ctx context.Context, id uint, req *DemographicsRequest) error
	RecordDebrief(ctx context.Context, id uint, req *DebriefRequest) error
}

// ExportService renders stored records for the admin data download.
type ExportService interface {
	Export(ctx context.Context, req *ExportRequest) (*ExportFile, error)
	// CriticalStats summarises critical trial accuracy; an empty itemID
	// covers all items.
	CriticalStats(ctx context.Context, itemID string) (*repositories.TrialStats, error)
}
