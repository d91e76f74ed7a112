package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"gorm.io/gorm"
)

// ParticipantRepository interface for participant operations
type ParticipantRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, participant *models.Participant) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Participant, error)
	GetByIDWithTrials(ctx context.Context, tx *gorm.DB, id uint) (*models.Participant, error)
	Update(ctx context.Context, tx *gorm.DB, participant *models.Participant) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters ParticipantFilters) ([]*models.Participant, int64, error)

	// Session lifecycle
	MarkFinished(ctx context.Context, tx *gorm.DB, id uint, endTime time.Time) error
}
