package repositories

import (
	"context"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"gorm.io/gorm"
)

// TrialRepository interface for scored trial records
type TrialRepository interface {
	CreateCritical(ctx context.Context, tx *gorm.DB, trials []*models.CriticalTrial) error
	CreateAttentionChecks(ctx context.Context, tx *gorm.DB, trials []*models.AttentionCheckTrial) error

	ListCritical(ctx context.Context, tx *gorm.DB, filters TrialFilters) ([]*models.CriticalTrial, error)
	ListAttentionChecks(ctx context.Context, tx *gorm.DB, filters TrialFilters) ([]*models.AttentionCheckTrial, error)

	// Statistics
	GetCriticalStats(ctx context.Context, tx *gorm.DB, itemID string) (*TrialStats, error)
}
