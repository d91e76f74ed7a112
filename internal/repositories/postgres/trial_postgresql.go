package postgres

import (
	"context"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"gorm.io/gorm"
)

type TrialPostgreSQL struct {
	db *gorm.DB
}

func NewTrialPostgreSQL(db *gorm.DB) repositories.TrialRepository {
	return &TrialPostgreSQL{db: db}
}

func (t *TrialPostgreSQL) CreateCritical(ctx context.Context, tx *gorm.DB, trials []*models.CriticalTrial) error {
	if len(trials) == 0 {
		return nil
	}
	db := t.getDB(tx)
	return db.WithContext(ctx).Create(&trials).Error
}

func (t *TrialPostgreSQL) CreateAttentionChecks(ctx context.Context, tx *gorm.DB, trials []*models.AttentionCheckTrial) error {
	if len(trials) == 0 {
		return nil
	}
	db := t.getDB(tx)
	return db.WithContext(ctx).Create(&trials).Error
}

func (t *TrialPostgreSQL) ListCritical(ctx context.Context, tx *gorm.DB, filters repositories.TrialFilters) ([]*models.CriticalTrial, error) {
	db := t.getDB(tx)
	var trials []*models.CriticalTrial
	query := t.applyFilters(db.WithContext(ctx).Model(&models.CriticalTrial{}), filters)
	if err := query.Order("participant_id asc, trial_index asc").Find(&trials).Error; err != nil {
		return nil, err
	}
	return trials, nil
}

func (t *TrialPostgreSQL) ListAttentionChecks(ctx context.Context, tx *gorm.DB, filters repositories.TrialFilters) ([]*models.AttentionCheckTrial, error) {
	db := t.getDB(tx)
	var trials []*models.AttentionCheckTrial
	query := t.applyFilters(db.WithContext(ctx).Model(&models.AttentionCheckTrial{}), filters)
	if err := query.Order("participant_id asc, trial_index asc").Find(&trials).Error; err != nil {
		return nil, err
	}
	return trials, nil
}

func (t *TrialPostgreSQL) GetCriticalStats(ctx context.Context, tx *gorm.DB, itemID string) (*repositories.TrialStats, error) {
	db := t.getDB(tx)
	stats := &repositories.TrialStats{}

	base := func() *gorm.DB {
		query := db.WithContext(ctx).Model(&models.CriticalTrial{})
		if itemID != "" {
			query = query.Where("item_id = ?", itemID)
		}
		return query
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_correct = ?", true).Count(&stats.Correct).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.CorrectRate = float64(stats.Correct) / float64(stats.Total)
	}
	return stats, nil
}

func (t *TrialPostgreSQL) applyFilters(query *gorm.DB, filters repositories.TrialFilters) *gorm.DB {
	if filters.ParticipantID != nil {
		query = query.Where("participant_id = ?", *filters.ParticipantID)
	}
	if filters.ItemID != "" {
		query = query.Where("item_id = ?", filters.ItemID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

func (t *TrialPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}
