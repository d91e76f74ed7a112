package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"gorm.io/gorm"
)

type ParticipantPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewParticipantPostgreSQL(db *gorm.DB) repositories.ParticipantRepository {
	return &ParticipantPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(),
	}
}

func (p *ParticipantPostgreSQL) Create(ctx context.Context, tx *gorm.DB, participant *models.Participant) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Create(participant).Error
}

func (p *ParticipantPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Participant, error) {
	db := p.getDB(tx)
	var participant models.Participant
	if err := db.WithContext(ctx).First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) GetByIDWithTrials(ctx context.Context, tx *gorm.DB, id uint) (*models.Participant, error) {
	db := p.getDB(tx)
	var participant models.Participant
	if err := db.WithContext(ctx).
		Preload("CriticalTrials", byTrialIndex).
		Preload("AttentionCheckTrials", byTrialIndex).
		First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) Update(ctx context.Context, tx *gorm.DB, participant *models.Participant) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Omit("CriticalTrials", "AttentionCheckTrials").Save(participant).Error
}

func (p *ParticipantPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ParticipantFilters) ([]*models.Participant, int64, error) {
	db := p.getDB(tx)
	var participants []*models.Participant
	var total int64

	// apply filter first
	query := db.WithContext(ctx).Model(&models.Participant{})
	query = p.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = p.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		"id", "start_time", "end_time")

	if err := query.Find(&participants).Error; err != nil {
		return nil, 0, err
	}

	return participants, total, nil
}

func (p *ParticipantPostgreSQL) MarkFinished(ctx context.Context, tx *gorm.DB, id uint, endTime time.Time) error {
	db := p.getDB(tx)
	result := db.WithContext(ctx).Model(&models.Participant{}).Where("id = ?", id).Update("end_time", endTime)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *ParticipantPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ParticipantFilters) *gorm.DB {
	if filters.Study != "" {
		query = query.Where("study = ?", filters.Study)
	}
	if filters.Finished != nil {
		if *filters.Finished {
			query = query.Where("end_time IS NOT NULL")
		} else {
			query = query.Where("end_time IS NULL")
		}
	}
	if filters.DateFrom != nil {
		query = query.Where("start_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("start_time <= ?", *filters.DateTo)
	}
	return query
}

func byTrialIndex(db *gorm.DB) *gorm.DB {
	return db.Order("trial_index asc")
}

func (p *ParticipantPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}
