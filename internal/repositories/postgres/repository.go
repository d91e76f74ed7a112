package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db          *gorm.DB
	participant repositories.ParticipantRepository
	trial       repositories.TrialRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:          db,
		participant: NewParticipantPostgreSQL(db),
		trial:       NewTrialPostgreSQL(db),
	}
}

func (r *repository) Participant() repositories.ParticipantRepository {
	return r.participant
}

func (r *repository) Trial() repositories.TrialRepository {
	return r.trial
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// AutoMigrate creates or updates the experiment tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
