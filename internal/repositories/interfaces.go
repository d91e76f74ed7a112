package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type ParticipantFilters struct {
	Study     string     `json:"study"`
	Finished  *bool      `json:"finished"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "id", "start_time", "end_time"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type TrialFilters struct {
	ParticipantID *uint  `json:"participant_id"`
	ItemID        string `json:"item_id"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type TrialStats struct {
	Total       int64   `json:"total"`
	Correct     int64   `json:"correct"`
	CorrectRate float64 `json:"correct_rate"`
}

// Repository groups the repositories and runs work in a transaction.
type Repository interface {
	Participant() ParticipantRepository
	Trial() TrialRepository

	// Transaction runs fn in a database transaction. fn receives the
	// transaction handle to pass to repository methods.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
