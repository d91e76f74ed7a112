package models

import (
	"time"

	"gorm.io/datatypes"
)

// CriticalTrial is a scored sentence completion.
type CriticalTrial struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ParticipantID uint         `json:"participant_id" gorm:"not null;index"`
	Participant   *Participant `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	ItemID        string `json:"item_id" gorm:"size:80;index"`
	Item          int    `json:"item"`
	ItemType      string `json:"item_type" gorm:"size:32"`
	TrialIndex    int    `json:"trial_index"`
	Condition     string `json:"condition" gorm:"size:80"`
	FirstMention  string `json:"first_mention" gorm:"size:80"`
	RecentMention string `json:"recent_mention" gorm:"size:80"`
	KnowledgeCue  string `json:"knowledge_cue" gorm:"size:80"`
	Start         string `json:"start" gorm:"size:80"`
	End           string `json:"end" gorm:"size:80"`
	CorrectAnswer string `json:"correct_answer" gorm:"size:80"`

	Response  string `json:"response" gorm:"type:text"`
	IsCorrect bool   `json:"is_correct"`
	IsStart   bool   `json:"is_start"`
	IsEnd     bool   `json:"is_end"`

	// Milliseconds
	ReactionTime       int64 `json:"reaction_time"`
	PassageReadingTime int64 `json:"passage_reading_time"`

	RawData   datatypes.JSON `json:"raw_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (CriticalTrial) TableName() string {
	return "critical_trials"
}

// AttentionCheckTrial is a scored question about the passage content.
type AttentionCheckTrial struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ParticipantID uint         `json:"participant_id" gorm:"not null;index"`
	Participant   *Participant `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	ItemID        string `json:"item_id" gorm:"size:80;index"`
	Item          int    `json:"item"`
	ItemType      string `json:"item_type" gorm:"size:32"`
	TrialIndex    int    `json:"trial_index"`
	QuestionID    string `json:"question_id" gorm:"size:32"`
	CorrectAnswer string `json:"correct_answer" gorm:"size:80"`

	Response     string `json:"response" gorm:"type:text"`
	IsCorrect    bool   `json:"is_correct"`
	ReactionTime int64  `json:"reaction_time"`

	RawData   datatypes.JSON `json:"raw_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (AttentionCheckTrial) TableName() string {
	return "attention_check_trials"
}

// Export model names accepted by the data download.
const (
	ExportParticipant    = "participant"
	ExportCritical       = "critical"
	ExportAttentionCheck = "attention_check"
)

// AllModels lists the tables created by migrations.
func AllModels() []interface{} {
	return []interface{}{&Participant{}, &CriticalTrial{}, &AttentionCheckTrial{}}
}
