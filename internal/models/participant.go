package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderFemale     Gender = "female"
	GenderMale       Gender = "male"
	GenderNonBinary  Gender = "non_binary"
	GenderOther      Gender = "other"
	GenderUndeclared Gender = "undeclared"
)

// Participant is one person taking the experiment, from the first request to
// the debrief questionnaire.
type Participant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	IPAddress    string         `json:"ip_address" gorm:"size:64"`
	WorkerID     string         `json:"worker_id" gorm:"size:255;index"`
	AssignmentID string         `json:"assignment_id" gorm:"size:255"`
	GetArgs      datatypes.JSON `json:"get_args"`
	Notes        string         `json:"notes" gorm:"type:text"`
	Key          string         `json:"key" gorm:"size:64"`
	Study        string         `json:"study" gorm:"size:64;index"`
	ItemID       string         `json:"item_id" gorm:"size:80"`

	// Device
	UAHeader     string `json:"ua_header" gorm:"type:text"`
	ScreenWidth  *int   `json:"screen_width"`
	ScreenHeight *int   `json:"screen_height"`

	StartTime time.Time  `json:"start_time" gorm:"not null"`
	EndTime   *time.Time `json:"end_time"`

	// Demographics
	BirthYear     *int    `json:"birth_year"`
	Gender        *Gender `json:"gender" gorm:"size:20"`
	NativeEnglish *bool   `json:"native_english"`
	Dyslexia      *bool   `json:"dyslexia"`
	ADHD          *bool   `json:"adhd"`
	ASD           *bool   `json:"asd"`
	Vision        *string `json:"vision" gorm:"size:20"`
	VisionReason  *string `json:"vision_reason" gorm:"type:text"`

	// Debrief
	PostTestPurpose *string `json:"post_test_purpose" gorm:"type:text"`
	PostTestOther   *string `json:"post_test_other" gorm:"type:text"`

	CriticalTrials       []CriticalTrial       `json:"critical_trials,omitempty" gorm:"foreignKey:ParticipantID"`
	AttentionCheckTrials []AttentionCheckTrial `json:"attention_check_trials,omitempty" gorm:"foreignKey:ParticipantID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Participant) TableName() string {
	return "participants"
}
