package services

import (
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
)

// ===== SESSION DTOs =====

type StartSessionRequest struct {
	ItemID       string `json:"item_id" validate:"required,max=80"`
	Study        string `json:"study" validate:"max=64"`
	WorkerID     string `json:"worker_id" validate:"max=255"`
	AssignmentID string `json:"assignment_id" validate:"max=255"`

	// Filled by the HTTP layer
	IPAddress string              `json:"-"`
	Args      map[string][]string `json:"-"`
}

type SessionResponse struct {
	SessionID     string           `json:"session_id"`
	ParticipantID uint             `json:"participant_id"`
	Key           string           `json:"key"`
	ItemID        string           `json:"item_id"`
	Section       string           `json:"section"`
	Screen        *timeline.Screen `json:"screen,omitempty"`
	Done          bool             `json:"done"`
	Progress      progress.State   `json:"progress"`
}

// SubmitTrialRequest carries one key press or form submission. Responses is
// the JSON-encoded field payload of a form, e.g. {"critical-response":"box"}.
type SubmitTrialRequest struct {
	Key          string `json:"key" validate:"max=16"`
	Responses    string `json:"responses"`
	ReactionTime int64  `json:"rt" validate:"min=0"`
}

type SubmitResponse struct {
	SessionID string `json:"session_id"`
	timeline.Step
}

// ===== PARTICIPANT DTOs =====

type DeviceRequest struct {
	UAHeader     string `json:"ua_header" validate:"max=2048"`
	Width        *int   `json:"width" validate:"omitempty,min=0"`
	Height       *int   `json:"height" validate:"omitempty,min=0"`
	WorkerID     string `json:"worker_id" validate:"max=255"`
	AssignmentID string `json:"assignment_id" validate:"max=255"`
}

type DemographicsRequest struct {
	BirthYear     *int           `json:"birth_year"`
	Gender        *models.Gender `json:"gender" validate:"omitempty,gender"`
	NativeEnglish *bool          `json:"native_english"`
	Dyslexia      *bool          `json:"dyslexia"`
	ADHD          *bool          `json:"adhd"`
	ASD           *bool          `json:"asd"`
	Vision        *string        `json:"vision" validate:"omitempty,max=20"`
	VisionReason  *string        `json:"vision_reason" validate:"omitempty,max=2000"`
}

type DebriefRequest struct {
	PostTestPurpose *string `json:"post_test_purpose" validate:"omitempty,max=5000"`
	PostTestOther   *string `json:"post_test_other" validate:"omitempty,max=5000"`
}

// ===== EXPORT DTOs =====

type ExportRequest struct {
	Model  string `json:"model" validate:"required,export_model"`
	Format string `json:"format" validate:"required,export_format"`

	// Participant filters
	Study     string     `json:"study" validate:"max=64"`
	Finished  *bool      `json:"finished"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	SortBy    string     `json:"sort_by" validate:"omitempty,oneof=id start_time end_time"`
	SortOrder string     `json:"sort_order" validate:"omitempty,oneof=asc desc"`

	// Trial filters
	ParticipantID *uint  `json:"participant_id"`
	ItemID        string `json:"item_id" validate:"max=80"`

	// Pagination for every model. A zero limit exports all rows.
	Limit  int `json:"limit" validate:"min=0,max=10000"`
	Offset int `json:"offset" validate:"min=0"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	// Total counts the matching participants before pagination. It is
	// nil for trial models.
	Total *int64
}
