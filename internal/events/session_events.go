package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the experiment lifecycle events
type EventType string

const (
	EventSessionStarted  EventType = "session.started"
	EventTrialCompleted  EventType = "trial.completed"
	EventSectionFinished EventType = "section.finished"
	EventSessionFinished EventType = "session.finished"
)

const (
	eventSource  = "comprehension-service"
	eventVersion = "1.0"
)

// Event is the envelope for every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SessionStartedEvent struct {
	SessionID     string    `json:"session_id"`
	ParticipantID uint      `json:"participant_id"`
	ItemID        string    `json:"item_id"`
	Study         string    `json:"study"`
	StartedAt     time.Time `json:"started_at"`
}

type TrialCompletedEvent struct {
	SessionID     string `json:"session_id"`
	ParticipantID uint   `json:"participant_id"`
	Section       string `json:"section"`
	TrialIndex    int    `json:"trial_index"`
	TrialPart     string `json:"trial_part"`
	ItemType      string `json:"item_type,omitempty"`
	Scored        bool   `json:"scored"`
	IsCorrect     bool   `json:"is_correct"`
	ReactionTime  int64  `json:"reaction_time_ms"`
	Completed     int    `json:"completed"`
	Total         int    `json:"total"`
}

type SectionFinishedEvent struct {
	SessionID     string `json:"session_id"`
	ParticipantID uint   `json:"participant_id"`
	Section       string `json:"section"`
	Trials        int    `json:"trials"`
}

type SessionFinishedEvent struct {
	SessionID      string    `json:"session_id"`
	ParticipantID  uint      `json:"participant_id"`
	ItemID         string    `json:"item_id"`
	CriticalTrials int       `json:"critical_trials"`
	AttnChecks     int       `json:"attention_checks"`
	AttnCorrect    int       `json:"attention_checks_correct"`
	FinishedAt     time.Time `json:"finished_at"`
}

// NewEvent wraps data in an envelope with a fresh ID.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewSessionStartedEvent(data SessionStartedEvent) *Event {
	return NewEvent(EventSessionStarted, data)
}

func NewTrialCompletedEvent(data TrialCompletedEvent) *Event {
	return NewEvent(EventTrialCompleted, data)
}

func NewSectionFinishedEvent(data SectionFinishedEvent) *Event {
	return NewEvent(EventSectionFinished, data)
}

func NewSessionFinishedEvent(data SessionFinishedEvent) *Event {
	return NewEvent(EventSessionFinished, data)
}

func GenerateEventID() string {
	return uuid.NewString()
}
