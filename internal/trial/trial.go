package trial

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
)

// Kind tags a Spec variant.
type Kind string

const (
	KindInformational  Kind = "informational"
	KindFreeResponse   Kind = "free_response"
	KindMultipleChoice Kind = "multiple_choice"
)

// Trial parts recorded with every result.
const (
	PartInstructions = "instructions"
	PartPassage      = "passage"
	PartTrial        = "trial"
	PartFinish       = "finish"
)

// Role says how a question trial is scored and which item type it records.
type Role string

const (
	RoleCritical       Role = "critical"
	RoleAttentionCheck Role = "attention_check"
)

// Input is one participant action: a key press or a form submission.
type Input struct {
	Key          string            `json:"key,omitempty"`
	Responses    map[string]string `json:"responses,omitempty"`
	ReactionTime time.Duration     `json:"rt"`
}

// MarshalJSON writes rt in whole milliseconds, the unit of the stored
// reaction_time columns.
func (in Input) MarshalJSON() ([]byte, error) {
	type input Input
	return json.Marshal(struct {
		input
		ReactionTime int64 `json:"rt"`
	}{input(in), in.ReactionTime.Milliseconds()})
}

func (in *Input) UnmarshalJSON(data []byte) error {
	type input Input
	aux := struct {
		*input
		ReactionTime int64 `json:"rt"`
	}{input: (*input)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	in.ReactionTime = time.Duration(aux.ReactionTime) * time.Millisecond
	return nil
}

// Markup is a rendered screen plus the input it waits for.
type Markup struct {
	Kind  Kind             `json:"kind"`
	Part  string           `json:"trial_part"`
	HTML  template.HTML    `json:"html"`
	Input InputRequirement `json:"input"`
}

// Result is the recorded outcome of one completed trial. Unscored trials
// have Scored false and every flag false.
type Result struct {
	Index         int                    `json:"index"`
	Kind          Kind                   `json:"kind"`
	TrialPart     string                 `json:"trial_part"`
	ItemType      Role                   `json:"item_type,omitempty"`
	QuestionID    string                 `json:"question_id,omitempty"`
	Key           string                 `json:"key,omitempty"`
	Response      string                 `json:"response"`
	Normalized    string                 `json:"normalized"`
	CorrectAnswer string                 `json:"correct_answer,omitempty"`
	Scored        bool                   `json:"scored"`
	IsCorrect     bool                   `json:"is_correct"`
	IsStart       bool                   `json:"is_start"`
	IsEnd         bool                   `json:"is_end"`
	ReactionTime  time.Duration          `json:"rt"`
	Data          map[string]interface{} `json:"data,omitempty"`
	CompletedAt   time.Time              `json:"completed_at"`
}

// MarshalJSON writes rt in whole milliseconds.
func (r Result) MarshalJSON() ([]byte, error) {
	type result Result
	return json.Marshal(struct {
		result
		ReactionTime int64 `json:"rt"`
	}{result(r), r.ReactionTime.Milliseconds()})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	type result Result
	aux := struct {
		*result
		ReactionTime int64 `json:"rt"`
	}{result: (*result)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ReactionTime = time.Duration(aux.ReactionTime) * time.Millisecond
	return nil
}

// Spec is one screen of a timeline. Implementations only read the store.
type Spec interface {
	Kind() Kind
	RequiredInput() InputRequirement
	Render(store content.Store) (Markup, error)
	// Complete builds the result for an input that already passed
	// RequiredInput().Validate.
	Complete(in Input, store content.Store) (Result, error)
}
