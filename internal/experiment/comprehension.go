package experiment

import (
	"html/template"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

// Form field keys of the question screens.
const (
	CriticalField  = "critical-response"
	AttnCheckField = "attn-check-response"
)

// Attention check question identifiers.
const (
	QuestionStartLoc = "start_loc"
	QuestionEndLoc   = "end_loc"
)

// TrialCount is the progress total of the comprehension section: the
// instructions, the passage, the critical trial and two attention checks.
const TrialCount = 5

const (
	SectionComprehension = "comprehension"
	SectionFinish        = "finish"
)

// ComprehensionTimeline returns the ordered specs of the comprehension
// section.
func ComprehensionTimeline() []trial.Spec {
	return []trial.Spec{
		&trial.Informational{
			Part:     trial.PartInstructions,
			Template: instructionsTemplate,
		},
		&trial.Informational{
			Part:     trial.PartPassage,
			Template: passageTemplate,
			View: func(item content.ItemContent) interface{} {
				// Passages are researcher-authored markup.
				return struct{ Passage template.HTML }{template.HTML(item.Passage)}
			},
		},
		&trial.FreeResponse{
			Role:     trial.RoleCritical,
			Field:    CriticalField,
			Heading:  "Continue the passage with a single word",
			Question: func(item content.ItemContent) string { return item.CriticalQuestion },
			Answer:   func(item content.ItemContent) string { return item.CriticalAnswer },
		},
		&trial.FreeResponse{
			Role:       trial.RoleAttentionCheck,
			Field:      AttnCheckField,
			QuestionID: QuestionStartLoc,
			Heading:    "Answer the question with a single word",
			Question:   func(item content.ItemContent) string { return item.AttnCheck1Question },
			Answer:     func(item content.ItemContent) string { return item.AttnCheck1Answer },
		},
		&trial.FreeResponse{
			Role:       trial.RoleAttentionCheck,
			Field:      AttnCheckField,
			QuestionID: QuestionEndLoc,
			Heading:    "Answer the question with a single word",
			Question:   func(item content.ItemContent) string { return item.AttnCheck2Question },
			Answer:     func(item content.ItemContent) string { return item.AttnCheck2Answer },
		},
	}
}

func FinishTimeline() []trial.Spec {
	return []trial.Spec{
		&trial.Informational{
			Part:     trial.PartFinish,
			Template: finishTemplate,
		},
	}
}

// NewComprehensionSection builds the comprehension engine for store.
func NewComprehensionSection(store content.Store, opts ...timeline.Option) (timeline.Section, error) {
	engine, err := timeline.New(ComprehensionTimeline(), TrialCount, store, opts...)
	if err != nil {
		return timeline.Section{}, err
	}
	return timeline.Section{Name: SectionComprehension, Engine: engine}, nil
}

// NewFinishSection builds the closing screen. It has its own progress of one.
func NewFinishSection(store content.Store, opts ...timeline.Option) (timeline.Section, error) {
	engine, err := timeline.New(FinishTimeline(), 1, store, opts...)
	if err != nil {
		return timeline.Section{}, err
	}
	return timeline.Section{Name: SectionFinish, Engine: engine}, nil
}
