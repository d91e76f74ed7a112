package trial

import (
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/scoring"
)

// FreeResponse asks a question answered in a single required text field.
// Critical trials are scored against the correct answer and the start and
// end locations; attention checks against the correct answer only.
type FreeResponse struct {
	Role       Role
	Field      string
	QuestionID string
	Heading    string
	Question   func(item content.ItemContent) string
	Answer     func(item content.ItemContent) string
}

func (s *FreeResponse) Kind() Kind {
	return KindFreeResponse
}

func (s *FreeResponse) RequiredInput() InputRequirement {
	return InputRequirement{Mode: InputForm, Field: s.Field, Required: true}
}

func (s *FreeResponse) Render(store content.Store) (Markup, error) {
	html, err := execute(questionTemplate, questionView{
		Heading:  s.Heading,
		Role:     s.Role,
		Question: s.Question(store.Item()),
		Field:    s.Field,
	})
	if err != nil {
		return Markup{}, err
	}
	return Markup{Kind: s.Kind(), Part: PartTrial, HTML: html, Input: s.RequiredInput()}, nil
}

func (s *FreeResponse) Complete(in Input, store content.Store) (Result, error) {
	response, err := scoring.ParseFreeResponse(in.Responses, s.Field)
	if err != nil {
		return Result{}, err
	}

	item := store.Item()
	correct := s.Answer(item)
	result := Result{
		Kind:          s.Kind(),
		TrialPart:     PartTrial,
		ItemType:      s.Role,
		QuestionID:    s.QuestionID,
		Response:      response,
		Normalized:    scoring.Normalize(response),
		CorrectAnswer: correct,
		Scored:        true,
	}

	data := map[string]interface{}{
		"trial_part":     PartTrial,
		"item_type":      string(s.Role),
		"item":           item.Item,
		"item_id":        item.ItemID,
		"correct_answer": correct,
	}

	switch s.Role {
	case RoleCritical:
		score := scoring.ScoreCritical(response, correct, item.Start, item.End)
		result.IsCorrect, result.IsStart, result.IsEnd = score.IsCorrect, score.IsStart, score.IsEnd
		for k, v := range item.Metadata() {
			data[k] = v
		}
	case RoleAttentionCheck:
		result.IsCorrect = scoring.ScoreAttentionCheck(response, correct).IsCorrect
		data["question_id"] = s.QuestionID
	default:
		return Result{}, fmt.Errorf("unknown free response role %q", s.Role)
	}

	result.Data = data
	return result, nil
}
