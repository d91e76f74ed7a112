package trial

import (
	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/scoring"
)

// MultipleChoice asks a question answered by picking one of Options.
type MultipleChoice struct {
	Role       Role
	Field      string
	QuestionID string
	Heading    string
	Options    []string
	Question   func(item content.ItemContent) string
	Answer     func(item content.ItemContent) string
}

func (s *MultipleChoice) Kind() Kind {
	return KindMultipleChoice
}

func (s *MultipleChoice) RequiredInput() InputRequirement {
	return InputRequirement{Mode: InputForm, Field: s.Field, Required: true, Options: s.Options}
}

func (s *MultipleChoice) Render(store content.Store) (Markup, error) {
	html, err := execute(choiceTemplate, questionView{
		Heading:  s.Heading,
		Role:     s.Role,
		Question: s.Question(store.Item()),
		Field:    s.Field,
		Options:  s.Options,
	})
	if err != nil {
		return Markup{}, err
	}
	return Markup{Kind: s.Kind(), Part: PartTrial, HTML: html, Input: s.RequiredInput()}, nil
}

func (s *MultipleChoice) Complete(in Input, store content.Store) (Result, error) {
	response, err := scoring.ParseFreeResponse(in.Responses, s.Field)
	if err != nil {
		return Result{}, err
	}

	item := store.Item()
	correct := s.Answer(item)
	return Result{
		Kind:          s.Kind(),
		TrialPart:     PartTrial,
		ItemType:      s.Role,
		QuestionID:    s.QuestionID,
		Response:      response,
		Normalized:    scoring.Normalize(response),
		CorrectAnswer: correct,
		Scored:        true,
		IsCorrect:     scoring.ScoreAttentionCheck(response, correct).IsCorrect,
		Data: map[string]interface{}{
			"trial_part":     PartTrial,
			"item_type":      string(s.Role),
			"item":           item.Item,
			"item_id":        item.ItemID,
			"question_id":    s.QuestionID,
			"correct_answer": correct,
		},
	}, nil
}
