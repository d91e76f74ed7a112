package trial

import (
	"encoding/json"
	"html/template"
	"testing"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() content.Store {
	return content.NewStore(content.ItemContent{
		ItemID:             "1_fb",
		Item:               1,
		Condition:          "false_belief",
		Start:              "basket",
		End:                "box",
		Passage:            "<p>Sally puts the ball in the <b>basket</b>.</p>",
		CriticalQuestion:   "Sally looks for the ball in the",
		CriticalAnswer:     "basket",
		AttnCheck1Question: "Where was the ball first?",
		AttnCheck1Answer:   "basket",
		AttnCheck2Question: "Where was the ball last?",
		AttnCheck2Answer:   "box",
	})
}

func criticalSpec() *FreeResponse {
	return &FreeResponse{
		Role:     RoleCritical,
		Field:    "critical-response",
		Heading:  "Continue the passage with a single word",
		Question: func(i content.ItemContent) string { return i.CriticalQuestion },
		Answer:   func(i content.ItemContent) string { return i.CriticalAnswer },
	}
}

func TestInputRequirement_Validate(t *testing.T) {
	keys := InputRequirement{Mode: InputKey, Keys: []string{KeySpace}}
	assert.NoError(t, keys.Validate(Input{Key: " "}))
	assert.Error(t, keys.Validate(Input{Key: "Enter"}))

	form := InputRequirement{Mode: InputForm, Field: "answer", Required: true}
	assert.NoError(t, form.Validate(Input{Responses: map[string]string{"answer": "dog"}}))
	assert.Error(t, form.Validate(Input{Responses: map[string]string{"answer": ""}}))
	assert.Error(t, form.Validate(Input{Responses: map[string]string{"other": "dog"}}))

	choice := InputRequirement{Mode: InputForm, Field: "answer", Options: []string{"a", "b"}}
	assert.NoError(t, choice.Validate(Input{Responses: map[string]string{"answer": "b"}}))
	assert.Error(t, choice.Validate(Input{Responses: map[string]string{"answer": "c"}}))

	assert.Error(t, InputRequirement{}.Validate(Input{}))
}

func TestInformational(t *testing.T) {
	spec := &Informational{
		Part:     PartPassage,
		Template: template.Must(template.New("p").Parse(`<div class='passage'>{{.Passage}}</div>`)),
		View: func(i content.ItemContent) interface{} {
			return struct{ Passage template.HTML }{template.HTML(i.Passage)}
		},
	}

	assert.Equal(t, KindInformational, spec.Kind())
	assert.Equal(t, []string{KeySpace}, spec.RequiredInput().Keys)

	markup, err := spec.Render(testStore())
	require.NoError(t, err)
	assert.Contains(t, string(markup.HTML), "<b>basket</b>")
	assert.Equal(t, PartPassage, markup.Part)

	result, err := spec.Complete(Input{Key: " "}, testStore())
	require.NoError(t, err)
	assert.False(t, result.Scored)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, PartPassage, result.TrialPart)
}

func TestInformational_NoTemplate(t *testing.T) {
	_, err := (&Informational{Part: PartFinish}).Render(testStore())
	assert.Error(t, err)
}

func TestFreeResponse_Critical(t *testing.T) {
	spec := criticalSpec()

	markup, err := spec.Render(testStore())
	require.NoError(t, err)
	assert.Contains(t, string(markup.HTML), `name="critical-response"`)
	assert.Contains(t, string(markup.HTML), "Sally looks for the ball in the")
	assert.Equal(t, InputForm, markup.Input.Mode)
	assert.True(t, markup.Input.Required)

	result, err := spec.Complete(Input{Responses: map[string]string{"critical-response": "Basket"}}, testStore())
	require.NoError(t, err)
	assert.True(t, result.Scored)
	assert.True(t, result.IsCorrect)
	assert.True(t, result.IsStart)
	assert.False(t, result.IsEnd)
	assert.Equal(t, "Basket", result.Response)
	assert.Equal(t, "basket", result.Normalized)
	assert.Equal(t, RoleCritical, result.ItemType)
	assert.Equal(t, "false_belief", result.Data["condition"])
	assert.Equal(t, "basket", result.Data["correct_answer"])
}

func TestFreeResponse_AttentionCheck(t *testing.T) {
	spec := &FreeResponse{
		Role:       RoleAttentionCheck,
		Field:      "attn-check-response",
		QuestionID: "end_loc",
		Question:   func(i content.ItemContent) string { return i.AttnCheck2Question },
		Answer:     func(i content.ItemContent) string { return i.AttnCheck2Answer },
	}

	result, err := spec.Complete(Input{Responses: map[string]string{"attn-check-response": "BOX"}}, testStore())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.False(t, result.IsStart)
	assert.Equal(t, "end_loc", result.QuestionID)
	assert.Equal(t, "end_loc", result.Data["question_id"])
}

func TestFreeResponse_MissingField(t *testing.T) {
	_, err := criticalSpec().Complete(Input{Responses: map[string]string{}}, testStore())
	assert.True(t, apperrors.IsMissingField(err))
}

func TestFreeResponse_EscapesQuestion(t *testing.T) {
	spec := criticalSpec()
	spec.Question = func(content.ItemContent) string { return "<script>x</script>" }

	markup, err := spec.Render(testStore())
	require.NoError(t, err)
	assert.NotContains(t, string(markup.HTML), "<script>")
}

func TestMultipleChoice(t *testing.T) {
	spec := &MultipleChoice{
		Role:       RoleAttentionCheck,
		Field:      "choice",
		QuestionID: "start_loc",
		Options:    []string{"basket", "box"},
		Question:   func(i content.ItemContent) string { return i.AttnCheck1Question },
		Answer:     func(i content.ItemContent) string { return i.AttnCheck1Answer },
	}

	markup, err := spec.Render(testStore())
	require.NoError(t, err)
	assert.Contains(t, string(markup.HTML), `value="box"`)
	assert.Equal(t, []string{"basket", "box"}, markup.Input.Options)

	result, err := spec.Complete(Input{Responses: map[string]string{"choice": "box"}}, testStore())
	require.NoError(t, err)
	assert.Equal(t, KindMultipleChoice, result.Kind)
	assert.False(t, result.IsCorrect)
}

func TestReactionTimeJSONInMilliseconds(t *testing.T) {
	result := Result{Index: 2, TrialPart: PartTrial, Response: "box", ReactionTime: 1500 * time.Millisecond}

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, float64(1500), fields["rt"])
	assert.Equal(t, "box", fields["response"])

	var back Result
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 1500*time.Millisecond, back.ReactionTime)
	assert.Equal(t, "box", back.Response)

	raw, err = json.Marshal(Input{Key: KeySpace, ReactionTime: 820 * time.Millisecond})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":" ","rt":820}`, string(raw))

	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"key":" ","rt":820}`), &in))
	assert.Equal(t, 820*time.Millisecond, in.ReactionTime)
}
