package experiment

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/timeline"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore() content.Store {
	return content.NewStore(content.ItemContent{
		ItemID:             "4_fb_drawer_shelf",
		Item:               4,
		Condition:          "false_belief",
		FirstMention:       "drawer",
		RecentMention:      "shelf",
		KnowledgeCue:       "implicit",
		Start:              "drawer",
		End:                "shelf",
		Passage:            "<p>Max puts the keys in the <em>drawer</em>.</p>",
		CriticalQuestion:   "Max looks for the keys in the",
		CriticalAnswer:     "drawer",
		AttnCheck1Question: "Where were the keys first?",
		AttnCheck1Answer:   "drawer",
		AttnCheck2Question: "Where were the keys at the end?",
		AttnCheck2Answer:   "shelf",
	})
}

func TestComprehensionTimelineShape(t *testing.T) {
	specs := ComprehensionTimeline()
	require.Len(t, specs, TrialCount)

	kinds := make([]trial.Kind, len(specs))
	for i, s := range specs {
		kinds[i] = s.Kind()
	}
	assert.Equal(t, []trial.Kind{
		trial.KindInformational, trial.KindInformational,
		trial.KindFreeResponse, trial.KindFreeResponse, trial.KindFreeResponse,
	}, kinds)

	assert.Equal(t, CriticalField, specs[2].RequiredInput().Field)
	assert.Equal(t, AttnCheckField, specs[3].RequiredInput().Field)
}

func TestComprehensionSectionRun(t *testing.T) {
	ctx := context.Background()
	section, err := NewComprehensionSection(sampleStore())
	require.NoError(t, err)
	assert.Equal(t, SectionComprehension, section.Name)
	engine := section.Engine

	screen, err := engine.Start(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(screen.Markup.HTML), "Passage Comprehension Task")

	outcome, err := engine.Submit(ctx, trial.Input{Key: trial.KeySpace})
	require.NoError(t, err)
	require.NotNil(t, outcome.Next)
	assert.Contains(t, string(outcome.Next.Markup.HTML), "<em>drawer</em>")

	_, err = engine.Submit(ctx, trial.Input{Key: trial.KeySpace})
	require.NoError(t, err)

	outcome, err = engine.Submit(ctx, trial.Input{Responses: map[string]string{CriticalField: "Shelf"}})
	require.NoError(t, err)
	assert.False(t, outcome.Result.IsCorrect)
	assert.False(t, outcome.Result.IsStart)
	assert.True(t, outcome.Result.IsEnd)
	assert.Equal(t, "implicit", outcome.Result.Data["knowledge_cue"])

	outcome, err = engine.Submit(ctx, trial.Input{Responses: map[string]string{AttnCheckField: "drawer"}})
	require.NoError(t, err)
	assert.True(t, outcome.Result.IsCorrect)
	assert.Equal(t, QuestionStartLoc, outcome.Result.QuestionID)

	outcome, err = engine.Submit(ctx, trial.Input{Responses: map[string]string{AttnCheckField: "kitchen"}})
	require.NoError(t, err)
	assert.False(t, outcome.Result.IsCorrect)
	assert.Equal(t, QuestionEndLoc, outcome.Result.QuestionID)
	assert.True(t, outcome.Finished)
	assert.Equal(t, TrialCount, outcome.Progress.Completed)
}

func TestFinishSection(t *testing.T) {
	section, err := NewFinishSection(sampleStore())
	require.NoError(t, err)
	assert.Equal(t, SectionFinish, section.Name)

	screen, err := section.Engine.Start(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(screen.Markup.HTML), "Section Complete")
	assert.Equal(t, timeline.State{Status: timeline.AwaitingInput}, section.Engine.State())
}
