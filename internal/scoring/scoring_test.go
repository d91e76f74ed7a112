package scoring

import (
	"testing"

	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreeResponse(t *testing.T) {
	payload := map[string]string{"critical-response": "Basket", "blank": ""}

	value, err := ParseFreeResponse(payload, "critical-response")
	require.NoError(t, err)
	assert.Equal(t, "Basket", value)

	value, err = ParseFreeResponse(payload, "blank")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	_, err = ParseFreeResponse(payload, "attn-check-response")
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingField(err))
}

func TestParseResponses(t *testing.T) {
	payload, err := ParseResponses(`{"critical-response":" box ","count":3}`)
	require.NoError(t, err)
	assert.Equal(t, " box ", payload["critical-response"])
	assert.Equal(t, "3", payload["count"])

	_, err = ParseResponses(`not json`)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "apple", Normalize("APPLE"))
	assert.Equal(t, " apple ", Normalize(" Apple "))
}

func TestScoreCritical(t *testing.T) {
	tests := []struct {
		name                string
		response            string
		correct, start, end string
		want                CriticalScore
	}{
		{"case-insensitive match", "Apple", "apple", "x", "y", CriticalScore{IsCorrect: true}},
		{"no fuzzy plural", "apples", "apple", "x", "y", CriticalScore{}},
		{"correct equals start", "Basket", "basket", "basket", "box", CriticalScore{IsCorrect: true, IsStart: true}},
		{"end only", "BOX", "basket", "basket", "box", CriticalScore{IsEnd: true}},
		{"whitespace counts", "basket ", "basket", "basket", "box", CriticalScore{}},
		{"start and end identical", "room", "room", "room", "room", CriticalScore{IsCorrect: true, IsStart: true, IsEnd: true}},
		{"empty matches empty", "", "", "x", "y", CriticalScore{IsCorrect: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreCritical(tt.response, tt.correct, tt.start, tt.end))
		})
	}
}

func TestScoreCritical_Deterministic(t *testing.T) {
	first := ScoreCritical("Drawer", "drawer", "shelf", "drawer")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreCritical("Drawer", "drawer", "shelf", "drawer"))
	}
}

func TestScoreAttentionCheck(t *testing.T) {
	assert.True(t, ScoreAttentionCheck("Kitchen", "kitchen").IsCorrect)
	assert.False(t, ScoreAttentionCheck("kitchens", "kitchen").IsCorrect)
	assert.False(t, ScoreAttentionCheck(" kitchen", "kitchen").IsCorrect)
}
