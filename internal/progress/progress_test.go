package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(5)
	require.NoError(t, err)
	assert.Equal(t, State{Completed: 0, Total: 5}, s)

	_, err = New(0)
	assert.True(t, apperrors.IsConfig(err))
	_, err = New(-1)
	assert.True(t, apperrors.IsConfig(err))
}

func TestAdvanceSaturates(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	s = Advance(s)
	assert.Equal(t, 1, s.Completed)
	assert.False(t, s.Done())

	s = Advance(Advance(s))
	assert.Equal(t, 2, s.Completed)
	assert.True(t, s.Done())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(State{Total: 5}))
	assert.InDelta(t, 0.6, Percentage(State{Completed: 3, Total: 5}), 1e-9)
	assert.Equal(t, 1.0, Percentage(State{Completed: 5, Total: 5}))
	assert.Equal(t, 0.0, Percentage(State{}))
}

func TestStateJSON(t *testing.T) {
	raw, err := json.Marshal(State{Completed: 2, Total: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":2,"total":5,"percentage":0.4}`, string(raw))

	var back State
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, State{Completed: 2, Total: 5}, back)
}

func TestTrackerPaintsEveryAdvance(t *testing.T) {
	var painted []State
	tracker, err := NewTracker(3, PainterFunc(func(_ context.Context, s State) error {
		painted = append(painted, s)
		return nil
	}))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := tracker.Advance(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, painted, 4)
	assert.Equal(t, 1, painted[0].Completed)
	assert.Equal(t, 3, painted[3].Completed)
	assert.Equal(t, State{Completed: 3, Total: 3}, tracker.State())
}

func TestTrackerPaintFailureStillAdvances(t *testing.T) {
	tracker, err := NewTracker(2, PainterFunc(func(context.Context, State) error {
		return errors.New("display gone")
	}))
	require.NoError(t, err)

	s, err := tracker.Advance(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, tracker.State().Completed)
}
