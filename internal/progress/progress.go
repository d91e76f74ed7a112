package progress

import (
	"context"
	"encoding/json"

	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
)

// State counts completed trials against a fixed total.
type State struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// New returns a zero State for total trials.
func New(total int) (State, error) {
	if total <= 0 {
		return State{}, apperrors.NewConfigError("total_count", "must be positive")
	}
	return State{Total: total}, nil
}

// Advance returns s with one more completed trial. It never goes past Total.
func Advance(s State) State {
	if s.Completed < s.Total {
		s.Completed++
	}
	return s
}

// Percentage is the completed fraction in [0, 1].
func Percentage(s State) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// MarshalJSON adds the completed fraction the host draws the bar from.
func (s State) MarshalJSON() ([]byte, error) {
	type state State
	return json.Marshal(struct {
		state
		Percentage float64 `json:"percentage"`
	}{state(s), Percentage(s)})
}

func (s State) Done() bool {
	return s.Completed >= s.Total
}

// Painter updates whatever visual progress indicator the host shows.
type Painter interface {
	PaintProgress(ctx context.Context, s State) error
}

type PainterFunc func(ctx context.Context, s State) error

func (f PainterFunc) PaintProgress(ctx context.Context, s State) error {
	return f(ctx, s)
}

// Tracker owns a State and repaints the indicator on every advance.
type Tracker struct {
	state   State
	painter Painter
}

func NewTracker(total int, painter Painter) (*Tracker, error) {
	s, err := New(total)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: s, painter: painter}, nil
}

// Advance records a completed trial and paints the new state. The state is
// advanced even if painting fails.
func (t *Tracker) Advance(ctx context.Context) (State, error) {
	t.state = Advance(t.state)
	return t.state, t.Paint(ctx)
}

// Paint repaints the current state without advancing it.
func (t *Tracker) Paint(ctx context.Context) error {
	if t.painter == nil {
		return nil
	}
	return t.painter.PaintProgress(ctx, t.state)
}

func (t *Tracker) State() State {
	return t.state
}
