package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

// Engine runs an ordered list of trial specs for one participant. It is not
// safe for concurrent use; callers serialise access per session.
type Engine struct {
	specs      []trial.Spec
	store      content.Store
	tracker    *progress.Tracker
	renderer   Renderer
	onFinished FinishedFunc
	logger     *slog.Logger
	now        func() time.Time

	state   State
	current *Screen
	results []trial.Result
}

type Option func(*Engine)

func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

func WithOnFinished(fn FinishedFunc) Option {
	return func(e *Engine) { e.onFinished = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine over specs. total is the progress denominator and is
// usually len(specs).
func New(specs []trial.Spec, total int, store content.Store, opts ...Option) (*Engine, error) {
	if len(specs) == 0 {
		return nil, apperrors.NewConfigError("specs", "must not be empty")
	}
	if store == nil {
		return nil, apperrors.NewConfigError("store", "is required")
	}
	for i, spec := range specs {
		if spec == nil {
			return nil, apperrors.NewConfigError("specs", fmt.Sprintf("entry %d is nil", i))
		}
	}

	e := &Engine{
		specs:  append([]trial.Spec(nil), specs...),
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	var painter progress.Painter
	if e.renderer != nil {
		painter = e.renderer
	}
	tracker, err := progress.NewTracker(total, painter)
	if err != nil {
		return nil, err
	}
	e.tracker = tracker
	e.results = make([]trial.Result, 0, len(specs))

	return e, nil
}

// Start shows the first screen.
func (e *Engine) Start(ctx context.Context) (Screen, error) {
	if e.state.Status != NotStarted {
		return Screen{}, apperrors.NewSequenceError("start", e.state.String())
	}

	screen, err := e.screenAt(0)
	if err != nil {
		return Screen{}, err
	}
	e.state = State{Status: AwaitingInput, Index: 0}
	e.current = &screen
	e.logger.DebugContext(ctx, "Timeline started", "specs", len(e.specs), "total", e.tracker.State().Total)

	if err := e.show(ctx, screen); err != nil {
		return screen, err
	}
	return screen, e.tracker.Paint(ctx)
}

// Submit completes the current trial with in. Input that fails the trial's
// requirement is rejected without an error and the engine stays put.
func (e *Engine) Submit(ctx context.Context, in trial.Input) (Outcome, error) {
	if e.state.Status != AwaitingInput {
		return Outcome{}, apperrors.NewSequenceError("submit", e.state.String())
	}

	index := e.state.Index
	spec := e.specs[index]

	if err := spec.RequiredInput().Validate(in); err != nil {
		return e.reject(ctx, index, err), nil
	}

	result, err := spec.Complete(in, e.store)
	if err != nil {
		if apperrors.IsMissingField(err) {
			return e.reject(ctx, index, err), nil
		}
		return Outcome{}, fmt.Errorf("failed to complete trial %d: %w", index, err)
	}
	result.Index = index
	result.ReactionTime = in.ReactionTime
	result.CompletedAt = e.now()
	e.results = append(e.results, result)

	st, paintErr := e.tracker.Advance(ctx)
	outcome := Outcome{Accepted: true, Result: &result, Progress: st}

	var stepErr error
	if next := index + 1; next < len(e.specs) {
		e.state = State{Status: AwaitingInput, Index: next}
		screen, err := e.screenAt(next)
		if err != nil {
			e.current = nil
			stepErr = err
		} else {
			e.current = &screen
			outcome.Next = &screen
			stepErr = e.show(ctx, screen)
		}
	} else {
		e.state = State{Status: Finished}
		e.current = nil
		outcome.Finished = true
		e.logger.InfoContext(ctx, "Timeline finished", "results", len(e.results), "completed", st.Completed)
		if e.onFinished != nil {
			if err := e.onFinished(ctx, Summary{Results: e.Results(), Progress: st}); err != nil {
				stepErr = fmt.Errorf("finish hook failed: %w", err)
			}
		}
	}

	return outcome, errors.Join(paintErr, stepErr)
}

func (e *Engine) reject(ctx context.Context, index int, reason error) Outcome {
	e.logger.DebugContext(ctx, "Submission rejected", "index", index, "reason", reason.Error())
	return Outcome{Accepted: false, Reason: reason.Error(), Progress: e.tracker.State()}
}

func (e *Engine) screenAt(index int) (Screen, error) {
	markup, err := e.specs[index].Render(e.store)
	if err != nil {
		return Screen{}, fmt.Errorf("failed to render trial %d: %w", index, err)
	}
	return Screen{Index: index, Markup: markup, Progress: e.tracker.State()}, nil
}

func (e *Engine) show(ctx context.Context, screen Screen) error {
	if e.renderer == nil {
		return nil
	}
	if err := e.renderer.Render(ctx, screen); err != nil {
		return fmt.Errorf("failed to show trial %d: %w", screen.Index, err)
	}
	return nil
}

func (e *Engine) State() State {
	return e.state
}

// Index is the awaiting trial's position, or -1 when no trial is awaiting.
func (e *Engine) Index() int {
	if e.state.Status != AwaitingInput {
		return -1
	}
	return e.state.Index
}

// Current returns the screen awaiting input.
func (e *Engine) Current() (Screen, bool) {
	if e.current == nil {
		return Screen{}, false
	}
	return *e.current, true
}

func (e *Engine) Progress() progress.State {
	return e.tracker.State()
}

// Results returns a copy of the results log in completion order.
func (e *Engine) Results() []trial.Result {
	return append([]trial.Result(nil), e.results...)
}

func (e *Engine) Len() int {
	return len(e.specs)
}
