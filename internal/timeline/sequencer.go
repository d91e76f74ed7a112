package timeline

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

// Section is one named engine in a session.
type Section struct {
	Name   string
	Engine *Engine
}

// Step is a sequencer submit outcome. Section names the section the input
// was applied to; Next, when set, may belong to the following section.
type Step struct {
	Section string `json:"section"`
	Outcome
	Done bool `json:"done"`
}

// Sequencer chains sections so that finishing one starts the next.
// A section whose start failed stays pending until Resume succeeds.
type Sequencer struct {
	sections   []Section
	current    int
	pending    bool
	done       bool
	onFinished func(ctx context.Context) error
}

func NewSequencer(sections []Section, onFinished func(ctx context.Context) error) (*Sequencer, error) {
	if len(sections) == 0 {
		return nil, apperrors.NewConfigError("sections", "must not be empty")
	}
	for i, s := range sections {
		if s.Engine == nil {
			return nil, apperrors.NewConfigError("sections", fmt.Sprintf("section %d has no engine", i))
		}
	}
	return &Sequencer{
		sections:   append([]Section(nil), sections...),
		onFinished: onFinished,
	}, nil
}

func (s *Sequencer) Start(ctx context.Context) (Screen, error) {
	return s.startCurrent(ctx)
}

// Resume retries starting the active section after a failed start. It
// reports false when nothing was pending.
func (s *Sequencer) Resume(ctx context.Context) (Screen, bool, error) {
	if !s.pending {
		return Screen{}, false, nil
	}
	screen, err := s.startCurrent(ctx)
	return screen, true, err
}

// startCurrent starts the active section. Display errors leave the engine
// awaiting input; only a section that could not reach its first screen
// stays pending.
func (s *Sequencer) startCurrent(ctx context.Context) (Screen, error) {
	section := s.sections[s.current]
	screen, err := section.Engine.Start(ctx)
	s.pending = section.Engine.State().Status == NotStarted
	if err != nil {
		err = fmt.Errorf("failed to start section %s: %w", section.Name, err)
	}
	return screen, err
}

// Submit forwards in to the active section. When that section finishes, the
// next one is started and its first screen returned as Next.
func (s *Sequencer) Submit(ctx context.Context, in trial.Input) (Step, error) {
	if s.done {
		return Step{}, apperrors.NewSequenceError("submit", Finished.String())
	}

	section := s.sections[s.current]
	if s.pending {
		// The input was meant for a screen that never showed.
		screen, _, err := s.Resume(ctx)
		if s.pending {
			return Step{Section: section.Name}, err
		}
		return Step{Section: section.Name, Outcome: Outcome{
			Reason:   "section " + section.Name + " resumed, input not applied",
			Next:     &screen,
			Progress: section.Engine.Progress(),
		}}, err
	}

	outcome, err := section.Engine.Submit(ctx, in)
	step := Step{Section: section.Name, Outcome: outcome}
	if !outcome.Finished {
		return step, err
	}

	// A finished section always hands over, even if its own hook failed.
	if s.current+1 < len(s.sections) {
		s.current++
		screen, startErr := s.startCurrent(ctx)
		if !s.pending {
			step.Next = &screen
		}
		return step, errors.Join(err, startErr)
	}

	s.done = true
	step.Done = true
	if s.onFinished != nil {
		if hookErr := s.onFinished(ctx); hookErr != nil {
			return step, errors.Join(err, fmt.Errorf("session finish hook failed: %w", hookErr))
		}
	}
	return step, err
}

// Current returns the active section. After the last section finishes it
// keeps returning that section.
func (s *Sequencer) Current() Section {
	return s.sections[s.current]
}

func (s *Sequencer) Finished() bool {
	return s.done
}
