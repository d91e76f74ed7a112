package timeline

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/progress"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
)

type Status int

const (
	NotStarted Status = iota
	AwaitingInput
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case AwaitingInput:
		return "AwaitingInput"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the engine's position. Index is only meaningful while
// AwaitingInput.
type State struct {
	Status Status
	Index  int
}

func (s State) String() string {
	if s.Status == AwaitingInput {
		return fmt.Sprintf("AwaitingInput(%d)", s.Index)
	}
	return s.Status.String()
}

// Screen is what the host shows while the engine waits on a trial.
type Screen struct {
	Index    int            `json:"index"`
	Markup   trial.Markup   `json:"markup"`
	Progress progress.State `json:"progress"`
}

// Outcome reports what a submit did. A rejected submission leaves the engine
// where it was and carries the reason to show the participant.
type Outcome struct {
	Accepted bool           `json:"accepted"`
	Reason   string         `json:"reason,omitempty"`
	Result   *trial.Result  `json:"result,omitempty"`
	Next     *Screen        `json:"next,omitempty"`
	Finished bool           `json:"finished"`
	Progress progress.State `json:"progress"`
}

// Summary is handed to the finish hook once the last trial completes.
type Summary struct {
	Results  []trial.Result `json:"results"`
	Progress progress.State `json:"progress"`
}

type FinishedFunc func(ctx context.Context, summary Summary) error

// Renderer is the host side of the engine: it shows screens and repaints
// the progress indicator.
type Renderer interface {
	Render(ctx context.Context, screen Screen) error
	progress.Painter
}
