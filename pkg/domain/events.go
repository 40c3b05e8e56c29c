package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventBuildStart  EventType = "build_start"
	EventBuildFinish EventType = "build_finish"
	EventActionStart EventType = "action_start"
	EventActionDone  EventType = "action_done"
	EventWarning     EventType = "warning"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	BuildID   string    `json:"build_id"`
}

// BuildEvent marks the start or end of a whole build.
type BuildEvent struct {
	EventBase
	Avatar   string        `json:"avatar"`
	Features int           `json:"features"`
	Clone    bool          `json:"clone"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// ActionEvent marks the start or end of one builder action.
type ActionEvent struct {
	EventBase
	Feature  string        `json:"feature"`
	Action   string        `json:"action"`
	Priority int           `json:"priority"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// WarningEvent carries one warning as it is raised.
type WarningEvent struct {
	EventBase
	Warning Warning `json:"warning"`
}

// BuildHooks defines callbacks for build observability. Nil hooks are skipped.
type BuildHooks struct {
	OnBuildStart  func(context.Context, *BuildEvent)
	OnBuildFinish func(context.Context, *BuildEvent)
	OnActionStart func(context.Context, *ActionEvent)
	OnActionDone  func(context.Context, *ActionEvent)
	OnWarning     func(context.Context, *WarningEvent)
}

// Merge returns hooks that call h first and then other.
func (h BuildHooks) Merge(other BuildHooks) BuildHooks {
	return BuildHooks{
		OnBuildStart:  chain(h.OnBuildStart, other.OnBuildStart),
		OnBuildFinish: chain(h.OnBuildFinish, other.OnBuildFinish),
		OnActionStart: chain(h.OnActionStart, other.OnActionStart),
		OnActionDone:  chain(h.OnActionDone, other.OnActionDone),
		OnWarning:     chain(h.OnWarning, other.OnWarning),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
