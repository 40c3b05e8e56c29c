// Package pipeline compiles the features of an avatar into one controller.
//
// A build runs in stages: every feature instance is matched to a registered
// builder, each builder declares its actions, the actions of all builders are
// sorted into one total order, and then they run sequentially against a shared
// Context. The first failing action aborts the build.
package pipeline

import (
	"context"
	"sort"
)

// Priority bands. Actions run in ascending priority.
const (
	PreProcess    = 0
	HostParams    = 10
	Default       = 100
	Link          = 200
	Move          = 300
	PostProcess   = 400
	WriteDefaults = 500
	DedupParams   = 510
	Conflicts     = 520
	MenuOrdering  = 530
	Cleanup       = 540
	LockIn        = 900
)

// Action is one step a builder contributes to the build.
type Action struct {
	Name     string
	Priority int
	// CloneOnly actions mutate the built clone and are skipped when there is none.
	CloneOnly bool
	Run       func(ctx context.Context, bc *Context) error

	// Set by the pipeline.
	feature string
	seq     int
}

// Feature returns the name of the feature that declared the action.
func (a Action) Feature() string { return a.feature }

// Builder turns one feature instance into actions.
type Builder interface {
	Actions() []Action
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func() []Action

// Actions implements Builder.
func (f BuilderFunc) Actions() []Action { return f() }

// Sort orders actions by priority, then non-clone before clone-only, then
// declaration order.
func Sort(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.CloneOnly != b.CloneOnly {
			return !a.CloneOnly
		}
		return a.seq < b.seq
	})
}
