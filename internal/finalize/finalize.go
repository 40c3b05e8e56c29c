// Package finalize holds the build-wide passes that run after every feature:
// cleanup, write-defaults normalization, parameter deduplication, conflict
// resolution, menu pagination and the final write to the scratch store.
package finalize

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft/internal/pipeline"
)

// WriteDefaultsMode selects how undecided states get their write-defaults flag.
type WriteDefaultsMode int

const (
	// WriteDefaultsAuto follows the majority of authored states.
	WriteDefaultsAuto WriteDefaultsMode = iota
	WriteDefaultsOn
	WriteDefaultsOff
)

func (m WriteDefaultsMode) String() string {
	switch m {
	case WriteDefaultsOn:
		return "on"
	case WriteDefaultsOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseWriteDefaultsMode is the inverse of WriteDefaultsMode.String.
func ParseWriteDefaultsMode(s string) (WriteDefaultsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return WriteDefaultsAuto, nil
	case "on", "true":
		return WriteDefaultsOn, nil
	case "off", "false":
		return WriteDefaultsOff, nil
	default:
		return WriteDefaultsAuto, fmt.Errorf("unknown write defaults mode: %q", s)
	}
}

// MaxMenuItems is the number of entries a submenu can hold.
const MaxMenuItems = 8

// NextPage names the submenu holding the overflow of a paginated menu.
const NextPage = "Next"

// Options tune the finalization passes.
type Options struct {
	WriteDefaults WriteDefaultsMode
	// Fallback decides auto mode when no authored state expresses a preference.
	Fallback bool
}

// Register adds the finalization builder to reg.
func Register(reg *pipeline.Registry, opts Options) {
	reg.RegisterInternal("finalize", func(*pipeline.Context) pipeline.Builder {
		return pipeline.BuilderFunc(func() []pipeline.Action {
			return []pipeline.Action{
				{Name: "post process", Priority: pipeline.PostProcess, Run: postProcess},
				{Name: "write defaults", Priority: pipeline.WriteDefaults, Run: writeDefaults(opts)},
				{Name: "dedup params", Priority: pipeline.DedupParams, Run: dedupParams},
				{Name: "conflicts", Priority: pipeline.Conflicts, Run: conflicts},
				{Name: "menu ordering", Priority: pipeline.MenuOrdering, Run: menuOrdering},
				{Name: "cleanup", Priority: pipeline.Cleanup, Run: cleanup},
				{Name: "lock in", Priority: pipeline.LockIn, Run: lockIn},
			}
		})
	})
}
