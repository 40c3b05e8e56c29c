package domain

import (
	"errors"
	"fmt"
)

// ErrBuildInProgress is returned when another build holds the avatar's lock.
var ErrBuildInProgress = errors.New("build already in progress")

// ErrAvatarNotFound is returned when an avatar source has no avatar by that name.
var ErrAvatarNotFound = errors.New("avatar not found")

// ErrAssetNotFound is returned when a scratch asset does not exist.
var ErrAssetNotFound = errors.New("asset not found")

// ActionError wraps the failure of one builder action with the owning feature.
type ActionError struct {
	Feature string
	Action  string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("feature %s: action %s failed: %v", e.Feature, e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// MissingBuilderError is returned when no builder is registered for a feature kind.
type MissingBuilderError struct {
	Feature string
	Kind    string
}

func (e *MissingBuilderError) Error() string {
	return fmt.Sprintf("no builder registered for feature kind %q (%s)", e.Kind, e.Feature)
}

// NoActionsError is returned when a builder declares no actions.
type NoActionsError struct {
	Feature string
	Kind    string
}

func (e *NoActionsError) Error() string {
	return fmt.Sprintf("builder for %q declared no actions (%s)", e.Kind, e.Feature)
}

// UnsupportedVersionError is returned when a persisted feature is newer than this build understands.
type UnsupportedVersionError struct {
	Feature   string
	Kind      string
	Version   int
	Supported int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("feature %s: %q version %d is newer than supported version %d; update the tool before building",
		e.Feature, e.Kind, e.Version, e.Supported)
}

// InvalidFeatureError is returned when a feature fails validation before the build.
type InvalidFeatureError struct {
	Feature string
	Err     error
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("feature %s is invalid: %v", e.Feature, e.Err)
}

func (e *InvalidFeatureError) Unwrap() error { return e.Err }

// Warning is a non-fatal problem found while building a feature.
type Warning struct {
	Feature string
	Message string
}

func (w Warning) String() string {
	if w.Feature == "" {
		return w.Message
	}
	return w.Feature + ": " + w.Message
}
