package feature

import "fmt"

// ValidationError is one invalid field of a model.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
}

// AggregateError collects every validation failure of a model.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// Validate checks a model for configuration mistakes that would break a build.
func Validate(m Model) error {
	var errs []error
	fail := func(key, reason string, args ...any) {
		errs = append(errs, &ValidationError{Key: key, Reason: fmt.Sprintf(reason, args...)})
	}

	switch v := m.(type) {
	case Toggle:
		if v.Name == "" && v.GlobalParam == "" {
			fail("name", "required unless global_param is set")
		}
		if v.Slider && v.HoldButton {
			fail("hold_button", "a slider cannot also be a hold button")
		}
		if v.Slider && (v.SliderDefault < 0 || v.SliderDefault > 1) {
			fail("slider_default", "must be within [0, 1], got %g", v.SliderDefault)
		}
		if v.TransitionTime < 0 {
			fail("transition_time", "must not be negative")
		}
	case FullController:
		if len(v.Controllers) == 0 && len(v.Menus) == 0 && len(v.Params) == 0 {
			fail("controllers", "at least one controller, menu or parameter set is required")
		}
		for i, c := range v.Controllers {
			if c.Name == "" {
				fail(fmt.Sprintf("controllers[%d].name", i), "required")
			}
		}
		for i, mr := range v.Menus {
			if mr.Name == "" {
				fail(fmt.Sprintf("menus[%d].name", i), "required")
			}
		}
	case Socket:
		if v.Name == "" {
			fail("name", "required")
		}
		if v.Radius < 0 {
			fail("radius", "must not be negative")
		}
		for i, d := range v.DepthActions {
			key := fmt.Sprintf("depth_actions[%d]", i)
			if d.MaxDepth <= d.MinDepth {
				fail(key+".max_depth", "must be greater than min_depth")
			}
		}
	case GestureDriver:
		if len(v.Gestures) == 0 {
			fail("gestures", "at least one gesture is required")
		}
		for i, g := range v.Gestures {
			key := fmt.Sprintf("gestures[%d]", i)
			if g.Sign < 0 || g.Sign > 7 {
				fail(key+".sign", "must be within [0, 7], got %d", g.Sign)
			}
			if g.Hand == HandCombo && (g.ComboSign < 0 || g.ComboSign > 7) {
				fail(key+".combo_sign", "must be within [0, 7], got %d", g.ComboSign)
			}
			if g.EnableWeight && g.Hand != HandLeft && g.Hand != HandRight {
				fail(key+".enable_weight", "weight needs a single hand")
			}
		}
	case MoveObject:
		if v.Object == "" {
			fail("object", "required")
		}
		if v.NewParent == "" {
			fail("new_parent", "required")
		}
	case Unknown:
		if v.Future {
			fail("version", "version %d of %q is newer than this build supports", v.Version, v.Type)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
