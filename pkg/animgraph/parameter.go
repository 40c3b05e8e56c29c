package animgraph

import (
	"fmt"
	"strings"
)

// ParamKind is the value type of a controller parameter.
type ParamKind int

const (
	Bool ParamKind = iota
	Int
	Float
	Trigger
)

func (k ParamKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Trigger:
		return "trigger"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseParamKind converts a kind name ("bool", "int", "float", "trigger") to a ParamKind.
func ParseParamKind(s string) (ParamKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool":
		return Bool, nil
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "trigger":
		return Trigger, nil
	default:
		return Bool, fmt.Errorf("unknown parameter kind: %q", s)
	}
}

// Cost returns the number of network bits a synced parameter of this kind uses.
func (k ParamKind) Cost() int {
	switch k {
	case Bool:
		return 1
	case Int, Float:
		return 8
	default:
		return 0
	}
}

// Parameter is a named, typed controller input.
// Default holds the numeric value for every kind (0/1 for Bool).
type Parameter struct {
	Name      string
	Kind      ParamKind
	Default   float64
	Networked bool
	Saved     bool
}

// ParamKindError is returned when a parameter name is requested with a kind
// different from the one it was created with.
type ParamKindError struct {
	Name      string
	Existing  ParamKind
	Requested ParamKind
}

func (e *ParamKindError) Error() string {
	return fmt.Sprintf("parameter %q already exists as %s, cannot redeclare it as %s", e.Name, e.Existing, e.Requested)
}

// IsTrue is satisfied when a Bool/Trigger is set, or a numeric parameter is above zero.
func (p *Parameter) IsTrue() Cond {
	switch p.Kind {
	case Bool, Trigger:
		return single(p, Condition{Param: p.Name, Mode: If})
	default:
		return single(p, Condition{Param: p.Name, Mode: Greater, Threshold: 0})
	}
}

// IsFalse is the negation of IsTrue.
func (p *Parameter) IsFalse() Cond {
	return p.IsTrue().Not()
}

// IsGreaterThan compares a numeric parameter against a threshold.
func (p *Parameter) IsGreaterThan(x float64) Cond {
	return single(p, Condition{Param: p.Name, Mode: Greater, Threshold: x})
}

// IsLessThan compares a numeric parameter against a threshold.
func (p *Parameter) IsLessThan(x float64) Cond {
	return single(p, Condition{Param: p.Name, Mode: Less, Threshold: x})
}

// IsEqualTo matches an Int parameter against an exact value.
func (p *Parameter) IsEqualTo(n int) Cond {
	return single(p, Condition{Param: p.Name, Mode: Equals, Threshold: float64(n)})
}

// IsNotEqualTo is the negation of IsEqualTo.
func (p *Parameter) IsNotEqualTo(n int) Cond {
	return single(p, Condition{Param: p.Name, Mode: NotEqual, Threshold: float64(n)})
}
