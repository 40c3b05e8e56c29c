package animgraph

import (
	"fmt"
	"strings"
)

// Comparator is the test a transition condition applies to a parameter.
type Comparator int

const (
	If Comparator = iota
	IfNot
	Greater
	Less
	Equals
	NotEqual
)

func (c Comparator) String() string {
	switch c {
	case If:
		return "if"
	case IfNot:
		return "if_not"
	case Greater:
		return "greater"
	case Less:
		return "less"
	case Equals:
		return "equals"
	case NotEqual:
		return "not_equal"
	default:
		return fmt.Sprintf("comparator(%d)", int(c))
	}
}

// ParseComparator is the inverse of Comparator.String.
func ParseComparator(s string) (Comparator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "if":
		return If, nil
	case "if_not", "ifnot":
		return IfNot, nil
	case "greater", ">":
		return Greater, nil
	case "less", "<":
		return Less, nil
	case "equals", "==":
		return Equals, nil
	case "not_equal", "!=":
		return NotEqual, nil
	default:
		return If, fmt.Errorf("unknown comparator: %q", s)
	}
}

// Condition is one (parameter, comparator, threshold) test of a transition.
type Condition struct {
	Param     string
	Mode      Comparator
	Threshold float64
}

// Eval reports whether the condition holds for the given parameter value.
func (c Condition) Eval(v float64) bool {
	switch c.Mode {
	case If:
		return v != 0
	case IfNot:
		return v == 0
	case Greater:
		return v > c.Threshold
	case Less:
		return v < c.Threshold
	case Equals:
		return v == c.Threshold
	case NotEqual:
		return v != c.Threshold
	default:
		return false
	}
}

func (c Condition) String() string {
	switch c.Mode {
	case If:
		return c.Param
	case IfNot:
		return "!" + c.Param
	case Greater:
		return fmt.Sprintf("%s > %g", c.Param, c.Threshold)
	case Less:
		return fmt.Sprintf("%s < %g", c.Param, c.Threshold)
	case Equals:
		return fmt.Sprintf("%s == %g", c.Param, c.Threshold)
	case NotEqual:
		return fmt.Sprintf("%s != %g", c.Param, c.Threshold)
	default:
		return c.Param
	}
}

type term struct {
	cond Condition
	kind ParamKind
}

func (t term) negate() term {
	n := t
	switch t.cond.Mode {
	case If:
		n.cond.Mode = IfNot
	case IfNot:
		n.cond.Mode = If
	case Equals:
		n.cond.Mode = NotEqual
	case NotEqual:
		n.cond.Mode = Equals
	case Greater:
		n.cond.Mode = Less
		if t.kind == Int {
			n.cond.Threshold = t.cond.Threshold + 1
		}
	case Less:
		n.cond.Mode = Greater
		if t.kind == Int {
			n.cond.Threshold = t.cond.Threshold - 1
		}
	}
	return n
}

// Cond is a boolean expression over parameters in disjunctive normal form.
// The zero value is "always".
type Cond struct {
	clauses [][]term
	never   bool
}

// Always is the unconditional expression.
func Always() Cond { return Cond{} }

// Never is the unsatisfiable expression. Transitions built from it are not created.
func Never() Cond { return Cond{never: true} }

func single(p *Parameter, c Condition) Cond {
	return Cond{clauses: [][]term{{{cond: c, kind: p.Kind}}}}
}

func (c Cond) normalized() [][]term {
	if c.never {
		return nil
	}
	if len(c.clauses) == 0 {
		return [][]term{{}}
	}
	return c.clauses
}

// IsAlways reports whether the expression has no conditions at all.
func (c Cond) IsAlways() bool {
	for _, cl := range c.normalized() {
		if len(cl) == 0 {
			return true
		}
	}
	return false
}

// IsNever reports whether the expression can never be satisfied.
func (c Cond) IsNever() bool { return c.never }

// And combines two expressions so both must hold.
func (c Cond) And(o Cond) Cond {
	if c.never || o.never {
		return Never()
	}
	var out [][]term
	for _, a := range c.normalized() {
		for _, b := range o.normalized() {
			merged := make([]term, 0, len(a)+len(b))
			merged = append(merged, a...)
			merged = append(merged, b...)
			out = append(out, merged)
		}
	}
	return Cond{clauses: out}
}

// Or combines two expressions so either may hold.
func (c Cond) Or(o Cond) Cond {
	if c.never {
		return o
	}
	if o.never {
		return c
	}
	if c.IsAlways() || o.IsAlways() {
		return Always()
	}
	out := make([][]term, 0, len(c.clauses)+len(o.clauses))
	out = append(out, c.clauses...)
	out = append(out, o.clauses...)
	return Cond{clauses: out}
}

// Not negates the expression (De Morgan). Integer comparisons negate exactly.
func (c Cond) Not() Cond {
	if c.never {
		return Always()
	}
	result := Always()
	for _, clause := range c.normalized() {
		if len(clause) == 0 {
			return Never()
		}
		alt := Never()
		for _, t := range clause {
			alt = alt.Or(Cond{clauses: [][]term{{t.negate()}}})
		}
		result = result.And(alt)
	}
	return result
}

// Clauses returns the expression as OR-ed groups of AND-ed conditions.
func (c Cond) Clauses() [][]Condition {
	norm := c.normalized()
	out := make([][]Condition, 0, len(norm))
	for _, cl := range norm {
		conds := make([]Condition, 0, len(cl))
		for _, t := range cl {
			conds = append(conds, t.cond)
		}
		out = append(out, conds)
	}
	return out
}

func (c Cond) String() string {
	if c.never {
		return "never"
	}
	if c.IsAlways() {
		return "always"
	}
	parts := make([]string, 0, len(c.clauses))
	for _, cl := range c.Clauses() {
		and := make([]string, 0, len(cl))
		for _, t := range cl {
			and = append(and, t.String())
		}
		parts = append(parts, strings.Join(and, " && "))
	}
	return strings.Join(parts, " || ")
}
