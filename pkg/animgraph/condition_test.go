package animgraph_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCond(t *testing.T) {
	c := animgraph.NewController("fx")
	b, _ := c.NewBool("B", false)
	i, _ := c.NewInt("I", 0)
	f, _ := c.NewFloat("F", 0)

	tests := []struct {
		name string
		cond animgraph.Cond
		want string
	}{
		{"Bool true", b.IsTrue(), "B"},
		{"Bool false", b.IsFalse(), "!B"},
		{"Int true is greater than zero", i.IsTrue(), "I > 0"},
		{"Int not greater negates exactly", i.IsGreaterThan(3).Not(), "I < 4"},
		{"Int not less negates exactly", i.IsLessThan(3).Not(), "I > 2"},
		{"Float not greater", f.IsGreaterThan(0.5).Not(), "F < 0.5"},
		{"And", b.IsTrue().And(i.IsEqualTo(2)), "B && I == 2"},
		{"Or", b.IsTrue().Or(i.IsEqualTo(2)), "B || I == 2"},
		{"De Morgan", b.IsTrue().And(i.IsEqualTo(2)).Not(), "!B || I != 2"},
		{"Always", animgraph.Always(), "always"},
		{"Not always", animgraph.Always().Not(), "never"},
		{"Or with always", b.IsTrue().Or(animgraph.Always()), "always"},
		{"And with never", b.IsTrue().And(animgraph.Never()), "never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.String())
		})
	}
}

func TestCondition_Eval(t *testing.T) {
	assert.True(t, animgraph.Condition{Mode: animgraph.If}.Eval(1))
	assert.False(t, animgraph.Condition{Mode: animgraph.IfNot}.Eval(1))
	assert.True(t, animgraph.Condition{Mode: animgraph.Greater, Threshold: 0.5}.Eval(0.6))
	assert.False(t, animgraph.Condition{Mode: animgraph.Less, Threshold: 0.5}.Eval(0.5))
	assert.True(t, animgraph.Condition{Mode: animgraph.Equals, Threshold: 2}.Eval(2))
	assert.True(t, animgraph.Condition{Mode: animgraph.NotEqual, Threshold: 2}.Eval(3))
}

func TestTransitions_When(t *testing.T) {
	c := animgraph.NewController("fx")
	b, _ := c.NewBool("B", false)
	i, _ := c.NewInt("I", 0)
	l := c.NewLayer("L")
	a := l.NewState("A")
	x := l.NewState("X")
	y := l.NewState("Y")

	first := a.TransitionsTo(x)
	a.TransitionsTo(y).When(b.IsTrue())
	require.Len(t, a.Transitions, 2)

	// Expanding the first set keeps it ahead of the second in declaration order.
	first.When(b.IsFalse().Or(i.IsEqualTo(3))).WithDuration(0.25)
	require.Len(t, a.Transitions, 3)
	assert.Same(t, x, a.Transitions[0].Dest.State)
	assert.Same(t, x, a.Transitions[1].Dest.State)
	assert.Same(t, y, a.Transitions[2].Dest.State)
	assert.Equal(t, 0.25, a.Transitions[1].Duration)
	assert.Equal(t, []animgraph.Condition{{Param: "I", Mode: animgraph.Equals, Threshold: 3}}, a.Transitions[1].Conditions)

	first.When(animgraph.Never())
	require.Len(t, a.Transitions, 1)
	assert.Same(t, y, a.Transitions[0].Dest.State)
}

func TestParamList(t *testing.T) {
	l := animgraph.NewParamList()
	require.NoError(t, l.Add(animgraph.ParamEntry{Name: "Hat", Kind: animgraph.Bool}))
	require.NoError(t, l.Add(animgraph.ParamEntry{Name: "Hat", Kind: animgraph.Bool, Saved: true}))
	require.NoError(t, l.Add(animgraph.ParamEntry{Name: "Hue", Kind: animgraph.Float}))

	e, ok := l.Get("Hat")
	require.True(t, ok)
	assert.True(t, e.Saved)
	assert.Equal(t, 9, l.Cost())

	err := l.Add(animgraph.ParamEntry{Name: "Hue", Kind: animgraph.Int})
	var kindErr *animgraph.ParamKindError
	assert.ErrorAs(t, err, &kindErr)
}
