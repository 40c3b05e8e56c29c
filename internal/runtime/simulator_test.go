package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/runtime"
	"github.com/aretw0/graft/pkg/animgraph"
)

var hat = animgraph.Binding{Path: "Hat", Type: animgraph.TypeGameObject, Property: animgraph.PropActive}

func toggleController(t *testing.T) (*animgraph.Controller, *animgraph.Parameter) {
	t.Helper()
	ctrl := animgraph.NewController("FX")
	p, err := ctrl.NewBool("Hat", false)
	require.NoError(t, err)

	l := ctrl.NewLayer("Hat")
	offClip := ctrl.NewClip("Hat Off")
	offClip.SetConstant(hat, 0)
	onClip := ctrl.NewClip("Hat On")
	onClip.SetConstant(hat, 1)

	off := l.NewState("Off").WithMotion(offClip)
	on := l.NewState("On").WithMotion(onClip)
	off.TransitionsTo(on).When(p.IsTrue())
	on.TransitionsTo(off).When(p.IsFalse())
	return ctrl, p
}

func TestSimulator_Transitions(t *testing.T) {
	ctrl, p := toggleController(t)
	sim := runtime.NewSimulator(ctrl)

	sim.Tick()
	assert.Equal(t, "Off", sim.Current("Hat"))
	v, ok := sim.Output(hat)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	require.NoError(t, sim.Set(p.Name, 1))
	sim.Tick()
	assert.Equal(t, "On", sim.Current("Hat"))
	v, _ = sim.Output(hat)
	assert.Equal(t, 1.0, v)

	require.NoError(t, sim.Set(p.Name, 0))
	sim.Tick()
	assert.Equal(t, "Off", sim.Current("Hat"))
	assert.Equal(t, 3, sim.Ticks())
}

func TestSimulator_UnknownParam(t *testing.T) {
	ctrl, _ := toggleController(t)
	assert.Error(t, runtime.NewSimulator(ctrl).Set("Nope", 1))
}

func TestSimulator_AnyStateFirst(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	p, err := ctrl.NewInt("Mode", 0)
	require.NoError(t, err)
	l := ctrl.NewLayer("Modes")
	idle := l.NewState("Idle")
	a := l.NewState("A")
	b := l.NewState("B")

	idle.TransitionsTo(a).When(p.IsEqualTo(1))
	l.AnyTransitionsTo(b).When(p.IsEqualTo(1))

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(p.Name, 1))
	sim.Tick()
	assert.Equal(t, "B", sim.Current("Modes"))

	// An any-state transition does not re-enter its own destination.
	sim.Tick()
	assert.Equal(t, "B", sim.Current("Modes"))
}

func TestSimulator_FirstMatchWins(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	f, err := ctrl.NewFloat("F", 0)
	require.NoError(t, err)
	l := ctrl.NewLayer("L")
	start := l.NewState("Start")
	first := l.NewState("First")
	second := l.NewState("Second")

	start.TransitionsTo(first).When(f.IsGreaterThan(0.5))
	start.TransitionsTo(second).When(f.IsGreaterThan(0.1))

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(f.Name, 0.9))
	sim.Tick()
	assert.Equal(t, "First", sim.Current("L"))
}

func TestSimulator_TriggerConsumed(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	tr, err := ctrl.NewTrigger("Go")
	require.NoError(t, err)
	l := ctrl.NewLayer("L")
	a := l.NewState("A")
	b := l.NewState("B")
	a.TransitionsTo(b).When(tr.IsTrue())

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(tr.Name, 1))
	sim.Tick()
	assert.Equal(t, "B", sim.Current("L"))
	assert.Zero(t, sim.Value(tr.Name))
}

func TestSimulator_ExitReturnsToDefault(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	p, err := ctrl.NewBool("P", false)
	require.NoError(t, err)
	l := ctrl.NewLayer("L")
	home := l.NewState("Home")
	away := l.NewState("Away")
	home.TransitionsTo(away).When(p.IsTrue())
	away.TransitionsToExit().When(p.IsFalse())

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(p.Name, 1))
	sim.Tick()
	require.Equal(t, "Away", sim.Current("L"))
	require.NoError(t, sim.Set(p.Name, 0))
	sim.Tick()
	assert.Equal(t, "Home", sim.Current("L"))
}

func TestSimulator_Drivers(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	p, err := ctrl.NewBool("P", false)
	require.NoError(t, err)
	_, err = ctrl.NewInt("Count", 0)
	require.NoError(t, err)
	l := ctrl.NewLayer("L")
	a := l.NewState("A")
	b := l.NewState("B")
	b.Drives(false).Set("Count", 3)
	a.TransitionsTo(b).When(p.IsTrue())

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(p.Name, 1))
	sim.Tick()
	assert.Equal(t, 3.0, sim.Value("Count"))
}

func TestSimulator_BlendTrees(t *testing.T) {
	b := animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: animgraph.BlendshapeProp("Smile")}
	constant := func(ctrl *animgraph.Controller, name string, v float64) *animgraph.Clip {
		c := ctrl.NewClip(name)
		c.SetConstant(b, v)
		return c
	}

	tests := []struct {
		name  string
		build func(ctrl *animgraph.Controller) animgraph.Motion
		x, y  float64
		want  float64
	}{
		{
			name: "1d interpolates",
			build: func(ctrl *animgraph.Controller) animgraph.Motion {
				tree := ctrl.NewBlendTree("T", animgraph.Simple1D)
				tree.Param = "X"
				tree.Add1D(0, constant(ctrl, "lo", 0))
				tree.Add1D(1, constant(ctrl, "hi", 100))
				return tree
			},
			x: 0.25, want: 25,
		},
		{
			name: "1d clamps",
			build: func(ctrl *animgraph.Controller) animgraph.Motion {
				tree := ctrl.NewBlendTree("T", animgraph.Simple1D)
				tree.Param = "X"
				tree.Add1D(1, constant(ctrl, "hi", 100))
				tree.Add1D(0, constant(ctrl, "lo", 0))
				return tree
			},
			x: 4, want: 100,
		},
		{
			name: "2d bilinear",
			build: func(ctrl *animgraph.Controller) animgraph.Motion {
				tree := ctrl.NewBlendTree("T", animgraph.Cartesian2D)
				tree.Param, tree.ParamY = "X", "Y"
				tree.Add2D(0, 0, constant(ctrl, "a", 0))
				tree.Add2D(1, 0, constant(ctrl, "b", 10))
				tree.Add2D(0, 1, constant(ctrl, "c", 20))
				tree.Add2D(1, 1, constant(ctrl, "d", 30))
				return tree
			},
			x: 0.5, y: 0.5, want: 15,
		},
		{
			name: "direct sums weights",
			build: func(ctrl *animgraph.Controller) animgraph.Motion {
				tree := ctrl.NewBlendTree("T", animgraph.Direct)
				tree.AddDirect("X", constant(ctrl, "a", 10))
				tree.AddDirect("Y", constant(ctrl, "b", 10))
				return tree
			},
			x: 1, y: 0.5, want: 15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := animgraph.NewController("FX")
			_, err := ctrl.NewFloat("X", 0)
			require.NoError(t, err)
			_, err = ctrl.NewFloat("Y", 0)
			require.NoError(t, err)
			ctrl.NewLayer("L").NewState("S").WithMotion(tt.build(ctrl))

			sim := runtime.NewSimulator(ctrl)
			require.NoError(t, sim.Set("X", tt.x))
			require.NoError(t, sim.Set("Y", tt.y))
			sim.Tick()
			got, ok := sim.Output(b)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSimulator_LayerOverride(t *testing.T) {
	ctrl, p := toggleController(t)
	// A later layer forcing the hat off wins over the toggle.
	force := ctrl.NewClip("Force Off")
	force.SetConstant(hat, 0)
	ctrl.NewLayer("Override").NewState("Force").WithMotion(force)

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(p.Name, 1))
	sim.Tick()
	v, _ := sim.Output(hat)
	assert.Equal(t, 0.0, v)
}
