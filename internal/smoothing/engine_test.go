package smoothing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/runtime"
	"github.com/aretw0/graft/internal/smoothing"
	"github.com/aretw0/graft/pkg/animgraph"
)

func newTarget(t *testing.T) (*animgraph.Controller, *animgraph.Parameter) {
	t.Helper()
	ctrl := animgraph.NewController("FX")
	target, err := ctrl.NewFloat("Target", 0)
	require.NoError(t, err)
	return ctrl, target
}

func TestSmooth_ZeroIsIdentity(t *testing.T) {
	for _, s := range []float64{0, -1} {
		ctrl, target := newTarget(t)
		eng := smoothing.New(ctrl)

		out, err := eng.Smooth("Depth", target, s, smoothing.Options{})
		require.NoError(t, err)
		assert.Same(t, target, out)
		assert.Nil(t, eng.Layer())
		assert.Len(t, ctrl.Parameters(), 1)
		assert.Empty(t, ctrl.Layers)
	}
}

func TestSmooth_FirstOrderApproach(t *testing.T) {
	ctrl, target := newTarget(t)
	eng := smoothing.New(ctrl)

	out, err := eng.Smooth("Depth", target, 0.5, smoothing.Options{})
	require.NoError(t, err)
	require.NotSame(t, target, out)
	require.NotNil(t, eng.Layer())

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(target.Name, 1))

	speed := smoothing.Speed(0.5)
	prev := 0.0
	for i := 1; i <= 40; i++ {
		sim.Tick()
		v := sim.Value(out.Name)
		assert.Greater(t, v, prev, "tick %d", i)
		assert.LessOrEqual(t, v, 1.0, "tick %d", i)
		assert.InDelta(t, 1-math.Pow(speed, float64(i)), v, 1e-9, "tick %d", i)
		prev = v
	}
}

func TestSmooth_Accelerated(t *testing.T) {
	ctrl, target := newTarget(t)
	eng := smoothing.New(ctrl)

	out, err := eng.Smooth("Depth", target, 0.3, smoothing.Options{Accelerated: true})
	require.NoError(t, err)

	sim := runtime.NewSimulator(ctrl)
	require.NoError(t, sim.Set(target.Name, 1))

	prev := 0.0
	for i := 0; i < 200; i++ {
		sim.Tick()
		v := sim.Value(out.Name)
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 1.0)
		prev = v
	}
	assert.InDelta(t, 1, prev, 1e-3)
}

func TestSmooth_Pause(t *testing.T) {
	tests := []struct {
		name string
		mode smoothing.PauseMode
		want func(before float64) float64
	}{
		{"freeze holds", smoothing.Freeze, func(before float64) float64 { return before }},
		{"zero clears", smoothing.Zero, func(float64) float64 { return 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, target := newTarget(t)
			pause, err := ctrl.NewFloat("Pause", 0)
			require.NoError(t, err)
			eng := smoothing.New(ctrl)

			out, err := eng.Smooth("Depth", target, 0.5, smoothing.Options{Pause: pause, PauseMode: tt.mode})
			require.NoError(t, err)

			sim := runtime.NewSimulator(ctrl)
			require.NoError(t, sim.Set(target.Name, 1))
			sim.Run(5)
			before := sim.Value(out.Name)
			require.Greater(t, before, 0.0)

			require.NoError(t, sim.Set(pause.Name, 1))
			sim.Run(5)
			assert.InDelta(t, tt.want(before), sim.Value(out.Name), 1e-9)
		})
	}
}

func TestSmooth_RejectsNonFloat(t *testing.T) {
	ctrl := animgraph.NewController("FX")
	b, err := ctrl.NewBool("Flag", false)
	require.NoError(t, err)
	f, err := ctrl.NewFloat("F", 0)
	require.NoError(t, err)

	_, err = smoothing.New(ctrl).Smooth("X", b, 0.5, smoothing.Options{})
	assert.Error(t, err)

	_, err = smoothing.New(ctrl).Smooth("X", f, 0.5, smoothing.Options{Pause: b})
	assert.Error(t, err)
}

func TestSmooth_UniqueNames(t *testing.T) {
	ctrl, target := newTarget(t)
	eng := smoothing.New(ctrl)

	a, err := eng.Smooth("Depth", target, 0.5, smoothing.Options{})
	require.NoError(t, err)
	b, err := eng.Smooth("Depth", target, 0.5, smoothing.Options{})
	require.NoError(t, err)
	assert.NotEqual(t, a.Name, b.Name)
	assert.Len(t, ctrl.Layers, 1)
}

func TestMap(t *testing.T) {
	tests := []struct {
		name                         string
		inMin, inMax, outMin, outMax float64
		input, want                  float64
	}{
		{"midpoint", 0, 1, 0, 10, 0.5, 5},
		{"clamped low", 0, 1, 0, 10, -3, 0},
		{"clamped high", 0, 1, 0, 10, 3, 10},
		{"inverted output", 0, 1, 1, 0, 0.25, 0.75},
		{"swapped input", 1, 0, 10, 0, 0.25, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, target := newTarget(t)
			out, err := smoothing.New(ctrl).Map("Mapped", target, tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			require.NoError(t, err)

			sim := runtime.NewSimulator(ctrl)
			require.NoError(t, sim.Set(target.Name, tt.input))
			sim.Tick()
			assert.InDelta(t, tt.want, sim.Value(out.Name), 1e-9)
		})
	}
}

func TestMap_EmptyRange(t *testing.T) {
	ctrl, target := newTarget(t)
	_, err := smoothing.New(ctrl).Map("Mapped", target, 1, 1, 0, 1)
	assert.Error(t, err)
}

func TestGreaterThan(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{0.8, 0.2, true},
		{0.2, 0.8, false},
		{0.5, 0.5, false},
		{1, 0, true},
	}
	for _, tt := range tests {
		ctrl := animgraph.NewController("FX")
		a, err := ctrl.NewFloat("A", 0)
		require.NoError(t, err)
		b, err := ctrl.NewFloat("B", 0)
		require.NoError(t, err)

		diff, cond, err := smoothing.New(ctrl).GreaterThan("Dir", a, b, 0, 1)
		require.NoError(t, err)

		sim := runtime.NewSimulator(ctrl)
		require.NoError(t, sim.Set(a.Name, tt.a))
		require.NoError(t, sim.Set(b.Name, tt.b))
		sim.Tick()
		v := sim.Value(diff.Name)
		assert.InDelta(t, tt.a-tt.b, v, 1e-9)

		got := true
		for _, clause := range cond.Clauses() {
			for _, c := range clause {
				got = got && c.Eval(v)
			}
		}
		assert.Equal(t, tt.want, got, "a=%g b=%g", tt.a, tt.b)
	}
}
