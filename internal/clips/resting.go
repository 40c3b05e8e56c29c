package clips

import "github.com/aretw0/graft/pkg/animgraph"

// Resting records the value every animated binding has when no feature drives
// it. The first capture of a binding wins for the whole build, so a value is
// always taken before any generated state could have changed it.
type Resting struct {
	values  map[animgraph.Binding]float64
	objects map[animgraph.Binding]string
	order   []animgraph.Binding
}

// NewResting creates an empty registry.
func NewResting() *Resting {
	return &Resting{
		values:  make(map[animgraph.Binding]float64),
		objects: make(map[animgraph.Binding]string),
	}
}

// Capture stores v for b unless b was captured before, and returns the stored value.
func (r *Resting) Capture(b animgraph.Binding, v float64) float64 {
	if old, ok := r.values[b]; ok {
		return old
	}
	r.values[b] = v
	r.order = append(r.order, b)
	return v
}

// CaptureObject is Capture for object-reference bindings.
func (r *Resting) CaptureObject(b animgraph.Binding, ref string) string {
	if old, ok := r.objects[b]; ok {
		return old
	}
	r.objects[b] = ref
	r.order = append(r.order, b)
	return ref
}

// Value returns the resting float of b.
func (r *Resting) Value(b animgraph.Binding) (float64, bool) {
	v, ok := r.values[b]
	return v, ok
}

// Object returns the resting object reference of b.
func (r *Resting) Object(b animgraph.Binding) (string, bool) {
	v, ok := r.objects[b]
	return v, ok
}

// Bindings returns every captured binding in capture order.
func (r *Resting) Bindings() []animgraph.Binding {
	return append([]animgraph.Binding(nil), r.order...)
}

// Apply writes the resting value of each of bindings into dst,
// skipping bindings dst already has. It returns how many curves were added.
func (r *Resting) Apply(dst *animgraph.Clip, bindings []animgraph.Binding) int {
	added := 0
	for _, b := range bindings {
		if dst.Has(b) {
			continue
		}
		if v, ok := r.values[b]; ok {
			dst.SetConstant(b, v)
			added++
			continue
		}
		if ref, ok := r.objects[b]; ok {
			dst.SetObjectConstant(b, ref)
			added++
		}
	}
	return added
}

// Rewrite re-keys every captured binding through rw, so resting values follow
// bindings that were relocated after capture. Dropped bindings are forgotten.
// When two bindings collapse onto one key, the earlier capture wins.
func (r *Resting) Rewrite(rw Rewrite) {
	values := make(map[animgraph.Binding]float64, len(r.values))
	objects := make(map[animgraph.Binding]string, len(r.objects))
	order := make([]animgraph.Binding, 0, len(r.order))
	for _, b := range r.order {
		nb, ok := rw(b)
		if !ok {
			continue
		}
		if v, isValue := r.values[b]; isValue {
			if _, taken := values[nb]; taken {
				continue
			}
			values[nb] = v
		} else {
			if _, taken := objects[nb]; taken {
				continue
			}
			objects[nb] = r.objects[b]
		}
		order = append(order, nb)
	}
	r.values, r.objects, r.order = values, objects, order
}
