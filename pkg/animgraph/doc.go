/*
Package animgraph is the in-memory intermediate representation of a generated
animation system.

It models the finite-state-machine-with-blending graph that features compile
into: Parameters, Layers, State machines, States, Transitions, Blend trees and
keyframe Clips, plus the companion Menu tree and networked ParamList. The
package is pure: it performs no I/O and knows nothing about features, the
scene graph or the host's serialization format.

# Key Entities

  - Controller: owns parameters, layers and the generated-asset area (clips and blend trees).
  - Layer: an ordered state machine with exactly one default state and any-state transitions.
  - Transition: conjunctive conditions; several transitions from one source are tried in declaration order.
  - Cond: a boolean expression (OR of AND clauses) that expands into one transition per clause.
  - Clip: (path, component type, property) bindings to keyframe curves, paths relative to the avatar root.

Creation primitives are side-effect free with respect to entities of other
names: NewParameter is idempotent by (name, kind) and fails on a kind
mismatch, NewLayer always appends, and NewClip never aliases an existing clip.
*/
package animgraph
