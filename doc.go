/*
Package graft compiles declarative avatar features into one animation controller.

Authors attach features (toggles, imported controllers, haptic sockets, gesture
drivers, object moves) to objects of a scene hierarchy. A build compiles every
feature into a single controller with its parameters, layers, states,
transitions, blend trees and clips, plus the expression menu and the list of
networked parameters. Builds are deterministic: the same avatar always yields
the same output.

# Pipeline

Each feature kind has a builder. A build discovers every feature, checks each
one can be built, lets every builder declare its actions and runs all actions in
one published order (pre-processing, host parameters, per-feature defaults,
cross-feature links, moves, post-processing, write defaults, parameter dedup,
conflict checks, menu ordering, cleanup and lock-in). The first failing action
aborts the build and leaves the scratch store empty.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/graft"
		"github.com/aretw0/graft/pkg/dsl"
	)

	func main() {
		av := dsl.NewAvatar("Fox").
			Object("Hat").Inactive().
			Toggle("Clothes/Hat", dsl.TurnOn("Hat")).
			Avatar()

		c, err := graft.New()
		if err != nil {
			log.Fatal(err)
		}
		res, err := c.Build(context.Background(), av, av.Clone())
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%d layers", len(res.Output.Controller.Layers))
	}
*/
package graft
