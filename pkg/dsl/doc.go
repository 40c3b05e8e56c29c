/*
Package dsl provides a fluent Go API for constructing avatars and their features.

It lets scripts and tests declare a scene hierarchy and attach features without
writing feature records by hand or depending on the generated graph types. The
facade only produces feature and scene values, so it stays stable when the graph
representation changes.

Example usage:

	av := dsl.NewAvatar("Fox").
		Object("Hat").Inactive().
		Toggle("Clothes/Hat", dsl.TurnOn("Hat")).
		Avatar()

	sock := dsl.Socket("Mouth", "Mouth").Radius(0.1).
		Depth(dsl.DepthAction(0, 1, dsl.Shape("Open", 100)).Smoothing(0.8))
	dsl.NewAvatarFrom(av).Object("Head").Feature(sock.Model())

The result is a plain *scene.Avatar ready for graft.Compiler.Build.
*/
package dsl
