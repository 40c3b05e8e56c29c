package graft_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/dsl"
)

// ExampleCompiler_Build compiles a single toggle and lists what it generated.
func ExampleCompiler_Build() {
	// 1. Describe the avatar with the fluent builders.
	b := dsl.NewAvatar("Fox")
	b.Object("Props/Hat").Inactive().Toggle("Clothes/Hat", dsl.Flip("Props/Hat"))
	avatar := b.Avatar()

	// 2. Build with the defaults (in-memory scratch store, write defaults auto).
	c, err := graft.New()
	if err != nil {
		log.Fatal(err)
	}
	res, err := c.Build(context.Background(), avatar, nil)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Inspect the generated parameters and menu.
	for _, e := range res.Output.Params.Entries() {
		if strings.HasPrefix(e.Name, "Graft/") {
			fmt.Printf("param %s (%s)\n", e.Name, e.Kind)
		}
	}
	res.Output.Menu.Walk(func(parent string, item *animgraph.MenuItem) {
		if item.Param != "" {
			fmt.Printf("menu %s/%s -> %s\n", parent, item.Name, item.Param)
		}
	})
	// Output:
	// param Graft/Toggle/Clothes/Hat (bool)
	// menu Clothes/Hat -> Graft/Toggle/Clothes/Hat
}
