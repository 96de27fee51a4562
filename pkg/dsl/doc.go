/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing value graphs.

Nodes are declared by name in any order and linked to each other by name; Build
creates them in dependency order, so forward references between declarations
are fine. Declaration errors are collected and reported together by Build.

Example usage:

	package main

	import (
		"github.com/aretw0/tendril/pkg/dsl"
		"github.com/aretw0/tendril/pkg/registry"
		"github.com/aretw0/tendril/pkg/value"
		"github.com/aretw0/tendril/pkg/valuenode"
		"github.com/aretw0/tendril/pkg/valuenode/linkable"
	)

	func main() {
		r := registry.NewRegistry()
		linkable.Register(r)

		b := dsl.New(valuenode.NewGraph(), r)

		b.Add("total").
			Linkable(linkable.NameAdd, value.TypeReal).
			Link("lhs", "base").
			Link("rhs", "bump").
			Set("scalar", value.Real(1)).
			Export()

		b.Add("base").Const(value.Real(1))

		b.Add("bump").
			Animated(value.TypeReal).
			Step(0, value.Real(0)).
			Step(10.0/24, value.Real(2))

		nodes, err := b.Build()
		// ... sample nodes["total"]
	}
*/
package dsl
