/*
Package tendril is an animatable value graph: a directed acyclic graph of typed, time-varying values used to drive the parameters of a document.

Every value node is a function of time. Leaves are constants or animated waypoint tracks; composite nodes compute their value from child links; placeholders stand in for exported names that have not been defined yet and are resolved in place when the real node arrives.

# Concept

A Document owns a tree of canvases (scopes), the value graph shared by all of them, and one export list per scope. Nodes exported in a scope can be referenced by name from anywhere in the document, including before they exist. Layers own named parameters and connect them to value nodes; they bound description paths and contribute their canvas to change notification and time sampling.

# Key Features

  - Parent tracking: every node knows who references it, so replacing a node rewires all referrers in one step.
  - Forward references: exported names resolve through placeholders.
  - Memoized cloning: copying a subgraph duplicates each node once and keeps exported nodes shared.
  - Change-point sampling: a node's values over time are reported only where they change.
  - Change events: edits are delivered to observers subscribed per scope.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/tendril"
		"github.com/aretw0/tendril/pkg/value"
		"github.com/aretw0/tendril/pkg/valuenode/linkable"
	)

	func main() {
		doc, err := tendril.New("demo")
		if err != nil {
			log.Fatal(err)
		}

		// Reference "speed" before it exists
		speed, _ := doc.Forward(nil, "speed")

		scale, _ := doc.Create(linkable.NameScale, value.TypeReal)
		_ = scale.SetLinkByName("link", speed)

		circle := doc.NewLayer("Circle", nil)
		_ = circle.Connect("radius", scale)

		// Defining it resolves every reference
		_ = doc.Export(nil, doc.Graph().NewConst(value.Real(2)), "speed")

		fmt.Println(scale.Evaluate(0))
	}
*/
package tendril
