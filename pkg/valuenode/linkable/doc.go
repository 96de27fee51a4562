/*
Package linkable provides the concrete composite value node variants.

Each variant implements valuenode.Linkable and is registered under its name
with Register, so graphs can be assembled by variant name:

	r := registry.NewRegistry()
	linkable.Register(r)

	g := valuenode.NewGraph()
	sum, err := r.Create(g, linkable.NameAdd, value.TypeReal)
*/
package linkable
