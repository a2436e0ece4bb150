// Package typeinfo describes types for serialization: which fields a type
// has, which type declares each one, and whether a type is built in or
// composite.
//
// Two backends implement Type. Of and TypeOf describe Go types through
// reflection: struct embedding stands in for inheritance (the first
// embedded struct is the super type) and the `odb` struct tag marks
// fields:
//
//	type Position struct {
//	    X, Y  float64
//	    Dirty bool `odb:"-"`
//	}
//
//	type Velocity struct {
//	    Position
//	    Max float64 `odb:"field=max"`
//	}
//
// A Registry describes types explicitly, e.g. from a YAML file, for
// documents with no Go definition at hand.
//
// Ancestors and Fields walk a type hierarchy:
//
//	for owner, f := range typeinfo.Fields(typeinfo.For[Velocity]()) {
//	    fmt.Println(owner.Name(), f.Name)
//	}
//	// Velocity max
//	// Position X
//	// Position Y
package typeinfo
