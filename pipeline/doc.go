// Package pipeline provides the stock stages chaining introspection,
// symbol building and the node codec into conversions:
//
//	// Go values to the symbols of their types
//	xduce.Comp4(ObjectToType(), AllFields(), ValidFields(), AsSymbols())
//
//	// JSON text to the nodes of a type
//	JSONToNodes(codec, t)
//
//	// entities back to the symbols of their components
//	NodesToSymbols(entity.Symbols(types...))
package pipeline
