// Package node converts between documents, nodes and Go values.
//
// A Node is the decoded value of one field, produced from a symbol and a
// document:
//
//	codec := node.NewCodec()
//	doc, _ := parse.Parse([]byte(`{"x": 1.5, "y": 2.0}`))
//	nodes, err := codec.Decode(typeinfo.For[Position](), doc)
//	// [x:float64=1.5 y:float64=2]
//
// Built-in values are decoded by a LeafCodec, by default goccy/go-json.
// Composite values recurse into the fields of their type. Document keys
// without a symbol are ignored.
//
// The reverse direction goes through Encode (Go value to node), ToIR
// (node to document) and Assemble (node to Go value). A Resolver maps
// nodes back to symbols, dropping those it cannot match.
package node
