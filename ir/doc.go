// Package ir provides the document tree that parsed JSON is read into.
//
// A Node represents a single value in a document:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (key-value pairs), array (ordered list)
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Keys are string
// typed and object key order is the document order.
//
// Number values are placed under Int64 if the literal is an integer which
// fits. Other integer literals are kept verbatim under Number; the rest go
// under Float64, with Number as the fallback if float64 cannot hold them.
//
// Keyed access, the only operation the node codec needs from a document, is
// provided by Lookup and Get:
//
//	x, ok := doc.Lookup("x")
//
// Nodes maintain parent links, so Path reports where a value sits in its
// document (e.g. "$.pos.x"). Node structures are not safe for concurrent
// mutation; the codec only reads them.
package ir
