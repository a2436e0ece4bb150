// Package debug holds environment switched debugging aids.
//
// Each switch is read once at start up:
//
//	ODB_DEBUG_INTROSPECT  type walking in typeinfo
//	ODB_DEBUG_DECODE      node decoding
//	ODB_DEBUG_RESOLVE     node to symbol resolution, including dropped nodes
//	ODB_DEBUG_PIPELINE    transducer runs
package debug
