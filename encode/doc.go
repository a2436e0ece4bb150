// Package encode encodes ir documents to JSON text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "x": ir.FromFloat(1.5),
//	    "y": ir.FromFloat(2),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// compact output
//	err = encode.Encode(node, w, encode.EncodeWire(true))
//
//	// colored output, e.g. for a terminal
//	err = encode.Encode(node, w, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/odb-go/serial/ir - document representation
//   - github.com/odb-go/serial/parse - parse text to ir
package encode
