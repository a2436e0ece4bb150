package pipeline

import (
	"fmt"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/xduce"

	json "github.com/goccy/go-json"
)

// ToJSON renders values as JSON text, pretty printed unless opts say
// otherwise. Nodes render as the document they encode, other values as
// goccy/go-json marshals them.
func ToJSON(opts ...encode.EncodeOption) xduce.Transducer[any, string] {
	codec := node.NewCodec()
	return xduce.MapErr(func(v any) (string, error) {
		if n, ok := v.(*node.Node); ok {
			doc, err := codec.ToIR(n)
			if err != nil {
				return "", err
			}
			return encode.String(doc, opts...)
		}
		d, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("to json: %w", err)
		}
		doc, err := parse.Parse(d)
		if err != nil {
			return "", err
		}
		return encode.String(doc, opts...)
	})
}
