package node

import (
	"fmt"
	"reflect"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/typeinfo"

	json "github.com/goccy/go-json"
)

// LeafCodec converts between document values and values of built-in
// types. Implementations must be stateless and safe for concurrent use.
type LeafCodec interface {
	// DecodeLeaf decodes v into a value of t.GoType(). A nil v stands for
	// an absent value.
	DecodeLeaf(t typeinfo.Type, v *ir.Node) (any, error)
	EncodeLeaf(t typeinfo.Type, v any) (*ir.Node, error)
}

// JSONLeafCodec is the default LeafCodec, backed by goccy/go-json. An
// absent value decodes to the zero value of the type.
type JSONLeafCodec struct{}

func (JSONLeafCodec) DecodeLeaf(t typeinfo.Type, v *ir.Node) (any, error) {
	gt := t.GoType()
	if gt == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGoType, t.Name())
	}
	if v == nil {
		return reflect.Zero(gt).Interface(), nil
	}
	d, err := encode.Bytes(v)
	if err != nil {
		return nil, err
	}
	ptr := reflect.New(gt)
	if err := json.Unmarshal(d, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ptr.Elem().Interface(), nil
}

func (JSONLeafCodec) EncodeLeaf(_ typeinfo.Type, v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}
