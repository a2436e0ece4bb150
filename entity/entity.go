// Package entity holds the entity shape the codec reads: an id and a
// list of component nodes.
package entity

import (
	"fmt"

	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
)

// Data is one entity. Each component is a composite node named after its
// component type.
type Data struct {
	ID         int
	Components []*node.Node
}

func New(id int, comps ...*node.Node) *Data {
	return &Data{ID: id, Components: comps}
}

// FromValues encodes component values into a new entity.
func FromValues(codec *node.Codec, id int, comps ...any) (*Data, error) {
	d := &Data{ID: id, Components: make([]*node.Node, 0, len(comps))}
	for _, c := range comps {
		n, err := codec.Encode(c)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", id, err)
		}
		d.Components = append(d.Components, n)
	}
	return d, nil
}

// Component returns the component called name, or nil.
func (d *Data) Component(name string) *node.Node {
	for _, c := range d.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Values assembles every component with a Go type back into a value.
// Components of registry types are skipped.
func (d *Data) Values(codec *node.Codec) ([]any, error) {
	res := make([]any, 0, len(d.Components))
	for _, c := range d.Components {
		if c.Type == nil || c.Type.GoType() == nil {
			continue
		}
		v, err := codec.New(c)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", d.ID, err)
		}
		res = append(res, v)
	}
	return res, nil
}

// Owner is the type owning component slot symbols.
func Owner() typeinfo.Type {
	return typeinfo.For[Data]()
}

// Symbols returns one symbol per component type, the master list that
// component nodes resolve against.
func Symbols(types ...typeinfo.Type) []symbol.Symbol {
	res := make([]symbol.Symbol, 0, len(types))
	for _, t := range types {
		res = append(res, symbol.Symbol{Owner: Owner(), Field: t.Name(), Type: t})
	}
	return res
}
