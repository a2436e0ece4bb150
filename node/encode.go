package node

import (
	"fmt"
	"reflect"

	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
)

// Encode turns a Go value into a node named after its type.
func (c *Codec) Encode(v any) (*Node, error) {
	if v == nil {
		return nil, &EncodeError{Message: "cannot encode nil"}
	}
	t := typeinfo.TypeOf(v)
	return c.EncodeValue(t.Name(), reflect.ValueOf(v))
}

// EncodeValue turns rv into a node called name.
func (c *Codec) EncodeValue(name string, rv reflect.Value) (*Node, error) {
	return c.encodeValue(name, name, rv, 0)
}

func (c *Codec) encodeValue(name, path string, rv reflect.Value, depth int) (*Node, error) {
	t := typeinfo.Of(rv.Type())
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			if t.Kind().BuiltIn() {
				return Leaf(name, t, nil), nil
			}
			return &Node{Name: name, Type: t, Null: true}, nil
		}
		rv = rv.Elem()
	}
	if _, own := c.leafFor(t); own || t.Kind().BuiltIn() {
		return Leaf(name, t, rv.Interface()), nil
	}
	if depth >= c.maxDepth {
		return nil, &EncodeError{FieldPath: path, Err: ErrTooDeep}
	}
	syms := symbol.For(t)
	res := Composite(name, t)
	res.Children = make([]*Node, 0, len(syms))
	for _, s := range syms {
		fv, ok := fieldValue(rv, t, s.Field)
		cpath := path + "." + s.Field
		var child *Node
		switch {
		case ok:
			var err error
			child, err = c.encodeValue(s.Field, cpath, fv, depth+1)
			if err != nil {
				return nil, err
			}
		case s.IsBuiltIn():
			// declared behind a nil embedded pointer
			child = Leaf(s.Field, s.Type, nil)
		default:
			child = &Node{Name: s.Field, Type: s.Type, Null: true}
		}
		res.Children = append(res.Children, child)
	}
	return res, nil
}

// fieldValue finds the struct field holding the document field name of
// owner in rv, following embedded super types. It reports false when a
// nil embedded pointer is in the way.
func fieldValue(rv reflect.Value, owner typeinfo.Type, name string) (reflect.Value, bool) {
	cur := rv
	for a := range typeinfo.Ancestors(owner) {
		if f, ok := typeinfo.Declares(a, name); ok {
			if len(f.Index) == 0 {
				panic(fmt.Sprintf("node: field %s.%s is not a struct field", a.Name(), name))
			}
			return cur.FieldByIndex(f.Index), true
		}
		idx, ok := typeinfo.SuperIndex(a)
		if !ok {
			break
		}
		cur = cur.Field(idx)
		for cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				return reflect.Value{}, false
			}
			cur = cur.Elem()
		}
	}
	panic(fmt.Sprintf("node: %s has no field %q", owner.Name(), name))
}

// ToIR turns a node into the document value it encodes.
func (c *Codec) ToIR(n *Node) (*ir.Node, error) {
	lc, own := c.leafFor(n.Type)
	if own && !n.Null && !n.IsLeaf() {
		v, err := c.New(n)
		if err != nil {
			return nil, err
		}
		n = Leaf(n.Name, n.Type, v)
	}
	if n.IsLeaf() {
		res, err := lc.EncodeLeaf(n.Type, n.Value)
		if err != nil {
			return nil, &EncodeError{FieldPath: n.Name, Err: err}
		}
		return res, nil
	}
	if n.Null {
		return ir.Null(), nil
	}
	return c.NodesToIR(n.Children)
}

// NodesToIR builds an object with one key per node, in node order.
func (c *Codec) NodesToIR(nodes []*Node) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(nodes))
	for _, child := range nodes {
		v, err := c.ToIR(child)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: child.Name, Val: v})
	}
	return ir.FromKeyVals(kvs), nil
}
