package node

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/odb-go/serial/typeinfo"
)

// Assemble writes the node tree n into dst, a non-nil pointer to a value
// of n's Go type. Children with no matching field are ignored.
func (c *Codec) Assemble(n *Node, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &EncodeError{FieldPath: n.Name, Message: fmt.Sprintf("assemble needs a non-nil pointer, got %T", dst)}
	}
	return c.assemble(n, rv.Elem(), n.Name)
}

// New assembles n into a fresh value of its Go type and returns it.
func (c *Codec) New(n *Node) (any, error) {
	gt := n.Type.GoType()
	if gt == nil {
		return nil, &EncodeError{FieldPath: n.Name, Err: ErrNoGoType}
	}
	ptr := reflect.New(gt)
	if err := c.assemble(n, ptr.Elem(), n.Name); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

func (c *Codec) assemble(n *Node, dst reflect.Value, path string) error {
	if n.Type == nil || n.Type.GoType() == nil {
		return &EncodeError{FieldPath: path, Err: ErrNoGoType}
	}
	if n.IsLeaf() {
		return setLeaf(dst, n.Value, path)
	}
	if n.Null {
		dst.SetZero()
		return nil
	}
	for dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}
	if !typeinfo.Equal(typeinfo.Of(dst.Type()), n.Type) {
		return &EncodeError{FieldPath: path, Err: fmt.Errorf("%w: node of %s into %s", ErrTypeMismatch, n.Type.Name(), dst.Type())}
	}
	for _, child := range n.Children {
		fv, ok := settableField(dst, n.Type, child.Name)
		if !ok {
			continue
		}
		if err := c.assemble(child, fv, path+"."+child.Name); err != nil {
			return err
		}
	}
	return nil
}

func setLeaf(dst reflect.Value, v any, path string) error {
	if v == nil {
		dst.SetZero()
		return nil
	}
	for dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}
	src := reflect.ValueOf(v)
	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case src.Type().ConvertibleTo(dst.Type()) && src.Kind() == dst.Kind():
		dst.Set(src.Convert(dst.Type()))
	default:
		return &EncodeError{FieldPath: path, Err: fmt.Errorf("%w: %s into %s", ErrTypeMismatch, src.Type(), dst.Type())}
	}
	return nil
}

// settableField is fieldValue for writing: nil embedded pointers on the
// way are allocated, unexported ones included. rv must be addressable.
func settableField(rv reflect.Value, owner typeinfo.Type, name string) (reflect.Value, bool) {
	cur := rv
	for a := range typeinfo.Ancestors(owner) {
		if f, ok := typeinfo.Declares(a, name); ok {
			fv := cur.FieldByIndex(f.Index)
			return fv, fv.CanSet()
		}
		idx, ok := typeinfo.SuperIndex(a)
		if !ok {
			break
		}
		cur = cur.Field(idx)
		for cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				if !cur.CanSet() {
					if !cur.CanAddr() {
						return reflect.Value{}, false
					}
					cur = reflect.NewAt(cur.Type(), unsafe.Pointer(cur.UnsafeAddr())).Elem()
				}
				cur.Set(reflect.New(cur.Type().Elem()))
			}
			cur = cur.Elem()
		}
	}
	return reflect.Value{}, false
}
