// Package symbol builds the flat field descriptors the node codec works
// from.
package symbol

import (
	"fmt"

	"github.com/odb-go/serial/typeinfo"
)

// Symbol describes one serializable field: the owning type, the document
// key and the declared type of the field.
type Symbol struct {
	Owner typeinfo.Type
	Field string
	Type  typeinfo.Type
}

// Of builds a symbol for f as a field of owner. owner is the type under
// inspection, which need not be the ancestor declaring f.
func Of(owner typeinfo.Type, f typeinfo.Field) Symbol {
	if f.Type == nil {
		panic(fmt.Sprintf("symbol: field %q of %s has no type", f.Name, owner.Name()))
	}
	return Symbol{Owner: owner, Field: f.Name, Type: f.Type}
}

// FromPair builds a symbol owned by the type declaring f.
func FromPair(declaring typeinfo.Type, f typeinfo.Field) Symbol {
	return Of(declaring, f)
}

// For returns the symbols of every serializable field of t, inherited
// ones included, all owned by t.
func For(t typeinfo.Type) []Symbol {
	var res []Symbol
	for _, f := range typeinfo.Fields(t) {
		res = append(res, Of(t, f))
	}
	return res
}

// Declared returns the symbols of the serializable fields of t and its
// ancestors, each owned by its declaring type.
func Declared(t typeinfo.Type) []Symbol {
	var res []Symbol
	for a, f := range typeinfo.Fields(t) {
		res = append(res, FromPair(a, f))
	}
	return res
}

// All concatenates For over types.
func All(types ...typeinfo.Type) []Symbol {
	var res []Symbol
	for _, t := range types {
		res = append(res, For(t)...)
	}
	return res
}

func (s Symbol) IsBuiltIn() bool {
	return typeinfo.IsBuiltIn(s.Type)
}

// Equal compares symbols by owner, field and type.
func (s Symbol) Equal(o Symbol) bool {
	return s.Field == o.Field && typeinfo.Equal(s.Owner, o.Owner) && typeinfo.Equal(s.Type, o.Type)
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s.%s:%s", name(s.Owner), s.Field, name(s.Type))
}

func name(t typeinfo.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
