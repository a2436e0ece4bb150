package typeinfo

import "reflect"

// Type is a read only view of a type in some host type system.
//
// Super plays the part of a superclass: for Go structs it is the first
// embedded struct, for registry types the declared super type. It is nil
// at the root of a hierarchy.
type Type interface {
	// ID identifies the type; two Types are equal iff their IDs are.
	ID() string
	Name() string
	Kind() Kind
	Super() Type
	// DeclaredFields lists the fields the type itself declares, in
	// declaration order, including static and transient ones.
	DeclaredFields() []Field
	// GoType is the Go type built-in values decode into. It is nil for
	// composite types which have no Go counterpart.
	GoType() reflect.Type
}

// Field is one declared field of a type.
type Field struct {
	// Name is the document key of the field.
	Name string
	// GoName is the struct field name, empty for registry types.
	GoName string
	Type   Type

	// Static fields belong to the type rather than its values.
	Static bool
	// Transient fields are never serialized.
	Transient bool

	// Index is the struct field index within the declaring type, nil for
	// registry types.
	Index []int
}

func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

func IsBuiltIn(t Type) bool {
	return t != nil && t.Kind().BuiltIn()
}

// Valid reports whether f takes part in serialization.
func Valid(f Field) bool {
	return !f.Static && !f.Transient
}
