package typeinfo

import (
	"iter"

	"github.com/odb-go/serial/debug"
)

// Ancestors yields t and then its super chain, most derived first. The
// last type yielded has a nil Super.
func Ancestors(t Type) iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for cur := t; cur != nil; cur = cur.Super() {
			if !yield(cur) {
				return
			}
		}
	}
}

// Depth is the number of ancestors of t excluding t itself.
func Depth(t Type) int {
	n := -1
	for range Ancestors(t) {
		n++
	}
	return n
}

// AllFields yields every declared field of t and its ancestors, paired
// with the declaring type. Ancestors are walked most derived first and
// fields in declaration order.
func AllFields(t Type) iter.Seq2[Type, Field] {
	return func(yield func(Type, Field) bool) {
		for a := range Ancestors(t) {
			for _, f := range a.DeclaredFields() {
				if !yield(a, f) {
					return
				}
			}
		}
	}
}

// Fields is AllFields without static and transient fields.
func Fields(t Type) iter.Seq2[Type, Field] {
	return func(yield func(Type, Field) bool) {
		for a, f := range AllFields(t) {
			if !Valid(f) {
				if debug.Introspect() {
					debug.Logf("introspect %s: skipping %s.%s (static=%t transient=%t)", t.Name(), a.Name(), f.Name, f.Static, f.Transient)
				}
				continue
			}
			if !yield(a, f) {
				return
			}
		}
	}
}

// Declares reports whether t itself declares a field named name.
func Declares(t Type, name string) (Field, bool) {
	for _, f := range t.DeclaredFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
