package typeinfo

import (
	"encoding"
	"reflect"
	"sync"
	"time"

	"github.com/odb-go/serial/debug"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	interned sync.Map // reflect.Type -> *reflectType

	timeType            = reflect.TypeFor[time.Time]()
	durationType        = reflect.TypeFor[time.Duration]()
	uuidType            = reflect.TypeFor[uuid.UUID]()
	decimalType         = reflect.TypeFor[decimal.Decimal]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	jsonUnmarshalerType = reflect.TypeFor[interface{ UnmarshalJSON([]byte) error }]()
)

type reflectType struct {
	rt   reflect.Type
	kind Kind

	once       sync.Once
	super      Type
	superIndex int
	fields     []Field
}

// Of returns the Type of a Go type. Pointer types are described by their
// element type. Types are interned: Of(rt) == Of(rt).
func Of(rt reflect.Type) Type {
	return of(rt)
}

func of(rt reflect.Type) *reflectType {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if v, ok := interned.Load(rt); ok {
		return v.(*reflectType)
	}
	t := &reflectType{rt: rt, kind: Classify(rt), superIndex: -1}
	v, _ := interned.LoadOrStore(rt, t)
	return v.(*reflectType)
}

// TypeOf returns the Type of the dynamic type of v, or nil if v is nil.
func TypeOf(v any) Type {
	if v == nil {
		return nil
	}
	if t, ok := v.(reflect.Type); ok {
		return Of(t)
	}
	return Of(reflect.TypeOf(v))
}

func For[T any]() Type {
	return Of(reflect.TypeFor[T]())
}

// Classify returns the Kind of a Go type.
func Classify(rt reflect.Type) Kind {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	switch rt {
	case timeType:
		return Time
	case durationType:
		return Duration
	case uuidType:
		return UUID
	case decimalType:
		return Decimal
	}
	if rt.Kind() != reflect.Interface && unmarshals(rt) {
		return Text
	}
	switch rt.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return String
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return Bytes
		}
		return List
	case reflect.Array:
		return List
	case reflect.Map:
		return Map
	case reflect.Struct:
		return Composite
	default:
		return Any
	}
}

// unmarshals reports whether *rt decodes itself from JSON or text.
// Methods a struct only promotes from an embedded field do not count:
// they would decode the embedded value and drop the other fields.
func unmarshals(rt reflect.Type) bool {
	pt := reflect.PointerTo(rt)
	jsonOK := pt.Implements(jsonUnmarshalerType)
	textOK := pt.Implements(textUnmarshalerType)
	if rt.Kind() != reflect.Struct || (!jsonOK && !textOK) {
		return jsonOK || textOK
	}
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.Anonymous {
			continue
		}
		et := sf.Type
		if et.Kind() != reflect.Pointer && et.Kind() != reflect.Interface {
			et = reflect.PointerTo(et)
		}
		if et.Implements(jsonUnmarshalerType) {
			jsonOK = false
		}
		if et.Implements(textUnmarshalerType) {
			textOK = false
		}
	}
	return jsonOK || textOK
}

func (t *reflectType) ID() string {
	if t.rt.Name() != "" && t.rt.PkgPath() != "" {
		return t.rt.PkgPath() + "." + t.rt.Name()
	}
	return t.rt.String()
}

func (t *reflectType) Name() string {
	if t.rt.Name() != "" {
		return t.rt.Name()
	}
	return t.rt.String()
}

func (t *reflectType) Kind() Kind           { return t.kind }
func (t *reflectType) GoType() reflect.Type { return t.rt }

func (t *reflectType) Super() Type {
	t.once.Do(t.load)
	return t.super
}

func (t *reflectType) DeclaredFields() []Field {
	t.once.Do(t.load)
	return t.fields
}

func (t *reflectType) String() string { return t.Name() }

// load splits the struct fields into the super type, the first embedded
// composite struct, and the declared fields. Unexported fields cannot be
// read and are not declared. Further embedded composites are declared
// under their type name, as is a first one whose own embedding chain
// leads back to t.
func (t *reflectType) load() {
	if t.kind != Composite {
		return
	}
	superIdx, superRT := firstEmbedded(t.rt)
	if superIdx >= 0 && embedsBack(t.rt, superRT) {
		if debug.Introspect() {
			debug.Logf("introspect %s: embedding of %s is cyclic, not a super type", t.Name(), superRT)
		}
		superIdx = -1
	}
	n := t.rt.NumField()
	for i := range n {
		sf := t.rt.Field(i)
		if i == superIdx {
			t.superIndex = i
			t.super = of(superRT)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		tag := GetFieldTag(sf)
		name := sf.Name
		if tag.Field != "" {
			name = tag.Field
		}
		t.fields = append(t.fields, Field{
			Name:      name,
			GoName:    sf.Name,
			Type:      of(sf.Type),
			Static:    tag.Static,
			Transient: tag.Transient,
			Index:     []int{i},
		})
	}
}

// firstEmbedded returns the index and the pointer-free type of the first
// embedded composite field of the struct type rt, or -1.
func firstEmbedded(rt reflect.Type) (int, reflect.Type) {
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.Anonymous {
			continue
		}
		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if Classify(ft) == Composite {
			return i, ft
		}
	}
	return -1, nil
}

// embedsBack reports whether following first embedded composites from
// rt reaches target. Only reflection is used, so types still loading are
// never asked for their super.
func embedsBack(target, rt reflect.Type) bool {
	seen := map[reflect.Type]bool{}
	for rt != nil && !seen[rt] {
		if rt == target {
			return true
		}
		seen[rt] = true
		_, rt = firstEmbedded(rt)
	}
	return false
}

// SuperIndex returns the struct field index holding the super type of a
// Go struct type, if t is one and has a super type.
func SuperIndex(t Type) (int, bool) {
	rt, ok := t.(*reflectType)
	if !ok {
		return 0, false
	}
	rt.once.Do(rt.load)
	return rt.superIndex, rt.superIndex >= 0
}
