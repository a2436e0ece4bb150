package codegen

import (
	"fmt"
	"go/types"
	"reflect"

	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/typeinfo"
)

// wellKnown maps named types outside the package to built-in names.
var wellKnown = map[string]string{
	"time.Time":                             "time",
	"time.Duration":                         "duration",
	"github.com/google/uuid.UUID":           "uuid",
	"github.com/shopspring/decimal.Decimal": "decimal",
}

// Generator collects type declarations for struct types and the struct
// types they reach through fields and embedding.
type Generator struct {
	reg     *typeinfo.Registry
	done    map[*types.TypeName]string
	pending []*types.TypeName
}

func NewGenerator() *Generator {
	return &Generator{
		reg:  typeinfo.NewRegistry(),
		done: map[*types.TypeName]string{},
	}
}

// Registry returns the declarations generated so far.
func (g *Generator) Registry() *typeinfo.Registry { return g.reg }

// AddPackage declares the named struct types of pkg, or all its exported
// struct types when names is empty.
func (g *Generator) AddPackage(pkg *types.Package, names ...string) error {
	if len(names) == 0 {
		scope := pkg.Scope()
		for _, n := range scope.Names() {
			tn, ok := scope.Lookup(n).(*types.TypeName)
			if !ok || !tn.Exported() || tn.IsAlias() {
				continue
			}
			if _, ok := tn.Type().Underlying().(*types.Struct); !ok {
				continue
			}
			if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
				continue
			}
			g.enqueue(tn)
		}
		return g.drain()
	}
	for _, n := range names {
		tn, _, err := FindStructType(pkg, n)
		if err != nil {
			return err
		}
		g.enqueue(tn)
	}
	return g.drain()
}

func (g *Generator) enqueue(tn *types.TypeName) string {
	if name, ok := g.done[tn]; ok {
		return name
	}
	name := tn.Name()
	if _, taken := g.reg.Lookup(name); taken {
		name = tn.Pkg().Name() + "." + tn.Name()
	}
	g.done[tn] = name
	g.pending = append(g.pending, tn)
	// reserve the name; drain fills in the fields
	g.reg.MustDefine(typeinfo.TypeDecl{Name: name})
	return name
}

func (g *Generator) drain() error {
	for len(g.pending) > 0 {
		tn := g.pending[0]
		g.pending = g.pending[1:]
		decl, err := g.declare(tn)
		if err != nil {
			return err
		}
		if _, err := g.reg.Define(decl); err != nil {
			return err
		}
	}
	return g.reg.Check()
}

func (g *Generator) declare(tn *types.TypeName) (typeinfo.TypeDecl, error) {
	st := tn.Type().Underlying().(*types.Struct)
	decl := typeinfo.TypeDecl{Name: g.done[tn]}
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() && decl.Super == "" {
			if stn := structName(f.Type()); stn != nil {
				decl.Super = g.enqueue(stn)
				continue
			}
		}
		if !f.Exported() {
			continue
		}
		tag := typeinfo.FieldTag{}
		if raw, ok := reflect.StructTag(st.Tag(i)).Lookup(typeinfo.TagKey); ok {
			parsed, err := typeinfo.ParseStructTag(raw)
			if err != nil {
				return decl, fmt.Errorf("%s.%s: %w", tn.Name(), f.Name(), err)
			}
			tag = typeinfo.FieldTagFrom(parsed)
		}
		name := f.Name()
		if tag.Field != "" {
			name = tag.Field
		}
		ftype, err := g.typeName(f.Type())
		if err != nil {
			return decl, fmt.Errorf("%s.%s: %w", tn.Name(), f.Name(), err)
		}
		if debug.Introspect() {
			debug.Logf("codegen %s: field %s %s", decl.Name, name, ftype)
		}
		decl.Fields = append(decl.Fields, typeinfo.FieldDecl{
			Name:      name,
			Type:      ftype,
			Static:    tag.Static,
			Transient: tag.Transient,
		})
	}
	return decl, nil
}

// structName returns the named struct type behind t and its pointers,
// or nil.
func structName(t types.Type) *types.TypeName {
	for {
		p, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	if _, ok := wellKnown[qualified(named.Obj())]; ok {
		return nil
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil
	}
	return named.Obj()
}

func qualified(tn *types.TypeName) string {
	if tn.Pkg() == nil {
		return tn.Name()
	}
	return tn.Pkg().Path() + "." + tn.Name()
}

// typeName maps a Go field type to a registry type name.
func (g *Generator) typeName(t types.Type) (string, error) {
	if p, ok := t.(*types.Pointer); ok {
		return g.typeName(p.Elem())
	}
	if named, ok := t.(*types.Named); ok {
		if name, ok := wellKnown[qualified(named.Obj())]; ok {
			return name, nil
		}
		if stn := structName(named); stn != nil {
			return g.enqueue(stn), nil
		}
		if implementsText(named) {
			return "string", nil
		}
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basicName(u)
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return "bytes", nil
		}
		return "list", nil
	case *types.Array:
		return "list", nil
	case *types.Map:
		return "map", nil
	case *types.Interface:
		return "any", nil
	case *types.Struct:
		return "", fmt.Errorf("anonymous struct fields are not supported")
	default:
		return "", fmt.Errorf("unsupported field type %s", t)
	}
}

func implementsText(named *types.Named) bool {
	ms := types.NewMethodSet(types.NewPointer(named))
	return ms.Lookup(nil, "UnmarshalText") != nil || ms.Lookup(nil, "UnmarshalJSON") != nil
}

func basicName(b *types.Basic) (string, error) {
	switch b.Kind() {
	case types.Bool:
		return "bool", nil
	case types.Int:
		return "int", nil
	case types.Int8:
		return "int8", nil
	case types.Int16:
		return "int16", nil
	case types.Int32:
		return "int32", nil
	case types.Int64:
		return "int64", nil
	case types.Uint, types.Uintptr:
		return "uint", nil
	case types.Uint8:
		return "uint8", nil
	case types.Uint16:
		return "uint16", nil
	case types.Uint32:
		return "uint32", nil
	case types.Uint64:
		return "uint64", nil
	case types.Float32:
		return "float32", nil
	case types.Float64:
		return "float64", nil
	case types.String:
		return "string", nil
	default:
		return "", fmt.Errorf("unsupported basic type %s", b)
	}
}
