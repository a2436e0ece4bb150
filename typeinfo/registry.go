package typeinfo

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUndefined = errors.New("undefined type")

// builtinNames maps the type names a registry accepts for built-in field
// types to their Go types.
var builtinNames = map[string]reflect.Type{
	"bool":     reflect.TypeFor[bool](),
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"uint8":    reflect.TypeFor[uint8](),
	"uint16":   reflect.TypeFor[uint16](),
	"uint32":   reflect.TypeFor[uint32](),
	"uint64":   reflect.TypeFor[uint64](),
	"float":    reflect.TypeFor[float64](),
	"float32":  reflect.TypeFor[float32](),
	"float64":  reflect.TypeFor[float64](),
	"string":   reflect.TypeFor[string](),
	"bytes":    reflect.TypeFor[[]byte](),
	"time":     reflect.TypeFor[time.Time](),
	"duration": reflect.TypeFor[time.Duration](),
	"uuid":     reflect.TypeFor[uuid.UUID](),
	"decimal":  reflect.TypeFor[decimal.Decimal](),
	"list":     reflect.TypeFor[[]any](),
	"map":      reflect.TypeFor[map[string]any](),
	"any":      reflect.TypeFor[any](),
}

// Builtin returns the built-in Type registered under name, e.g. "float".
func Builtin(name string) (Type, bool) {
	rt, ok := builtinNames[name]
	if !ok {
		return nil, false
	}
	return Of(rt), true
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	res := make([]string, 0, len(builtinNames))
	for k := range builtinNames {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// RegistryFile is the YAML layout of a registry.
type RegistryFile struct {
	Types []TypeDecl `yaml:"types"`
}

type TypeDecl struct {
	Name   string      `yaml:"name"`
	Super  string      `yaml:"super,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
}

type FieldDecl struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Static    bool   `yaml:"static,omitempty"`
	Transient bool   `yaml:"transient,omitempty"`
}

// Registry describes composite types explicitly, for documents whose
// types have no Go definition. Field types name either another type of
// the registry or a built-in (see Builtin). References are resolved
// lazily so types may be defined in any order; Check reports dangling
// ones.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*declType
	order []string
}

func NewRegistry() *Registry {
	return &Registry{types: map[string]*declType{}}
}

type declType struct {
	reg  *Registry
	decl TypeDecl
}

// Define adds or replaces a composite type.
func (r *Registry) Define(decl TypeDecl) (Type, error) {
	if decl.Name == "" {
		return nil, fmt.Errorf("type without a name")
	}
	if _, ok := builtinNames[decl.Name]; ok {
		return nil, fmt.Errorf("type %q shadows a built-in", decl.Name)
	}
	seen := map[string]bool{}
	for _, f := range decl.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("type %q: field without a name", decl.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("type %q: duplicate field %q", decl.Name, f.Name)
		}
		seen[f.Name] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[decl.Name]; !ok {
		r.order = append(r.order, decl.Name)
	}
	t := &declType{reg: r, decl: decl}
	r.types[decl.Name] = t
	return t, nil
}

// MustDefine is Define for statically known declarations.
func (r *Registry) MustDefine(decl TypeDecl) Type {
	t, err := r.Define(decl)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves name to a registry type or a built-in.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if ok {
		return t, true
	}
	return Builtin(name)
}

// Types returns the registry types in definition order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Type, len(r.order))
	for i, name := range r.order {
		res[i] = r.types[name]
	}
	return res
}

// Check verifies that every super and field type resolves and that no
// super chain loops.
func (r *Registry) Check() error {
	var errs []error
	for _, t := range r.Types() {
		dt := t.(*declType)
		if dt.decl.Super != "" {
			st, ok := r.Lookup(dt.decl.Super)
			if !ok {
				errs = append(errs, fmt.Errorf("%w %q: super of %q", ErrUndefined, dt.decl.Super, dt.decl.Name))
			} else if st.Kind() != Composite {
				errs = append(errs, fmt.Errorf("type %q: super %q is built in", dt.decl.Name, dt.decl.Super))
			}
		}
		for _, f := range dt.decl.Fields {
			if _, ok := r.Lookup(f.Type); !ok {
				errs = append(errs, fmt.Errorf("%w %q: field %s.%s", ErrUndefined, f.Type, dt.decl.Name, f.Name))
			}
		}
		if err := r.checkChain(dt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) checkChain(dt *declType) error {
	seen := map[string]bool{dt.decl.Name: true}
	cur := dt.decl.Super
	for cur != "" {
		if seen[cur] {
			return fmt.Errorf("type %q: super chain loops at %q", dt.decl.Name, cur)
		}
		seen[cur] = true
		r.mu.RLock()
		next, ok := r.types[cur]
		r.mu.RUnlock()
		if !ok {
			return nil
		}
		cur = next.decl.Super
	}
	return nil
}

// Load reads a YAML registry file into r and checks it.
func (r *Registry) Load(rd io.Reader) error {
	d, err := io.ReadAll(rd)
	if err != nil {
		return err
	}
	return r.LoadYAML(d)
}

func (r *Registry) LoadYAML(d []byte) error {
	var file RegistryFile
	if err := yaml.Unmarshal(d, &file); err != nil {
		return fmt.Errorf("reading registry: %w", err)
	}
	for _, decl := range file.Types {
		if _, err := r.Define(decl); err != nil {
			return err
		}
	}
	return r.Check()
}

// YAML encodes the registry in the layout read by LoadYAML.
func (r *Registry) YAML() ([]byte, error) {
	file := RegistryFile{}
	for _, t := range r.Types() {
		file.Types = append(file.Types, t.(*declType).decl)
	}
	return yaml.Marshal(file)
}

func (t *declType) ID() string           { return t.decl.Name }
func (t *declType) Name() string         { return t.decl.Name }
func (t *declType) Kind() Kind           { return Composite }
func (t *declType) GoType() reflect.Type { return nil }
func (t *declType) String() string       { return t.decl.Name }

func (t *declType) Super() Type {
	if t.decl.Super == "" {
		return nil
	}
	return t.reg.mustLookup(t.decl.Super)
}

func (t *declType) DeclaredFields() []Field {
	res := make([]Field, len(t.decl.Fields))
	for i, f := range t.decl.Fields {
		res[i] = Field{
			Name:      f.Name,
			Type:      t.reg.mustLookup(f.Type),
			Static:    f.Static,
			Transient: f.Transient,
		}
	}
	return res
}

func (r *Registry) mustLookup(name string) Type {
	t, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("typeinfo: %v %q", ErrUndefined, name))
	}
	return t
}
