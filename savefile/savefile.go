package savefile

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/entity"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/typeinfo"
)

var ErrFormat = errors.New("invalid save file")

const (
	identifiersKey = "componentIdentifiers"
	entitiesKey    = "entities"
	idKey          = "id"
	componentsKey  = "components"
)

// Serializer saves and loads entities through a node codec. Component
// types must be registered before Load can decode them; Save registers
// the types it meets.
type Serializer struct {
	codec  *node.Codec
	pretty bool
	colors *encode.Colors
	types  map[string]typeinfo.Type // id -> type
	idents map[string]string        // id -> identifier
	taken  map[string]string        // identifier -> id
}

func NewSerializer(codec *node.Codec) *Serializer {
	if codec == nil {
		codec = node.NewCodec()
	}
	return &Serializer{
		codec:  codec,
		types:  map[string]typeinfo.Type{},
		idents: map[string]string{},
		taken:  map[string]string{},
	}
}

func (s *Serializer) PrettyPrint(v bool) *Serializer {
	s.pretty = v
	return s
}

// Colors colors pretty printed output.
func (s *Serializer) Colors(c *encode.Colors) *Serializer {
	s.colors = c
	return s
}

// Register registers the type of prototype as a component type.
func (s *Serializer) Register(prototype any) *Serializer {
	return s.RegisterType(typeinfo.TypeOf(prototype))
}

// RegisterCodec registers the type of prototype as a component type
// whose values lc saves and loads in place of the field by field form.
func (s *Serializer) RegisterCodec(prototype any, lc node.LeafCodec) *Serializer {
	t := typeinfo.TypeOf(prototype)
	if t == nil {
		return s
	}
	s.codec = s.codec.With(node.WithTypeCodec(t, lc))
	return s.RegisterType(t)
}

func (s *Serializer) RegisterType(t typeinfo.Type) *Serializer {
	if t == nil {
		return s
	}
	if _, ok := s.types[t.ID()]; ok {
		return s
	}
	s.types[t.ID()] = t
	ident := t.Name()
	for i := 2; ; i++ {
		if _, ok := s.taken[ident]; !ok {
			break
		}
		ident = t.Name() + "_" + strconv.Itoa(i)
	}
	s.idents[t.ID()] = ident
	s.taken[ident] = t.ID()
	return s
}

// Types returns the registered component types ordered by identifier.
func (s *Serializer) Types() []typeinfo.Type {
	res := make([]typeinfo.Type, 0, len(s.types))
	for _, t := range s.types {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		return s.idents[res[i].ID()] < s.idents[res[j].ID()]
	})
	return res
}

// Document builds the save file document for entities.
func (s *Serializer) Document(entities []*entity.Data) (*ir.Node, error) {
	used := map[string]bool{}
	ents := make([]*ir.Node, 0, len(entities))
	for _, e := range entities {
		comps := make([]ir.KeyVal, 0, len(e.Components))
		for _, c := range e.Components {
			s.RegisterType(c.Type)
			used[c.Type.ID()] = true
			v, err := s.codec.ToIR(c)
			if err != nil {
				return nil, fmt.Errorf("entity %d: %w", e.ID, err)
			}
			comps = append(comps, ir.KeyVal{Key: s.idents[c.Type.ID()], Val: v})
		}
		ents = append(ents, ir.FromKeyVals([]ir.KeyVal{
			{Key: idKey, Val: ir.FromInt(int64(e.ID))},
			{Key: componentsKey, Val: ir.FromKeyVals(comps)},
		}))
	}
	ids := make(map[string]*ir.Node, len(used))
	for id := range used {
		ids[id] = ir.FromString(s.idents[id])
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: identifiersKey, Val: ir.FromMap(ids)},
		{Key: entitiesKey, Val: ir.FromSlice(ents)},
	}), nil
}

// Save writes entities to w, compact unless PrettyPrint is set.
func (s *Serializer) Save(w io.Writer, entities []*entity.Data) error {
	doc, err := s.Document(entities)
	if err != nil {
		return err
	}
	opts := []encode.EncodeOption{encode.EncodeWire(!s.pretty)}
	if s.pretty && s.colors != nil {
		opts = append(opts, encode.EncodeColors(s.colors))
	}
	return encode.Encode(doc, w, opts...)
}

// Load reads entities saved by Save.
func (s *Serializer) Load(r io.Reader) ([]*entity.Data, error) {
	doc, err := parse.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return s.FromDocument(doc)
}

// FromDocument decodes the entities of a parsed save file.
func (s *Serializer) FromDocument(doc *ir.Node) ([]*entity.Data, error) {
	if doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: top level is %s, not an object", ErrFormat, doc.Type)
	}
	byIdent, err := s.identifiers(doc)
	if err != nil {
		return nil, err
	}
	ents, ok := doc.Lookup(entitiesKey)
	if !ok || ents.Type == ir.NullType {
		return nil, nil
	}
	if ents.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: %s is %s, not an array", ErrFormat, ents.Path(), ents.Type)
	}
	res := make([]*entity.Data, 0, len(ents.Values))
	for _, ev := range ents.Values {
		e, err := s.loadEntity(ev, byIdent)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

// identifiers maps component identifiers of doc to registered types.
// Identifiers without a registered type are left out.
func (s *Serializer) identifiers(doc *ir.Node) (map[string]typeinfo.Type, error) {
	res := map[string]typeinfo.Type{}
	ids, ok := doc.Lookup(identifiersKey)
	if !ok {
		for id, ident := range s.idents {
			res[ident] = s.types[id]
		}
		return res, nil
	}
	if ids.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s is %s, not an object", ErrFormat, ids.Path(), ids.Type)
	}
	for i, f := range ids.Fields {
		v := ids.Values[i]
		if v.Type != ir.StringType {
			return nil, fmt.Errorf("%w: identifier at %s is %s, not a string", ErrFormat, v.Path(), v.Type)
		}
		t, ok := s.types[f.String]
		if !ok {
			// types from a registry only know their short name
			if id, taken := s.taken[v.String]; taken {
				t, ok = s.types[id], true
			}
		}
		if !ok {
			if debug.Resolve() {
				debug.Logf("savefile: no registered type %s (%s)", f.String, v.String)
			}
			continue
		}
		res[v.String] = t
	}
	return res, nil
}

func (s *Serializer) loadEntity(ev *ir.Node, byIdent map[string]typeinfo.Type) (*entity.Data, error) {
	if ev.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: entity at %s is %s, not an object", ErrFormat, ev.Path(), ev.Type)
	}
	idv, ok := ev.Lookup(idKey)
	if !ok || idv.Int64 == nil {
		return nil, fmt.Errorf("%w: entity at %s has no integer id", ErrFormat, ev.Path())
	}
	e := entity.New(int(*idv.Int64))
	comps, ok := ev.Lookup(componentsKey)
	if !ok || comps.Type == ir.NullType {
		return e, nil
	}
	if comps.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s is %s, not an object", ErrFormat, comps.Path(), comps.Type)
	}
	for i, f := range comps.Fields {
		t, ok := byIdent[f.String]
		if !ok {
			if debug.Resolve() {
				debug.Logf("savefile: entity %d: skipping unknown component %s", e.ID, f.String)
			}
			continue
		}
		n, err := s.codec.DecodeNode(t.Name(), t, comps.Values[i])
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", e.ID, err)
		}
		e.Components = append(e.Components, n)
	}
	return e, nil
}
