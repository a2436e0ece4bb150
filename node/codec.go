package node

import (
	"maps"

	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"

	"go.uber.org/zap"
)

const defaultMaxDepth = 64

// Codec decodes document values into nodes following symbols, and
// encodes Go values and nodes back. A Codec holds configuration only and
// may be shared between goroutines.
type Codec struct {
	leaf     LeafCodec
	types    map[string]LeafCodec // type id -> codec
	strict   bool
	maxDepth int
	log      *zap.SugaredLogger
}

type Option func(*Codec)

// WithLeafCodec replaces the JSON codec used for built-in values.
func WithLeafCodec(lc LeafCodec) Option {
	return func(c *Codec) { c.leaf = lc }
}

// WithTypeCodec makes lc encode and decode values of t, composite or
// built-in, as a whole. Nodes of t then carry the Go value instead of
// children.
func WithTypeCodec(t typeinfo.Type, lc LeafCodec) Option {
	return func(c *Codec) {
		if c.types == nil {
			c.types = map[string]LeafCodec{}
		}
		c.types[t.ID()] = lc
	}
}

// Strict makes a built-in field absent from the document a decode error
// instead of decoding to its zero value.
func Strict(v bool) Option {
	return func(c *Codec) { c.strict = v }
}

// MaxDepth bounds the nesting of composite types.
func MaxDepth(n int) Option {
	return func(c *Codec) { c.maxDepth = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Codec) { c.log = l.Sugar() }
}

func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		leaf:     JSONLeafCodec{},
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = debug.Logger()
	}
	return c
}

// With returns a copy of c with opts applied.
func (c *Codec) With(opts ...Option) *Codec {
	cp := *c
	cp.types = maps.Clone(c.types)
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// leafFor returns the codec for values of t and whether t has one of its
// own.
func (c *Codec) leafFor(t typeinfo.Type) (LeafCodec, bool) {
	if t != nil {
		if lc, ok := c.types[t.ID()]; ok {
			return lc, true
		}
	}
	return c.leaf, false
}

// SymbolToNode decodes doc[s.Field]. Built-in symbols decode to a leaf
// through the leaf codec; composite ones to a node whose children decode
// the fields of s.Type against the nested object.
func (c *Codec) SymbolToNode(s symbol.Symbol, doc *ir.Node) (*Node, error) {
	path := "$"
	if doc != nil {
		path = doc.Path()
	}
	return c.decodeSymbol(s, doc, path, 0)
}

// Decode decodes every field of t from the object doc, in symbol order.
func (c *Codec) Decode(t typeinfo.Type, doc *ir.Node) ([]*Node, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, &DecodeError{FieldPath: pathOf(doc), Symbol: symbol.Symbol{Type: t}, Err: ErrMalformed}
	}
	syms := symbol.For(t)
	res := make([]*Node, 0, len(syms))
	for _, s := range syms {
		n, err := c.decodeSymbol(s, doc, doc.Path(), 0)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

// DecodeNode decodes doc as a whole value of t, named name.
func (c *Codec) DecodeNode(name string, t typeinfo.Type, doc *ir.Node) (*Node, error) {
	return c.decodeValue(symbol.Symbol{Field: name, Type: t}, doc, doc != nil, pathOf(doc), 0)
}

func pathOf(doc *ir.Node) string {
	if doc == nil {
		return "$"
	}
	return doc.Path()
}

func (c *Codec) decodeSymbol(s symbol.Symbol, doc *ir.Node, path string, depth int) (*Node, error) {
	val, ok := doc.Lookup(s.Field)
	return c.decodeValue(s, val, ok, ir.Join(path, s.Field), depth)
}

func (c *Codec) decodeValue(s symbol.Symbol, val *ir.Node, ok bool, fpath string, depth int) (*Node, error) {
	if debug.Decode() {
		c.log.Debugw("decode", "path", fpath, "symbol", s.String(), "present", ok)
	}
	if lc, own := c.leafFor(s.Type); own || s.IsBuiltIn() {
		if !ok && (c.strict || !s.IsBuiltIn()) {
			return nil, &DecodeError{FieldPath: fpath, Symbol: s, Err: ErrMissing}
		}
		if ok && val.Type == ir.NullType {
			if !s.IsBuiltIn() {
				return &Node{Name: s.Field, Type: s.Type, Null: true}, nil
			}
			// nil pointers and interfaces stay nil
			return Leaf(s.Field, s.Type, nil), nil
		}
		v, err := lc.DecodeLeaf(s.Type, val)
		if err != nil {
			return nil, &DecodeError{FieldPath: fpath, Symbol: s, Err: err}
		}
		return Leaf(s.Field, s.Type, v), nil
	}
	if depth >= c.maxDepth {
		return nil, &DecodeError{FieldPath: fpath, Symbol: s, Err: ErrTooDeep}
	}
	switch {
	case !ok:
		return nil, &DecodeError{FieldPath: fpath, Symbol: s, Err: ErrMissing}
	case val.Type == ir.NullType:
		return &Node{Name: s.Field, Type: s.Type, Null: true}, nil
	case val.Type != ir.ObjectType:
		return nil, &DecodeError{FieldPath: fpath, Symbol: s, Err: ErrMalformed}
	}
	children := symbol.For(s.Type)
	res := Composite(s.Field, s.Type)
	res.Children = make([]*Node, 0, len(children))
	for _, cs := range children {
		child, err := c.decodeSymbol(cs, val, fpath, depth+1)
		if err != nil {
			return nil, err
		}
		res.Children = append(res.Children, child)
	}
	return res, nil
}
