package pipeline

import (
	"iter"

	"github.com/odb-go/serial/entity"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/query"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
	"github.com/odb-go/serial/xduce"
)

// Member is a field paired with the type declaring it.
type Member struct {
	Type  typeinfo.Type
	Field typeinfo.Field
}

func (m Member) Valid() bool { return typeinfo.Valid(m.Field) }

// ObjectToType maps values to their types. Nil values are dropped.
func ObjectToType() xduce.Transducer[any, typeinfo.Type] {
	return func(r xduce.Reducer[typeinfo.Type]) xduce.Reducer[any] {
		return func(v any) error {
			t := typeinfo.TypeOf(v)
			if t == nil {
				return nil
			}
			return r(t)
		}
	}
}

// WithParents expands a type into itself followed by its ancestors.
func WithParents() xduce.Transducer[typeinfo.Type, typeinfo.Type] {
	return xduce.MapcatSeq(typeinfo.Ancestors)
}

// ClassToFields expands a type into the fields it declares itself.
func ClassToFields() xduce.Transducer[typeinfo.Type, Member] {
	return xduce.Mapcat(func(t typeinfo.Type) []Member {
		fs := t.DeclaredFields()
		res := make([]Member, len(fs))
		for i, f := range fs {
			res[i] = Member{Type: t, Field: f}
		}
		return res
	})
}

// AllFields expands a type into its declared and inherited fields.
func AllFields() xduce.Transducer[typeinfo.Type, Member] {
	return xduce.MapcatSeq(func(t typeinfo.Type) iter.Seq[Member] {
		return func(yield func(Member) bool) {
			for a, f := range typeinfo.AllFields(t) {
				if !yield(Member{Type: a, Field: f}) {
					return
				}
			}
		}
	})
}

// ValidFields drops static and transient fields.
func ValidFields() xduce.Transducer[Member, Member] {
	return xduce.Filter(Member.Valid)
}

// AsSymbolsOf builds symbols owned by owner.
func AsSymbolsOf(owner typeinfo.Type) xduce.Transducer[Member, symbol.Symbol] {
	return xduce.Map(func(m Member) symbol.Symbol {
		return symbol.Of(owner, m.Field)
	})
}

// AsSymbols builds symbols owned by the declaring type.
func AsSymbols() xduce.Transducer[Member, symbol.Symbol] {
	return xduce.Map(func(m Member) symbol.Symbol {
		return symbol.FromPair(m.Type, m.Field)
	})
}

// IsAssignableTo keeps the values assignable to T.
func IsAssignableTo[T any]() xduce.Transducer[any, any] {
	return xduce.Filter(func(v any) bool {
		_, ok := v.(T)
		return ok
	})
}

// Cast converts values to T, dropping those that are not.
func Cast[T any]() xduce.Transducer[any, T] {
	return func(r xduce.Reducer[T]) xduce.Reducer[any] {
		return func(v any) error {
			t, ok := v.(T)
			if !ok {
				return nil
			}
			return r(t)
		}
	}
}

// ToJSONValue parses JSON text.
func ToJSONValue(opts ...parse.ParseOption) xduce.Transducer[string, *ir.Node] {
	return xduce.MapErr(func(s string) (*ir.Node, error) {
		return parse.Parse([]byte(s), opts...)
	})
}

// SymbolToNode decodes each symbol against doc.
func SymbolToNode(codec *node.Codec, doc *ir.Node) xduce.Transducer[symbol.Symbol, *node.Node] {
	return xduce.MapErr(func(s symbol.Symbol) (*node.Node, error) {
		return codec.SymbolToNode(s, doc)
	})
}

// DocToNodes decodes each document as the fields of t. Each document
// yields one node per symbol of t.
func DocToNodes(codec *node.Codec, t typeinfo.Type) xduce.Transducer[*ir.Node, *node.Node] {
	return func(r xduce.Reducer[*node.Node]) xduce.Reducer[*ir.Node] {
		return func(doc *ir.Node) error {
			nodes, err := codec.Decode(t, doc)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				if err := r(n); err != nil {
					return err
				}
			}
			return nil
		}
	}
}

// JSONToNodes is ToJSONValue followed by DocToNodes.
func JSONToNodes(codec *node.Codec, t typeinfo.Type) xduce.Transducer[string, *node.Node] {
	return xduce.Comp(ToJSONValue(), DocToNodes(codec, t))
}

// Components flattens entities into their component nodes, one level.
func Components() xduce.Transducer[*entity.Data, *node.Node] {
	return xduce.Mapcat(func(d *entity.Data) []*node.Node {
		return d.Components
	})
}

// NodesToSymbols maps each component of each entity to its symbol in
// all, matching by name and type. Unmatched components are dropped.
func NodesToSymbols(all []symbol.Symbol, opts ...node.ResolveOption) xduce.Transducer[*entity.Data, symbol.Symbol] {
	res := node.NewResolver(all, opts...)
	return xduce.Comp(Components(), xduce.Mapcat(res.AsSymbols))
}

// Where keeps the nodes matching q.
func Where(q *query.Query) xduce.Transducer[*node.Node, *node.Node] {
	return xduce.FilterErr(q.Match)
}
