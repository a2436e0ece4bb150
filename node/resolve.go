package node

import (
	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/symbol"

	"go.uber.org/zap"
)

// Resolver maps nodes back to the symbols they were decoded from.
// Nodes without a matching symbol are dropped: they are reported through
// OnUnresolved and the debug log but are not errors.
type Resolver struct {
	idx          *symbol.Index
	onUnresolved func(*Node)
	log          *zap.SugaredLogger
}

type ResolveOption func(*Resolver)

func OnUnresolved(f func(*Node)) ResolveOption {
	return func(r *Resolver) { r.onUnresolved = f }
}

func NewResolver(all []symbol.Symbol, opts ...ResolveOption) *Resolver {
	r := &Resolver{idx: symbol.NewIndex(all), log: debug.Logger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the symbol matching n by field name and type.
func (r *Resolver) Resolve(n *Node) (symbol.Symbol, bool) {
	s, ok := r.idx.Lookup(n.Name, n.Type)
	if ok {
		return s, true
	}
	if debug.Resolve() {
		tname := "<nil>"
		if n.Type != nil {
			tname = n.Type.Name()
		}
		r.log.Debugw("dropping unresolved node", "name", n.Name, "type", tname)
	}
	if r.onUnresolved != nil {
		r.onUnresolved(n)
	}
	return symbol.Symbol{}, false
}

// AsSymbols is Resolve shaped for expansion stages: zero or one symbol.
func (r *Resolver) AsSymbols(n *Node) []symbol.Symbol {
	s, ok := r.Resolve(n)
	if !ok {
		return nil
	}
	return []symbol.Symbol{s}
}
