package symbol

import "github.com/odb-go/serial/typeinfo"

type key struct {
	field  string
	typeID string
}

// Index finds symbols by field name and declared type. A name shared by
// fields of unrelated owners is told apart by type; when owners share
// both name and type the first symbol added wins.
type Index struct {
	syms  []Symbol
	byKey map[key]int
}

func NewIndex(syms []Symbol) *Index {
	idx := &Index{byKey: make(map[key]int, len(syms))}
	for _, s := range syms {
		idx.Add(s)
	}
	return idx
}

func (idx *Index) Add(s Symbol) {
	k := key{field: s.Field, typeID: s.Type.ID()}
	if _, ok := idx.byKey[k]; ok {
		return
	}
	idx.byKey[k] = len(idx.syms)
	idx.syms = append(idx.syms, s)
}

// Lookup returns the symbol named field with declared type t.
func (idx *Index) Lookup(field string, t typeinfo.Type) (Symbol, bool) {
	if t == nil {
		return Symbol{}, false
	}
	i, ok := idx.byKey[key{field: field, typeID: t.ID()}]
	if !ok {
		return Symbol{}, false
	}
	return idx.syms[i], true
}

func (idx *Index) Len() int { return len(idx.syms) }

// Symbols returns the indexed symbols in insertion order.
func (idx *Index) Symbols() []Symbol {
	return append([]Symbol(nil), idx.syms...)
}
