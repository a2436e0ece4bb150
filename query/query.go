// Package query filters nodes with expr-lang predicates.
//
// A predicate sees the node through these names:
//
//	name      string  field name of the node
//	typename  string  type name
//	kind      string  kind of the type, e.g. "float" or "composite"
//	value     any     leaf value, nil for composites
//	null      bool    composite decoded from null
//	leaf      bool    whether the node is a leaf
//	field(path)       value of the descendant leaf at a dotted path, or nil
//	has(path)         whether the descendant exists
//
// For example `name == "pos" && field("x") > 0`.
package query

import (
	"fmt"
	"strings"

	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/node"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Query struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(env(nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string { return q.src }

// Match runs the predicate against n.
func (q *Query) Match(n *node.Node) (bool, error) {
	res, err := expr.Run(q.prg, env(n))
	if err != nil {
		return false, fmt.Errorf("query %q on %s: %w", q.src, n.Name, err)
	}
	ok := res.(bool)
	if debug.Pipeline() {
		debug.Logf("query %q on %s: %t", q.src, n.Name, ok)
	}
	return ok, nil
}

func env(n *node.Node) map[string]any {
	res := map[string]any{
		"name":     "",
		"typename": "",
		"kind":     "",
		"value":    any(nil),
		"null":     false,
		"leaf":     false,
		"field":    func(path string) any { return descendantValue(n, path) },
		"has":      func(path string) bool { return descendant(n, path) != nil },
	}
	if n == nil {
		return res
	}
	res["name"] = n.Name
	if n.Type != nil {
		res["typename"] = n.Type.Name()
		res["kind"] = n.Type.Kind().String()
	}
	res["value"] = n.Value
	res["null"] = n.Null
	res["leaf"] = n.IsLeaf()
	return res
}

func descendant(n *node.Node, path string) *node.Node {
	if n == nil {
		return nil
	}
	cur := n
	for _, part := range strings.Split(path, ".") {
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func descendantValue(n *node.Node, path string) any {
	d := descendant(n, path)
	if d == nil {
		return nil
	}
	return d.Value
}
