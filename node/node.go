package node

import (
	"fmt"
	"strings"

	"github.com/odb-go/serial/typeinfo"
)

// Node is one decoded field value. Leaf nodes, those of a built-in type
// or of a type with its own LeafCodec, carry Value; composite nodes carry
// Children, one per field of Type.
type Node struct {
	Name     string
	Type     typeinfo.Type
	Value    any
	Children []*Node

	// Null marks a composite whose document value was null.
	Null bool
}

func Leaf(name string, t typeinfo.Type, v any) *Node {
	return &Node{Name: name, Type: t, Value: v}
}

func Composite(name string, t typeinfo.Type, children ...*Node) *Node {
	return &Node{Name: name, Type: t, Children: children}
}

func (n *Node) IsLeaf() bool {
	return typeinfo.IsBuiltIn(n.Type) || n.Value != nil
}

// Child returns the direct child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth first. Returning false from f
// skips the children of that node.
func (n *Node) Walk(f func(path string, n *Node) bool) {
	n.walk(n.Name, f)
}

func (n *Node) walk(path string, f func(string, *Node) bool) {
	if !f(path, n) {
		return
	}
	for _, c := range n.Children {
		c.walk(path+"."+c.Name, f)
	}
}

func (n *Node) String() string {
	buf := &strings.Builder{}
	n.format(buf)
	return buf.String()
}

func (n *Node) format(buf *strings.Builder) {
	tname := "<nil>"
	if n.Type != nil {
		tname = n.Type.Name()
	}
	switch {
	case n.IsLeaf():
		fmt.Fprintf(buf, "%s:%s=%v", n.Name, tname, n.Value)
	case n.Null:
		fmt.Fprintf(buf, "%s:%s=null", n.Name, tname)
	default:
		fmt.Fprintf(buf, "%s:%s{", n.Name, tname)
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteString(", ")
			}
			c.format(buf)
		}
		buf.WriteString("}")
	}
}
