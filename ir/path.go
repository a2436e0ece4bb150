package ir

import (
	"strconv"
	"strings"
)

// Path returns a JSONPath-style location of y within its root, e.g. "$.pos.x".
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Join appends a field to a path produced by Path.
func Join(path, field string) string {
	if field != "" && strings.IndexAny(field, "'.*$[]") == -1 {
		return path + "." + field
	}
	return path + ".'" + strings.Replace(field, "'", "\\'", -1) + "'"
}
