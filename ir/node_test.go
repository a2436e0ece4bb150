package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: "y", Val: FromFloat(2)},
		{Key: "x", Val: FromFloat(1.5)},
	})
	x, ok := doc.Lookup("x")
	if !ok {
		t.Fatal("x not found")
	}
	if *x.Float64 != 1.5 {
		t.Errorf("x = %v, want 1.5", *x.Float64)
	}
	if _, ok := doc.Lookup("z"); ok {
		t.Error("z should not be found")
	}
	if Get(FromInt(3), "x") != nil {
		t.Error("lookup on a number should yield nil")
	}
	var nilNode *Node
	if _, ok := nilNode.Lookup("x"); ok {
		t.Error("lookup on nil should fail")
	}
	if diff := cmp.Diff([]string{"y", "x"}, doc.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestFromMapSorted(t *testing.T) {
	doc := FromMap(map[string]*Node{
		"b": FromInt(2),
		"a": FromInt(1),
	})
	if diff := cmp.Diff([]string{"a", "b"}, doc.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestPath(t *testing.T) {
	inner := FromSlice([]*Node{FromInt(1), FromInt(2)})
	doc := FromKeyVals([]KeyVal{
		{Key: "pos", Val: FromKeyVals([]KeyVal{{Key: "xs", Val: inner}})},
		{Key: "a.b", Val: FromBool(true)},
	})
	tests := []struct {
		node *Node
		want string
	}{
		{doc, "$"},
		{inner, "$.pos.xs"},
		{inner.Values[1], "$.pos.xs[1]"},
		{Get(doc, "a.b"), "$.'a.b'"},
	}
	for _, tt := range tests {
		if got := tt.node.Path(); got != tt.want {
			t.Errorf("Path() = %q, want %q", got, tt.want)
		}
	}
	if got := Join("$.pos", "x"); got != "$.pos.x" {
		t.Errorf("Join = %q", got)
	}
}

func TestClone(t *testing.T) {
	doc := FromKeyVals([]KeyVal{{Key: "n", Val: FromInt(7)}})
	c := doc.Clone()
	*Get(c, "n").Int64 = 8
	if *Get(doc, "n").Int64 != 7 {
		t.Error("clone shares number storage with original")
	}
	if Get(c, "n").Parent != c {
		t.Error("clone children should point at the clone")
	}
}
