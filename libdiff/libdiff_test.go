package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/parse"
)

func TestText(t *testing.T) {
	from := "a\nb\nc\n"
	to := "a\nB\nc\n"
	want := " a\n-b\n+B\n c\n"
	if diff := cmp.Diff(want, Text(from, to)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if Text(from, from) != "" {
		t.Error("equal texts should give no diff")
	}
	if Changed(Lines(from, from)) {
		t.Error("equal texts reported as changed")
	}
}

func doc(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestMergePatch(t *testing.T) {
	from := doc(t, `{"x": 1, "y": 2, "tags": ["a"]}`)
	to := doc(t, `{"x": 1, "y": 3, "z": true, "tags": ["a"]}`)
	p, err := MergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	same, err := Same(p, doc(t, `{"y": 3, "z": true}`))
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Errorf("patch = %s", encode.MustString(p, encode.EncodeWire(true)))
	}
	got, err := ApplyMerge(from, p)
	if err != nil {
		t.Fatal(err)
	}
	if same, _ := Same(got, to); !same {
		t.Errorf("applied = %s", encode.MustString(got, encode.EncodeWire(true)))
	}
}

func TestApplyPatch(t *testing.T) {
	from := doc(t, `{"pos": {"x": 1, "y": 2}}`)
	p := doc(t, `[{"op": "replace", "path": "/pos/x", "value": 5}, {"op": "remove", "path": "/pos/y"}]`)
	got, err := ApplyPatch(from, p)
	if err != nil {
		t.Fatal(err)
	}
	if same, _ := Same(got, doc(t, `{"pos": {"x": 5}}`)); !same {
		t.Errorf("applied = %s", encode.MustString(got, encode.EncodeWire(true)))
	}
	if _, err := ApplyPatch(from, doc(t, `[{"op": "remove", "path": "/nope"}]`)); err == nil {
		t.Error("expected error removing a missing path")
	}
}
