package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/parse"
)

func TestEncodePretty(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "x", Val: ir.FromFloat(1.5)},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")})},
		{Key: "empty", Val: ir.FromKeyVals(nil)},
		{Key: "none", Val: ir.Null()},
	})
	want := `{
  "x": 1.5,
  "tags": [
    "a",
    "b"
  ],
  "empty": {},
  "none": null
}`
	if got := MustString(node); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeWire(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromString("<x>")},
	})
	d, err := Bytes(node)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), `{"a":1,"b":"<x>"}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	got := MustString(node, EncodeWire(true), EscapeHTML(true))
	if !strings.Contains(got, `\u003cx\u003e`) {
		t.Errorf("expected escaped html, got %s", got)
	}
}

func TestEncodeFloats(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{0.25, "0.25"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
	}
	for _, tt := range tests {
		got, err := formatFloat(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	in := `{"name":"odb","pos":{"x":1.5,"y":-2},"ids":[1,2,3],"ok":true,"q":"say \"hi\""}`
	node, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeWire(true)); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != in {
		t.Errorf("got %s, want %s", got, in)
	}
}

func TestEncodeColors(t *testing.T) {
	colors := NewColors()
	called := false
	colors.Map[Colorable{Type: ir.BoolType, Attr: ValueColor}] = func(s string, _ ...any) string {
		called = true
		return "<" + s + ">"
	}
	if got := MustString(ir.FromBool(true), EncodeColors(colors)); got != "<true>" {
		t.Errorf("got %q", got)
	}
	if !called {
		t.Error("color func not called")
	}
}
