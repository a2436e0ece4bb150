package node

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
	"github.com/shopspring/decimal"
)

type Position struct {
	X float64 `odb:"field=x"`
	Y float64 `odb:"field=y"`
}

type Named struct {
	Name string `odb:"field=name"`
}

type Ship struct {
	*Named
	ID      uuid.UUID       `odb:"field=id"`
	Pos     Position        `odb:"field=pos"`
	Dock    *Position       `odb:"field=dock"`
	Cargo   decimal.Decimal `odb:"field=cargo"`
	Built   time.Time       `odb:"field=built"`
	Crew    []string        `odb:"field=crew"`
	Callsig *string         `odb:"field=callsign"`
	scratch int
	Dirty   bool `odb:"-"`
}

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	doc, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return doc
}

func TestPositionScenario(t *testing.T) {
	pos := typeinfo.For[Position]()
	syms := symbol.For(pos)
	f64 := typeinfo.For[float64]()
	wantSyms := []symbol.Symbol{
		{Owner: pos, Field: "x", Type: f64},
		{Owner: pos, Field: "y", Type: f64},
	}
	if len(syms) != len(wantSyms) {
		t.Fatalf("got %d symbols", len(syms))
	}
	for i := range syms {
		if !syms[i].Equal(wantSyms[i]) {
			t.Errorf("symbol %d = %s, want %s", i, syms[i], wantSyms[i])
		}
	}

	doc := mustParse(t, `{"x":1.5,"y":2.0}`)
	codec := NewCodec()
	var got []*Node
	for _, s := range syms {
		n, err := codec.SymbolToNode(s, doc)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, n)
	}
	want := []*Node{Leaf("x", f64, 1.5), Leaf("y", f64, 2.0)}
	if diff := cmp.Diff(want, got, cmpNodes); diff != "" {
		t.Errorf("nodes (-want +got):\n%s", diff)
	}
}

var cmpNodes = cmp.Comparer(func(a, b typeinfo.Type) bool { return typeinfo.Equal(a, b) })

func TestDecodeComposite(t *testing.T) {
	doc := mustParse(t, `{
		"name": "Nostromo",
		"id": "0b6e2c2e-8d5e-4b1f-9a56-0f6c1d2f6a11",
		"pos": {"x": 1, "y": -2.5, "extra": true},
		"dock": null,
		"cargo": "12.50",
		"built": "2122-06-03T00:00:00Z",
		"crew": ["ripley", "dallas"],
		"unknown": {"a": 1}
	}`)
	nodes, err := NewCodec().Decode(typeinfo.For[Ship](), doc)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	wantNames := []string{"id", "pos", "dock", "cargo", "built", "crew", "callsign", "name"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	byName := map[string]*Node{}
	for _, n := range nodes {
		byName[n.Name] = n
	}
	if byName["name"].Value != "Nostromo" {
		t.Errorf("name = %v", byName["name"].Value)
	}
	pos := byName["pos"]
	if pos.IsLeaf() || len(pos.Children) != 2 || pos.Child("y").Value != -2.5 {
		t.Errorf("pos = %s", pos)
	}
	if !byName["dock"].Null {
		t.Errorf("dock should be null: %s", byName["dock"])
	}
	if !byName["cargo"].Value.(decimal.Decimal).Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("cargo = %v", byName["cargo"].Value)
	}
	if byName["id"].Value.(uuid.UUID).String() != "0b6e2c2e-8d5e-4b1f-9a56-0f6c1d2f6a11" {
		t.Errorf("id = %v", byName["id"].Value)
	}
	if byName["callsign"].Value != "" {
		t.Errorf("missing callsign should decode to zero value, got %#v", byName["callsign"].Value)
	}
}

func TestDecodeErrors(t *testing.T) {
	ship := typeinfo.For[Ship]()
	tests := []struct {
		name  string
		doc   string
		opts  []Option
		want  error
		where string
	}{
		{name: "wrong leaf type", doc: `{"pos": {"x": "one", "y": 1}, "dock": null}`, want: ErrMalformed, where: "$.pos.x"},
		{name: "composite missing", doc: `{"dock": null}`, want: ErrMissing, where: "$.pos"},
		{name: "composite not object", doc: `{"pos": 3, "dock": null}`, want: ErrMalformed, where: "$.pos"},
		{name: "strict missing leaf", doc: `{"pos": {"x": 1, "y": 1}, "dock": null}`, opts: []Option{Strict(true)}, want: ErrMissing, where: "$.id"},
		{name: "too deep", doc: `{"pos": {"x": 1, "y": 1}, "dock": null}`, opts: []Option{MaxDepth(0)}, want: ErrTooDeep, where: "$.pos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(tt.opts...).Decode(ship, mustParse(t, tt.doc))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err %T is not a *DecodeError", err)
			}
			if de.FieldPath != tt.where {
				t.Errorf("path = %s, want %s", de.FieldPath, tt.where)
			}
		})
	}
}

type Loop struct {
	Next Inner `odb:"field=next"`
}

type Inner struct {
	Back *Loop `odb:"field=back"`
}

func TestDecodeSelfReferenceEndsAtDocument(t *testing.T) {
	doc := mustParse(t, `{"next": {"back": {"next": {"back": null}}}}`)
	nodes, err := NewCodec().Decode(typeinfo.For[Loop](), doc)
	if err != nil {
		t.Fatal(err)
	}
	back := nodes[0].Child("back").Child("next").Child("back")
	if !back.Null {
		t.Errorf("innermost back = %s", back)
	}
	_, err = NewCodec().Decode(typeinfo.For[Loop](), mustParse(t, `{"next": {"back": {}}}`))
	if !errors.Is(err, ErrMissing) {
		t.Errorf("err = %v, want ErrMissing", err)
	}
}

func TestRoundTrip(t *testing.T) {
	callsign := "MU-TH-UR"
	in := Ship{
		Named:   &Named{Name: "Nostromo"},
		ID:      uuid.MustParse("0b6e2c2e-8d5e-4b1f-9a56-0f6c1d2f6a11"),
		Pos:     Position{X: 1.5, Y: 2},
		Dock:    &Position{X: -1},
		Cargo:   decimal.RequireFromString("12.5"),
		Built:   time.Date(2122, 6, 3, 0, 0, 0, 0, time.UTC),
		Crew:    []string{"ripley", "dallas"},
		Callsig: &callsign,
		scratch: 3,
		Dirty:   true,
	}
	codec := NewCodec()
	n, err := codec.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := codec.ToIR(n)
	if err != nil {
		t.Fatal(err)
	}
	text := encode.MustString(doc)
	reparsed := mustParse(t, text)
	if _, ok := reparsed.Lookup("Dirty"); ok {
		t.Errorf("transient field encoded:\n%s", text)
	}

	decoded, err := codec.DecodeNode("Ship", typeinfo.For[Ship](), reparsed)
	if err != nil {
		t.Fatal(err)
	}
	var out Ship
	if err := codec.Assemble(decoded, &out); err != nil {
		t.Fatal(err)
	}
	want := in
	want.scratch = 0
	want.Dirty = false
	opts := cmp.Options{
		cmp.AllowUnexported(Ship{}),
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(want, out, opts...); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestEncodeNilEmbedded(t *testing.T) {
	n, err := NewCodec().Encode(&Ship{})
	if err != nil {
		t.Fatal(err)
	}
	if name := n.Child("name"); name == nil || name.Value != nil {
		t.Errorf("name behind nil embedded pointer = %v", name)
	}
	if !n.Child("dock").Null {
		t.Errorf("nil dock should encode as null")
	}
	if n.Name != "Ship" {
		t.Errorf("name = %s", n.Name)
	}
}

func TestAssembleMismatch(t *testing.T) {
	codec := NewCodec()
	n := Composite("pos", typeinfo.For[Position](), Leaf("x", typeinfo.For[float64](), "no"))
	var p Position
	err := codec.Assemble(n, &p)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
	if err := codec.Assemble(n, p); err == nil {
		t.Error("non-pointer destination should fail")
	}
	v, err := codec.New(Composite("pos", typeinfo.For[Position](), Leaf("y", typeinfo.For[float64](), 4.0)))
	if err != nil {
		t.Fatal(err)
	}
	if v.(Position).Y != 4 {
		t.Errorf("New = %#v", v)
	}
}

func TestRegistryTypes(t *testing.T) {
	reg := typeinfo.NewRegistry()
	if err := reg.LoadYAML([]byte(`
types:
  - name: Position
    fields:
      - {name: x, type: float}
      - {name: y, type: float}
  - name: Body
    super: Position
    fields:
      - {name: mass, type: decimal}
`)); err != nil {
		t.Fatal(err)
	}
	body, _ := reg.Lookup("Body")
	nodes, err := NewCodec().Decode(body, mustParse(t, `{"mass": "3.25", "x": 1, "y": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	got := []string{}
	for _, n := range nodes {
		got = append(got, n.String())
	}
	want := []string{"mass:Decimal=3.25", "x:float64=1", "y:float64=2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nodes (-want +got):\n%s", diff)
	}
	if _, err := NewCodec().New(Composite("b", body)); !errors.Is(err, ErrNoGoType) {
		t.Errorf("err = %v, want ErrNoGoType", err)
	}
}

type gauge struct {
	X int `odb:"field=x"`
}

type Meter struct {
	*gauge
	Big   uint64   `odb:"field=big"`
	Small int64    `odb:"field=small"`
	Opt   *float64 `odb:"field=opt"`
	Y     int      `odb:"field=y"`
}

func TestRoundTripEdges(t *testing.T) {
	half := 0.5
	tests := []struct {
		name string
		in   Meter
	}{
		{name: "extremes", in: Meter{gauge: &gauge{X: 7}, Big: math.MaxUint64, Small: math.MinInt64, Opt: &half, Y: 3}},
		{name: "nil optional", in: Meter{gauge: &gauge{X: 1}, Big: 1 << 63}},
		{name: "zero optional", in: Meter{gauge: &gauge{}, Opt: new(float64)}},
	}
	codec := NewCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := codec.Encode(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			doc, err := codec.ToIR(n)
			if err != nil {
				t.Fatal(err)
			}
			text := encode.MustString(doc, encode.EncodeWire(true))
			decoded, err := codec.DecodeNode("Meter", typeinfo.For[Meter](), mustParse(t, text))
			if err != nil {
				t.Fatal(err)
			}
			var out Meter
			if err := codec.Assemble(decoded, &out); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.in, out, cmp.AllowUnexported(Meter{})); diff != "" {
				t.Errorf("round trip of %s (-want +got):\n%s", text, diff)
			}
		})
	}
}

func TestDecodeBigUint(t *testing.T) {
	codec := NewCodec()
	n, err := codec.DecodeNode("Meter", typeinfo.For[Meter](), mustParse(t, `{"big": 18446744073709551615, "x": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("big").Value; got != uint64(math.MaxUint64) {
		t.Errorf("big = %v", got)
	}
	n, err = codec.DecodeNode("Meter", typeinfo.For[Meter](), mustParse(t, `{"opt": null}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("opt").Value; got != nil {
		t.Errorf("null optional = %v, want nil", got)
	}
}
