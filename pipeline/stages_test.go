package pipeline

import (
	"testing"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/entity"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/query"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
	"github.com/odb-go/serial/xduce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X float64 `odb:"field=x"`
	Y float64 `odb:"field=y"`
}

type Living struct {
	HP   int    `odb:"field=hp"`
	Note string `odb:"transient"`
}

type Player struct {
	Living
	Name string `odb:"field=name"`
}

type Health struct {
	Value int `odb:"field=value"`
}

func symbolStrings(syms []symbol.Symbol) []string {
	res := make([]string, len(syms))
	for i, s := range syms {
		res[i] = s.String()
	}
	return res
}

func TestObjectsToSymbols(t *testing.T) {
	viaParents := xduce.Comp4(ObjectToType(), WithParents(), ClassToFields(), xduce.Comp(ValidFields(), AsSymbols()))
	viaAll := xduce.Comp4(ObjectToType(), AllFields(), ValidFields(), AsSymbols())

	in := []any{Player{}, nil, &Position{}}
	want := []string{"Player.name:string", "Living.hp:int", "Position.x:float64", "Position.y:float64"}
	for name, stage := range map[string]xduce.Transducer[any, symbol.Symbol]{"parents": viaParents, "all": viaAll} {
		got, err := xduce.Into(stage, in)
		require.NoError(t, err, name)
		assert.Equal(t, want, symbolStrings(got), name)
	}

	owned, err := xduce.Into(xduce.Comp(AllFields(), AsSymbolsOf(typeinfo.For[Player]())), []typeinfo.Type{typeinfo.For[Player]()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Player.name:string", "Player.hp:int", "Player.Note:string"}, symbolStrings(owned))
}

func TestPositionScenario(t *testing.T) {
	codec := node.NewCodec()
	doc, err := xduce.Into(ToJSONValue(), []string{`{"x":1.5,"y":2.0}`})
	require.NoError(t, err)
	require.Len(t, doc, 1)

	nodes, err := xduce.Into(SymbolToNode(codec, doc[0]), symbol.For(typeinfo.For[Position]()))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "x", nodes[0].Name)
	assert.Equal(t, 1.5, nodes[0].Value)
	assert.Equal(t, "y", nodes[1].Name)
	assert.Equal(t, 2.0, nodes[1].Value)

	again, err := xduce.Into(JSONToNodes(codec, typeinfo.For[Position]()), []string{`{"x":1.5,"y":2.0}`, `{"y":-1}`})
	require.NoError(t, err)
	require.Len(t, again, 4)
	assert.Equal(t, 0.0, again[2].Value)
	assert.Equal(t, -1.0, again[3].Value)
}

func TestMalformedStopsPipeline(t *testing.T) {
	_, err := xduce.Into(JSONToNodes(node.NewCodec(), typeinfo.For[Position]()), []string{`{"x": "far"}`})
	assert.ErrorIs(t, err, node.ErrMalformed)
	_, err = xduce.Into(ToJSONValue(), []string{`{"x":`})
	assert.Error(t, err)
}

func TestNodesToSymbols(t *testing.T) {
	codec := node.NewCodec()
	e1, err := entity.FromValues(codec, 1, Position{X: 1}, Health{Value: 3})
	require.NoError(t, err)
	e2, err := entity.FromValues(codec, 2, Player{Name: "p"}, Health{Value: 9})
	require.NoError(t, err)

	var dropped []string
	all := entity.Symbols(typeinfo.For[Position](), typeinfo.For[Health]())
	got, err := xduce.Into(NodesToSymbols(all, node.OnUnresolved(func(n *node.Node) {
		dropped = append(dropped, n.Name)
	})), []*entity.Data{e1, e2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data.Position:Position", "Data.Health:Health", "Data.Health:Health"}, symbolStrings(got))
	assert.Equal(t, []string{"Player"}, dropped)
}

func TestWhere(t *testing.T) {
	codec := node.NewCodec()
	var nodes []*node.Node
	for _, p := range []Position{{X: 1}, {X: 5}, {X: 7, Y: 1}} {
		n, err := codec.Encode(p)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	got, err := xduce.Into(Where(query.MustCompile(`field("x") > 2`)), nodes)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5.0, got[0].Child("x").Value)

	_, err = xduce.Into(Where(query.MustCompile(`field("x") > "a"`)), nodes)
	assert.Error(t, err)
}

func TestCasts(t *testing.T) {
	in := []any{1, "a", 2.5, "b", Position{}}
	strs, err := xduce.Into(Cast[string](), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, strs)

	kept, err := xduce.Into(IsAssignableTo[interface{ String() string }](), []any{typeinfo.For[int](), 3})
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestToJSON(t *testing.T) {
	out, err := xduce.Into(ToJSON(), []any{Position{X: 1.5, Y: 2}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"X\": 1.5,\n  \"Y\": 2\n}", out[0])

	n, err := node.NewCodec().Encode(Position{X: 1.5, Y: 2})
	require.NoError(t, err)
	out, err = xduce.Into(ToJSON(encode.EncodeWire(true)), []any{n})
	require.NoError(t, err)
	assert.Equal(t, `{"x":1.5,"y":2}`, out[0])
}
