package codegen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/typeinfo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = `package game

type base struct {
	ID int ` + "`odb:\"field=id\"`" + `
}

type Living struct {
	base
	HP    int32   ` + "`odb:\"field=hp\"`" + `
	Cache []byte  ` + "`odb:\"-\"`" + `
	Max   int     ` + "`odb:\"static\"`" + `
}

type Position struct {
	X float64 ` + "`odb:\"field=x\"`" + `
	Y float64 ` + "`odb:\"field=y\"`" + `
}

type Player struct {
	*Living
	Name  string            ` + "`odb:\"field=name\"`" + `
	Pos   *Position         ` + "`odb:\"field=pos\"`" + `
	Tags  []string          ` + "`odb:\"field=tags\"`" + `
	Meta  map[string]any    ` + "`odb:\"field=meta\"`" + `
	score float64
}

type Level int

type notExported struct{ A int }

type Box[T any] struct{ V T }
`

func checkSource(t *testing.T, src string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "game.go", src, 0)
	require.NoError(t, err)
	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check("example.com/game", fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	return pkg
}

func declNames(reg *typeinfo.Registry) []string {
	var res []string
	for _, t := range reg.Types() {
		res = append(res, t.Name())
	}
	return res
}

func TestGeneratePackage(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.AddPackage(checkSource(t, src)))
	reg := g.Registry()
	assert.ElementsMatch(t, []string{"Living", "Player", "Position", "base"}, declNames(reg))

	player, ok := reg.Lookup("Player")
	require.True(t, ok)
	var fields []string
	for a, f := range typeinfo.Fields(player) {
		fields = append(fields, a.Name()+"."+f.Name+":"+f.Type.Name())
	}
	assert.Equal(t, []string{
		"Player.name:string",
		"Player.pos:Position",
		"Player.tags:[]interface {}",
		"Player.meta:map[string]interface {}",
		"Living.hp:int32",
		"base.id:int",
	}, fields)
}

func TestGenerateSelected(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.AddPackage(checkSource(t, src), "Position"))
	assert.Equal(t, []string{"Position"}, declNames(g.Registry()))

	err := NewGenerator().AddPackage(checkSource(t, src), "Level")
	assert.Error(t, err)
}

func TestGeneratedRegistryDecodes(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.AddPackage(checkSource(t, src), "Player"))
	d, err := g.Registry().YAML()
	require.NoError(t, err)

	reg := typeinfo.NewRegistry()
	require.NoError(t, reg.LoadYAML(d))
	player, _ := reg.Lookup("Player")
	doc, err := parse.Parse([]byte(`{"id": 3, "hp": 10, "name": "p", "pos": {"x": 1, "y": 2}, "tags": [], "meta": {}}`))
	require.NoError(t, err)
	nodes, err := node.NewCodec().Decode(player, doc)
	require.NoError(t, err)
	require.Len(t, nodes, 6)
	assert.Equal(t, "pos:Position{x:float64=1, y:float64=2}", nodes[1].String())
	assert.Equal(t, int32(10), nodes[4].Value)
}
