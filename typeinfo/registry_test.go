package typeinfo

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const registryYAML = `
types:
  - name: Velocity
    super: Position
    fields:
      - name: max
        type: float
      - name: scratch
        type: float
        transient: true
  - name: Position
    fields:
      - name: x
        type: float
      - name: y
        type: float
  - name: Ship
    fields:
      - name: id
        type: uuid
      - name: vel
        type: Velocity
`

func TestRegistryLoad(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadYAML([]byte(registryYAML)); err != nil {
		t.Fatal(err)
	}
	vel, ok := r.Lookup("Velocity")
	if !ok {
		t.Fatal("Velocity not found")
	}
	got := collect(vel, false)
	want := []pair{{"Velocity", "max"}, {"Position", "x"}, {"Position", "y"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(pair{})); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if Depth(vel) != 1 {
		t.Errorf("Depth = %d", Depth(vel))
	}
	ship, _ := r.Lookup("Ship")
	fields := ship.DeclaredFields()
	if fields[0].Type.Kind() != UUID {
		t.Errorf("id kind = %s", fields[0].Type.Kind())
	}
	if !Equal(fields[1].Type, vel) {
		t.Errorf("vel type = %s", fields[1].Type.Name())
	}
	x, _ := Declares(vel.Super(), "x")
	if !Equal(x.Type, For[float64]()) {
		t.Errorf("registry float should equal Go float64")
	}
}

func TestRegistryYAMLRoundTrip(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadYAML([]byte(registryYAML)); err != nil {
		t.Fatal(err)
	}
	d, err := r.YAML()
	if err != nil {
		t.Fatal(err)
	}
	r2 := NewRegistry()
	if err := r2.LoadYAML(d); err != nil {
		t.Fatalf("reload: %v\n%s", err, d)
	}
	var names []string
	for _, ty := range r2.Types() {
		names = append(names, ty.Name())
	}
	if diff := cmp.Diff([]string{"Velocity", "Position", "Ship"}, names); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestRegistryCheck(t *testing.T) {
	r := NewRegistry()
	r.MustDefine(TypeDecl{Name: "A", Super: "B", Fields: []FieldDecl{{Name: "f", Type: "Nope"}}})
	r.MustDefine(TypeDecl{Name: "B", Super: "A"})
	err := r.Check()
	if !errors.Is(err, ErrUndefined) {
		t.Errorf("err = %v, want ErrUndefined", err)
	}
	if err == nil || !strings.Contains(err.Error(), "loops") {
		t.Errorf("err = %v, want loop report", err)
	}
	if _, err := r.Define(TypeDecl{Name: "float"}); err == nil {
		t.Error("shadowing a built-in should fail")
	}
	if _, err := r.Define(TypeDecl{Name: "C", Fields: []FieldDecl{{Name: "a", Type: "int"}, {Name: "a", Type: "int"}}}); err == nil {
		t.Error("duplicate fields should fail")
	}
}
