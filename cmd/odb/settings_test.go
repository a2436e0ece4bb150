package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.Registry != "" || s.Strict || s.MaxDepth != 64 || s.Color != "auto" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	yml := "registry: types.yaml\nstrict: true\nmax_depth: 8\ncolor: never\n"
	if err := os.WriteFile(filepath.Join(dir, "odb.yaml"), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{Registry: "types.yaml", Strict: true, MaxDepth: 8, Color: "never"}
	if *s != want {
		t.Errorf("got %+v, want %+v", *s, want)
	}
}

func TestLoadSettingsEnv(t *testing.T) {
	t.Setenv("ODB_STRICT", "true")
	t.Setenv("ODB_COLOR", "sometimes")
	if _, err := LoadSettings(t.TempDir()); err == nil {
		t.Error("expected an error for an invalid color")
	}
	t.Setenv("ODB_COLOR", "always")
	s, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Strict || s.Color != "always" {
		t.Errorf("got %+v", s)
	}
}
