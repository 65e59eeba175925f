package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosques.json")
	data := `[
		{"id":"a","name":"Star Mosque","lat":23.7153,"lng":90.4013,"district":"Dhaka"},
		{"name":"Andarkilla","lat":22.3419,"lng":91.8358}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d mosques", len(got))
	}
	if got[0].ID != "a" || got[0].District != "Dhaka" || got[1].Name != "Andarkilla" || got[1].Lat != 22.3419 {
		t.Errorf("got %+v", got)
	}
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.json"), bad} {
		if _, err := (FileSource{Path: path}).Load(context.Background()); err == nil {
			t.Errorf("Load(%s): expected error", filepath.Base(path))
		}
	}
}
