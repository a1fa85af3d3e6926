package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store/file"
)

func TestProjectIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json.cache")
	p := New(path)

	doc := model.Document{
		"bookkeeper": "0.0.0.0:8080",
		"rules":      map[string]any{"r1": map[string]any{"target": "pacs"}},
	}

	if err := p.Project(doc); err != nil {
		t.Fatalf("project: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Project(doc); err != nil {
		t.Fatalf("project: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("projecting the same document twice produced different bytes")
	}
}

func TestCacheFileReadableByFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json.cache")
	doc := model.Document{
		"port":    float64(11112),
		"targets": map[string]any{"a": map[string]any{"ip": "10.0.0.1", "aet": "STORE"}},
	}

	if err := New(path).Project(doc); err != nil {
		t.Fatalf("project: %v", err)
	}

	got, err := file.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load cache through file backend: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("cache round trip mismatch: got %#v, want %#v", got, doc)
	}
}

func TestProjectFailureReturnsError(t *testing.T) {
	// Parent "directory" is a regular file, so the write cannot succeed.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(filepath.Join(blocker, "config.json.cache"))
	if err := p.Project(model.Document{"a": true}); err == nil {
		t.Error("expected error writing under a non-directory")
	}
}
