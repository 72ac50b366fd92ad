package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "velar.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
hierarchies = ["classes.yaml", "/abs/extra.yaml"]
snapshot_dir = ".velar"

[package]
name = "demo"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Package.Name != "demo" || m.SnapshotDir != ".velar" {
		t.Fatalf("manifest fields wrong: %+v", m)
	}
	paths := m.HierarchyPaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 hierarchy paths, got %d", len(paths))
	}
	if paths[0] != filepath.Join(dir, "classes.yaml") {
		t.Fatalf("relative entry must resolve against the manifest dir, got %s", paths[0])
	}
	if paths[1] != "/abs/extra.yaml" {
		t.Fatalf("absolute entry must stay untouched, got %s", paths[1])
	}
}

func TestLoadRejectsMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `hierarchies = ["a.yaml"]`)
	if _, err := Load(path); err == nil {
		t.Fatalf("a manifest without [package].name must be rejected")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "velar.toml"))
	if found != want {
		t.Fatalf("Find returned %s, want %s", found, want)
	}
}

func TestFindFailsOutsideProject(t *testing.T) {
	if _, err := Find(t.TempDir()); err == nil {
		t.Fatalf("Find must fail when no velar.toml exists above the dir")
	}
}
