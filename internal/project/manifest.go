// Package project reads velar.toml manifests: the list of hierarchy
// files a project lowers and where to keep snapshot artifacts.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed velar.toml.
type Manifest struct {
	Package     PackageSection `toml:"package"`
	Hierarchies []string       `toml:"hierarchies"`
	SnapshotDir string         `toml:"snapshot_dir"`

	// Dir is the directory the manifest was loaded from; hierarchy
	// paths resolve relative to it.
	Dir string `toml:"-"`
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	m.Dir = filepath.Dir(path)
	return &m, nil
}

// Find walks up from dir looking for velar.toml.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "velar.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("velar.toml not found above %s", dir)
		}
		dir = parent
	}
}

// HierarchyPaths resolves the manifest's hierarchy entries against its
// directory.
func (m *Manifest) HierarchyPaths() []string {
	out := make([]string, 0, len(m.Hierarchies))
	for _, h := range m.Hierarchies {
		if filepath.IsAbs(h) {
			out = append(out, h)
			continue
		}
		out = append(out, filepath.Join(m.Dir, h))
	}
	return out
}
