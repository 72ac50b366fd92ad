package lower

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"velar/internal/diag"
	"velar/internal/hierfile"
	"velar/internal/sem"
)

// FileResult is the outcome of lowering one hierarchy file. Sessions
// are independent per file, which is what makes the fan-out safe: all
// shared mutable state is session-scoped.
type FileResult struct {
	Path string
	Bag  *diag.Bag
	Sem  *sem.Module
	Res  *Result
}

// listHierarchyFiles returns the sorted *.yaml files under dir.
func listHierarchyFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Dir loads and lowers every hierarchy file under dir, fanning out
// across files with one lowering session each. jobs <= 0 means one
// worker per CPU.
func Dir(ctx context.Context, dir string, jobs int) ([]FileResult, error) {
	files, err := listHierarchyFiles(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(100)
			semMod, err := hierfile.LoadFile(path, bag)
			if err != nil {
				return err
			}
			fr := FileResult{Path: path, Bag: bag, Sem: semMod}
			if semMod != nil && !bag.HasErrors() {
				fr.Res = Module(semMod)
			}
			results[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
