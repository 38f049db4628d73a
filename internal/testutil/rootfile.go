// Package testutil writes small ROOT files used as fixtures by package tests.
package testutil

import (
	"path"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Column is one scalar branch of a fixture tree. Exactly one of F32 or I32
// is set; its length is the number of entries.
type Column struct {
	Name string
	F32  []float32
	I32  []int32
}

func (c Column) len() int {
	if c.I32 != nil {
		return len(c.I32)
	}
	return len(c.F32)
}

// VectorColumn is a std::vector<float> branch of a fixture tree.
type VectorColumn struct {
	Name   string
	Values [][]float32
}

// WriteTree creates a ROOT file holding one tree at treePath (directories
// allowed, e.g. "ntupliser/Events") and returns the file path. A relative
// fname is placed under t.TempDir().
func WriteTree(t testing.TB, fname, treePath string, cols []Column, vecs ...VectorColumn) string {
	t.Helper()

	fpath := fname
	if !filepath.IsAbs(fpath) {
		fpath = filepath.Join(t.TempDir(), fname)
	}
	f, err := groot.Create(fpath)
	if err != nil {
		t.Fatalf("creating %s: %v", fpath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Fatalf("closing %s: %v", fpath, err)
		}
	}()

	var dir riofs.Directory = f
	dirName, treeName := path.Split(treePath)
	if dirName != "" {
		dir, err = riofs.Dir(f).Mkdir(path.Clean(dirName))
		if err != nil {
			t.Fatalf("mkdir %s: %v", dirName, err)
		}
	}

	n := 0
	if len(cols) > 0 {
		n = cols[0].len()
	} else if len(vecs) > 0 {
		n = len(vecs[0].Values)
	}

	f32 := make([]float32, len(cols))
	i32 := make([]int32, len(cols))
	vec := make([][]float32, len(vecs))

	wvars := make([]rtree.WriteVar, 0, len(cols)+len(vecs))
	for i, c := range cols {
		if c.I32 != nil {
			wvars = append(wvars, rtree.WriteVar{Name: c.Name, Value: &i32[i]})
			continue
		}
		wvars = append(wvars, rtree.WriteVar{Name: c.Name, Value: &f32[i]})
	}
	for i, v := range vecs {
		wvars = append(wvars, rtree.WriteVar{Name: v.Name, Value: &vec[i]})
	}

	w, err := rtree.NewWriter(dir, treeName, wvars)
	if err != nil {
		t.Fatalf("creating tree writer: %v", err)
	}

	for evt := 0; evt < n; evt++ {
		for i, c := range cols {
			if c.I32 != nil {
				i32[i] = c.I32[evt]
				continue
			}
			f32[i] = c.F32[evt]
		}
		for i, v := range vecs {
			vec[i] = v.Values[evt]
		}
		if _, err := w.Write(); err != nil {
			t.Fatalf("writing entry %d: %v", evt, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("closing tree writer: %v", err)
	}
	return fpath
}
