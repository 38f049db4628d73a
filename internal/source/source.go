// Package source opens event files and concatenates their trees into one
// logical event sequence.
package source

import (
	"errors"
	"fmt"
	"strings"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	_ "go-hep.org/x/hep/groot/riofs/plugin/http"   // https:// sources
	_ "go-hep.org/x/hep/groot/riofs/plugin/xrootd" // root:// sources
	"go-hep.org/x/hep/groot/rtree"
	"go.uber.org/zap"
)

// Defaults for the Run3 scouting electron regression ntuples.
const (
	DefaultTemplate = "root://cms-xrd-global.cern.ch//store/user/asahasra/EE_Par-FlatPt-1To300_PGun/" +
		"Run3Scouting_Winter25_crabNano250704/250704_123742/0000/egScoutingP4_regress_train_%d.root"
	DefaultTree = "ntupliser/Events"
)

// URLs expands template, which must hold exactly one %d verb, to the file
// indices 1..maxFiles.
func URLs(template string, maxFiles int) ([]string, error) {
	if maxFiles < 1 {
		return nil, fmt.Errorf("max files must be >= 1, got %d", maxFiles)
	}
	if strings.Count(template, "%d") != 1 {
		return nil, fmt.Errorf("source template %q must contain exactly one %%d", template)
	}

	urls := make([]string, maxFiles)
	for i := range urls {
		urls[i] = fmt.Sprintf(template, i+1)
	}
	return urls, nil
}

// Chain holds the opened files and the concatenated tree.
type Chain struct {
	files []*groot.File
	tree  rtree.Tree
}

// Open opens every url, looks up treePath in each and chains the trees in
// url order. On failure, files opened so far are closed.
func Open(urls []string, treePath string, logger *zap.Logger) (*Chain, error) {
	if len(urls) == 0 {
		return nil, errors.New("no source files")
	}

	c := &Chain{}
	trees := make([]rtree.Tree, 0, len(urls))
	for _, url := range urls {
		logger.Debug("opening source", zap.String("url", url))

		f, err := groot.Open(url)
		if err != nil {
			return nil, c.closeErrorf(fmt.Sprintf("opening %s", url), err)
		}
		c.files = append(c.files, f)

		obj, err := riofs.Dir(f).Get(treePath)
		if err != nil {
			return nil, c.closeErrorf(fmt.Sprintf("reading tree %q from %s", treePath, url), err)
		}
		tree, ok := obj.(rtree.Tree)
		if !ok {
			return nil, c.closeErrorf(fmt.Sprintf("reading tree %q from %s", treePath, url),
				fmt.Errorf("object is a %s, not a tree", obj.Class()))
		}

		logger.Debug("added source",
			zap.String("url", url),
			zap.Int64("entries", tree.Entries()),
		)
		trees = append(trees, tree)
	}

	c.tree = rtree.Chain(trees...)
	return c, nil
}

// closeErrorf closes every opened file and returns a wrapped error.
func (c *Chain) closeErrorf(what string, e error) error {
	//nolint:errcheck // Best-effort cleanup in error path
	_ = c.Close()
	return fmt.Errorf("%s: %w", what, e)
}

// Tree returns the logical concatenation of all source trees.
func (c *Chain) Tree() rtree.Tree {
	return c.tree
}

// Entries returns the total number of events across all files.
func (c *Chain) Entries() int64 {
	if c.tree == nil {
		return 0
	}
	return c.tree.Entries()
}

// Files returns how many files are chained.
func (c *Chain) Files() int {
	return len(c.files)
}

// Close closes all files, returning the first error encountered.
func (c *Chain) Close() error {
	var first error
	for _, f := range c.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.files = nil
	return first
}
