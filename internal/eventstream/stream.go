package eventstream

import (
	"errors"
	"fmt"
	"slices"

	"go-hep.org/x/hep/groot/rtree"
	"go.uber.org/zap"
)

// DefaultProgressEvery is the entry interval between progress notices.
const DefaultProgressEvery = 10000

// ErrNoEvents is returned when the source holds no entries.
var ErrNoEvents = errors.New("source has no events")

// Options tunes a materialization pass.
type Options struct {
	ProgressEvery int
	Logger        *zap.Logger
}

// Materialize reads fields and the label branch from every entry of tree.
// Every branch is read once, even when named twice or also used as label.
func Materialize(tree rtree.Tree, fields []string, label string, opts Options) (*Columns, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	every := opts.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	n := tree.Entries()
	if n <= 0 {
		return nil, ErrNoEvents
	}

	names := make([]string, 0, len(fields)+1)
	seen := map[string]bool{label: true}
	names = append(names, label)
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			names = append(names, f)
		}
	}

	rvars, err := readVars(tree, names)
	if err != nil {
		return nil, err
	}

	cols := &Columns{
		Entries: int(n),
		Order:   append([]string(nil), fields...),
		Values:  make(map[string][]float64, len(names)),
	}
	dst := make([][]float64, len(rvars))
	getters := make([]getter, len(rvars))
	for i, rv := range rvars {
		get, err := newGetter(rv.Name, rv.Value)
		if err != nil {
			return nil, err
		}
		getters[i] = get
		dst[i] = make([]float64, n)
		cols.Values[rv.Name] = dst[i]
	}
	cols.Label = cols.Values[label]

	r, err := rtree.NewReader(tree, rvars)
	if err != nil {
		return nil, fmt.Errorf("creating tree reader: %w", err)
	}
	defer r.Close()

	read := 0
	err = r.Read(func(_ rtree.RCtx) error {
		if read >= len(cols.Label) {
			return fmt.Errorf("tree yielded more than %d entries", n)
		}
		for i, get := range getters {
			dst[i][read] = get()
		}
		if read%every == 0 {
			logger.Info(fmt.Sprintf("loaded %d entries", read), zap.Int("entries", read))
		}
		read++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	if int64(read) != n {
		return nil, fmt.Errorf("read %d entries, expected %d", read, n)
	}

	if !slices.Contains(fields, label) {
		delete(cols.Values, label)
	}
	return cols, nil
}

// readVars returns typed read variables for names, in names order.
func readVars(tree rtree.Tree, names []string) ([]rtree.ReadVar, error) {
	all := rtree.NewReadVars(tree)
	byName := make(map[string]rtree.ReadVar, len(all))
	for _, rv := range all {
		if _, dup := byName[rv.Name]; !dup {
			byName[rv.Name] = rv
		}
	}

	out := make([]rtree.ReadVar, len(names))
	for i, name := range names {
		rv, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("field %q not found in tree", name)
		}
		out[i] = rv
	}
	return out, nil
}
