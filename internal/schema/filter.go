package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxFields is how many eligible fields an "all" selection keeps.
const DefaultMaxFields = 48

// ErrIndexOutOfRange is returned when a 1-based field index does not address
// an eligible field.
var ErrIndexOutOfRange = errors.New("field index out of range")

// Exclusion reasons.
const (
	ReasonLabel     = "label field"
	ReasonSequence  = "sequence type"
	ReasonMultiLeaf = "leaf count is not 1"
	ReasonDenylist  = "denylisted"
)

// sequenceMarkers flag a declared kind as a collection.
var sequenceMarkers = []string{"vector", "[]"}

// FilterOptions controls which fields are excluded besides sequences and
// multi-leaf branches.
type FilterOptions struct {
	Label    string
	Denylist []string
}

// Exclusion records why a field was left out of the eligible list.
type Exclusion struct {
	Field  string
	Reason string
}

// Filter returns the eligible field names in catalog order together with the
// fields that were skipped.
func Filter(cat Catalog, opts FilterOptions) ([]string, []Exclusion) {
	deny := make(map[string]struct{}, len(opts.Denylist))
	for _, name := range opts.Denylist {
		deny[name] = struct{}{}
	}

	var (
		eligible []string
		excluded []Exclusion
	)
	for _, f := range cat {
		reason := exclusionReason(f, opts.Label, deny)
		if reason != "" {
			excluded = append(excluded, Exclusion{Field: f.Name, Reason: reason})
			continue
		}
		eligible = append(eligible, f.Name)
	}
	return eligible, excluded
}

// Scalars returns the single-leaf, non-sequence fields of cat in catalog
// order, whether or not they are eligible for plotting.
func Scalars(cat Catalog) []string {
	var names []string
	for _, f := range cat {
		if !isSequence(f.Kind) && f.Leaves == 1 {
			names = append(names, f.Name)
		}
	}
	return names
}

func exclusionReason(f Field, label string, deny map[string]struct{}) string {
	if f.Name == label {
		return ReasonLabel
	}
	if _, ok := deny[f.Name]; ok {
		return ReasonDenylist
	}
	if isSequence(f.Kind) {
		return ReasonSequence
	}
	if f.Leaves != 1 {
		return ReasonMultiLeaf
	}
	return ""
}

func isSequence(kind string) bool {
	for _, marker := range sequenceMarkers {
		if strings.Contains(kind, marker) {
			return true
		}
	}
	return false
}

// Selector picks either every eligible field (up to a cap) or a single one by
// 1-based index.
type Selector struct {
	All   bool
	Index int
}

// SelectAll is the default selector.
var SelectAll = Selector{All: true}

// ParseSelector parses "all" or a positive 1-based index.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return SelectAll, nil
	}

	idx, err := strconv.Atoi(s)
	if err != nil {
		return Selector{}, fmt.Errorf("invalid variable selector %q: want \"all\" or a 1-based index", s)
	}
	if idx < 1 {
		return Selector{}, fmt.Errorf("invalid variable selector %q: index must be >= 1", s)
	}
	return Selector{Index: idx}, nil
}

// String returns the selector in the form accepted by ParseSelector.
func (s Selector) String() string {
	if s.All {
		return "all"
	}
	return strconv.Itoa(s.Index)
}

// Select applies sel to the eligible list. maxFields caps an "all" selection;
// values below 1 fall back to DefaultMaxFields.
func Select(eligible []string, sel Selector, maxFields int) ([]string, error) {
	if sel.All {
		if maxFields < 1 {
			maxFields = DefaultMaxFields
		}
		n := min(maxFields, len(eligible))
		out := make([]string, n)
		copy(out, eligible[:n])
		return out, nil
	}

	if sel.Index < 1 || sel.Index > len(eligible) {
		return nil, fmt.Errorf("%w: index %d, %d eligible fields", ErrIndexOutOfRange, sel.Index, len(eligible))
	}
	return []string{eligible[sel.Index-1]}, nil
}
