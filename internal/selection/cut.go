package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrzor/ntplot/internal/eventstream"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// Cut is a compiled boolean event selection.
type Cut struct {
	code    string
	fields  []string
	program *vm.Program
}

// identifierCollector gathers every identifier of an expression.
type identifierCollector struct {
	names []string
}

func (c *identifierCollector) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IdentifierNode); ok {
		if !slices.Contains(c.names, n.Value) {
			c.names = append(c.names, n.Value)
		}
	}
}

// Compile compiles code against the known field names. An empty code yields
// a nil Cut, which keeps every event.
func Compile(code string, known []string) (*Cut, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	tree, err := parser.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("parsing cut %q: %w", code, err)
	}
	collector := &identifierCollector{}
	ast.Walk(&tree.Node, collector)

	// Type-check environment: every known field is a float64.
	env := make(map[string]any, len(known))
	for _, name := range known {
		env[name] = 0.0
	}

	var fields []string
	for _, name := range collector.names {
		if _, ok := env[name]; ok {
			fields = append(fields, name)
		}
	}

	program, err := expr.Compile(code, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling cut %q: %w", code, err)
	}

	return &Cut{
		code:    code,
		fields:  fields,
		program: program,
	}, nil
}

// String returns the cut source.
func (c *Cut) String() string {
	if c == nil {
		return ""
	}
	return c.code
}

// Fields returns the field names referenced by the cut, in first-use order.
func (c *Cut) Fields() []string {
	if c == nil {
		return nil
	}
	return c.fields
}

// Mask evaluates the cut for every event. A nil Cut returns a nil mask.
func (c *Cut) Mask(cols *eventstream.Columns) ([]bool, error) {
	if c == nil {
		return nil, nil
	}

	columns := make([][]float64, len(c.fields))
	for i, name := range c.fields {
		vals, err := cols.Column(name)
		if err != nil {
			return nil, fmt.Errorf("cut %q: %w", c.code, err)
		}
		columns[i] = vals
	}

	env := make(map[string]any, len(c.fields))
	mask := make([]bool, cols.Entries)
	for evt := range mask {
		for i, name := range c.fields {
			env[name] = columns[i][evt]
		}

		out, err := expr.Run(c.program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluating cut %q on entry %d: %w", c.code, evt, err)
		}
		pass, ok := out.(bool)
		if !ok {
			return nil, fmt.Errorf("cut %q returned %T, want bool", c.code, out)
		}
		mask[evt] = pass
	}
	return mask, nil
}

// Passed counts the events kept by mask. A nil mask keeps all n events.
func Passed(mask []bool, n int) int {
	if mask == nil {
		return n
	}
	count := 0
	for _, ok := range mask {
		if ok {
			count++
		}
	}
	return count
}
