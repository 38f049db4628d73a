package eventstream

import "fmt"

// Columns holds the materialized values of the selected fields and the label.
type Columns struct {
	Entries int
	Label   []float64
	Order   []string             // Field names in selection order
	Values  map[string][]float64 // Field name -> one value per event
}

// Column returns the values of a field.
func (c *Columns) Column(name string) ([]float64, error) {
	vals, ok := c.Values[name]
	if !ok {
		return nil, fmt.Errorf("field %q was not materialized", name)
	}
	return vals, nil
}
