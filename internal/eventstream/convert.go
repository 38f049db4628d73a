package eventstream

import "fmt"

// getter loads the current value of a bound read variable as float64.
type getter func() float64

// newGetter binds ptr, as allocated by rtree.NewReadVars, to a getter.
// Only scalar numeric and boolean fields can be materialized.
func newGetter(name string, ptr any) (getter, error) {
	switch p := ptr.(type) {
	case *float32:
		return func() float64 { return float64(*p) }, nil
	case *float64:
		return func() float64 { return *p }, nil
	case *int8:
		return func() float64 { return float64(*p) }, nil
	case *int16:
		return func() float64 { return float64(*p) }, nil
	case *int32:
		return func() float64 { return float64(*p) }, nil
	case *int64:
		return func() float64 { return float64(*p) }, nil
	case *uint8:
		return func() float64 { return float64(*p) }, nil
	case *uint16:
		return func() float64 { return float64(*p) }, nil
	case *uint32:
		return func() float64 { return float64(*p) }, nil
	case *uint64:
		return func() float64 { return float64(*p) }, nil
	case *bool:
		return func() float64 {
			if *p {
				return 1
			}
			return 0
		}, nil
	default:
		return nil, fmt.Errorf("field %q has non-scalar type %T", name, ptr)
	}
}
