package eventprocessor

// DefaultSentinel marks events without a matched generator particle.
const DefaultSentinel = -50.0

// Class is the label-derived category of an event.
type Class uint8

const (
	// ClassPositive events carry a real generator-level label value.
	ClassPositive Class = iota
	// ClassNegative events carry the sentinel label value.
	ClassNegative
)

// String returns the short name used in histogram names.
func (c Class) String() string {
	if c == ClassNegative {
		return "neg"
	}
	return "pos"
}

// Classify assigns every event a class from its label value.
func Classify(labels []float64, sentinel float64) []Class {
	classes := make([]Class, len(labels))
	for i, v := range labels {
		if v == sentinel {
			classes[i] = ClassNegative
		} else {
			classes[i] = ClassPositive
		}
	}
	return classes
}

// Counts holds per-class totals.
type Counts struct {
	Negative int
	Positive int
}

// Count tallies classes.
func Count(classes []Class) Counts {
	var c Counts
	for _, cl := range classes {
		if cl == ClassNegative {
			c.Negative++
		} else {
			c.Positive++
		}
	}
	return c
}
