package eventprocessor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Scenario(t *testing.T) {
	got := Classify([]float64{-50, 3.2, -50}, DefaultSentinel)
	assert.Equal(t, []Class{ClassNegative, ClassPositive, ClassNegative}, got)
}

func TestClassify_ExactEquality(t *testing.T) {
	tests := []struct {
		name  string
		label float64
		want  Class
	}{
		{name: "sentinel", label: -50, want: ClassNegative},
		{name: "float32 sentinel", label: float64(float32(-50)), want: ClassNegative},
		{name: "just above", label: math.Nextafter(-50, 0), want: ClassPositive},
		{name: "just below", label: math.Nextafter(-50, -100), want: ClassPositive},
		{name: "zero", label: 0, want: ClassPositive},
		{name: "positive fifty", label: 50, want: ClassPositive},
		{name: "NaN", label: math.NaN(), want: ClassPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify([]float64{tt.label}, DefaultSentinel)
			assert.Equal(t, []Class{tt.want}, got)
		})
	}
}

func TestClassify_ExhaustiveAndDeterministic(t *testing.T) {
	labels := []float64{-50, 1, 2, -50, 300, -49.999, -50}

	first := Classify(labels, DefaultSentinel)
	second := Classify(labels, DefaultSentinel)
	assert.Equal(t, first, second)
	assert.Len(t, first, len(labels))

	counts := Count(first)
	assert.Equal(t, len(labels), counts.Negative+counts.Positive)
	assert.Equal(t, Counts{Negative: 3, Positive: 4}, counts)
}

func TestClassify_CustomSentinel(t *testing.T) {
	got := Classify([]float64{-1, 0, -1}, -1)
	assert.Equal(t, []Class{ClassNegative, ClassPositive, ClassNegative}, got)
}

func TestClassify_Empty(t *testing.T) {
	assert.Empty(t, Classify(nil, DefaultSentinel))
	assert.Equal(t, Counts{}, Count(nil))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "neg", ClassNegative.String())
	assert.Equal(t, "pos", ClassPositive.String())
}
