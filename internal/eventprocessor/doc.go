// Package eventprocessor classifies materialized events by their label.
//
// Flow:
//
//	┌─────────────────────────────────────────┐
//	│      materialized label column          │
//	└─────────────────┬───────────────────────┘
//	                  │
//	                  ▼
//	┌─────────────────────────────────────────┐
//	│   eventprocessor.Classify               │
//	│   - label == sentinel → ClassNegative   │
//	│   - anything else     → ClassPositive   │
//	└─────────────────┬───────────────────────┘
//	                  │
//	                  ▼
//	            histo.Build (one histogram per class)
//
// The sentinel comparison is exact floating-point equality. The sentinel is
// an assigned constant in the generator output, never a measured value, so
// no tolerance is applied.
package eventprocessor
