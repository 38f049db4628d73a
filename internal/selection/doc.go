// Package selection compiles event cut expressions and evaluates them over
// materialized columns.
//
// Cuts use the expr language. Identifiers are field names, each bound to the
// event's value as a float64:
//
//	pt > 5 && abs(eta) < 1.479
//
// Fields referenced by a cut are read by the materializer even when they are
// not plotted. Events failing the cut are kept in every column but are not
// filled into histograms.
package selection
