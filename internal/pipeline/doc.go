// Package pipeline runs one plotting campaign end to end.
//
// Stages run sequentially, each in its own span:
//
//	load        → open and chain the source files
//	schema      → build the field catalog, filter and select fields
//	materialize → one pass over all events into columns
//	classify    → label sentinel → negative / positive
//	render      → per field: range, histograms, image
//
// There is no retry and no cleanup of partial output: a failure part way
// through rendering leaves the images written so far.
package pipeline
