// Package eventstream materializes event fields into in-memory columns.
//
// Materialize sizes every column to the total entry count up front, then
// reads each event exactly once. Columns are parallel: index i is the same
// event in every column, including the label column. Nothing is handed to
// the renderer until the whole pass has completed.
package eventstream
