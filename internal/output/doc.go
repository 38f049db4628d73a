// Package output renders per-class histograms into image files.
//
// Renderer is a pure drawing layer that:
//   - Receives filled histograms and their x range
//   - Chooses which classes to draw from the plot mode
//   - Applies the experiment style, axis scaling and legend
//   - Saves one file per field under the output directory
//
// It does NOT:
//   - Read events or classify them
//   - Decide histogram ranges or binning
//
// Range, y-axis and file name arithmetic lives in package histo.
package output
