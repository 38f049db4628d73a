// Package schema builds the field catalog of an event tree and decides which
// fields are eligible for plotting.
//
// A field is eligible when it is:
//   - not the label field
//   - not a sequence (vector<...> or array kinds)
//   - declared with exactly one leaf
//   - not denylisted
//
// Filtering keeps catalog order, so a 1-based selector always refers to the
// same field for a given dataset version.
package schema
