// Package arrow maps indexed MAE columns onto Apache Arrow record
// batches. The null-tracked columns of an indexed block translate
// directly to Arrow's validity bitmaps, and Arrow IPC gives an
// embedding host a zero-copy hand-off format.
package arrow
