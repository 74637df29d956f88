// Package dataset holds the read-only point set a clustering run operates on.
//
// Points are stored flattened in a single contiguous row-major []float64 with
// a fixed dimension stride. The flat layout keeps point access allocation-free
// and lets a dataset be backed directly by a memory-mapped file.
package dataset
