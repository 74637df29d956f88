// Package distance provides the Euclidean distance functions used by the
// clustering core.
//
// Only the L2 family is implemented: spatial clustering of point data does
// not mix metrics within a run, and the splitting criterion is derived under
// a Gaussian (L2) model.
package distance
