// Package model defines the clustering result types shared across the
// library: the pairing of centers with the point memberships they explain.
package model
