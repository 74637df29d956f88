package model

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrInconsistent is returned when centers and clusters have different lengths.
	ErrInconsistent = errors.New("centers and clusters length mismatch")
)

// ErrPartitionViolation indicates that cluster memberships do not form an
// exact partition of the dataset indexes.
type ErrPartitionViolation struct {
	Cluster int
	Index   int
	Reason  string
}

func (e *ErrPartitionViolation) Error() string {
	return fmt.Sprintf("partition violation in cluster %d at index %d: %s", e.Cluster, e.Index, e.Reason)
}

// Clustering pairs centers with cluster memberships: Centers[i] is the
// centroid of the points whose dataset indexes are listed in Clusters[i].
type Clustering struct {
	Centers  [][]float64
	Clusters [][]int
}

// K returns the number of clusters.
func (c *Clustering) K() int {
	return len(c.Centers)
}

// Sizes returns the member count of each cluster.
func (c *Clustering) Sizes() []int {
	sizes := make([]int, len(c.Clusters))
	for i, cl := range c.Clusters {
		sizes[i] = len(cl)
	}
	return sizes
}

// Validate checks that the clustering is an exact partition of {0..n-1}:
// every index assigned exactly once, none out of range.
func (c *Clustering) Validate(n int) error {
	if len(c.Centers) != len(c.Clusters) {
		return ErrInconsistent
	}

	seen := roaring.New()
	for i, cluster := range c.Clusters {
		for _, idx := range cluster {
			if idx < 0 || idx >= n {
				return &ErrPartitionViolation{Cluster: i, Index: idx, Reason: "index out of range"}
			}
			if !seen.CheckedAdd(uint32(idx)) {
				return &ErrPartitionViolation{Cluster: i, Index: idx, Reason: "index assigned twice"}
			}
		}
	}

	if got := seen.GetCardinality(); got != uint64(n) {
		return &ErrPartitionViolation{Cluster: -1, Index: -1,
			Reason: fmt.Sprintf("covered %d of %d indexes", got, n)}
	}

	return nil
}

// Assignments returns the inverse view: a slice of length n mapping each
// dataset index to its cluster. Fails if the clustering is not a partition
// of {0..n-1}.
func (c *Clustering) Assignments(n int) ([]int, error) {
	if err := c.Validate(n); err != nil {
		return nil, err
	}

	out := make([]int, n)
	for i, cluster := range c.Clusters {
		for _, idx := range cluster {
			out[idx] = i
		}
	}
	return out, nil
}
