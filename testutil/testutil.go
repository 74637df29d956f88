package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a normally distributed pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Blob generates count points normally distributed around center with the
// given standard deviation per coordinate.
func (r *RNG) Blob(center []float64, stddev float64, count int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, count)
	for i := range points {
		p := make([]float64, len(center))
		for d, c := range center {
			p[d] = c + r.rand.NormFloat64()*stddev
		}
		points[i] = p
	}
	return points
}

// Blobs generates perBlob points around each center, concatenated in center
// order: points [i*perBlob, (i+1)*perBlob) belong to blob i.
func (r *RNG) Blobs(centers [][]float64, stddev float64, perBlob int) [][]float64 {
	var points [][]float64
	for _, c := range centers {
		points = append(points, r.Blob(c, stddev, perBlob)...)
	}
	return points
}

// Flatten concatenates points into a single row-major slice.
func Flatten(points [][]float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	flat := make([]float64, 0, len(points)*len(points[0]))
	for _, p := range points {
		flat = append(flat, p...)
	}
	return flat
}
