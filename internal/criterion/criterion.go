// Package criterion scores candidate clusterings with a Bayesian-information-
// criterion-flavored log-likelihood, used to decide whether splitting a
// cluster improves the statistical explanation of its points.
package criterion

import (
	"errors"
	"math"

	"github.com/hupe1980/xmeans/dataset"
	"github.com/hupe1980/xmeans/distance"
)

// ErrDegenerateModel is returned for models the score is undefined on:
// a cluster with no members, or as many clusters as points (the pooled
// variance denominator N-K vanishes). Callers treat a degenerate child
// model as an automatic split rejection.
var ErrDegenerateModel = errors.New("degenerate model")

// minSigma is the floor for the pooled variance estimate. Points lying
// exactly on their centers would otherwise drive ln(sigma) to -Inf.
const minSigma = 1e-12

// Score returns the splitting-criterion score of the model formed by
// centers and clusters over the given dataset. Higher is better.
//
// The variance estimate is pooled across all clusters of the model rather
// than computed per cluster, a deliberate simplification of the
// per-cluster estimate found in the literature.
func Score(data *dataset.Dataset, centers [][]float64, clusters [][]int) (float64, error) {
	k := len(centers)
	dim := float64(data.Dim())

	var sigma float64
	var n int

	for i, cluster := range clusters {
		if len(cluster) == 0 {
			return 0, ErrDegenerateModel
		}
		for _, idx := range cluster {
			sigma += distance.Euclidean(data.At(idx), centers[i])
		}
		n += len(cluster)
	}

	if n <= k {
		return 0, ErrDegenerateModel
	}

	sigma /= float64(n - k)
	if sigma < minSigma {
		sigma = minSigma
	}

	logN := math.Log(float64(n))
	logSigma := math.Log(sigma)

	var score float64
	for _, cluster := range clusters {
		ni := float64(len(cluster))
		score += ni*math.Log(ni) - ni*logN -
			ni*math.Log(2.0*math.Pi)/2.0 -
			ni*dim*logSigma/2.0 -
			(ni-float64(k))/2.0
	}

	return score, nil
}
