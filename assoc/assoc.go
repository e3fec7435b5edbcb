// Package assoc runs per-SNP association tests over an aligned trait vector,
// genotype matrix, and optional kinship covariance.
package assoc

import (
	"gonum.org/v1/gonum/mat"
)

// Result is the test outcome for one SNP: a likelihood-ratio p-value and the
// estimated regression coefficient of the genotype term.
type Result struct {
	PValue float64
	Effect float64
}

// Scanner tests every column of g against y. A nil k requests the
// uncorrected scan; otherwise k is the relatedness covariance used to correct
// for population structure. y, g, and k must share one accession ordering.
type Scanner interface {
	Scan(y *mat.VecDense, g *mat.Dense, k *mat.SymDense) ([]Result, error)
}
