package gwas

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultMAFThreshold is the minor allele frequency below which SNPs are
// excluded from the scan.
const DefaultMAFThreshold = 0.05

// FilterByMAF computes the minor allele frequency of each SNP over the
// aligned accessions and drops SNPs below the threshold. The input is
// SNP-major (one row per SNP, one call per aligned accession); the returned
// matrix is transposed to accession-major orientation to match the trait
// vector's layout. Also returned are the original indices of the retained
// SNPs, in input order, and their MAF values.
func FilterByMAF(calls [][]byte, threshold float64) (*mat.Dense, []int, []float64, error) {
	if len(calls) == 0 {
		return nil, nil, nil, fmt.Errorf("genotype matrix has no SNPs")
	}
	n := len(calls[0])
	if n == 0 {
		return nil, nil, nil, fmt.Errorf("genotype matrix has no accessions")
	}

	var kept []int
	var mafs []float64
	for i, snp := range calls {
		if len(snp) != n {
			return nil, nil, nil, fmt.Errorf("SNP %d has %d calls, want %d", i, len(snp), n)
		}

		ac1 := 0
		for _, c := range snp {
			ac1 += int(c)
		}

		mac := ac1
		if ac0 := n - ac1; ac0 < mac {
			mac = ac0
		}

		maf := float64(mac) / float64(n)
		if maf < threshold {
			continue
		}

		kept = append(kept, i)
		mafs = append(mafs, maf)
	}

	if len(kept) == 0 {
		return nil, nil, nil, fmt.Errorf("MAF threshold %g excludes every SNP", threshold)
	}

	g := mat.NewDense(n, len(kept), nil)
	for j, snp := range kept {
		for i := 0; i < n; i++ {
			g.Set(i, j, float64(calls[snp][i]))
		}
	}

	return g, kept, mafs, nil
}
