// Package genotype reads the composite genotype dataset: accession IDs, SNP
// genomic positions with chromosome-boundary metadata, and a SNP-major binary
// call matrix. The concrete on-disk layout is hidden behind Store so that
// alternative layouts can be substituted without touching the alignment,
// filtering, or result-writing logic.
package genotype

// Store is a read-only view over a genotype dataset.
type Store interface {
	// AccessionIDs returns the column order of the call matrix.
	AccessionIDs() []string

	// Positions returns one genomic position per SNP, in matrix row order.
	Positions() []int

	// ChromosomeBoundaries returns one half-open SNP-index range [start, end)
	// per chromosome. Chromosome k (1-indexed) is boundaries[k-1].
	ChromosomeBoundaries() [][2]int

	// Calls materializes rows [lo, hi) of the call matrix, restricted to the
	// given accession columns. Indices are sorted before slicing, so the
	// returned columns follow genotype-source order regardless of the order
	// in which indices are given.
	Calls(lo, hi int, accessions []int) ([][]byte, error)

	Close() error
}

// Variant is one SNP's genomic location.
type Variant struct {
	Chromosome int
	Position   int
}
