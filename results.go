package gwas

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/heroalone/GWAS-HandsOn-Wien/assoc"
)

// Record is one row of a GWAS result table.
type Record struct {
	Chr    int     `csv:"chr"`
	Pos    int     `csv:"pos"`
	PValue float64 `csv:"pvalue"`
	MAF    float64 `csv:"maf"`
	Effect float64 `csv:"effect_size"`
}

// ChromosomeOf locates the 1-indexed chromosome whose half-open SNP-index
// range [start, end) contains the given global SNP index.
func ChromosomeOf(snpIndex int, boundaries [][2]int) (int, error) {
	for c, b := range boundaries {
		if snpIndex >= b[0] && snpIndex < b[1] {
			return c + 1, nil
		}
	}

	return 0, fmt.Errorf("SNP index %d falls outside the chromosome boundary table", snpIndex)
}

// BuildRecords joins the per-SNP scan statistics with genomic metadata. kept
// holds the original (pre-filter) index of each tested SNP; positions and
// boundaries come from the genotype source. Output order matches kept.
func BuildRecords(kept []int, mafs []float64, res []assoc.Result, positions []int, boundaries [][2]int) ([]Record, error) {
	if len(mafs) != len(kept) || len(res) != len(kept) {
		return nil, fmt.Errorf("got %d SNPs with %d MAF values and %d scan results", len(kept), len(mafs), len(res))
	}

	out := make([]Record, 0, len(kept))
	for i, snp := range kept {
		if snp < 0 || snp >= len(positions) {
			return nil, fmt.Errorf("SNP index %d falls outside the position array (%d SNPs)", snp, len(positions))
		}

		chr, err := ChromosomeOf(snp, boundaries)
		if err != nil {
			return nil, err
		}

		out = append(out, Record{
			Chr:    chr,
			Pos:    positions[snp],
			PValue: res[i].PValue,
			MAF:    mafs[i],
			Effect: res[i].Effect,
		})
	}

	return out, nil
}

// WriteRecords serializes a result table as CSV with a header row and no
// index column.
func WriteRecords(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("results %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&recs, f); err != nil {
		return fmt.Errorf("results %s: %w", path, err)
	}

	return nil
}

// ReadRecords is the round-trip counterpart of WriteRecords.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("results %s: %w", path, err)
	}
	defer f.Close()

	var recs []Record
	if err := gocsv.UnmarshalFile(f, &recs); err != nil {
		return nil, fmt.Errorf("results %s: %w", path, err)
	}

	return recs, nil
}
