package gwas

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/heroalone/GWAS-HandsOn-Wien/assoc"
	"github.com/heroalone/GWAS-HandsOn-Wien/genotype"
	"github.com/heroalone/GWAS-HandsOn-Wien/kinship"
)

// Run executes the full scan pipeline: load the phenotype, align accessions
// against the genotype source, filter SNPs by minor allele frequency, run the
// association scan twice (kinship-corrected and uncorrected) over the same
// Y/G, and write one result table per scan. Each data source is closed as
// soon as its last read completes.
func Run(cfg Config, scanner assoc.Scanner) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pheno, err := LoadPhenotype(cfg.PhenoFile)
	if err != nil {
		return err
	}
	log.Printf("phenotype: %d accessions with usable trait values", len(pheno.IDs))

	calls, positions, boundaries, al, err := loadAlignedCalls(cfg.GenoDir, pheno)
	if err != nil {
		return err
	}
	log.Printf("aligned %d accessions (genotype-source order), %d SNPs", len(al.Order), len(positions))

	g, kept, mafs, err := FilterByMAF(calls, cfg.MAFThreshold)
	if err != nil {
		return err
	}
	log.Printf("MAF >= %g retains %d of %d SNPs", cfg.MAFThreshold, len(kept), len(positions))

	k, err := loadAlignedKinship(cfg.KinshipDir, al)
	if err != nil {
		return err
	}

	y := mat.NewVecDense(len(al.Order), nil)
	for i, id := range al.Order {
		y.SetVec(i, pheno.Values[id])
	}

	// Both scans run to completion before either table is written, so a scan
	// failure never leaves partial output behind.
	corrected, err := scanner.Scan(y, g, k)
	if err != nil {
		return fmt.Errorf("corrected scan: %w", err)
	}
	uncorrected, err := scanner.Scan(y, g, nil)
	if err != nil {
		return fmt.Errorf("uncorrected scan: %w", err)
	}

	correctedRecs, err := BuildRecords(kept, mafs, corrected, positions, boundaries)
	if err != nil {
		return err
	}
	uncorrectedRecs, err := BuildRecords(kept, mafs, uncorrected, positions, boundaries)
	if err != nil {
		return err
	}

	if err := WriteRecords(cfg.OutCorrected, correctedRecs); err != nil {
		return err
	}

	return WriteRecords(cfg.OutUncorrected, uncorrectedRecs)
}

// loadAlignedCalls opens the genotype source, aligns its accessions with the
// phenotyped set, and slices the call matrix down to the aligned columns. The
// source is closed before returning.
func loadAlignedCalls(dir string, pheno *Phenotype) ([][]byte, []int, [][2]int, *Alignment, error) {
	store, err := genotype.Open(dir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer store.Close()

	positions := store.Positions()

	al, err := Align(pheno, store.AccessionIDs())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	calls, err := store.Calls(0, len(positions), al.GenotypeIndex)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return calls, positions, store.ChromosomeBoundaries(), al, nil
}

// loadAlignedKinship extracts the aligned submatrix from the kinship source.
func loadAlignedKinship(dir string, al *Alignment) (*mat.SymDense, error) {
	kin, err := kinship.Open(dir)
	if err != nil {
		return nil, err
	}

	idx, err := al.IndexIn(kin.AccessionIDs())
	if err != nil {
		return nil, fmt.Errorf("kinship source: %w", err)
	}

	return kin.Submatrix(idx)
}
