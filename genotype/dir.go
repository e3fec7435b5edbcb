package genotype

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	accessionsFile = "accessions.txt"
	variantsFile   = "variants.txt"
	callsFile      = "calls.bin"
)

// Dir is the native directory layout of a genotype dataset:
//
//	accessions.txt  one accession ID per line, in call-matrix column order
//	variants.txt    one SNP per line: "chromosome position", grouped by
//	                chromosome in increasing chromosome order
//	calls.bin       packed SNP-major byte matrix, one 0/1 byte per call
//
// Metadata is read eagerly; the call matrix stays on disk and is sliced
// through ReadAt so that only the requested rows are ever materialized.
type Dir struct {
	ids        []string
	positions  []int
	boundaries [][2]int

	calls *os.File
}

var _ Store = (*Dir)(nil)

// Open reads the dataset metadata and validates the call matrix size against
// the accession and variant counts.
func Open(dir string) (*Dir, error) {
	ids, err := readLines(filepath.Join(dir, accessionsFile))
	if err != nil {
		return nil, err
	}

	variants, err := readVariants(filepath.Join(dir, variantsFile))
	if err != nil {
		return nil, err
	}

	d := &Dir{ids: ids}
	if d.positions, d.boundaries, err = indexVariants(variants); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, variantsFile), err)
	}

	callsPath := filepath.Join(dir, callsFile)
	f, err := os.Open(callsPath)
	if err != nil {
		return nil, fmt.Errorf("genotype %s: %w", callsPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("genotype %s: %w", callsPath, err)
	}
	if want := int64(len(variants)) * int64(len(ids)); info.Size() != want {
		f.Close()
		return nil, fmt.Errorf("genotype %s: %d bytes, want %d (%d SNPs x %d accessions)",
			callsPath, info.Size(), want, len(variants), len(ids))
	}

	d.calls = f

	return d, nil
}

func (d *Dir) AccessionIDs() []string { return d.ids }

func (d *Dir) Positions() []int { return d.positions }

func (d *Dir) ChromosomeBoundaries() [][2]int { return d.boundaries }

func (d *Dir) Calls(lo, hi int, accessions []int) ([][]byte, error) {
	if lo < 0 || hi > len(d.positions) || lo > hi {
		return nil, fmt.Errorf("genotype: SNP range [%d, %d) is invalid for %d SNPs", lo, hi, len(d.positions))
	}

	n := len(d.ids)
	idx := make([]int, len(accessions))
	copy(idx, accessions)
	sort.Ints(idx)
	for _, ai := range idx {
		if ai < 0 || ai >= n {
			return nil, fmt.Errorf("genotype: accession index %d is invalid for %d accessions", ai, n)
		}
	}

	out := make([][]byte, 0, hi-lo)
	buf := make([]byte, n)
	for snp := lo; snp < hi; snp++ {
		if _, err := d.calls.ReadAt(buf, int64(snp)*int64(n)); err != nil {
			return nil, fmt.Errorf("genotype %s: SNP %d: %w", d.calls.Name(), snp, err)
		}

		row := make([]byte, len(idx))
		for j, ai := range idx {
			c := buf[ai]
			if c > 1 {
				return nil, fmt.Errorf("genotype %s: call %d at SNP %d, accession %d is not 0/1", d.calls.Name(), c, snp, ai)
			}
			row[j] = c
		}
		out = append(out, row)
	}

	return out, nil
}

func (d *Dir) Close() error {
	return d.calls.Close()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genotype %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("genotype %s: %w", path, err)
	}

	return out, nil
}

func readVariants(path string) ([]Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genotype %s: %w", path, err)
	}
	defer f.Close()

	var out []Variant
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) < 2 {
			return nil, fmt.Errorf("genotype %s: line %d has %d fields, want 2", path, len(out)+1, len(cols))
		}

		chr, err := strconv.Atoi(cols[0])
		if err != nil {
			return nil, fmt.Errorf("genotype %s: line %d: chromosome %q: %w", path, len(out)+1, cols[0], err)
		}
		pos, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("genotype %s: line %d: position %q: %w", path, len(out)+1, cols[1], err)
		}

		out = append(out, Variant{Chromosome: chr, Position: pos})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("genotype %s: %w", path, err)
	}

	return out, nil
}

// indexVariants derives the position array and the per-chromosome boundary
// table. Variants must arrive grouped by chromosome with chromosome numbers
// increasing from 1.
func indexVariants(variants []Variant) ([]int, [][2]int, error) {
	positions := make([]int, 0, len(variants))
	var boundaries [][2]int

	prevChr := 0
	for i, v := range variants {
		positions = append(positions, v.Position)

		switch {
		case v.Chromosome == prevChr:
			boundaries[len(boundaries)-1][1] = i + 1
		case v.Chromosome == prevChr+1:
			boundaries = append(boundaries, [2]int{i, i + 1})
			prevChr = v.Chromosome
		default:
			return nil, nil, fmt.Errorf("SNP %d: chromosome %d after chromosome %d; variants must be grouped by increasing chromosome", i, v.Chromosome, prevChr)
		}
	}

	return positions, boundaries, nil
}
