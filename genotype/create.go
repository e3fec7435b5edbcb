package genotype

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Create writes a dataset in the Dir layout. calls is SNP-major with one row
// per variant and one 0/1 byte per accession. Converters from other genotype
// formats should target this function.
func Create(dir string, ids []string, variants []Variant, calls [][]byte) error {
	if len(calls) != len(variants) {
		return fmt.Errorf("genotype: %d call rows for %d variants", len(calls), len(variants))
	}

	if err := writeLines(filepath.Join(dir, accessionsFile), ids); err != nil {
		return err
	}

	vlines := make([]string, 0, len(variants))
	for _, v := range variants {
		vlines = append(vlines, fmt.Sprintf("%d\t%d", v.Chromosome, v.Position))
	}
	if err := writeLines(filepath.Join(dir, variantsFile), vlines); err != nil {
		return err
	}

	path := filepath.Join(dir, callsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("genotype %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, row := range calls {
		if len(row) != len(ids) {
			return fmt.Errorf("genotype: SNP %d has %d calls for %d accessions", i, len(row), len(ids))
		}
		for _, c := range row {
			if c > 1 {
				return fmt.Errorf("genotype: SNP %d holds call %d, want 0/1", i, c)
			}
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("genotype %s: %w", path, err)
		}
	}

	return w.Flush()
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("genotype %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return w.Flush()
}
