// Package kinship reads the accession-by-accession relatedness matrix used as
// the random-effect covariance in the corrected scan.
package kinship

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	accessionsFile = "accessions.txt"
	matrixFile     = "kinship.txt"
)

const symmetryTolerance = 1e-9

// Dir is the native directory layout of a kinship dataset:
//
//	accessions.txt  one accession ID per line, row and column order of the matrix
//	kinship.txt     N whitespace-separated rows of N floats, symmetric
//
// Both files are read and closed inside Open; no handle stays behind.
type Dir struct {
	ids []string
	k   *mat.SymDense
}

// Open reads and validates a kinship dataset. The matrix must be square with
// one row per accession and symmetric.
func Open(dir string) (*Dir, error) {
	ids, err := readLines(filepath.Join(dir, accessionsFile))
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, matrixFile)
	rows, err := readMatrix(path)
	if err != nil {
		return nil, err
	}

	n := len(ids)
	if len(rows) != n {
		return nil, fmt.Errorf("kinship %s: %d matrix rows for %d accessions", path, len(rows), n)
	}

	k := mat.NewSymDense(n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("kinship %s: row %d has %d values, want %d", path, i, len(row), n)
		}
		for j := i; j < n; j++ {
			if diff := math.Abs(row[j] - rows[j][i]); diff > symmetryTolerance {
				return nil, fmt.Errorf("kinship %s: matrix is not symmetric at (%d, %d)", path, i, j)
			}
			k.SetSym(i, j, row[j])
		}
	}

	return &Dir{ids: ids, k: k}, nil
}

// AccessionIDs returns the row/column order of the matrix.
func (d *Dir) AccessionIDs() []string { return d.ids }

// Submatrix extracts the relatedness submatrix for the given accession
// indices, in the given order.
func (d *Dir) Submatrix(idx []int) (*mat.SymDense, error) {
	n := d.k.Symmetric()
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("kinship: accession index %d is invalid for %d accessions", i, n)
		}
	}

	sub := mat.NewSymDense(len(idx), nil)
	for i := range idx {
		for j := i; j < len(idx); j++ {
			sub.SetSym(i, j, d.k.At(idx[i], idx[j]))
		}
	}

	return sub, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kinship %s: %w", path, err)
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
		return nil, fmt.Errorf("kinship %s: %w", path, err)
	}

	return out, nil
}

func readMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kinship %s: %w", path, err)
	}
	defer f.Close()

	var out [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	for scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}

		row := make([]float64, 0, len(cols))
		for j, col := range cols {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("kinship %s: row %d, column %d: %w", path, len(out), j, err)
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("kinship %s: %w", path, err)
	}

	return out, nil
}

// Create writes a dataset in the Dir layout.
func Create(dir string, ids []string, k [][]float64) error {
	path := filepath.Join(dir, accessionsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("kinship %s: %w", path, err)
	}
	for _, id := range ids {
		fmt.Fprintln(f, id)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("kinship %s: %w", path, err)
	}

	path = filepath.Join(dir, matrixFile)
	f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("kinship %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range k {
		for j, v := range row {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintf(w, "%g", v)
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}
