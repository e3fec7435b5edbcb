package gwas

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/csimplestring/go-csv/detector"
	"github.com/montanaflynn/stats"
)

// Phenotype holds one scalar trait value per accession. IDs preserves the
// order in which accessions appeared in the source file.
type Phenotype struct {
	IDs    []string
	Values map[string]float64
}

// LoadPhenotype reads a two-column table (accession_id, trait_value) with a
// header row. The delimiter is sniffed from the file contents. Rows whose
// trait value is empty, NA, or otherwise non-numeric are dropped. A duplicate
// accession ID is a data-quality fault and yields an error.
func LoadPhenotype(path string) (*Phenotype, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phenotype %s: %w", path, err)
	}
	defer f.Close()

	delim := sniffDelimiter(f)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("phenotype %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("phenotype %s: %w", path, err)
	}

	p := &Phenotype{Values: make(map[string]float64)}
	for i, row := range rows {
		// Skip the header row
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}

		id := strings.TrimSpace(row[0])
		if id == "" {
			continue
		}

		val, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || math.IsNaN(val) {
			// Missing or non-numeric trait values are dropped, not errors
			continue
		}

		if _, seen := p.Values[id]; seen {
			return nil, fmt.Errorf("phenotype %s: duplicate accession %q", path, id)
		}

		p.IDs = append(p.IDs, id)
		p.Values[id] = val
	}

	return p, nil
}

// sniffDelimiter returns the single most likely rune delimiting the values in
// the reader, assuming a CSV-like file.
func sniffDelimiter(f *os.File) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(f, '"')
	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// TraitValues returns the trait values in file order.
func (p *Phenotype) TraitValues() []float64 {
	out := make([]float64, 0, len(p.IDs))
	for _, id := range p.IDs {
		out = append(out, p.Values[id])
	}

	return out
}

// Summary describes the distribution of a trait.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	SD     float64
	Min    float64
	Max    float64
}

// Describe computes summary statistics over all retained trait values.
func (p *Phenotype) Describe() (Summary, error) {
	vals := stats.Float64Data(p.TraitValues())

	s := Summary{N: len(vals)}
	if s.N == 0 {
		return s, fmt.Errorf("phenotype has no usable trait values")
	}

	var err error
	if s.Mean, err = stats.Mean(vals); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(vals); err != nil {
		return s, err
	}
	if s.SD, err = stats.StandardDeviation(vals); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(vals); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(vals); err != nil {
		return s, err
	}

	return s, nil
}
