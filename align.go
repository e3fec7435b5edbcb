package gwas

import "fmt"

// Alignment is the ordered set of accessions shared between the phenotype and
// genotype sources. Order follows the genotype source, not the phenotype file:
// downstream slicing assumes genotype-source ordering, so the phenotype order
// is deliberately not preserved.
type Alignment struct {
	Order []string

	// GenotypeIndex holds, for each accession in Order, its row/column
	// position within the genotype source. Ascending by construction.
	GenotypeIndex []int
}

// Align intersects the phenotyped accessions with the genotype source's
// accession list. An empty intersection means there is nothing to test and is
// a configuration error. A duplicated ID within the genotype list is a
// data-quality fault and is rejected rather than resolved.
func Align(pheno *Phenotype, genotypeIDs []string) (*Alignment, error) {
	seen := make(map[string]bool, len(genotypeIDs))

	al := &Alignment{}
	for i, id := range genotypeIDs {
		if seen[id] {
			return nil, fmt.Errorf("genotype source: duplicate accession %q", id)
		}
		seen[id] = true

		if _, ok := pheno.Values[id]; !ok {
			continue
		}

		al.Order = append(al.Order, id)
		al.GenotypeIndex = append(al.GenotypeIndex, i)
	}

	if len(al.Order) == 0 {
		return nil, fmt.Errorf("no accessions are shared between the phenotype and genotype sources")
	}

	return al, nil
}

// IndexIn maps the aligned accession order into another source's accession
// list (typically the kinship matrix, whose accessions are a superset of the
// aligned set). Every aligned accession must be present exactly once.
func (al *Alignment) IndexIn(ids []string) ([]int, error) {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := pos[id]; dup {
			return nil, fmt.Errorf("duplicate accession %q", id)
		}
		pos[id] = i
	}

	out := make([]int, 0, len(al.Order))
	for _, id := range al.Order {
		i, ok := pos[id]
		if !ok {
			return nil, fmt.Errorf("accession %q is missing", id)
		}
		out = append(out, i)
	}

	return out, nil
}
