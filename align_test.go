package gwas

import (
	"reflect"
	"testing"
)

func phenoFor(ids ...string) *Phenotype {
	p := &Phenotype{Values: make(map[string]float64)}
	for i, id := range ids {
		p.IDs = append(p.IDs, id)
		p.Values[id] = float64(i)
	}

	return p
}

func TestAlignFollowsGenotypeOrder(t *testing.T) {
	// Phenotype order differs from genotype order on purpose: the aligned
	// order must come from the genotype source.
	pheno := phenoFor("D", "A", "C", "B")
	genoIDs := []string{"B", "C", "D", "E"}

	al, err := Align(pheno, genoIDs)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"B", "C", "D"}; !reflect.DeepEqual(al.Order, want) {
		t.Errorf("Order = %v, want %v", al.Order, want)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(al.GenotypeIndex, want) {
		t.Errorf("GenotypeIndex = %v, want %v", al.GenotypeIndex, want)
	}
}

func TestAlignProperties(t *testing.T) {
	pheno := phenoFor("Z", "Q", "M", "B", "X")
	genoIDs := []string{"A", "B", "M", "N", "X", "Y", "Z"}

	al, err := Align(pheno, genoIDs)
	if err != nil {
		t.Fatal(err)
	}

	// Every aligned accession is in both sources, exactly once
	seen := make(map[string]int)
	for _, id := range al.Order {
		seen[id]++
		if _, ok := pheno.Values[id]; !ok {
			t.Errorf("accession %s is not phenotyped", id)
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("accession %s appears %d times", id, count)
		}
	}
	if len(al.Order) != 4 {
		t.Errorf("aligned %d accessions, want 4", len(al.Order))
	}

	// Idempotence
	again, err := Align(pheno, genoIDs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(al, again) {
		t.Errorf("re-running the aligner changed the result: %v vs %v", al, again)
	}
}

func TestAlignEmptyIntersection(t *testing.T) {
	if _, err := Align(phenoFor("A", "B"), []string{"X", "Y"}); err == nil {
		t.Fatal("expected an error for an empty intersection")
	}
}

func TestAlignRejectsDuplicateGenotypeIDs(t *testing.T) {
	if _, err := Align(phenoFor("A", "B"), []string{"A", "B", "A"}); err == nil {
		t.Fatal("expected an error for a duplicated genotype accession")
	}
}

func TestIndexIn(t *testing.T) {
	al := &Alignment{Order: []string{"B", "C", "D"}}

	idx, err := al.IndexIn([]string{"A", "B", "C", "D", "E"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(idx, want) {
		t.Errorf("IndexIn = %v, want %v", idx, want)
	}

	if _, err := al.IndexIn([]string{"A", "B", "C"}); err == nil {
		t.Error("expected an error for a missing accession")
	}

	if _, err := al.IndexIn([]string{"A", "B", "B", "C", "D"}); err == nil {
		t.Error("expected an error for a duplicated accession")
	}
}
