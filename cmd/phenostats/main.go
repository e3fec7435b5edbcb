// phenostats summarizes a phenotype table: count, moments, extremes, and a
// terminal histogram of the trait distribution.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"

	gwas "github.com/heroalone/GWAS-HandsOn-Wien"
)

func main() {
	var phenoPath string
	var bins int
	flag.StringVar(&phenoPath, "pheno", "", "Path to the phenotype table (accession_id, trait_value; header row).")
	flag.IntVar(&bins, "bins", 20, "Number of histogram buckets.")
	flag.Parse()

	if phenoPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --pheno")
	}

	pheno, err := gwas.LoadPhenotype(phenoPath)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	s, err := pheno.Describe()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	fmt.Printf("n\t%d\n", s.N)
	fmt.Printf("mean\t%g\n", s.Mean)
	fmt.Printf("median\t%g\n", s.Median)
	fmt.Printf("sd\t%g\n", s.SD)
	fmt.Printf("min\t%g\n", s.Min)
	fmt.Printf("max\t%g\n", s.Max)
	fmt.Println()

	hist := histogram.Hist(bins, pheno.TraitValues())
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}
