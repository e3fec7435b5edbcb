// gwasscan runs the full association pipeline: phenotype loading, accession
// alignment, MAF filtering, a kinship-corrected and an uncorrected scan, and
// one result table per scan.
package main

import (
	"flag"
	"log"

	"github.com/carbocation/pfx"

	gwas "github.com/heroalone/GWAS-HandsOn-Wien"
	"github.com/heroalone/GWAS-HandsOn-Wien/assoc"
)

func main() {
	var configPath string
	cfg := gwas.Config{MAFThreshold: gwas.DefaultMAFThreshold}

	flag.StringVar(&configPath, "config", "", "Optional TOML run-config file. When set, all other flags are ignored.")
	flag.StringVar(&cfg.PhenoFile, "pheno", "", "Path to the phenotype table (accession_id, trait_value; header row).")
	flag.StringVar(&cfg.GenoDir, "geno", "", "Path to the genotype dataset directory.")
	flag.StringVar(&cfg.KinshipDir, "kinship", "", "Path to the kinship dataset directory.")
	flag.Float64Var(&cfg.MAFThreshold, "maf", gwas.DefaultMAFThreshold, "Minimum minor allele frequency for a SNP to be tested.")
	flag.StringVar(&cfg.OutCorrected, "out-corrected", "", "Output CSV for the kinship-corrected scan.")
	flag.StringVar(&cfg.OutUncorrected, "out-uncorrected", "", "Output CSV for the uncorrected scan.")
	flag.Parse()

	if configPath != "" {
		var err error
		if cfg, err = gwas.LoadConfig(configPath); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	if err := cfg.Validate(); err != nil {
		flag.PrintDefaults()
		log.Fatalln(pfx.Err(err))
	}

	if err := gwas.Run(cfg, assoc.Linear{}); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Println("Wrote", cfg.OutCorrected, "and", cfg.OutUncorrected)
}
