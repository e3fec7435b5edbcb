package gwas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heroalone/GWAS-HandsOn-Wien/assoc"
	"github.com/heroalone/GWAS-HandsOn-Wien/genotype"
	"github.com/heroalone/GWAS-HandsOn-Wien/kinship"
)

// End-to-end scenario: phenotyped accessions {A,B,C,D}, genotyped {B,C,D,E},
// kinship over all five. The aligned set is {B,C,D} in genotype-source order,
// two of four SNPs survive the MAF filter, and the corrected and uncorrected
// tables share their chr/pos/maf columns.
func TestRunEndToEnd(t *testing.T) {
	tmp := t.TempDir()

	phenoPath := filepath.Join(tmp, "pheno.csv")
	require.NoError(t, os.WriteFile(phenoPath, []byte(
		"accession_id,trait_value\n"+
			"A,1.0\n"+
			"B,1.25\n"+
			"C,2.5\n"+
			"D,3.75\n"), 0o644))

	genoDir := filepath.Join(tmp, "geno")
	require.NoError(t, os.Mkdir(genoDir, 0o755))
	require.NoError(t, genotype.Create(genoDir,
		[]string{"B", "C", "D", "E"},
		[]genotype.Variant{
			{Chromosome: 1, Position: 100},
			{Chromosome: 1, Position: 200},
			{Chromosome: 2, Position: 300},
			{Chromosome: 2, Position: 400},
		},
		[][]byte{
			{1, 0, 0, 1}, // over {B,C,D}: MAF 1/3, kept
			{0, 0, 0, 1}, // over {B,C,D}: MAF 0, dropped
			{1, 1, 0, 0}, // over {B,C,D}: MAF 1/3, kept
			{1, 1, 1, 0}, // over {B,C,D}: MAF 0, dropped
		}))

	kinDir := filepath.Join(tmp, "kinship")
	require.NoError(t, os.Mkdir(kinDir, 0o755))
	identity := make([][]float64, 5)
	for i := range identity {
		identity[i] = make([]float64, 5)
		identity[i][i] = 1
	}
	require.NoError(t, kinship.Create(kinDir, []string{"A", "B", "C", "D", "E"}, identity))

	cfg := Config{
		PhenoFile:      phenoPath,
		GenoDir:        genoDir,
		KinshipDir:     kinDir,
		MAFThreshold:   0.05,
		OutCorrected:   filepath.Join(tmp, "corrected.csv"),
		OutUncorrected: filepath.Join(tmp, "uncorrected.csv"),
	}

	require.NoError(t, Run(cfg, assoc.Linear{}))

	corrected, err := ReadRecords(cfg.OutCorrected)
	require.NoError(t, err)
	uncorrected, err := ReadRecords(cfg.OutUncorrected)
	require.NoError(t, err)

	require.Len(t, corrected, 2)
	require.Len(t, uncorrected, 2)

	require.Equal(t, 1, corrected[0].Chr)
	require.Equal(t, 100, corrected[0].Pos)
	require.Equal(t, 2, corrected[1].Chr)
	require.Equal(t, 300, corrected[1].Pos)

	for i := range corrected {
		require.Equal(t, corrected[i].Chr, uncorrected[i].Chr)
		require.Equal(t, corrected[i].Pos, uncorrected[i].Pos)
		require.Equal(t, corrected[i].MAF, uncorrected[i].MAF)
		require.InDelta(t, 1.0/3.0, corrected[i].MAF, 1e-12)

		require.GreaterOrEqual(t, corrected[i].PValue, 0.0)
		require.LessOrEqual(t, corrected[i].PValue, 1.0)

		// The kinship matrix is the identity, so correcting for it changes
		// nothing.
		require.InDelta(t, uncorrected[i].PValue, corrected[i].PValue, 1e-9)
		require.InDelta(t, uncorrected[i].Effect, corrected[i].Effect, 1e-9)
	}
}

func TestRunEmptyIntersectionFails(t *testing.T) {
	tmp := t.TempDir()

	phenoPath := filepath.Join(tmp, "pheno.csv")
	require.NoError(t, os.WriteFile(phenoPath, []byte(
		"accession_id,trait_value\nX,1.0\nY,2.0\nZ,3.0\n"), 0o644))

	genoDir := filepath.Join(tmp, "geno")
	require.NoError(t, os.Mkdir(genoDir, 0o755))
	require.NoError(t, genotype.Create(genoDir,
		[]string{"B", "C", "D"},
		[]genotype.Variant{{Chromosome: 1, Position: 100}},
		[][]byte{{1, 0, 0}}))

	kinDir := filepath.Join(tmp, "kinship")
	require.NoError(t, os.Mkdir(kinDir, 0o755))
	require.NoError(t, kinship.Create(kinDir, []string{"B", "C", "D"}, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))

	cfg := Config{
		PhenoFile:      phenoPath,
		GenoDir:        genoDir,
		KinshipDir:     kinDir,
		OutCorrected:   filepath.Join(tmp, "corrected.csv"),
		OutUncorrected: filepath.Join(tmp, "uncorrected.csv"),
	}

	err := Run(cfg, assoc.Linear{})
	require.Error(t, err)

	// No partial output
	_, statErr := os.Stat(cfg.OutCorrected)
	require.True(t, os.IsNotExist(statErr))
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		PhenoFile:      "p",
		GenoDir:        "g",
		KinshipDir:     "k",
		OutCorrected:   "c",
		OutUncorrected: "u",
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultMAFThreshold, cfg.MAFThreshold)

	bad := cfg
	bad.MAFThreshold = 0.7
	require.Error(t, bad.Validate())

	missing := cfg
	missing.GenoDir = ""
	require.Error(t, missing.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"pheno_file = \"pheno.csv\"\n"+
			"geno_dir = \"geno\"\n"+
			"kinship_dir = \"kin\"\n"+
			"maf_threshold = 0.1\n"+
			"output_corrected = \"corrected.csv\"\n"+
			"output_uncorrected = \"uncorrected.csv\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "pheno.csv", cfg.PhenoFile)
	require.Equal(t, 0.1, cfg.MAFThreshold)
	require.NoError(t, cfg.Validate())
}
