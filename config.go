package gwas

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config collects the options recognized by the scan pipeline.
type Config struct {
	PhenoFile  string `toml:"pheno_file"`
	GenoDir    string `toml:"geno_dir"`
	KinshipDir string `toml:"kinship_dir"`

	MAFThreshold float64 `toml:"maf_threshold"`

	OutCorrected   string `toml:"output_corrected"`
	OutUncorrected string `toml:"output_uncorrected"`
}

// LoadConfig reads a TOML run-config file. Options absent from the file keep
// their zero values; Validate applies defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate fills in defaults and rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.MAFThreshold == 0 {
		c.MAFThreshold = DefaultMAFThreshold
	}
	if c.MAFThreshold < 0 || c.MAFThreshold > 0.5 {
		return fmt.Errorf("maf_threshold %g is outside [0, 0.5]", c.MAFThreshold)
	}

	for _, req := range []struct{ name, val string }{
		{"pheno_file", c.PhenoFile},
		{"geno_dir", c.GenoDir},
		{"kinship_dir", c.KinshipDir},
		{"output_corrected", c.OutCorrected},
		{"output_uncorrected", c.OutUncorrected},
	} {
		if req.val == "" {
			return fmt.Errorf("missing required option %s", req.name)
		}
	}

	return nil
}
