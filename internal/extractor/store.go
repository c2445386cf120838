package extractor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jmoreno/gastos-csv/internal/common"
)

// banksConfig is the on-disk shape of the bank strategy table.
type banksConfig struct {
	Banks map[string]Strategy `yaml:"banks"`
}

// LoadStrategies reads a bank strategy table from a YAML file, falling back
// to the compiled-in defaults when the file does not exist. Entries in the
// file replace the default for that bank wholesale.
func LoadStrategies(path string) (map[string]Strategy, error) {
	strategies := DefaultStrategies()

	resolved, err := common.FindConfigFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return strategies, nil
		}
		return nil, fmt.Errorf("error resolving bank strategies file: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("error reading bank strategies file: %w", err)
	}

	var cfg banksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing bank strategies file: %w", err)
	}

	for bank, s := range cfg.Banks {
		strategies[bank] = s
	}

	return strategies, nil
}
