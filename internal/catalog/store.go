package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jmoreno/gastos-csv/internal/clserror"
	"jmoreno/gastos-csv/internal/common"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

// merchantsConfig is the on-disk shape of the merchant catalog.
type merchantsConfig struct {
	Merchants map[string]models.Category `yaml:"merchants"`
}

// Store loads and saves the merchant catalog file.
type Store struct {
	File   string
	logger logging.Logger
}

// NewStore creates a Store for the given catalog file.
func NewStore(file string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{File: file, logger: logger}
}

// Load reads the catalog file and builds a Catalog. A missing or unreadable
// file is a ReferenceDataError: running the cascade without the catalog
// would silently mark everything unclassified, which corrupts accuracy
// metrics. Callers must abort the run instead.
func (s *Store) Load() (*Catalog, error) {
	resolved, err := common.FindConfigFile(s.File)
	if err != nil {
		return nil, &clserror.ReferenceDataError{Source: s.File, Err: err}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &clserror.ReferenceDataError{Source: resolved, Err: err}
	}

	var cfg merchantsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &clserror.ReferenceDataError{Source: resolved, Err: err}
	}

	s.logger.WithField("count", len(cfg.Merchants)).Debug("Loaded merchant catalog")
	return New(cfg.Merchants, s.logger), nil
}

// Save writes the catalog back to disk if it has been modified.
func (s *Store) Save(c *Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	filePath, err := common.FindConfigFile(s.File)
	if err != nil {
		filePath = s.File
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(merchantsConfig{Merchants: c.entries})
	if err != nil {
		return fmt.Errorf("error marshaling merchant catalog: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("error writing merchant catalog: %w", err)
	}

	c.dirty = false
	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(c.entries)},
		logging.Field{Key: "file", Value: filePath},
	).Debug("Saved merchant catalog")
	return nil
}
