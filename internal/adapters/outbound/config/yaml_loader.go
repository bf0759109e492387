package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/storekraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the store directory.
const FileName = ".storekraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .storekraft.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .storekraft.yaml from dir.
// Returns DefaultConfig (with data_dir = dir) if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.StoreConfig, error) {
	cfg := domain.DefaultConfig()
	cfg.DataDir = dir

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.StoreConfig{}, err
	}

	// Keys absent from the file keep their defaults.
	cfg.DataDir = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.StoreConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.StoreConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	cfg.DataDir = resolveDataDir(dir, cfg.DataDir)
	return cfg, nil
}

// resolveDataDir interprets a relative data_dir against the config directory.
func resolveDataDir(configDir, dataDir string) string {
	switch {
	case dataDir == "":
		return configDir
	case filepath.IsAbs(dataDir):
		return dataDir
	default:
		return filepath.Join(configDir, dataDir)
	}
}

// Write stores cfg as .storekraft.yaml in dir. Existing files are only
// replaced when force is set.
func Write(dir string, cfg domain.StoreConfig, force bool) (string, error) {
	dest := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", FileName)
		}
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	content := "# storekraft configuration\n" + string(body)
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return dest, nil
}
