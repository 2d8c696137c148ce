package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Exclude    []string `yaml:"exclude"`
	OutputFile string   `yaml:"output_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{
			".git/",
			".svn/",
			"__pycache__/",
			"*.tmp",
			"*.swp",
			".DS_Store",
			"Thumbs.db",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	return &cfg, nil
}

// ValidateRoots resolves the given root paths to absolute directories and
// rejects any set where one root equals, or is an ancestor of, another.
// Overlapping roots would present the same folders as candidates twice.
func ValidateRoots(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one root path is required")
	}

	abs := make([]string, 0, len(roots))
	for _, root := range roots {
		path, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("root %q: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %q is not a directory", root)
		}

		abs = append(abs, path)
	}

	sep := string(filepath.Separator)
	for i := range abs {
		for j := range abs {
			if i == j {
				continue
			}
			if abs[i] == abs[j] || strings.HasPrefix(abs[j], abs[i]+sep) {
				return nil, fmt.Errorf("overlapping root paths: %q contains %q", abs[i], abs[j])
			}
		}
	}

	return abs, nil
}
