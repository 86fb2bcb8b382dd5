package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds fvreport configuration loaded from .fvreport.yaml or
// .fvreport.toml.
type Config struct {
	Format      string `yaml:"format" toml:"format"`
	Output      string `yaml:"output" toml:"output"`
	Samples     int    `yaml:"samples" toml:"samples"`
	DetailLimit int    `yaml:"detail_limit" toml:"detail_limit"`
}

// FileNames lists the config files Load looks for, in priority order.
var FileNames = []string{
	".fvreport.yaml",
	".fvreport.yml",
	".fvreport.toml",
}

// Load searches dir for the first config file in FileNames and returns the
// parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if filepath.Ext(path) == ".toml" {
			if _, err := toml.Decode(string(data), &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
			return cfg, nil
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
