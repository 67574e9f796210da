package utils

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port           int      `yaml:"port"`
	TrustedProxies []string `yaml:"trusted_proxies"`
	ImportMaxRows  int      `yaml:"import_max_rows"`
}

// LoadServerConfig reads the yaml config named by PROJECTDECK_CONFIG
// (default config.yaml). A missing file is not an error; defaults apply
// for every unset field.
func LoadServerConfig() (ServerConfig, error) {
	path := os.Getenv("PROJECTDECK_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	var cfg ServerConfig
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ServerConfig{}, err
		}
	} else if !os.IsNotExist(err) {
		return ServerConfig{}, err
	}

	// Set defaults
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if len(cfg.TrustedProxies) == 0 {
		cfg.TrustedProxies = []string{"127.0.0.1"}
	}
	if cfg.ImportMaxRows == 0 {
		cfg.ImportMaxRows = 500
	}
	return cfg, nil
}
