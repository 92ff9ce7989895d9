package clientconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ApiUrl         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	OutputDir      string `yaml:"output_dir"`
}

func defaultConfig() *Config {
	return &Config{
		ApiUrl:         "http://localhost:8000",
		TimeoutSeconds: 30,
		OutputDir:      ".",
	}
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.ApiUrl, "http://") && !strings.HasPrefix(c.ApiUrl, "https://") {
		return fmt.Errorf("api_url must be an http(s) url, got '%s'", c.ApiUrl)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// LoadConfig reads the yaml config at path. A missing file is fine - the
// defaults describe a local service. ASSETBOT_API_URL overrides the file
// either way.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if override := os.Getenv("ASSETBOT_API_URL"); override != "" {
		config.ApiUrl = override
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
