package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the banksh.yaml configuration: the provider session
// credentials and file locations. Command-line flags override file values.
type Config struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	OTPMethod string `yaml:"otp_method,omitempty"`
	Ledger    string `yaml:"ledger"`
	AuditLog  string `yaml:"audit_log,omitempty"`
}

// Load reads a banksh.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file. Config files hold credentials, so
// they are written owner-readable only.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
