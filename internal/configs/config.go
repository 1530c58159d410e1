package configs

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/random"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

type Config struct {
	Defaults Defaults `toml:"defaults" json:"defaults"`
	Keys     Keys     `toml:"keys" json:"keys"`
	Rand     Rand     `toml:"rand" json:"rand"`
	Audit    Audit    `toml:"audit" json:"audit"`
	Install  Install  `toml:"install" json:"install"`
}

type Defaults struct {
	Digest  string `toml:"digest" json:"digest"`
	Cipher  string `toml:"cipher" json:"cipher"`
	KeyType string `toml:"key_type" json:"key_type"`
	KeyBits int    `toml:"key_bits" json:"key_bits"`
}

type Keys struct {
	StrictLength bool `toml:"strict_length" json:"strict_length"`
}

type Rand struct {
	StateFile string `toml:"state_file" json:"state_file"`
}

type Audit struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"`
}

type Install struct {
	ID string `toml:"id" json:"id"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Digest:  "sha256",
			Cipher:  "aes-256-cbc",
			KeyType: "rsa",
			KeyBits: 2048,
		},
		Audit: Audit{Enabled: true},
	}
}

// LoadConfig reads the config at path over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// GenerateInstallID generates a new installation UUID.
func GenerateInstallID() string {
	return uuid.New().String()
}

// EnsureConfig loads the config at path, writing it with a fresh install
// ID if the file does not exist or has none. created reports a write.
func EnsureConfig(path string) (config *Config, created bool, err error) {
	config, err = LoadConfig(path)
	if err != nil {
		return nil, false, err
	}

	if config.Install.ID == "" {
		config.Install.ID = GenerateInstallID()
		if err := SaveConfig(path, config); err != nil {
			return nil, false, err
		}
		created = true
	}

	return config, created, nil
}

var keyTypes = map[string]bool{"rsa": true, "dsa": true, "ec": true}

// Validate checks that the defaults name registered algorithms.
func (c *Config) Validate() error {
	if _, err := registry.LookupDigest(c.Defaults.Digest); err != nil {
		return fmt.Errorf("defaults.digest: %w", err)
	}
	if _, err := registry.LookupCipher(c.Defaults.Cipher); err != nil {
		return fmt.Errorf("defaults.cipher: %w", err)
	}
	if !keyTypes[c.Defaults.KeyType] {
		return fmt.Errorf("defaults.key_type: %w: %q", kerrors.ErrUnsupportedKeyType, c.Defaults.KeyType)
	}
	if c.Defaults.KeyBits <= 0 {
		return fmt.Errorf("defaults.key_bits: %w: must be positive, got %d", kerrors.ErrInvalidArgument, c.Defaults.KeyBits)
	}
	if c.Install.ID != "" {
		if _, err := uuid.Parse(c.Install.ID); err != nil {
			return fmt.Errorf("install.id: %w: %v", kerrors.ErrInvalidArgument, err)
		}
	}
	return nil
}

// AuditPath returns the audit log location, or "" when auditing is off.
func (c *Config) AuditPath() string {
	if !c.Audit.Enabled {
		return ""
	}
	if c.Audit.Path != "" {
		return c.Audit.Path
	}
	return UserLuacryptoSettings.DefaultAuditPath()
}

// RandStateFile returns the random seed file location.
func (c *Config) RandStateFile() string {
	if c.Rand.StateFile != "" {
		return c.Rand.StateFile
	}
	return random.DefaultStateFile()
}
