package configs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

func TestGenerateInstallID(t *testing.T) {
	id := GenerateInstallID()
	if len(id) != 36 {
		t.Fatalf("Expected UUID length 36, got %d (%q)", len(id), id)
	}
	if other := GenerateInstallID(); other == id {
		t.Error("Expected distinct install IDs")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}
}

func TestLoadConfigMissingReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *config != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", config)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[defaults]\ndigest = \"sha512\"\n\n[keys]\nstrict_length = true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Defaults.Digest != "sha512" {
		t.Errorf("Expected digest sha512, got %q", config.Defaults.Digest)
	}
	if config.Defaults.Cipher != "aes-256-cbc" {
		t.Errorf("Expected default cipher to survive, got %q", config.Defaults.Cipher)
	}
	if !config.Keys.StrictLength {
		t.Error("Expected strict_length to be true")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	config := DefaultConfig()
	config.Defaults.KeyType = "ec"
	config.Defaults.KeyBits = 384
	config.Rand.StateFile = "/tmp/seed"
	config.Audit.Path = "/tmp/audit.jsonl"
	config.Install.ID = GenerateInstallID()

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestEnsureConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luacrypto", "config.toml")

	config, created, err := EnsureConfig(path)
	if err != nil {
		t.Fatalf("EnsureConfig failed: %v", err)
	}
	if !created {
		t.Error("Expected first EnsureConfig to create the file")
	}
	if config.Install.ID == "" {
		t.Error("Expected an install ID")
	}

	again, created, err := EnsureConfig(path)
	if err != nil {
		t.Fatalf("second EnsureConfig failed: %v", err)
	}
	if created {
		t.Error("Expected second EnsureConfig not to rewrite the file")
	}
	if again.Install.ID != config.Install.ID {
		t.Errorf("Expected install ID %q to persist, got %q", config.Install.ID, again.Install.ID)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults]\ndigst = \"md5\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "digst") {
		t.Fatalf("Expected unknown key error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown digest", func(c *Config) { c.Defaults.Digest = "sha0" }, kerrors.ErrInvalidAlgorithm},
		{"unknown cipher", func(c *Config) { c.Defaults.Cipher = "aes-512-cbc" }, kerrors.ErrInvalidAlgorithm},
		{"unknown key type", func(c *Config) { c.Defaults.KeyType = "ed448" }, kerrors.ErrUnsupportedKeyType},
		{"zero bits", func(c *Config) { c.Defaults.KeyBits = 0 }, kerrors.ErrInvalidArgument},
		{"bad install id", func(c *Config) { c.Install.ID = "not-a-uuid" }, kerrors.ErrInvalidArgument},
		{"alias accepted", func(c *Config) { c.Defaults.Cipher = "AES256" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuditPath(t *testing.T) {
	config := DefaultConfig()
	if got, want := config.AuditPath(), UserLuacryptoSettings.DefaultAuditPath(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	config.Audit.Path = "/var/log/luacrypto.jsonl"
	if got := config.AuditPath(); got != "/var/log/luacrypto.jsonl" {
		t.Errorf("Expected configured path, got %q", got)
	}

	config.Audit.Enabled = false
	if got := config.AuditPath(); got != "" {
		t.Errorf("Expected empty path when disabled, got %q", got)
	}
}

func TestRandStateFile(t *testing.T) {
	t.Setenv("RANDFILE", "/tmp/from-env")
	config := DefaultConfig()
	if got := config.RandStateFile(); got != "/tmp/from-env" {
		t.Errorf("Expected RANDFILE, got %q", got)
	}

	config.Rand.StateFile = "/tmp/from-config"
	if got := config.RandStateFile(); got != "/tmp/from-config" {
		t.Errorf("Expected configured state file, got %q", got)
	}
}

func TestNewUserSettings(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	s := NewUserSettings()
	if s.DataDir != filepath.Join("/tmp/xdg-data", "luacrypto") {
		t.Errorf("Unexpected data dir %q", s.DataDir)
	}
	if filepath.Base(s.ConfigFile) != "config.toml" || filepath.Dir(s.ConfigFile) != s.ConfigDir {
		t.Errorf("Unexpected config file %q", s.ConfigFile)
	}
}
