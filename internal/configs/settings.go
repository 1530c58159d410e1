package configs

import (
	"os"
	"path/filepath"
)

type UserSettings struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
}

var UserLuacryptoSettings *UserSettings

func init() {
	// Paths only; nothing is created until a command needs it.
	UserLuacryptoSettings = NewUserSettings()
}

// NewUserSettings resolves the per-user directories. When the home or
// config directory cannot be determined it falls back to the working
// directory rather than failing, so commands that never touch the config
// still run.
func NewUserSettings() *UserSettings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	s := &UserSettings{
		ConfigDir: filepath.Join(configDir, "luacrypto"),
		DataDir:   filepath.Join(dataDir, "luacrypto"),
	}
	s.ConfigFile = filepath.Join(s.ConfigDir, "config.toml")
	return s
}

// DefaultAuditPath is where the audit log goes when the config names none.
func (s *UserSettings) DefaultAuditPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}
