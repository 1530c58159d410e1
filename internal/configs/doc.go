// Package configs manages the luacrypto configuration file and the
// per-user paths it lives under.
//
// Configuration is stored in TOML at:
//
//	<user config dir>/luacrypto/config.toml
//
// or wherever --config points.
//
// # Sections
//
//   - [defaults]: digest, cipher, key type and key size used when a
//     command is not given one
//   - [keys]: strict_length rejects keys and IVs of the wrong length
//     instead of zero-padding or truncating them
//   - [rand]: state_file overrides the random seed file ($RANDFILE or
//     ~/.rnd)
//   - [audit]: whether key-material operations are recorded, and where
//   - [install]: a UUID identifying this installation in audit entries
//
// A missing file is not an error: LoadConfig returns DefaultConfig.
// EnsureConfig writes the defaults, with a fresh install ID, the first
// time it runs.
//
// # Settings
//
// UserLuacryptoSettings is initialised at startup with the config and
// data directories. Tests and the --config flag may repoint ConfigFile.
package configs
