// Package audit records key-material operations performed by the
// luacrypto CLI.
//
// Entries are appended as JSON Lines to the path configured under
// [audit] in config.toml, by default:
//
//	<user data dir>/luacrypto/audit.jsonl
//
// Each entry carries a UUID, a UTC timestamp with microseconds, the install ID,
// the operation name, and whichever of algorithm, key type, key size,
// paths and byte count apply. Key material and data are never logged.
//
// Logging is best-effort: a failed write is dropped so the operation it
// describes still succeeds. ReadEntries skips malformed lines left by
// partial writes.
package audit
