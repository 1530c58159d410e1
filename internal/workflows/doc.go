// Package workflows provides the orchestration behind luacrypto commands.
//
// The cmd/ package is a thin layer that parses flags, calls a workflow and
// formats its result. Workflows handle the rest:
//   - loading configuration for defaults and the key-length policy
//   - resolving and streaming input files
//   - driving the digest, symmetric, mac, signature, pkey and random
//     packages
//   - recording audit trail entries
//
// # Available Workflows
//
//   - Digest: hashes or HMACs files and stdin
//   - Crypt: encrypts or decrypts a stream
//   - GenerateKey, InspectKey: key pair generation and inspection
//   - Sign, Verify: detached signatures over a file
//   - RandBytes, RandStatus, RandState: the random pool and its seed file
//   - RunScript: executes a Lua script with the crypto module loaded
//   - AuditLog: reads and filters the audit trail
//   - Doctor: checks the config, known answers and file permissions
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors so the
// CLI can branch with errors.Is or errors.Classify:
//
//	result, err := workflows.Verify(ctx, opts)
//	if errors.Is(err, kerrors.ErrVerification) {
//	    // malformed signature or key mismatch, not a bad signature
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Streaming workflows check it between chunks; RunScript forwards it to the
// Lua state so a cancelled context stops the script.
package workflows
