// Package logger prints prefixed, colored messages for the luacrypto CLI
// and the Lua binding.
//
// A Logger is a plain value built from the --verbose and --debug flags:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("hashing %d files", n)
//
// Infof and Warnf need --verbose or --debug. Debugf and Errorf need
// --debug. WarnfAlways ignores both and is kept for things a user must
// see: an unencrypted private key being written, or a key or IV that was
// zero-padded or truncated to fit a cipher.
//
// ErrorfAndReturn logs at error level and hands the message back as an
// error, so a command can end with a single return.
//
// Info and debug lines go to Out, warnings and errors to Err. Nil writers
// mean os.Stdout and os.Stderr.
package logger
