// Package ui formats luacrypto CLI output.
//
// Formatters colorize when the terminal supports it and fall back to
// plain decorations under NO_COLOR or a dumb terminal:
//
//	ui.Code.Sprint("luacrypto digest sha256 file")  // `backticks` without color
//	ui.Path.Sprint("key.pem")
//	ui.Algorithm.Sprint("aes-256-cbc")              // 'quotes' without color
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Warning.Sprint("unencrypted")
//	ui.Info.Sprint("→")
//	ui.Muted.Sprint("optional")                     // (parentheses) without color
//
// Verdict renders a signature check result and Fields aligns key/value
// listings such as pkey inspect and config show.
package ui
