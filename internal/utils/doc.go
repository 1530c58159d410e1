// Package utils provides helpers shared by the luacrypto commands.
//
// # Files
//
//   - ResolveFiles: expands paths, directories and ** globs into a
//     deduplicated list of regular files
//   - ExpandHome: expands a leading ~ in user-supplied paths
//   - FormatPaths: formats file paths for human-readable output
//
// # Input
//
//   - ReadInput: reads a named file, or stdin for "-"
//   - ReadStdin: reads piped stdin, refusing an interactive terminal
//   - DecodeKey: decodes "hex:" prefixed key material
//
// # Terminal
//
//   - ReadPassphrase: prompts without echo
//   - IsTerminal, IsStdoutTerminal: terminal detection
package utils
