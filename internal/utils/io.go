package utils

import (
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

// ReadStdin reads all content from stdin.
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice is set when stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the input or pass a file)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	return data, nil
}

// ReadInput reads path, or stdin when path is "-" or empty. File errors
// wrap ErrFile with the path.
func ReadInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return ReadStdin()
	}

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	return data, nil
}

// OpenInput opens path for streaming, or returns stdin for "-" or empty.
// The returned closer is a no-op for stdin.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	return f, nil
}
