package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// DecodeKey turns a command-line key or IV into bytes. Values prefixed with
// "hex:" are hex-decoded; anything else is used verbatim.
func DecodeKey(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, "hex:")
	if !ok {
		return []byte(s), nil
	}
	b, err := hex.DecodeString(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: bad hex key material: %v", kerrors.ErrInvalidArgument, err)
	}
	return b, nil
}
