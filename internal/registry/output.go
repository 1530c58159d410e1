package registry

import "encoding/hex"

// Output is the result of a digest, HMAC or cipher final step.
type Output []byte

// Hex returns the lowercase hex encoding of o.
func (o Output) Hex() string { return Hex(o) }

// Format returns the raw bytes as a string when raw is true, otherwise hex.
func (o Output) Format(raw bool) string {
	if raw {
		return string(o)
	}
	return o.Hex()
}

// Hex returns lowercase hex, two characters per byte, no separators.
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}
