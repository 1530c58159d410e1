package errors

import "errors"

// Argument errors indicate the caller supplied an unusable value.
var (
	// ErrInvalidAlgorithm indicates a digest or cipher name is not registered.
	ErrInvalidAlgorithm = errors.New("invalid digest/cipher type")

	// ErrInvalidArgument indicates a malformed argument such as a negative length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKeyLength indicates a key does not match the cipher's key length.
	ErrKeyLength = errors.New("invalid key length")

	// ErrIVLength indicates an IV does not match the cipher's IV length.
	ErrIVLength = errors.New("invalid IV length")

	// ErrUnsupportedKeyType indicates an asymmetric key kind that cannot be used.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// Library errors indicate the underlying primitive reported a failure.
var (
	// ErrPadding indicates the final block of a decryption had bad padding.
	ErrPadding = errors.New("bad decrypt")

	// ErrBlockLength indicates input that is not a multiple of the block length.
	ErrBlockLength = errors.New("data not multiple of block length")

	// ErrSignature indicates a signature could not be produced.
	ErrSignature = errors.New("signing failed")

	// ErrVerification indicates a signature check could not be carried out.
	ErrVerification = errors.New("verification could not be performed")

	// ErrKeyGen indicates key or parameter generation failed.
	ErrKeyGen = errors.New("key generation failed")

	// ErrRng indicates the random generator could not supply bytes.
	ErrRng = errors.New("random generator failure")

	// ErrNoPrivateKey indicates an operation needed the private half of a key pair.
	ErrNoPrivateKey = errors.New("key has no private component")

	// ErrContextFinalized indicates a single-use context was used after final.
	ErrContextFinalized = errors.New("context already finalized")

	// ErrContextClosed indicates a context was used after Close.
	ErrContextClosed = errors.New("context is closed")
)

// IO errors indicate issues with key or state files.
var (
	// ErrFile indicates a file could not be opened, read or written.
	ErrFile = errors.New("file error")

	// ErrKeyFormat indicates PEM or DER key data could not be parsed.
	ErrKeyFormat = errors.New("invalid or unsupported key format")
)

// Category is the coarse class of an error, used to pick a reporting style.
type Category int

const (
	// CategoryNone is returned for nil errors.
	CategoryNone Category = iota
	// CategoryArgument errors are raised and must be fixed by the caller.
	CategoryArgument
	// CategoryLibrary errors are returned as values so callers can branch.
	CategoryLibrary
	// CategoryIO errors concern files and are raised with the path embedded.
	CategoryIO
)

func (c Category) String() string {
	switch c {
	case CategoryArgument:
		return "argument"
	case CategoryLibrary:
		return "library"
	case CategoryIO:
		return "io"
	default:
		return "none"
	}
}

var (
	argumentErrors = []error{ErrInvalidAlgorithm, ErrInvalidArgument, ErrKeyLength, ErrIVLength, ErrUnsupportedKeyType}
	ioErrors       = []error{ErrFile, ErrKeyFormat}
)

// Classify returns the category of err. Errors that match no sentinel are
// treated as library errors.
func Classify(err error) Category {
	if err == nil {
		return CategoryNone
	}
	for _, target := range argumentErrors {
		if errors.Is(err, target) {
			return CategoryArgument
		}
	}
	for _, target := range ioErrors {
		if errors.Is(err, target) {
			return CategoryIO
		}
	}
	return CategoryLibrary
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
