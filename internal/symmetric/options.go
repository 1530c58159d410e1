package symmetric

// KeyPolicy decides what happens to keys and IVs of the wrong length.
type KeyPolicy int

const (
	// Lenient zero-pads or truncates to the cipher's length.
	Lenient KeyPolicy = iota
	// Strict rejects any length mismatch.
	Strict
)

func (p KeyPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// AdjustFunc is told when a lenient context resized a key or IV. field is
// "key" or "iv".
type AdjustFunc func(field string, got, want int)

type options struct {
	policy  KeyPolicy
	padding bool
	notify  AdjustFunc
}

// Option configures a cipher context.
type Option func(*options)

// WithKeyPolicy selects how key and IV lengths are enforced.
func WithKeyPolicy(p KeyPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithPadding turns PKCS#7 padding on or off for block modes.
func WithPadding(enabled bool) Option {
	return func(o *options) { o.padding = enabled }
}

// WithAdjustNotify registers fn to be called for every lenient resize.
func WithAdjustNotify(fn AdjustFunc) Option {
	return func(o *options) { o.notify = fn }
}

func buildOptions(opts []Option) options {
	o := options{policy: Lenient, padding: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
