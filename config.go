package rsaddr

import "os"

// PrefixEnv names the environment variable read by LoadEnv.
const PrefixEnv = "ADDRESS_PREFIX"

var (
	DefaultPrefix        = "BURST-"
	DefaultFormat Format = FormatReedSolomon
)

// SetPrefix sets the prefix written in front of formatted addresses.
// Call this once at startup.
func SetPrefix(prefix string) {
	DefaultPrefix = prefix
}

// LoadEnv applies ADDRESS_PREFIX when it is set. It reports whether the
// variable was present.
func LoadEnv() bool {
	p, ok := os.LookupEnv(PrefixEnv)
	if ok {
		SetPrefix(p)
	}
	return ok
}
