package crypto

import (
	"crypto"
	"fmt"
	"strings"

	"github.com/opd-ai/rsacrypt/limits"
)

// PaddingMode selects the RSA padding scheme used by a Cryptor.
type PaddingMode int

const (
	// PaddingPKCS1v15 is the PKCS #1 v1.5 scheme (RFC 8017 §7.2). It is the
	// only scheme allowed for signing-style transforms.
	PaddingPKCS1v15 PaddingMode = iota
	// PaddingOAEP is RSAES-OAEP (RFC 8017 §7.1). It is only defined for
	// public-key encryption and private-key decryption.
	PaddingOAEP
)

// String returns the lowercase scheme name.
func (m PaddingMode) String() string {
	switch m {
	case PaddingPKCS1v15:
		return "pkcs1v15"
	case PaddingOAEP:
		return "oaep"
	default:
		return fmt.Sprintf("padding(%d)", int(m))
	}
}

// ParsePaddingMode parses a scheme name as printed by PaddingMode.String.
// "pkcs1", "v1.5" and "pkcs1-v1_5" are accepted as aliases of pkcs1v15.
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pkcs1v15", "pkcs1", "v1.5", "pkcs1-v1_5":
		return PaddingPKCS1v15, nil
	case "oaep":
		return PaddingOAEP, nil
	default:
		return 0, fmt.Errorf("unknown padding mode %q", s)
	}
}

// Config is the immutable padding configuration attached to a Cryptor.
type Config struct {
	// Padding is the padding scheme.
	Padding PaddingMode
	// OAEPHash is the OAEP digest. Zero selects SHA-1 (20 bytes).
	// Ignored for PKCS #1 v1.5.
	OAEPHash crypto.Hash
	// OAEPLabel is the optional OAEP label. Ignored for PKCS #1 v1.5.
	OAEPLabel []byte
}

// DefaultConfig returns the PKCS #1 v1.5 configuration.
func DefaultConfig() Config {
	return Config{Padding: PaddingPKCS1v15}
}

// OAEPConfig returns an OAEP configuration using hash as the digest.
func OAEPConfig(hash crypto.Hash) Config {
	return Config{Padding: PaddingOAEP, OAEPHash: hash}
}

// Hash returns the effective OAEP digest, substituting SHA-1 for zero.
func (c Config) Hash() crypto.Hash {
	if c.OAEPHash == 0 {
		return crypto.SHA1
	}
	return c.OAEPHash
}

// Validate reports whether the configuration names a known scheme and, for
// OAEP, a supported digest.
func (c Config) Validate() error {
	switch c.Padding {
	case PaddingPKCS1v15:
		return nil
	case PaddingOAEP:
		if !HashSupported(c.Hash()) {
			return fmt.Errorf("%w: %v", ErrUnsupportedHash, c.Hash())
		}
		return nil
	default:
		return fmt.Errorf("unknown padding mode %d", int(c.Padding))
	}
}

// String describes the configuration, e.g. "oaep(SHA-256)".
func (c Config) String() string {
	if c.Padding == PaddingOAEP {
		return fmt.Sprintf("oaep(%v)", c.Hash())
	}
	return c.Padding.String()
}

// OverheadBytes returns the number of bytes of a modulus-wide block reserved by
// the padding scheme:
//   - OAEP: 2*hLen + 2 (RFC 8017 §7.1.1)
//   - PKCS #1 v1.5: 11 (RFC 8017 §7.2)
//
// It returns -1 for configurations rejected by Validate.
func OverheadBytes(c Config) int {
	switch c.Padding {
	case PaddingOAEP:
		h := c.Hash()
		if !HashSupported(h) {
			return -1
		}
		return 2*h.Size() + 2
	case PaddingPKCS1v15:
		return limits.PKCS1v15Overhead
	default:
		return -1
	}
}
