package crypto

import (
	"errors"
	"fmt"

	"github.com/opd-ai/rsacrypt/limits"
)

// Error kinds reported by Cryptor. Every failure returned by a Cryptor is an
// *OpError whose Kind is one of these, so callers match with errors.Is.
var (
	// ErrInvalidKey is returned when the Cryptor's Key is absent, failed to bind
	// or has been released.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnsupportedRoleForPadding is returned for OAEP private-key encryption,
	// OAEP public-key decryption and unusable padding configurations.
	ErrUnsupportedRoleForPadding = errors.New("padding not supported for key role")

	// ErrInputTooLarge is returned when the source buffer exceeds the block payload.
	ErrInputTooLarge = limits.ErrInputTooLarge

	// ErrOutputBufferTooSmall is returned when the destination cannot hold one block.
	ErrOutputBufferTooSmall = limits.ErrOutputTooSmall

	// ErrCryptoPrimitiveFailure is returned when the underlying RSA transform fails.
	ErrCryptoPrimitiveFailure = errors.New("crypto primitive failure")
)

// OpError describes a failed Cryptor call.
type OpError struct {
	// Op is the failed operation, e.g. "encrypt" or "max-encryptable-size".
	Op      string
	Role    Role
	Padding PaddingMode
	// Kind is one of the Err* kinds above.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *OpError) Error() string {
	prefix := fmt.Sprintf("rsa %s (%s key, %s)", e.Op, e.Role, e.Padding)
	switch {
	case e.Err == nil:
		return prefix + ": " + e.Kind.Error()
	case errors.Is(e.Err, e.Kind):
		return prefix + ": " + e.Err.Error()
	default:
		return prefix + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// errorType returns a short label for the kind of err, used in logs and metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, ErrUnsupportedRoleForPadding):
		return "unsupported_role_for_padding"
	case errors.Is(err, ErrInputTooLarge):
		return "input_too_large"
	case errors.Is(err, ErrOutputBufferTooSmall):
		return "output_buffer_too_small"
	case errors.Is(err, ErrCryptoPrimitiveFailure):
		return "crypto_primitive_failure"
	default:
		return "unknown"
	}
}
