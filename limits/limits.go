// Package limits provides centralized RSA size limits.
// This ensures consistent validation across key wrappers and cryptors.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MinModulusBytes is the smallest accepted RSA modulus (512 bits)
	MinModulusBytes = 64

	// MaxModulusBytes is the largest accepted RSA modulus (16384 bits)
	MaxModulusBytes = 2048

	// PKCS1v15Overhead is the fixed PKCS #1 v1.5 padding overhead.
	// 0x00 || BT || PS (at least 8 bytes) || 0x00, RFC 8017 §7.2
	PKCS1v15Overhead = 11

	// PKCS1v15MinPaddingString is the minimum length of the PS run of a PKCS #1 v1.5 block
	PKCS1v15MinPaddingString = 8
)

var (
	// ErrInputTooLarge indicates the input exceeds the largest block payload
	ErrInputTooLarge = errors.New("input too large")

	// ErrOutputTooSmall indicates the output buffer cannot hold one block
	ErrOutputTooSmall = errors.New("output buffer too small")

	// ErrModulusSize indicates the key modulus is outside the accepted range
	ErrModulusSize = errors.New("modulus size out of range")
)

// ValidateInputSize validates an input buffer against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateInputSize(input []byte, maxSize int) error {
	if len(input) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrInputTooLarge, len(input), maxSize)
	}
	return nil
}

// ValidateOutputSize validates that an output buffer holds at least minSize bytes.
// Returns an error with context including the actual and required sizes.
func ValidateOutputSize(output []byte, minSize int) error {
	if len(output) < minSize {
		return fmt.Errorf("%w: size %d below required %d", ErrOutputTooSmall, len(output), minSize)
	}
	return nil
}

// ValidateModulusSize validates a modulus byte length against MinModulusBytes and MaxModulusBytes.
func ValidateModulusSize(size int) error {
	if size < MinModulusBytes || size > MaxModulusBytes {
		return fmt.Errorf("%w: %d bytes not in [%d, %d]", ErrModulusSize, size, MinModulusBytes, MaxModulusBytes)
	}
	return nil
}
