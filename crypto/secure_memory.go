package crypto

import (
	"crypto/rsa"
	"crypto/subtle"
	"errors"
	"math/big"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// Overwrite the data with zeros
	// Using subtle.ConstantTimeCompare's byteXor operation to avoid
	// potential compiler optimizations that might remove the overwrite
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	// Attempt to prevent the compiler from optimizing out the zeroing
	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from SecureWipe.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// wipeBigInt zeroes the words backing x and resets it to 0.
func wipeBigInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	x.SetInt64(0)
}

// WipePrivateKey erases the private exponent, primes and CRT values of priv.
// The public half is left intact. Precomputed state held in unexported fields
// by crypto/rsa cannot be reached and is left to the garbage collector.
func WipePrivateKey(priv *rsa.PrivateKey) error {
	if priv == nil {
		return errors.New("cannot wipe nil private key")
	}
	wipeBigInt(priv.D)
	for _, p := range priv.Primes {
		wipeBigInt(p)
	}
	wipeBigInt(priv.Precomputed.Dp)
	wipeBigInt(priv.Precomputed.Dq)
	wipeBigInt(priv.Precomputed.Qinv)
	for i := range priv.Precomputed.CRTValues {
		crt := &priv.Precomputed.CRTValues[i]
		wipeBigInt(crt.Exp)
		wipeBigInt(crt.Coeff)
		wipeBigInt(crt.R)
	}
	return nil
}
