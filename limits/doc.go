// Package limits provides centralized RSA size constants and buffer validation
// functions. It keeps the size rules applied by the crypto package in one place
// so that key wrappers, cryptors and callers agree on them.
//
// # Size Hierarchy
//
// Every RSA transform works on blocks exactly one modulus wide:
//
//   - MinModulusBytes (64 bytes, 512 bits): The smallest modulus a key may carry.
//     Anything shorter cannot hold a PKCS #1 v1.5 block with a useful payload.
//
//   - MaxModulusBytes (2048 bytes, 16384 bits): The largest modulus accepted.
//     This bounds the work a single private operation may cost.
//
//   - PKCS1v15Overhead (11 bytes): The fixed padding overhead of PKCS #1 v1.5
//     encryption and signing-style blocks (RFC 8017 §7.2).
//
// OAEP overhead depends on the digest (2*hLen+2, RFC 8017 §7.1.1) and is
// computed by the crypto package's padding policy rather than fixed here.
//
// # Validation Functions
//
// Input and output buffers are checked against the limits derived from a key:
//
//	if err := limits.ValidateInputSize(src, maxEncryptable); err != nil {
//	    // errors.Is(err, limits.ErrInputTooLarge)
//	}
//	if err := limits.ValidateOutputSize(dst, keySize); err != nil {
//	    // errors.Is(err, limits.ErrOutputTooSmall)
//	}
//
// Unlike message validators, an empty input is valid: RSA can encrypt an empty
// message, and the resulting block is still one modulus wide.
//
// # Error Types
//
//   - ErrInputTooLarge: the input exceeds the largest block payload
//   - ErrOutputTooSmall: the caller's output buffer cannot hold one block
//   - ErrModulusSize: the key modulus is outside [MinModulusBytes, MaxModulusBytes]
package limits
