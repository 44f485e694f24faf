// Package crypto implements the RSA padding and role policy layer of rsacrypt.
//
// The package wraps decoded RSA key handles in a [Key], binds a Key and a
// padding [Config] in a [Cryptor], and checks every request against RFC 8017
// size rules and a fixed role/padding legality matrix before handing it to the
// RSA primitive from crypto/rsa. It does not parse key files, generate keys or
// implement RSA arithmetic beyond the public exponentiation crypto/rsa lacks.
//
// # Core Types
//
//   - [Key]: decoded RSA handle plus its [Role] and modulus size
//   - [Config]: padding scheme ([PaddingPKCS1v15] or [PaddingOAEP]) and OAEP digest
//   - [Cryptor]: size queries and single-block Encrypt/Decrypt
//   - [Primitive]: the raw RSA transforms, replaceable for testing
//
// # Buffer Sizes
//
// Output buffers are always one modulus wide. The largest plaintext depends on
// the padding overhead reported by [OverheadBytes]:
//
//	OAEP:         key.Size() - (2*hLen + 2)   // 190 bytes for RSA-2048 with SHA-256
//	PKCS #1 v1.5: key.Size() - 11             // 245 bytes for RSA-2048
//
// Callers size their buffers from the query methods:
//
//	c := crypto.NewCryptor(crypto.NewPublicKey(pub), crypto.OAEPConfig(stdcrypto.SHA256))
//	max, err := c.MaxEncryptableSize()
//	if err != nil {
//	    return err
//	}
//	dst := make([]byte, c.OutputBufferSizeForEncrypt())
//	n, err := c.Encrypt(msg[:min(len(msg), max)], dst)
//
// # Role and Padding
//
// Public-key encryption and private-key decryption provide confidentiality and
// accept both schemes. Private-key encryption and public-key decryption are
// signing-style transforms and accept only PKCS #1 v1.5:
//
//	Role     Operation  OAEP  PKCS #1 v1.5
//	public   encrypt    yes   yes
//	private  decrypt    yes   yes
//	private  encrypt    no    yes
//	public   decrypt    no    yes
//
// Refused combinations fail with [ErrUnsupportedRoleForPadding] before the
// primitive runs.
//
// # Errors
//
// Every failure is an [*OpError] matching one of [ErrInvalidKey],
// [ErrUnsupportedRoleForPadding], [ErrInputTooLarge], [ErrOutputBufferTooSmall]
// or [ErrCryptoPrimitiveFailure] through errors.Is. [Cryptor.LastError] keeps
// the message of the most recent failure for callers that log it later.
//
// # Secure Memory Handling
//
// Intermediate plaintext returned by the primitive is wiped with [SecureWipe]
// once copied to the caller's buffer. [Key.Release] wipes the private exponent
// and primes of an *rsa.PrivateKey handle.
//
// # Thread Safety
//
// A Key is read-only after construction and may be shared. A Cryptor records
// its last error and must be confined to one goroutine or guarded externally.
// [PerformanceMonitor] is safe for concurrent use.
package crypto
