// Package testing provides test doubles for the RSA primitive behind a
// crypto.Cryptor.
//
// # Overview
//
// RecordingPrimitive wraps a crypto.Primitive, normally the crypto/rsa backed
// one, and keeps a log of every call that reaches it. Because the Cryptor
// enforces its size and role/padding policy before calling the primitive, the
// log shows exactly which requests the policy let through:
//
//	rec := testing.NewRecordingPrimitive(nil)
//	c := crypto.NewCryptor(privateKey, crypto.OAEPConfig(stdcrypto.SHA256),
//	    crypto.WithPrimitive(rec))
//
//	_, err := c.Encrypt(msg, dst) // OAEP with a private key is refused
//	// errors.Is(err, crypto.ErrUnsupportedRoleForPadding) == true
//	// rec.CallCount("") == 0
//
// # Failure Injection
//
// FailWith makes one operation fail with a chosen error without touching the
// wrapped primitive, which the Cryptor then reports as
// crypto.ErrCryptoPrimitiveFailure:
//
//	rec.FailWith(testing.OpPrivateDecrypt, errors.New("token removed"))
//
// # Thread Safety
//
// RecordingPrimitive is safe for concurrent use. CallRecord values returned by
// GetCallLog are copies.
package testing
