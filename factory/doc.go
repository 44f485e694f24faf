// Package factory creates crypto.Cryptor values that share one default
// padding configuration, logger and performance monitor.
//
// # Configuration
//
// The factory supports configuration via environment variables:
//   - RSACRYPT_PADDING: "pkcs1v15" or "oaep"
//   - RSACRYPT_OAEP_HASH: OAEP digest, one of sha1, sha224, sha256, sha384,
//     sha512, sha3-256, sha3-512, blake2b-256, blake2b-512
//
// Invalid values are logged and ignored.
//
// # Usage
//
//	factory := NewCryptorFactory()
//
//	enc := factory.CreateCryptor(publicKey)
//	dec := factory.CreateCryptor(privateKey)
//
//	// Private-key encryption only accepts PKCS #1 v1.5.
//	signer := factory.CreateSigningCryptor(privateKey)
//
// # Testing Support
//
// CreateRecordingForTesting wraps the primitive in a testing.RecordingPrimitive
// so tests can check what reached it:
//
//	func TestMyFeature(t *testing.T) {
//	    factory := NewCryptorFactory()
//	    c, rec := factory.CreateRecordingForTesting(key, WithPadding(crypto.PaddingOAEP))
//	    // Use c, then inspect rec.GetCallLog()...
//	}
//
// # Padding Switching
//
//	factory.SwitchToOAEP(stdcrypto.SHA256) // OAEP becomes the default
//	factory.SwitchToPKCS1v15()             // back to PKCS #1 v1.5
package factory
