// Package interfaces defines the capability interfaces of an RSA key bound to
// a padding policy.
//
// Consumers that only encrypt, only decrypt, or only size buffers depend on
// the narrowest interface they need:
//
//	func seal(enc interfaces.Encryptor, msg []byte) ([]byte, error) {
//	    out := make([]byte, enc.OutputBufferSizeForEncrypt())
//	    n, err := enc.Encrypt(msg, out)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return out[:n], nil
//	}
//
// *crypto.Cryptor implements every interface in this package. The testing
// package provides a RecordingPrimitive for observing what reaches the RSA
// primitive behind a Cryptor.
//
// # Buffers
//
// All methods work on caller-owned buffers. Output buffer sizes are always one
// modulus-wide block, regardless of padding or payload length.
//
// # Thread Safety
//
// Implementations are not required to be safe for concurrent use. The
// crypto package implementation records the last error and must be confined
// to one goroutine.
package interfaces
