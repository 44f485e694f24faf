package interfaces

// Encryptor transforms one plaintext block into a caller-owned buffer.
type Encryptor interface {
	// Encrypt writes one block for src into dst and returns the bytes written.
	// dst must hold at least OutputBufferSizeForEncrypt bytes.
	Encrypt(src, dst []byte) (int, error)

	// MaxEncryptableSize returns the largest src Encrypt accepts.
	MaxEncryptableSize() (int, error)

	// OutputBufferSizeForEncrypt returns the dst size Encrypt requires.
	OutputBufferSizeForEncrypt() int
}

// Decryptor recovers the payload of one block into a caller-owned buffer.
type Decryptor interface {
	// Decrypt writes the payload of src into dst and returns its length.
	// dst must hold at least OutputBufferSizeForDecrypt bytes.
	Decrypt(src, dst []byte) (int, error)

	// MaxDecryptableSize returns the largest src Decrypt accepts.
	MaxDecryptableSize() (int, error)

	// OutputBufferSizeForDecrypt returns the dst size Decrypt requires.
	OutputBufferSizeForDecrypt() int
}

// SizeReporter exposes buffer sizing without performing any transform.
type SizeReporter interface {
	MaxEncryptableSize() (int, error)
	MaxDecryptableSize() (int, error)
	OutputBufferSizeForEncrypt() int
	OutputBufferSizeForDecrypt() int
}

// Cryptor is the full capability set of a key bound to a padding policy.
type Cryptor interface {
	Encryptor
	Decryptor

	// IsValid reports whether the underlying key is usable.
	IsValid() bool

	// LastError returns the message of the most recent failed call, or "".
	LastError() string
}
