package crypto

import (
	"crypto"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedHash is returned for OAEP digests outside the supported set.
var ErrUnsupportedHash = errors.New("unsupported OAEP hash")

// Importing sha3 and blake2b also registers them with crypto.RegisterHash,
// which rsa.OAEPOptions relies on during private-key decryption.
var digestConstructors = map[crypto.Hash]func() hash.Hash{
	crypto.SHA1:        sha1.New,
	crypto.SHA224:      sha256.New224,
	crypto.SHA256:      sha256.New,
	crypto.SHA384:      sha512.New384,
	crypto.SHA512:      sha512.New,
	crypto.SHA3_256:    sha3.New256,
	crypto.SHA3_512:    sha3.New512,
	crypto.BLAKE2b_256: newBLAKE2b256,
	crypto.BLAKE2b_512: newBLAKE2b512,
}

var hashNames = map[string]crypto.Hash{
	"sha1":        crypto.SHA1,
	"sha224":      crypto.SHA224,
	"sha256":      crypto.SHA256,
	"sha384":      crypto.SHA384,
	"sha512":      crypto.SHA512,
	"sha3-256":    crypto.SHA3_256,
	"sha3-512":    crypto.SHA3_512,
	"blake2b-256": crypto.BLAKE2b_256,
	"blake2b-512": crypto.BLAKE2b_512,
}

// blake2b only fails for keys longer than 64 bytes.
func newBLAKE2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func newBLAKE2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

// HashSupported reports whether h may be used as an OAEP digest.
func HashSupported(h crypto.Hash) bool {
	_, ok := digestConstructors[h]
	return ok
}

// NewDigest returns a fresh hash.Hash for h.
func NewDigest(h crypto.Hash) (hash.Hash, error) {
	ctor, ok := digestConstructors[h]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedHash, h)
	}
	return ctor(), nil
}

// ParseHash maps a lowercase digest name such as "sha256", "sha3-256" or
// "blake2b-256" to its crypto.Hash. Dashes between family and size are optional
// for the SHA-2 family ("sha-256").
func ParseHash(name string) (crypto.Hash, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if h, ok := hashNames[key]; ok {
		return h, nil
	}
	if h, ok := hashNames[strings.Replace(key, "sha-", "sha", 1)]; ok {
		return h, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
}
