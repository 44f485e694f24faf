package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"math/big"

	"github.com/opd-ai/rsacrypt/limits"
)

// Primitive performs the four raw RSA transforms. Cryptor enforces size and
// role/padding policy before calling it, so implementations see only legal
// combinations: PrivateEncrypt and PublicDecrypt always use PKCS #1 v1.5.
//
// Returned slices are owned by the caller and may be wiped after use.
type Primitive interface {
	PublicEncrypt(pub *rsa.PublicKey, cfg Config, src []byte) ([]byte, error)
	PrivateDecrypt(priv crypto.Decrypter, cfg Config, src []byte) ([]byte, error)
	PrivateEncrypt(priv crypto.Signer, src []byte) ([]byte, error)
	PublicDecrypt(pub *rsa.PublicKey, src []byte) ([]byte, error)
}

var errBadBlock = errors.New("rsa: malformed PKCS #1 v1.5 signature block")

// rsaPrimitive is the Primitive backed by crypto/rsa.
type rsaPrimitive struct {
	random io.Reader
}

// NewPrimitive returns the crypto/rsa backed Primitive. A nil random source
// selects crypto/rand.Reader.
func NewPrimitive(random io.Reader) Primitive {
	if random == nil {
		random = rand.Reader
	}
	return &rsaPrimitive{random: random}
}

func (p *rsaPrimitive) PublicEncrypt(pub *rsa.PublicKey, cfg Config, src []byte) ([]byte, error) {
	if cfg.Padding == PaddingOAEP {
		h, err := NewDigest(cfg.Hash())
		if err != nil {
			return nil, err
		}
		return rsa.EncryptOAEP(h, p.random, pub, src, cfg.OAEPLabel)
	}
	return rsa.EncryptPKCS1v15(p.random, pub, src)
}

func (p *rsaPrimitive) PrivateDecrypt(priv crypto.Decrypter, cfg Config, src []byte) ([]byte, error) {
	var opts crypto.DecrypterOpts
	if cfg.Padding == PaddingOAEP {
		opts = &rsa.OAEPOptions{Hash: cfg.Hash(), Label: cfg.OAEPLabel}
	} else {
		opts = &rsa.PKCS1v15DecryptOptions{}
	}
	return priv.Decrypt(p.random, src, opts)
}

// PrivateEncrypt signs src directly: a zero hash makes crypto/rsa emit the
// type 1 block 0x00 || 0x01 || 0xFF.. || 0x00 || src without a DigestInfo.
func (p *rsaPrimitive) PrivateEncrypt(priv crypto.Signer, src []byte) ([]byte, error) {
	return priv.Sign(p.random, src, crypto.Hash(0))
}

// PublicDecrypt recovers the payload of a type 1 block. crypto/rsa only
// exposes verification for this direction, so the public exponentiation is
// done here; it involves no secret values.
func (p *rsaPrimitive) PublicDecrypt(pub *rsa.PublicKey, src []byte) ([]byte, error) {
	k := pub.Size()
	if len(src) > k {
		return nil, errBadBlock
	}
	c := new(big.Int).SetBytes(src)
	if c.Cmp(pub.N) >= 0 {
		return nil, errBadBlock
	}
	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)
	em := m.FillBytes(make([]byte, k))

	if em[0] != 0x00 || em[1] != 0x01 {
		return nil, errBadBlock
	}
	i := 2
	for i < k && em[i] == 0xff {
		i++
	}
	if i == k || em[i] != 0x00 || i-2 < limits.PKCS1v15MinPaddingString {
		return nil, errBadBlock
	}
	out := make([]byte, k-i-1)
	copy(out, em[i+1:])
	ZeroBytes(em)
	return out, nil
}
