// Package keyload decodes RSA keys from PEM and OpenSSH encodings and binds
// them to crypto.Key values.
//
// Private keys may be PKCS #1, PKCS #8, legacy passphrase-encrypted PEM
// ("Proc-Type: 4,ENCRYPTED") or OpenSSH ("OPENSSH PRIVATE KEY"), plain or
// passphrase protected. Public keys may be PKIX, PKCS #1 or a single
// authorized_keys line.
package keyload

import (
	"bufio"
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/rsacrypt/crypto"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// File names LoadKeySet appends to the key path prefix.
const (
	PublicKeyFile  = "public.pem"
	PrivateKeyFile = "private.pem"
	PassphraseFile = "passphrase"
)

var (
	// ErrNoPEMBlock is returned when the input holds no decodable key.
	ErrNoPEMBlock = errors.New("no PEM key block found")
	// ErrNotRSA is returned for well-formed keys of another algorithm.
	ErrNotRSA = errors.New("key is not an RSA key")
	// ErrKeyMismatch is returned by LoadKeySet when the public and private
	// keys have different moduli.
	ErrKeyMismatch = errors.New("public and private keys do not match")
)

// ParsePublicKeyPEM decodes an RSA public key and wraps it as a public-role Key.
func ParsePublicKeyPEM(data []byte) (*crypto.Key, error) {
	pub, err := parsePublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return crypto.NewPublicKey(pub), nil
}

func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return parseAuthorizedKey(data)
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotRSA, key)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

func parseAuthorizedKey(data []byte) (*rsa.PublicKey, error) {
	sshKey, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, ErrNoPEMBlock
	}
	cryptoKey, ok := sshKey.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRSA, sshKey.Type())
	}
	pub, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRSA, sshKey.Type())
	}
	return pub, nil
}

// ParsePrivateKeyPEM decodes an RSA private key and wraps it as a private-role
// Key. An empty passphrase means the key is stored unencrypted; a passphrase
// given for an unencrypted key is ignored.
func ParsePrivateKeyPEM(data, passphrase []byte) (*crypto.Key, error) {
	priv, err := parsePrivateKey(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return crypto.NewPrivateKey(priv), nil
}

func parsePrivateKey(data, passphrase []byte) (*rsa.PrivateKey, error) {
	if block, _ := pem.Decode(data); block == nil {
		return nil, ErrNoPEMBlock
	}

	raw, err := ssh.ParseRawPrivateKey(data)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if len(passphrase) == 0 {
			return nil, fmt.Errorf("key is encrypted and no passphrase was given: %w", err)
		}
		raw, err = ssh.ParseRawPrivateKeyWithPassphrase(data, passphrase)
	}
	if err != nil {
		return nil, err
	}

	priv, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotRSA, raw)
	}
	return priv, nil
}

// KeySet is the public and private half of one RSA key pair.
type KeySet struct {
	Public  *crypto.Key
	Private *crypto.Key
}

// Release releases both keys. The KeySet must not be used afterwards.
func (ks *KeySet) Release() {
	if ks == nil {
		return
	}
	ks.Public.Release()
	ks.Private.Release()
}

// LoadKeySet reads prefix+"public.pem" and prefix+"private.pem". The private
// key passphrase is the first line of prefix+"passphrase"; a missing
// passphrase file means the private key is unencrypted.
func LoadKeySet(prefix string) (*KeySet, error) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "LoadKeySet",
		"prefix":   prefix,
	})

	publicPEM, err := readKeyFile(prefix + PublicKeyFile)
	if err != nil {
		return nil, err
	}
	pub, err := ParsePublicKeyPEM(publicPEM)
	if err != nil {
		return nil, err
	}

	passphrase, err := readPassphrase(prefix + PassphraseFile)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(passphrase)

	privatePEM, err := readKeyFile(prefix + PrivateKeyFile)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(privatePEM)

	priv, err := ParsePrivateKeyPEM(privatePEM, passphrase)
	if err != nil {
		return nil, err
	}

	if pub.IsValid() && priv.IsValid() && pub.PublicKey().N.Cmp(priv.PublicKey().N) != 0 {
		priv.Release()
		return nil, ErrKeyMismatch
	}

	logger.WithFields(logrus.Fields{
		"size":           pub.Size(),
		"has_passphrase": len(passphrase) > 0,
	}).Debug("Loaded RSA key set")

	return &KeySet{Public: pub, Private: priv}, nil
}

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return data, nil
}

func readPassphrase(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logrus.WithFields(logrus.Fields{
			"function": "readPassphrase",
			"path":     path,
		}).Debug("No passphrase file, assuming unencrypted private key")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer crypto.ZeroBytes(data)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return nil, nil
	}
	return append([]byte(nil), bytes.TrimRight(scanner.Bytes(), "\r")...), nil
}
