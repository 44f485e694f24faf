package crypto

import (
	"crypto"
	"crypto/rsa"
	"fmt"

	"github.com/opd-ai/rsacrypt/limits"
)

// Role is the half of an RSA key pair a Key holds.
type Role int

const (
	// RolePublic marks the public half.
	RolePublic Role = iota
	// RolePrivate marks the private half.
	RolePrivate
)

func (r Role) String() string {
	switch r {
	case RolePublic:
		return "public"
	case RolePrivate:
		return "private"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// privateHandle is the capability a private-role handle must provide: raw
// PKCS #1 v1.5 signing for private-key encryption and decryption.
type privateHandle interface {
	crypto.Signer
	crypto.Decrypter
}

// Key wraps an externally decoded RSA key handle together with its Role and
// modulus size. A Key is read-only after construction and may be shared by
// several Cryptors; Release must not run while any of them is in use.
type Key struct {
	public  *rsa.PublicKey
	private privateHandle
	role    Role
	size    int
	reason  string
}

// NewKey binds a decoded key handle to a role.
//
// For RolePublic the handle is an *rsa.PublicKey, or any value whose Public
// method returns one (only the public half is kept). For RolePrivate the handle
// must implement crypto.Signer and crypto.Decrypter over an RSA public key, as
// *rsa.PrivateKey and most hardware-backed signers do.
//
// The Key takes exclusive ownership of handle: Release wipes an
// *rsa.PrivateKey in place, so the same handle must not be wrapped twice.
//
// NewKey never fails: a nil or unusable handle produces a Key whose IsValid
// reports false and every Cryptor operation on it fails with ErrInvalidKey.
func NewKey(handle any, role Role) *Key {
	k := &Key{role: role}
	logger := NewLogger("NewKey").WithField("role", role.String())

	switch role {
	case RolePublic:
		k.public = publicFromHandle(handle)
		if k.public == nil {
			k.reason = fmt.Sprintf("handle %T is not an RSA public key", handle)
		}
	case RolePrivate:
		priv, ok := handle.(privateHandle)
		if !ok || priv == nil {
			k.reason = fmt.Sprintf("handle %T cannot sign and decrypt", handle)
			break
		}
		k.public = publicFromHandle(priv)
		if k.public == nil {
			k.reason = fmt.Sprintf("handle %T is not an RSA private key", handle)
			break
		}
		k.private = priv
	default:
		k.reason = fmt.Sprintf("unknown role %d", int(role))
	}

	if k.public != nil {
		if k.public.N == nil {
			k.reason = "public key has no modulus"
			k.public, k.private = nil, nil
		} else {
			k.size = k.public.Size()
			if err := limits.ValidateModulusSize(k.size); err != nil {
				k.reason = err.Error()
				k.public, k.private = nil, nil
			}
		}
	}

	if k.reason != "" {
		logger.WithField("reason", k.reason).Warn("Key handle failed to bind")
	} else {
		logger.WithField("size", k.size).Debug("Key bound")
	}
	return k
}

// NewPublicKey wraps pub as a public-role Key.
func NewPublicKey(pub *rsa.PublicKey) *Key {
	if pub == nil {
		return NewKey(nil, RolePublic)
	}
	return NewKey(pub, RolePublic)
}

// NewPrivateKey wraps priv as a private-role Key. The Key owns priv from then
// on and wipes it on Release.
func NewPrivateKey(priv *rsa.PrivateKey) *Key {
	if priv == nil {
		return NewKey(nil, RolePrivate)
	}
	return NewKey(priv, RolePrivate)
}

func publicFromHandle(handle any) *rsa.PublicKey {
	switch h := handle.(type) {
	case *rsa.PublicKey:
		return h
	case *rsa.PrivateKey:
		if h == nil {
			return nil
		}
		return &h.PublicKey
	case interface{ Public() crypto.PublicKey }:
		pub, _ := h.Public().(*rsa.PublicKey)
		return pub
	default:
		return nil
	}
}

// Size returns the modulus size in bytes. It is the output buffer size of
// every encrypt and decrypt call regardless of padding. A Key that never bound
// reports 0.
func (k *Key) Size() int {
	if k == nil {
		return 0
	}
	return k.size
}

// Role returns the key's role.
func (k *Key) Role() Role {
	if k == nil {
		return RolePublic
	}
	return k.role
}

// IsValid reports whether the handle bound and has not been released.
func (k *Key) IsValid() bool {
	return k != nil && k.public != nil
}

// PublicKey returns the RSA public key, or nil for an invalid Key.
func (k *Key) PublicKey() *rsa.PublicKey {
	if !k.IsValid() {
		return nil
	}
	return k.public
}

// invalidReason explains why IsValid is false.
func (k *Key) invalidReason() string {
	switch {
	case k == nil:
		return "no key"
	case k.reason != "":
		return k.reason
	default:
		return "key released"
	}
}

// Release drops the key handle. Private exponents of an *rsa.PrivateKey handle
// are wiped. After Release, IsValid reports false while Size is unchanged.
func (k *Key) Release() {
	if !k.IsValid() {
		return
	}
	if priv, ok := k.private.(*rsa.PrivateKey); ok {
		_ = WipePrivateKey(priv)
	}
	k.public, k.private = nil, nil
	NewLogger("Key.Release").WithField("role", k.role.String()).Debug("Key released")
}
