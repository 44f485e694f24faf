package crypto

import (
	"fmt"
	"io"
	"time"

	"github.com/opd-ai/rsacrypt/limits"
	"github.com/sirupsen/logrus"
)

const (
	opEncrypt            = "encrypt"
	opDecrypt            = "decrypt"
	opMaxEncryptableSize = "max-encryptable-size"
	opMaxDecryptableSize = "max-decryptable-size"
	opValidate           = "validate"
)

// Cryptor binds one Key and one padding Config and transforms single RSA
// blocks into caller-owned buffers.
//
// A Cryptor is not safe for concurrent use: it records the last error. Confine
// it to one goroutine or guard calls with a mutex. The Key must outlive it.
type Cryptor struct {
	key       *Key
	config    Config
	configErr error
	primitive Primitive
	random    io.Reader
	logger    *logrus.Logger
	monitor   *PerformanceMonitor
	lastErr   string
}

// Option configures a Cryptor.
type Option func(*Cryptor)

// WithPrimitive replaces the crypto/rsa backed primitive.
func WithPrimitive(p Primitive) Option {
	return func(c *Cryptor) {
		c.primitive = p
	}
}

// WithRandom sets the entropy source of the default primitive. It has no
// effect when WithPrimitive is also given.
func WithRandom(r io.Reader) Option {
	return func(c *Cryptor) {
		c.random = r
	}
}

// WithLogger sets the logger; the default is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(c *Cryptor) {
		c.logger = l
	}
}

// WithMonitor records every Encrypt and Decrypt call in m.
func WithMonitor(m *PerformanceMonitor) Option {
	return func(c *Cryptor) {
		c.monitor = m
	}
}

// NewCryptor binds key and cfg. It never fails: an invalid key or an unusable
// configuration is reported by the first operation that needs them.
func NewCryptor(key *Key, cfg Config, opts ...Option) *Cryptor {
	c := &Cryptor{
		key:    key,
		config: cfg,
		logger: logrus.StandardLogger(),
	}
	c.config.OAEPLabel = append([]byte(nil), cfg.OAEPLabel...)
	for _, opt := range opts {
		opt(c)
	}
	if c.primitive == nil {
		c.primitive = NewPrimitive(c.random)
	}
	if err := cfg.Validate(); err != nil {
		c.configErr = err
		NewLogger("NewCryptor").WithLogger(c.logger).WithField("error", err.Error()).Warn("Cryptor created with unusable padding configuration")
	}
	return c
}

// NewDefaultCryptor binds key with DefaultConfig.
func NewDefaultCryptor(key *Key, opts ...Option) *Cryptor {
	return NewCryptor(key, DefaultConfig(), opts...)
}

// Key returns the bound key.
func (c *Cryptor) Key() *Key { return c.key }

// Config returns a copy of the padding configuration.
func (c *Cryptor) Config() Config {
	cfg := c.config
	cfg.OAEPLabel = append([]byte(nil), c.config.OAEPLabel...)
	return cfg
}

// LastError returns the message of the most recent failed call, or "" if the
// most recent call succeeded.
func (c *Cryptor) LastError() string { return c.lastErr }

// IsValid reports whether the key is usable, recording an error otherwise.
func (c *Cryptor) IsValid() bool {
	if err := c.checkKey(opValidate); err != nil {
		c.lastErr = err.Error()
		return false
	}
	c.lastErr = ""
	return true
}

// MaxEncryptableSize returns the largest input Encrypt accepts:
// key.Size() - OverheadBytes(config), never negative.
func (c *Cryptor) MaxEncryptableSize() (int, error) {
	if err := c.checkKey(opMaxEncryptableSize); err != nil {
		return 0, c.record(err)
	}
	if c.configErr != nil {
		return 0, c.record(c.newError(opMaxEncryptableSize, ErrUnsupportedRoleForPadding, c.configErr))
	}
	c.lastErr = ""
	return c.maxEncryptable(), nil
}

// MaxDecryptableSize returns the largest input Decrypt accepts: one
// modulus-wide block.
func (c *Cryptor) MaxDecryptableSize() (int, error) {
	if err := c.checkKey(opMaxDecryptableSize); err != nil {
		return 0, c.record(err)
	}
	c.lastErr = ""
	return c.key.Size(), nil
}

// OutputBufferSizeForEncrypt returns the dst size Encrypt requires.
func (c *Cryptor) OutputBufferSizeForEncrypt() int { return c.key.Size() }

// OutputBufferSizeForDecrypt returns the dst size Decrypt requires.
func (c *Cryptor) OutputBufferSizeForDecrypt() int { return c.key.Size() }

func (c *Cryptor) maxEncryptable() int {
	n := c.key.Size() - OverheadBytes(c.config)
	if n < 0 {
		return 0
	}
	return n
}

// Encrypt transforms src into one block written to dst and returns the number
// of bytes written. A public key performs confidentiality encryption with
// either padding; a private key performs a signing-style transform and only
// accepts PKCS #1 v1.5.
//
// On error dst may hold partial output and must not be read.
func (c *Cryptor) Encrypt(src, dst []byte) (int, error) {
	start := time.Now()
	n, err := c.encrypt(src, dst)
	c.finish(opEncrypt, start, len(src), n, err)
	return n, err
}

func (c *Cryptor) encrypt(src, dst []byte) (int, error) {
	if err := c.checkKey(opEncrypt); err != nil {
		return 0, err
	}
	if err := c.checkPadding(opEncrypt, RolePrivate); err != nil {
		return 0, err
	}
	if err := limits.ValidateInputSize(src, c.maxEncryptable()); err != nil {
		return 0, c.newError(opEncrypt, ErrInputTooLarge, err)
	}
	if err := limits.ValidateOutputSize(dst, c.OutputBufferSizeForEncrypt()); err != nil {
		return 0, c.newError(opEncrypt, ErrOutputBufferTooSmall, err)
	}

	var (
		out []byte
		err error
	)
	if c.key.Role() == RolePrivate {
		out, err = c.primitive.PrivateEncrypt(c.key.private, src)
	} else {
		out, err = c.primitive.PublicEncrypt(c.key.public, c.config, src)
	}
	if err != nil {
		return 0, c.newError(opEncrypt, ErrCryptoPrimitiveFailure, err)
	}
	return c.emit(opEncrypt, out, dst)
}

// Decrypt transforms one block in src into dst and returns the exact unpadded
// length. A private key performs confidentiality decryption with either
// padding; a public key recovers a signing-style block and only accepts
// PKCS #1 v1.5.
//
// On error dst may hold partial output and must not be read.
func (c *Cryptor) Decrypt(src, dst []byte) (int, error) {
	start := time.Now()
	n, err := c.decrypt(src, dst)
	c.finish(opDecrypt, start, len(src), n, err)
	return n, err
}

func (c *Cryptor) decrypt(src, dst []byte) (int, error) {
	if err := c.checkKey(opDecrypt); err != nil {
		return 0, err
	}
	if err := c.checkPadding(opDecrypt, RolePublic); err != nil {
		return 0, err
	}
	if err := limits.ValidateInputSize(src, c.key.Size()); err != nil {
		return 0, c.newError(opDecrypt, ErrInputTooLarge, err)
	}
	if err := limits.ValidateOutputSize(dst, c.OutputBufferSizeForDecrypt()); err != nil {
		return 0, c.newError(opDecrypt, ErrOutputBufferTooSmall, err)
	}

	var (
		out []byte
		err error
	)
	if c.key.Role() == RolePrivate {
		out, err = c.primitive.PrivateDecrypt(c.key.private, c.config, src)
	} else {
		out, err = c.primitive.PublicDecrypt(c.key.public, src)
	}
	if err != nil {
		return 0, c.newError(opDecrypt, ErrCryptoPrimitiveFailure, err)
	}
	return c.emit(opDecrypt, out, dst)
}

// checkKey fails with ErrInvalidKey unless the key is usable.
func (c *Cryptor) checkKey(op string) error {
	if c.key.IsValid() {
		return nil
	}
	return c.newError(op, ErrInvalidKey, fmt.Errorf("%s", c.key.invalidReason()))
}

// checkPadding enforces the legality matrix: OAEP is refused for the role that
// would turn op into a signing-style transform (private encrypt, public
// decrypt).
func (c *Cryptor) checkPadding(op string, signingRole Role) error {
	if c.configErr != nil {
		return c.newError(op, ErrUnsupportedRoleForPadding, c.configErr)
	}
	if c.key.Role() == signingRole && c.config.Padding == PaddingOAEP {
		return c.newError(op, ErrUnsupportedRoleForPadding,
			fmt.Errorf("OAEP cannot be used to %s with a %s key", op, signingRole))
	}
	return nil
}

// emit copies the primitive output into dst and wipes the intermediate copy.
func (c *Cryptor) emit(op string, out, dst []byte) (int, error) {
	if len(out) > len(dst) {
		ZeroBytes(out)
		return 0, c.newError(op, ErrCryptoPrimitiveFailure,
			fmt.Errorf("primitive returned %d bytes for a %d byte block", len(out), c.key.Size()))
	}
	n := copy(dst, out)
	if out != nil {
		ZeroBytes(out)
	}
	return n, nil
}

func (c *Cryptor) newError(op string, kind, cause error) *OpError {
	return &OpError{
		Op:      op,
		Role:    c.key.Role(),
		Padding: c.config.Padding,
		Kind:    kind,
		Err:     cause,
	}
}

// record stores err as the last error and returns it.
func (c *Cryptor) record(err error) error {
	c.lastErr = err.Error()
	return err
}

// finish updates the last error, metrics and logs for a transform call.
func (c *Cryptor) finish(op string, start time.Time, inputSize, written int, err error) {
	if c.monitor != nil {
		c.monitor.RecordOperation(op, time.Since(start), inputSize, err)
	}

	fields := logrus.Fields{
		"role":       c.key.Role().String(),
		"padding":    c.config.String(),
		"input_size": inputSize,
	}
	if err == nil {
		c.lastErr = ""
		fields["output_size"] = written
		c.log(op).WithFields(OperationFields(op, "ok", fields)).Debug("RSA transform completed")
		return
	}

	c.record(err)
	logger := c.log(op).WithFields(fields).WithError(err, op)
	if errorType(err) == "crypto_primitive_failure" {
		logger.Warn("RSA primitive failed")
		return
	}
	logger.Debug("RSA transform rejected by policy")
}

func (c *Cryptor) log(function string) *LoggerHelper {
	return NewLogger("Cryptor." + function).WithLogger(c.logger)
}
