package testing

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"

	"github.com/opd-ai/rsacrypt/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
	keyErr  error
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		key, keyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, keyErr)
	return key
}

func newTestCryptors(t *testing.T, cfg crypto.Config, rec *RecordingPrimitive) (pub, prv *crypto.Cryptor) {
	t.Helper()
	priv := testKey(t)
	pub = crypto.NewCryptor(crypto.NewPublicKey(&priv.PublicKey), cfg, crypto.WithPrimitive(rec))
	prv = crypto.NewCryptor(crypto.NewPrivateKey(priv), cfg, crypto.WithPrimitive(rec))
	return pub, prv
}

func TestNewRecordingPrimitive(t *testing.T) {
	rec := NewRecordingPrimitive(nil)

	require.NotNil(t, rec)
	assert.Empty(t, rec.GetCallLog())
	assert.Zero(t, rec.CallCount(""))
}

func TestRecordsLegalCalls(t *testing.T) {
	rec := NewRecordingPrimitive(nil)
	pub, prv := newTestCryptors(t, crypto.DefaultConfig(), rec)
	ct := make([]byte, 256)
	pt := make([]byte, 256)

	n, err := pub.Encrypt([]byte("hello"), ct)
	require.NoError(t, err)
	_, err = prv.Decrypt(ct[:n], pt)
	require.NoError(t, err)

	n, err = prv.Encrypt([]byte("hello"), ct)
	require.NoError(t, err)
	_, err = pub.Decrypt(ct[:n], pt)
	require.NoError(t, err)

	log := rec.GetCallLog()
	require.Len(t, log, 4)
	assert.Equal(t, []string{OpPublicEncrypt, OpPrivateDecrypt, OpPrivateEncrypt, OpPublicDecrypt},
		[]string{log[0].Op, log[1].Op, log[2].Op, log[3].Op})
	for _, r := range log {
		assert.True(t, r.Success, r.Op)
		assert.NoError(t, r.Error)
		assert.NotZero(t, r.Timestamp)
	}
	assert.Equal(t, 5, log[0].InputSize)
	assert.Equal(t, 256, log[0].OutputSize)
	assert.Equal(t, 256, log[1].InputSize)
	assert.Equal(t, 5, log[1].OutputSize)
}

// TestPolicyRejectionsNeverReachPrimitive checks every refused request: the
// illegal role/padding pairs, oversized input and undersized output.
func TestPolicyRejectionsNeverReachPrimitive(t *testing.T) {
	rec := NewRecordingPrimitive(nil)
	oaepPub, oaepPrv := newTestCryptors(t, crypto.OAEPConfig(stdcrypto.SHA256), rec)
	pkcsPub, pkcsPrv := newTestCryptors(t, crypto.DefaultConfig(), rec)
	buf := make([]byte, 256)

	tests := []struct {
		name string
		call func() error
		kind error
	}{
		{"oaep private encrypt", func() error { _, err := oaepPrv.Encrypt([]byte("x"), buf); return err }, crypto.ErrUnsupportedRoleForPadding},
		{"oaep public decrypt", func() error { _, err := oaepPub.Decrypt(buf, buf); return err }, crypto.ErrUnsupportedRoleForPadding},
		{"oaep input too large", func() error { _, err := oaepPub.Encrypt(make([]byte, 191), buf); return err }, crypto.ErrInputTooLarge},
		{"pkcs1 input too large", func() error { _, err := pkcsPrv.Encrypt(make([]byte, 246), buf); return err }, crypto.ErrInputTooLarge},
		{"decrypt input too large", func() error { _, err := pkcsPrv.Decrypt(make([]byte, 257), buf); return err }, crypto.ErrInputTooLarge},
		{"encrypt output too small", func() error { _, err := pkcsPub.Encrypt([]byte("x"), buf[:255]); return err }, crypto.ErrOutputBufferTooSmall},
		{"decrypt output too small", func() error { _, err := pkcsPub.Decrypt(buf, buf[:255]); return err }, crypto.ErrOutputBufferTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.kind)
		})
	}

	assert.Zero(t, rec.CallCount(""), "rejected requests must not reach the primitive")
}

func TestFailWith(t *testing.T) {
	rec := NewRecordingPrimitive(nil)
	pub, prv := newTestCryptors(t, crypto.DefaultConfig(), rec)
	ct := make([]byte, 256)
	n, err := pub.Encrypt([]byte("hello"), ct)
	require.NoError(t, err)

	tokenErr := errors.New("token removed")
	rec.FailWith(OpPrivateDecrypt, tokenErr)

	_, err = prv.Decrypt(ct[:n], make([]byte, 256))
	assert.ErrorIs(t, err, crypto.ErrCryptoPrimitiveFailure)
	assert.ErrorIs(t, err, tokenErr)
	assert.Contains(t, prv.LastError(), "token removed")

	log := rec.GetCallLog()
	require.Len(t, log, 2)
	assert.False(t, log[1].Success)
	assert.Equal(t, tokenErr, log[1].Error)

	rec.FailWith(OpPrivateDecrypt, nil)
	_, err = prv.Decrypt(ct[:n], make([]byte, 256))
	assert.NoError(t, err)
}

func TestCallCountAndReset(t *testing.T) {
	rec := NewRecordingPrimitive(nil)
	pub, _ := newTestCryptors(t, crypto.DefaultConfig(), rec)
	rec.FailWith(OpPublicEncrypt, errors.New("boom"))

	for i := 0; i < 3; i++ {
		_, _ = pub.Encrypt([]byte("x"), make([]byte, 256))
	}

	assert.Equal(t, 3, rec.CallCount(OpPublicEncrypt))
	assert.Equal(t, 0, rec.CallCount(OpPrivateDecrypt))
	assert.Equal(t, 3, rec.CallCount(""))

	rec.Reset()
	assert.Zero(t, rec.CallCount(""))

	_, err := pub.Encrypt([]byte("x"), make([]byte, 256))
	assert.NoError(t, err, "Reset should clear injected failures")
}

func TestGetCallLogReturnsCopy(t *testing.T) {
	rec := NewRecordingPrimitive(nil)
	pub, _ := newTestCryptors(t, crypto.DefaultConfig(), rec)
	_, err := pub.Encrypt([]byte("x"), make([]byte, 256))
	require.NoError(t, err)

	log := rec.GetCallLog()
	log[0].Op = "tampered"

	assert.Equal(t, OpPublicEncrypt, rec.GetCallLog()[0].Op)
}
