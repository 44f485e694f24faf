package crypto

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverheadBytes(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   int
	}{
		{"pkcs1v15", DefaultConfig(), 11},
		{"oaep default digest is sha1", Config{Padding: PaddingOAEP}, 42},
		{"oaep sha1", OAEPConfig(crypto.SHA1), 42},
		{"oaep sha224", OAEPConfig(crypto.SHA224), 58},
		{"oaep sha256", OAEPConfig(crypto.SHA256), 66},
		{"oaep sha384", OAEPConfig(crypto.SHA384), 98},
		{"oaep sha512", OAEPConfig(crypto.SHA512), 130},
		{"oaep sha3-256", OAEPConfig(crypto.SHA3_256), 66},
		{"oaep sha3-512", OAEPConfig(crypto.SHA3_512), 130},
		{"oaep blake2b-256", OAEPConfig(crypto.BLAKE2b_256), 66},
		{"oaep blake2b-512", OAEPConfig(crypto.BLAKE2b_512), 130},
		{"oaep unsupported digest", OAEPConfig(crypto.MD5), -1},
		{"unknown mode", Config{Padding: PaddingMode(7)}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverheadBytes(tt.config))
		})
	}
}

func TestOverheadBytesIgnoresDigestForPKCS1v15(t *testing.T) {
	cfg := Config{Padding: PaddingPKCS1v15, OAEPHash: crypto.SHA512}
	assert.Equal(t, 11, OverheadBytes(cfg))
	assert.NoError(t, cfg.Validate())
}

func TestConfigHashDefaultsToSHA1(t *testing.T) {
	assert.Equal(t, crypto.SHA1, Config{Padding: PaddingOAEP}.Hash())
	assert.Equal(t, crypto.SHA256, OAEPConfig(crypto.SHA256).Hash())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, OAEPConfig(crypto.SHA256).Validate())
	assert.NoError(t, Config{Padding: PaddingOAEP}.Validate())

	err := OAEPConfig(crypto.MD5).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedHash)

	assert.Error(t, Config{Padding: PaddingMode(-1)}.Validate())
}

func TestConfigString(t *testing.T) {
	assert.Equal(t, "pkcs1v15", DefaultConfig().String())
	assert.Equal(t, "oaep(SHA-256)", OAEPConfig(crypto.SHA256).String())
	assert.Equal(t, "oaep(SHA-1)", Config{Padding: PaddingOAEP}.String())
	assert.Equal(t, "padding(9)", PaddingMode(9).String())
}

func TestParsePaddingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PaddingMode
		wantErr bool
	}{
		{"oaep", PaddingOAEP, false},
		{"OAEP", PaddingOAEP, false},
		{"pkcs1v15", PaddingPKCS1v15, false},
		{"pkcs1", PaddingPKCS1v15, false},
		{" v1.5 ", PaddingPKCS1v15, false},
		{"pss", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePaddingMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParsePaddingMode(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParsePaddingMode(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParsePaddingMode(%q)", tt.in)
	}
}
