package factory

import (
	stdcrypto "crypto"
	"fmt"
	"os"
	"sync"

	"github.com/opd-ai/rsacrypt/crypto"
	"github.com/opd-ai/rsacrypt/testing"
	"github.com/sirupsen/logrus"
)

// Environment variables read by NewCryptorFactory.
const (
	// EnvPadding selects the default padding: "pkcs1v15" or "oaep".
	EnvPadding = "RSACRYPT_PADDING"
	// EnvOAEPHash selects the default OAEP digest, e.g. "sha256" or "sha3-256".
	EnvOAEPHash = "RSACRYPT_OAEP_HASH"
)

// CryptorFactory creates Cryptors sharing one default padding configuration,
// logger and performance monitor.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type CryptorFactory struct {
	mu            sync.RWMutex
	defaultConfig *crypto.Config
	logger        *logrus.Logger
	monitor       *crypto.PerformanceMonitor
	primitive     crypto.Primitive
}

// FactoryOption configures a CryptorFactory.
type FactoryOption func(*CryptorFactory)

// WithLogger sets the logger handed to every Cryptor the factory creates.
func WithLogger(logger *logrus.Logger) FactoryOption {
	return func(f *CryptorFactory) {
		f.logger = logger
	}
}

// WithMonitor shares m between all created Cryptors.
func WithMonitor(m *crypto.PerformanceMonitor) FactoryOption {
	return func(f *CryptorFactory) {
		f.monitor = m
	}
}

// WithPrimitive replaces the crypto/rsa primitive of created Cryptors.
func WithPrimitive(p crypto.Primitive) FactoryOption {
	return func(f *CryptorFactory) {
		f.primitive = p
	}
}

// TestConfigOption is a functional option for customizing a padding configuration.
type TestConfigOption func(*crypto.Config)

// NewCryptorFactory creates a new factory with default configuration
func NewCryptorFactory(opts ...FactoryOption) *CryptorFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)

	f := &CryptorFactory{
		defaultConfig: defaultConfig,
		logger:        logrus.StandardLogger(),
		monitor:       crypto.NewPerformanceMonitor(),
	}
	for _, opt := range opts {
		opt(f)
	}

	logConfigurationInfo(f.logger, defaultConfig)
	return f
}

// createDefaultConfig initializes the default padding configuration.
//
// Default Value Rationale:
//   - Padding: PKCS #1 v1.5 - the only scheme legal in all four directions
//   - OAEPHash: 0 (SHA-1) - the RFC 8017 default digest when OAEP is selected
func createDefaultConfig() *crypto.Config {
	cfg := crypto.DefaultConfig()
	return &cfg
}

// applyEnvironmentOverrides updates configuration based on environment variables.
// It checks for RSACRYPT_* environment variables and overrides defaults if valid values are found.
func applyEnvironmentOverrides(config *crypto.Config) {
	parsePaddingSetting(config)
	parseHashSetting(config)
}

// parsePaddingSetting updates the Padding config from RSACRYPT_PADDING environment variable.
// It logs a warning if parsing fails and only updates config if parsing succeeds.
func parsePaddingSetting(config *crypto.Config) {
	if paddingStr := os.Getenv(EnvPadding); paddingStr != "" {
		padding, err := crypto.ParsePaddingMode(paddingStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parsePaddingSetting",
				"env_var":     EnvPadding,
				"value":       paddingStr,
				"error":       err.Error(),
				"using_value": config.Padding.String(),
			}).Warn("Failed to parse RSACRYPT_PADDING environment variable, using default")
			return
		}
		config.Padding = padding
	}
}

// parseHashSetting updates the OAEPHash config from RSACRYPT_OAEP_HASH environment variable.
// Only digests usable for OAEP are accepted.
func parseHashSetting(config *crypto.Config) {
	if hashStr := os.Getenv(EnvOAEPHash); hashStr != "" {
		h, err := crypto.ParseHash(hashStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseHashSetting",
				"env_var":     EnvOAEPHash,
				"value":       hashStr,
				"error":       err.Error(),
				"using_value": config.Hash().String(),
			}).Warn("Failed to parse RSACRYPT_OAEP_HASH environment variable, using default")
			return
		}
		config.OAEPHash = h
	}
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(logger *logrus.Logger, config *crypto.Config) {
	logger.WithFields(logrus.Fields{
		"function":  "NewCryptorFactory",
		"padding":   config.Padding.String(),
		"oaep_hash": config.Hash().String(),
		"overhead":  crypto.OverheadBytes(*config),
	}).Info("Created cryptor factory with configuration")
}

// CreateCryptor binds key to the factory's default configuration.
func (f *CryptorFactory) CreateCryptor(key *crypto.Key) *crypto.Cryptor {
	cfg := f.GetCurrentConfig()
	return f.newCryptor(key, *cfg)
}

// CreateCryptorWithConfig binds key to config. A nil config selects the
// default; an unusable one is rejected here instead of at first use.
func (f *CryptorFactory) CreateCryptorWithConfig(key *crypto.Key, config *crypto.Config) (*crypto.Cryptor, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid padding configuration: %w", err)
	}
	return f.newCryptor(key, *config), nil
}

// CreateSigningCryptor binds key to PKCS #1 v1.5, the only padding legal for
// private-key encryption and public-key decryption.
func (f *CryptorFactory) CreateSigningCryptor(key *crypto.Key) *crypto.Cryptor {
	return f.newCryptor(key, crypto.DefaultConfig())
}

func (f *CryptorFactory) newCryptor(key *crypto.Key, config crypto.Config) *crypto.Cryptor {
	f.mu.RLock()
	opts := []crypto.Option{
		crypto.WithLogger(f.logger),
		crypto.WithMonitor(f.monitor),
	}
	if f.primitive != nil {
		opts = append(opts, crypto.WithPrimitive(f.primitive))
	}
	logger := f.logger
	f.mu.RUnlock()

	logger.WithFields(logrus.Fields{
		"function": "CreateCryptor",
		"role":     key.Role().String(),
		"size":     key.Size(),
		"padding":  config.String(),
	}).Debug("Creating cryptor")

	return crypto.NewCryptor(key, config, opts...)
}

// WithPadding sets the padding mode of a configuration.
func WithPadding(mode crypto.PaddingMode) TestConfigOption {
	return func(c *crypto.Config) {
		c.Padding = mode
	}
}

// WithOAEPHash sets the OAEP digest of a configuration.
func WithOAEPHash(h stdcrypto.Hash) TestConfigOption {
	return func(c *crypto.Config) {
		c.OAEPHash = h
	}
}

// WithOAEPLabel sets the OAEP label of a configuration.
func WithOAEPLabel(label []byte) TestConfigOption {
	return func(c *crypto.Config) {
		c.OAEPLabel = append([]byte(nil), label...)
	}
}

// CreateRecordingForTesting creates a Cryptor whose primitive records every
// call, starting from the default configuration with opts applied.
func (f *CryptorFactory) CreateRecordingForTesting(key *crypto.Key, opts ...TestConfigOption) (*crypto.Cryptor, *testing.RecordingPrimitive) {
	testConfig := f.GetCurrentConfig()
	for _, opt := range opts {
		opt(testConfig)
	}

	f.mu.RLock()
	inner := f.primitive
	logger := f.logger
	f.mu.RUnlock()

	rec := testing.NewRecordingPrimitive(inner)

	logger.WithFields(logrus.Fields{
		"function": "CreateRecordingForTesting",
		"padding":  testConfig.String(),
	}).Info("Creating recording cryptor for testing")

	return crypto.NewCryptor(key, *testConfig,
		crypto.WithLogger(logger),
		crypto.WithMonitor(f.monitor),
		crypto.WithPrimitive(rec),
	), rec
}

// SwitchToOAEP makes OAEP with digest h the default padding
func (f *CryptorFactory) SwitchToOAEP(h stdcrypto.Hash) error {
	if !crypto.HashSupported(h) {
		return fmt.Errorf("%w: %v", crypto.ErrUnsupportedHash, h)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.logger.WithFields(logrus.Fields{
		"function": "SwitchToOAEP",
		"previous": f.defaultConfig.String(),
	}).Info("Switching factory to OAEP padding")

	f.defaultConfig.Padding = crypto.PaddingOAEP
	f.defaultConfig.OAEPHash = h

	f.logger.WithFields(logrus.Fields{
		"function": "SwitchToOAEP",
		"current":  f.defaultConfig.String(),
	}).Info("Factory switched to OAEP padding")
	return nil
}

// SwitchToPKCS1v15 makes PKCS #1 v1.5 the default padding
func (f *CryptorFactory) SwitchToPKCS1v15() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logger.WithFields(logrus.Fields{
		"function": "SwitchToPKCS1v15",
		"previous": f.defaultConfig.String(),
	}).Info("Switching factory to PKCS #1 v1.5 padding")

	f.defaultConfig.Padding = crypto.PaddingPKCS1v15
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *CryptorFactory) GetCurrentConfig() *crypto.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return &crypto.Config{
		Padding:   f.defaultConfig.Padding,
		OAEPHash:  f.defaultConfig.OAEPHash,
		OAEPLabel: append([]byte(nil), f.defaultConfig.OAEPLabel...),
	}
}

// IsUsingOAEP returns true if the factory defaults to OAEP
func (f *CryptorFactory) IsUsingOAEP() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.defaultConfig.Padding == crypto.PaddingOAEP
}

// Monitor returns the performance monitor shared by created Cryptors.
func (f *CryptorFactory) Monitor() *crypto.PerformanceMonitor {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.monitor
}

// UpdateConfig updates the factory's default configuration
func (f *CryptorFactory) UpdateConfig(config *crypto.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid padding configuration: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.logger.WithFields(logrus.Fields{
		"function":    "UpdateConfig",
		"old_padding": f.defaultConfig.String(),
		"new_padding": config.String(),
	}).Info("Updating factory configuration")

	f.defaultConfig = &crypto.Config{
		Padding:   config.Padding,
		OAEPHash:  config.OAEPHash,
		OAEPLabel: append([]byte(nil), config.OAEPLabel...),
	}
	return nil
}
