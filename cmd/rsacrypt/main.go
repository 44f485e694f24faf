// Package main provides the rsacrypt command-line tool.
//
// rsacrypt loads an RSA key pair from <key-path-prefix>public.pem,
// <key-path-prefix>private.pem and, if present, <key-path-prefix>passphrase,
// reads one word from standard input and runs it through both legal
// directions of the padding policy: public-key encryption followed by
// private-key decryption, then private-key encryption followed by public-key
// decryption.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/opd-ai/rsacrypt/crypto"
	"github.com/opd-ai/rsacrypt/factory"
	"github.com/opd-ai/rsacrypt/interfaces"
	"github.com/opd-ai/rsacrypt/keyload"
	"github.com/sirupsen/logrus"
)

// CLI configuration
type CLIConfig struct {
	keyPrefix string
	padding   string
	oaepHash  string
	logLevel  string
	envFile   string
	metrics   bool
	help      bool
}

// parseCLIFlags parses command-line flags and returns the configuration.
func parseCLIFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	config := &CLIConfig{}

	// Padding configuration
	fs.StringVar(&config.padding, "padding", "", "Padding for public encryption: pkcs1v15 or oaep (default: $"+factory.EnvPadding+" or pkcs1v15)")
	fs.StringVar(&config.oaepHash, "oaep-hash", "", "OAEP digest, e.g. sha256, sha3-256, blake2b-256 (default: $"+factory.EnvOAEPHash+" or sha1)")

	// Environment and logging
	fs.StringVar(&config.envFile, "env-file", "", "Load RSACRYPT_* settings from a .env file")
	fs.StringVar(&config.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&config.metrics, "metrics", false, "Print operation metrics as JSON to stderr")

	// Help
	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		config.keyPrefix = fs.Arg(0)
	}
	return config, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "RSA padding policy round trip")
	fmt.Fprintln(w, "=============================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reads one word from stdin and runs it through:")
	fmt.Fprintln(w, "  • public key encrypt -> private key decrypt (configured padding)")
	fmt.Fprintln(w, "  • private key encrypt -> public key decrypt (PKCS #1 v1.5)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [options] <key-path-prefix>\n", fs.Name())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  # Use keys/public.pem, keys/private.pem and keys/passphrase\n")
	fmt.Fprintf(w, "  echo hello | %s keys/\n", fs.Name())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  # OAEP with SHA-256 for the confidentiality direction\n")
	fmt.Fprintf(w, "  echo hello | %s -padding oaep -oaep-hash sha256 keys/\n", fs.Name())
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	if config.keyPrefix == "" {
		return fmt.Errorf("key path prefix is required")
	}

	if config.padding != "" {
		if _, err := crypto.ParsePaddingMode(config.padding); err != nil {
			return fmt.Errorf("invalid -padding: %w", err)
		}
	}

	if config.oaepHash != "" {
		if _, err := crypto.ParseHash(config.oaepHash); err != nil {
			return fmt.Errorf("invalid -oaep-hash: %w", err)
		}
	}

	if _, err := logrus.ParseLevel(config.logLevel); err != nil {
		return fmt.Errorf("invalid -log-level: %w", err)
	}

	return nil
}

// applyPaddingFlags layers explicit flags over the factory's environment
// derived default.
func applyPaddingFlags(f *factory.CryptorFactory, config *CLIConfig) error {
	cfg := f.GetCurrentConfig()
	if config.padding != "" {
		mode, err := crypto.ParsePaddingMode(config.padding)
		if err != nil {
			return err
		}
		cfg.Padding = mode
	}
	if config.oaepHash != "" {
		h, err := crypto.ParseHash(config.oaepHash)
		if err != nil {
			return err
		}
		cfg.OAEPHash = h
	}
	return f.UpdateConfig(cfg)
}

// readWord returns the first whitespace delimited word of r.
func readWord(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return nil, errors.New("no input word on stdin")
	}
	return append([]byte(nil), scanner.Bytes()...), nil
}

// roundTrip encrypts msg with enc and decrypts the result with dec.
func roundTrip(enc, dec interfaces.Cryptor, encName, decName string, msg []byte) ([]byte, error) {
	encrypted := make([]byte, enc.OutputBufferSizeForEncrypt())
	n, err := enc.Encrypt(msg, encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt by %s key: %s", encName, enc.LastError())
	}

	decrypted := make([]byte, dec.OutputBufferSizeForDecrypt())
	n, err = dec.Decrypt(encrypted[:n], decrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt by %s key: %s", decName, dec.LastError())
	}
	return decrypted[:n], nil
}

// run executes both round trips for config, reading the word from in.
func run(config *CLIConfig, in io.Reader, out, errOut io.Writer) error {
	if config.envFile != "" {
		if err := godotenv.Load(config.envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", config.envFile, err)
		}
	}

	level, err := logrus.ParseLevel(config.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	f := factory.NewCryptorFactory()
	if err := applyPaddingFlags(f, config); err != nil {
		return fmt.Errorf("invalid padding configuration: %w", err)
	}

	keys, err := keyload.LoadKeySet(config.keyPrefix)
	if err != nil {
		return err
	}
	defer keys.Release()

	word, err := readWord(in)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(word)

	got, err := roundTrip(f.CreateCryptor(keys.Public), f.CreateCryptor(keys.Private), "public", "private", word)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pub enc -> prv dec => %s\n", got)

	got, err = roundTrip(f.CreateSigningCryptor(keys.Private), f.CreateSigningCryptor(keys.Public), "private", "public", word)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "prv enc -> pub dec => %s\n", got)

	if config.metrics {
		data, err := f.Monitor().ExportJSON()
		if err != nil {
			return fmt.Errorf("failed to export metrics: %w", err)
		}
		fmt.Fprintln(errOut, string(data))
	}
	return nil
}

// main is the entry point for the rsacrypt tool.
func main() {
	fs := flag.NewFlagSet("rsacrypt", flag.ExitOnError)
	cliConfig, err := parseCLIFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Show help if requested
	if cliConfig.help {
		printUsage(os.Stdout, fs)
		os.Exit(0)
	}

	if err := validateCLIConfig(cliConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(1)
	}

	if err := run(cliConfig, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
