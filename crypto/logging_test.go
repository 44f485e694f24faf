package crypto

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("Cryptor.encrypt")
	if logger.fields["function"] != "Cryptor.encrypt" || logger.fields["package"] != "crypto" {
		t.Errorf("NewLogger() fields = %v", logger.fields)
	}
	if logger.logger != logrus.StandardLogger() {
		t.Error("NewLogger() should default to the standard logger")
	}

	custom := logrus.New()
	logger.WithLogger(custom).WithLogger(nil)
	if logger.logger != custom {
		t.Error("WithLogger(nil) should keep the current logger")
	}
}

// TestLoggerHelper_WithError tests the WithError method
func TestLoggerHelper_WithError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType string
	}{
		{
			name:      "plain error",
			err:       errors.New("test error"),
			errorType: "unknown",
		},
		{
			name:      "wrapped kind",
			err:       fmt.Errorf("checking key: %w", ErrInvalidKey),
			errorType: "invalid_key",
		},
		{
			name:      "op error",
			err:       &OpError{Op: opEncrypt, Kind: ErrInputTooLarge},
			errorType: "input_too_large",
		},
		{
			name:      "primitive failure",
			err:       &OpError{Op: opDecrypt, Kind: ErrCryptoPrimitiveFailure, Err: errors.New("decryption error")},
			errorType: "crypto_primitive_failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger("TestFunction")
			loggerWithError := logger.WithError(tt.err, "test_operation")

			if val := loggerWithError.fields["error"]; val != tt.err.Error() {
				t.Errorf("WithError() error field = %v, want %v", val, tt.err.Error())
			}

			if val := loggerWithError.fields["error_type"]; val != tt.errorType {
				t.Errorf("WithError() error_type field = %v, want %v", val, tt.errorType)
			}

			if val := loggerWithError.fields["operation"]; val != "test_operation" {
				t.Errorf("WithError() operation field = %v, want test_operation", val)
			}
		})
	}
}

// newTestLogger returns a debug level logger writing plain text to a buffer
func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.DebugLevel)
	return logger, &buf
}

// TestLoggerHelper_LoggingMethods tests all logging methods
func TestLoggerHelper_LoggingMethods(t *testing.T) {
	tests := []struct {
		name        string
		method      func(*LoggerHelper, string)
		message     string
		expectLevel string
	}{
		{
			name:        "Debug method",
			method:      func(l *LoggerHelper, msg string) { l.Debug(msg) },
			message:     "debug message",
			expectLevel: "level=debug",
		},
		{
			name:        "Info method",
			method:      func(l *LoggerHelper, msg string) { l.Info(msg) },
			message:     "info message",
			expectLevel: "level=info",
		},
		{
			name:        "Warn method",
			method:      func(l *LoggerHelper, msg string) { l.Warn(msg) },
			message:     "warn message",
			expectLevel: "level=warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, buf := newTestLogger()
			logger := NewLogger("TestFunction").WithLogger(base)

			tt.method(logger, tt.message)

			output := buf.String()
			if !strings.Contains(output, tt.expectLevel) {
				t.Errorf("Expected log level %s in output: %s", tt.expectLevel, output)
			}

			if !strings.Contains(output, "function=TestFunction") {
				t.Errorf("Expected function field in output: %s", output)
			}

			if !strings.Contains(output, "package=crypto") {
				t.Errorf("Expected package field in output: %s", output)
			}

			if !strings.Contains(output, tt.message) {
				t.Errorf("Expected message in output: %s", output)
			}
		})
	}
}

// TestOperationFields tests the OperationFields function
func TestOperationFields(t *testing.T) {
	fields := OperationFields("encrypt", "ok")
	if fields["operation"] != "encrypt" || fields["status"] != "ok" {
		t.Errorf("OperationFields() = %v", fields)
	}

	fields = OperationFields("decrypt", "failed",
		logrus.Fields{"input_size": 256},
		logrus.Fields{"status": "overridden"},
	)
	if fields["input_size"] != 256 {
		t.Errorf("OperationFields() input_size = %v, want 256", fields["input_size"])
	}
	if fields["status"] != "overridden" {
		t.Errorf("OperationFields() later fields should win, status = %v", fields["status"])
	}
}
