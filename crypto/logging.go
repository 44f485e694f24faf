package crypto

import (
	"github.com/sirupsen/logrus"
)

// LoggerHelper provides standardized logging functionality for the crypto package.
// Key material and plaintext are never passed to it; buffers are logged by size.
type LoggerHelper struct {
	function string
	pkg      string
	logger   *logrus.Logger
	fields   logrus.Fields
}

// NewLogger creates a new logger helper with standardized fields
func NewLogger(function string) *LoggerHelper {
	return &LoggerHelper{
		function: function,
		pkg:      "crypto",
		logger:   logrus.StandardLogger(),
		fields: logrus.Fields{
			"function": function,
			"package":  "crypto",
		},
	}
}

// WithLogger routes output to logger instead of the standard logger.
// A nil logger is ignored.
func (l *LoggerHelper) WithLogger(logger *logrus.Logger) *LoggerHelper {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// WithField adds a custom field to the logger
func (l *LoggerHelper) WithField(key string, value interface{}) *LoggerHelper {
	l.fields[key] = value
	return l
}

// WithFields adds multiple custom fields to the logger
func (l *LoggerHelper) WithFields(fields logrus.Fields) *LoggerHelper {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithError adds error information to the logger. The error_type field is
// derived from the Cryptor error kind err matches.
func (l *LoggerHelper) WithError(err error, operation string) *LoggerHelper {
	l.fields["error"] = err.Error()
	l.fields["error_type"] = errorType(err)
	l.fields["operation"] = operation
	return l
}

// Debug logs a debug message
func (l *LoggerHelper) Debug(message string) {
	l.logger.WithFields(l.fields).Debug(message)
}

// Info logs an info message
func (l *LoggerHelper) Info(message string) {
	l.logger.WithFields(l.fields).Info(message)
}

// Warn logs a warning message
func (l *LoggerHelper) Warn(message string) {
	l.logger.WithFields(l.fields).Warn(message)
}

// OperationFields creates standardized operation logging fields
func OperationFields(operation, status string, additional ...logrus.Fields) logrus.Fields {
	fields := logrus.Fields{
		"operation": operation,
		"status":    status,
	}

	for _, extra := range additional {
		for k, v := range extra {
			fields[k] = v
		}
	}

	return fields
}
