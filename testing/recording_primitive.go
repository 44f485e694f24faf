package testing

import (
	stdcrypto "crypto"
	"crypto/rsa"
	"sync"
	"time"

	"github.com/opd-ai/rsacrypt/crypto"
	"github.com/sirupsen/logrus"
)

// Primitive operation names used in CallRecord.Op.
const (
	OpPublicEncrypt  = "public-encrypt"
	OpPrivateDecrypt = "private-decrypt"
	OpPrivateEncrypt = "private-encrypt"
	OpPublicDecrypt  = "public-decrypt"
)

// RecordingPrimitive wraps a crypto.Primitive and records every call that
// reaches it. Tests use it to check that policy rejections never touch the RSA
// primitive and to inject primitive failures.
type RecordingPrimitive struct {
	inner    crypto.Primitive
	callLog  []CallRecord
	failures map[string]error
	mu       sync.Mutex
}

// CallRecord represents one primitive call for test verification
type CallRecord struct {
	Op         string
	Padding    crypto.PaddingMode
	InputSize  int
	OutputSize int
	Timestamp  int64
	Success    bool
	Error      error
}

// NewRecordingPrimitive wraps inner. A nil inner wraps the crypto/rsa
// primitive.
func NewRecordingPrimitive(inner crypto.Primitive) *RecordingPrimitive {
	if inner == nil {
		inner = crypto.NewPrimitive(nil)
	}
	logrus.WithFields(logrus.Fields{
		"function": "NewRecordingPrimitive",
	}).Debug("Creating recording primitive for testing")

	return &RecordingPrimitive{
		inner:    inner,
		callLog:  make([]CallRecord, 0),
		failures: make(map[string]error),
	}
}

// FailWith makes every later call to op return err without reaching the
// wrapped primitive. A nil err clears the injected failure.
func (r *RecordingPrimitive) FailWith(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		delete(r.failures, op)
		return
	}
	r.failures[op] = err
}

// PublicEncrypt implements crypto.Primitive.
func (r *RecordingPrimitive) PublicEncrypt(pub *rsa.PublicKey, cfg crypto.Config, src []byte) ([]byte, error) {
	return r.record(OpPublicEncrypt, cfg.Padding, src, func() ([]byte, error) {
		return r.inner.PublicEncrypt(pub, cfg, src)
	})
}

// PrivateDecrypt implements crypto.Primitive.
func (r *RecordingPrimitive) PrivateDecrypt(priv stdcrypto.Decrypter, cfg crypto.Config, src []byte) ([]byte, error) {
	return r.record(OpPrivateDecrypt, cfg.Padding, src, func() ([]byte, error) {
		return r.inner.PrivateDecrypt(priv, cfg, src)
	})
}

// PrivateEncrypt implements crypto.Primitive.
func (r *RecordingPrimitive) PrivateEncrypt(priv stdcrypto.Signer, src []byte) ([]byte, error) {
	return r.record(OpPrivateEncrypt, crypto.PaddingPKCS1v15, src, func() ([]byte, error) {
		return r.inner.PrivateEncrypt(priv, src)
	})
}

// PublicDecrypt implements crypto.Primitive.
func (r *RecordingPrimitive) PublicDecrypt(pub *rsa.PublicKey, src []byte) ([]byte, error) {
	return r.record(OpPublicDecrypt, crypto.PaddingPKCS1v15, src, func() ([]byte, error) {
		return r.inner.PublicDecrypt(pub, src)
	})
}

func (r *RecordingPrimitive) record(op string, padding crypto.PaddingMode, src []byte, call func() ([]byte, error)) ([]byte, error) {
	r.mu.Lock()
	injected := r.failures[op]
	r.mu.Unlock()

	var (
		out []byte
		err error
	)
	if injected != nil {
		err = injected
	} else {
		out, err = call()
	}

	rec := CallRecord{
		Op:         op,
		Padding:    padding,
		InputSize:  len(src),
		OutputSize: len(out),
		Timestamp:  time.Now().UnixNano(),
		Success:    err == nil,
		Error:      err,
	}

	r.mu.Lock()
	r.callLog = append(r.callLog, rec)
	total := len(r.callLog)
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":    "RecordingPrimitive." + op,
		"input_size":  rec.InputSize,
		"success":     rec.Success,
		"injected":    injected != nil,
		"total_calls": total,
	}).Debug("Recorded primitive call")

	return out, err
}

// GetCallLog returns a copy of the call log
func (r *RecordingPrimitive) GetCallLog() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := make([]CallRecord, len(r.callLog))
	copy(log, r.callLog)
	return log
}

// CallCount returns the number of recorded calls to op, or to any operation
// when op is empty.
func (r *RecordingPrimitive) CallCount(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if op == "" {
		return len(r.callLog)
	}
	n := 0
	for _, rec := range r.callLog {
		if rec.Op == op {
			n++
		}
	}
	return n
}

// Reset clears the call log and all injected failures
func (r *RecordingPrimitive) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.callLog = r.callLog[:0]
	r.failures = make(map[string]error)
}
