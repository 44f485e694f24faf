package crypto

import (
	"encoding/json"
	"sync"
	"time"
)

// PerformanceMonitor tracks Cryptor operation counts, throughput and failures.
// It is safe for concurrent use and may be shared by many Cryptors.
type PerformanceMonitor struct {
	encryptionMetrics *EncryptionMetrics
	mu                sync.RWMutex
	startTime         time.Time
}

// EncryptionMetrics tracks encryption/decryption performance
type EncryptionMetrics struct {
	EncryptOperations     uint64            `json:"encrypt_operations"`
	DecryptOperations     uint64            `json:"decrypt_operations"`
	BytesProcessed        uint64            `json:"bytes_processed"`
	AverageLatency        float64           `json:"average_latency_us"`
	ThroughputBytesPerSec float64           `json:"throughput_bytes_per_sec"`
	EncryptionErrors      uint64            `json:"encryption_errors"`
	DecryptionErrors      uint64            `json:"decryption_errors"`
	ErrorsByType          map[string]uint64 `json:"errors_by_type"`
	LastOperation         time.Time         `json:"last_operation"`
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		encryptionMetrics: &EncryptionMetrics{
			ErrorsByType: make(map[string]uint64),
		},
		startTime: time.Now(),
	}
}

// RecordOperation records one Encrypt or Decrypt call. op is "encrypt" or
// "decrypt"; bytes is the input size; err is the call's result.
func (pm *PerformanceMonitor) RecordOperation(op string, duration time.Duration, bytes int, err error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	m := pm.encryptionMetrics
	latencyUs := float64(duration.Nanoseconds()) / 1e3

	if op == opEncrypt {
		m.EncryptOperations++
	} else {
		m.DecryptOperations++
	}

	if err != nil {
		if op == opEncrypt {
			m.EncryptionErrors++
		} else {
			m.DecryptionErrors++
		}
		m.ErrorsByType[errorType(err)]++
	} else if bytes > 0 {
		m.BytesProcessed += uint64(bytes)
	}

	// Update average latency (exponential moving average)
	if m.AverageLatency == 0 {
		m.AverageLatency = latencyUs
	} else {
		m.AverageLatency = 0.9*m.AverageLatency + 0.1*latencyUs
	}

	m.LastOperation = time.Now()

	// Calculate throughput
	elapsed := time.Since(pm.startTime).Seconds()
	if elapsed > 0 {
		m.ThroughputBytesPerSec = float64(m.BytesProcessed) / elapsed
	}
}

// Snapshot returns a copy of the current metrics.
func (pm *PerformanceMonitor) Snapshot() EncryptionMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	snapshot := *pm.encryptionMetrics
	snapshot.ErrorsByType = make(map[string]uint64, len(pm.encryptionMetrics.ErrorsByType))
	for k, v := range pm.encryptionMetrics.ErrorsByType {
		snapshot.ErrorsByType[k] = v
	}
	return snapshot
}

// ExportJSON exports the current metrics as indented JSON
func (pm *PerformanceMonitor) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(pm.Snapshot(), "", "  ")
}
