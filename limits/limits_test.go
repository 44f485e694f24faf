package limits

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateInputSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		max     int
		wantErr bool
	}{
		{"empty input", 0, 190, false},
		{"below limit", 100, 190, false},
		{"at limit", 190, 190, false},
		{"one over limit", 191, 190, true},
		{"zero limit empty input", 0, 0, false},
		{"zero limit non-empty input", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputSize(make([]byte, tt.size), tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInputSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInputTooLarge) {
				t.Errorf("ValidateInputSize() error = %v, want ErrInputTooLarge", err)
			}
		})
	}
}

func TestValidateInputSizeErrorContext(t *testing.T) {
	err := ValidateInputSize(make([]byte, 246), 245)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "246") || !strings.Contains(msg, "245") {
		t.Errorf("error message %q should contain actual and maximum sizes", msg)
	}
}

func TestValidateOutputSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		min     int
		wantErr bool
	}{
		{"exact size", 256, 256, false},
		{"larger buffer", 512, 256, false},
		{"one byte short", 255, 256, true},
		{"nil buffer", 0, 256, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf []byte
			if tt.size > 0 {
				buf = make([]byte, tt.size)
			}
			err := ValidateOutputSize(buf, tt.min)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOutputSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrOutputTooSmall) {
				t.Errorf("ValidateOutputSize() error = %v, want ErrOutputTooSmall", err)
			}
		})
	}
}

func TestValidateModulusSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{0, true},
		{MinModulusBytes - 1, true},
		{MinModulusBytes, false},
		{128, false},
		{256, false},
		{512, false},
		{MaxModulusBytes, false},
		{MaxModulusBytes + 1, true},
	}

	for _, tt := range tests {
		err := ValidateModulusSize(tt.size)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateModulusSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrModulusSize) {
			t.Errorf("ValidateModulusSize(%d) error = %v, want ErrModulusSize", tt.size, err)
		}
	}
}

// TestPKCS1v15OverheadLayout verifies the overhead matches the block layout
// 0x00 || BT || PS || 0x00 with the minimum PS length.
func TestPKCS1v15OverheadLayout(t *testing.T) {
	if got := 3 + PKCS1v15MinPaddingString; got != PKCS1v15Overhead {
		t.Errorf("PKCS1v15Overhead = %d, want %d", PKCS1v15Overhead, got)
	}
}
