package sensor

import (
	"math"
	"testing"
)

func TestConfigForChannelBytes(t *testing.T) {
	tests := []struct {
		channel, rate int
		msb, lsb      byte
	}{
		{0, 128, 0xC3, 0x83},
		{1, 128, 0xD3, 0x83},
		{0, 8, 0xC3, 0x03},
		{3, 860, 0xF3, 0xE3},
		{2, 999, 0xE3, 0x83},
	}
	for _, tt := range tests {
		msb, lsb, err := configForChannel(tt.channel, tt.rate)
		if err != nil {
			t.Fatalf("channel%d@%d: unexpected error: %v", tt.channel, tt.rate, err)
		}
		if msb != tt.msb || lsb != tt.lsb {
			t.Fatalf("channel%d@%d => got %02X %02X; want %02X %02X", tt.channel, tt.rate, msb, lsb, tt.msb, tt.lsb)
		}
	}

	if _, _, err := configForChannel(9, 128); err == nil {
		t.Fatalf("expected error for invalid channel")
	}
}

func TestRawToVolts(t *testing.T) {
	if got := rawToVolts(16384); math.Abs(got-2.048) > 1e-9 {
		t.Fatalf("rawToVolts(16384) = %v; want 2.048", got)
	}
	if got := rawToVolts(0); got != 0 {
		t.Fatalf("rawToVolts(0) = %v", got)
	}
}
