package hw

import "testing"

func TestPString(t *testing.T) {
	tests := []struct {
		p    P
		want string
	}{
		{0x00, "nvubdizc"},
		{0x20, "nvUbdizc"},
		{0x34, "nvUBdIzc"},
		{0xFF, "NVUBDIZC"},
		{0x81, "NvubdizC"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("P(%02X).String() = %s, want %s", uint8(tt.p), got, tt.want)
		}
	}
}

func TestPFlags(t *testing.T) {
	var p P
	p.SetFlag(Carry, true)
	p.SetFlag(Overflow, true)
	if p != 0x41 {
		t.Fatalf("P = %02X, want 41", uint8(p))
	}
	if !p.Carry() || !p.Overflow() || p.Zero() {
		t.Errorf("unexpected flags %s", p)
	}

	p.SetFlag(Carry, false)
	if p.Flag(Carry) {
		t.Errorf("carry should be cleared")
	}

	p.checkNZ(0x00)
	if !p.Zero() || p.Negative() {
		t.Errorf("checkNZ(0) gave %s", p)
	}
	p.checkNZ(0x80)
	if p.Zero() || !p.Negative() {
		t.Errorf("checkNZ(0x80) gave %s", p)
	}
	p.checkNZ(0x7F)
	if p.Zero() || p.Negative() {
		t.Errorf("checkNZ(0x7F) gave %s", p)
	}
}
