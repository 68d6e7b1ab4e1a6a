package hw

// P is the processor status register.
type P uint8

// A Flag is a bit of the processor status register.
type Flag uint8

const (
	Carry     Flag = 1 << iota // C: carry / borrow out
	Zero                       // Z: result is zero
	Interrupt                  // I: IRQ disabled
	Decimal                    // D: decimal mode (no effect on arithmetic)
	Break                      // B: set in the copy of P pushed by BRK/PHP
	Unused                     // U: always 1
	Overflow                   // V: signed overflow
	Negative                   // N: bit 7 of the result
)

// Flag reports whether f is set.
func (p P) Flag(f Flag) bool {
	return uint8(p)&uint8(f) != 0
}

// SetFlag sets f if v is true, clears it otherwise.
func (p *P) SetFlag(f Flag, v bool) {
	if v {
		*p |= P(f)
	} else {
		*p &^= P(f)
	}
}

func (p P) Carry() bool      { return p.Flag(Carry) }
func (p P) Zero() bool       { return p.Flag(Zero) }
func (p P) IntDisable() bool { return p.Flag(Interrupt) }
func (p P) Decimal() bool    { return p.Flag(Decimal) }
func (p P) Break() bool      { return p.Flag(Break) }
func (p P) Overflow() bool   { return p.Flag(Overflow) }
func (p P) Negative() bool   { return p.Flag(Negative) }

// carry returns the carry flag as 0 or 1, ready for arithmetic.
func (p P) carry() uint16 {
	return uint16(p) & uint16(Carry)
}

// checkNZ sets N if bit 7 of v is set and Z if v is 0, clears them otherwise.
func (p *P) checkNZ(v uint8) {
	p.SetFlag(Negative, v&0x80 != 0)
	p.SetFlag(Zero, v == 0)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
