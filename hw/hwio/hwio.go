package hwio

import (
	"errors"
	"fmt"
)

// Configuration errors, reported when a bus or a device is assembled.
var (
	ErrInvertedRange     = errors.New("inverted address range")
	ErrNoReadableDevice  = errors.New("no readable device on bus")
	ErrNoWritableDevice  = errors.New("no writable device on bus")
	ErrInvalidMemorySize = errors.New("memory size does not match range")
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

func (f RWFlags) String() string {
	switch f {
	case ReadWriteFlag:
		return "rw"
	case ReadOnlyFlag:
		return "ro"
	case WriteOnlyFlag:
		return "wo"
	}
	return fmt.Sprintf("RWFlags(%d)", uint8(f))
}

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// A Device is a memory-mapped peripheral. It owns an inclusive range of the
// 16-bit address space and receives the accesses that fall into it, provided
// the direction is allowed by the range flags.
type Device interface {
	BankIO8
	Range() Range
}

// Range is an inclusive address range [Lo, Hi] along with the access
// directions it allows.
type Range struct {
	Lo, Hi uint16
	Flags  RWFlags
}

// NewRange returns the range [lo, hi], or ErrInvertedRange if lo > hi.
func NewRange(lo, hi uint16, flags RWFlags) (Range, error) {
	r := Range{Lo: lo, Hi: hi, Flags: flags}
	if err := r.validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) validate() error {
	if r.Lo > r.Hi {
		return fmt.Errorf("%w: $%04X > $%04X", ErrInvertedRange, r.Lo, r.Hi)
	}
	return nil
}

func (r Range) Contains(addr uint16) bool { return addr >= r.Lo && addr <= r.Hi }
func (r Range) Readable() bool            { return r.Flags&WriteOnlyFlag == 0 }
func (r Range) Writable() bool            { return r.Flags&ReadOnlyFlag == 0 }

// Size returns the number of addresses covered by r.
func (r Range) Size() int { return int(r.Hi) - int(r.Lo) + 1 }

func (r Range) String() string {
	return fmt.Sprintf("$%04X-$%04X(%s)", r.Lo, r.Hi, r.Flags)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// Peek16 is Read16 without side effects.
func Peek16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, true)
	hi := b.Read8(addr+1, true)
	return uint16(hi)<<8 | uint16(lo)
}
