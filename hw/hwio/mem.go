package hwio

import (
	"fmt"

	"m6502/emu/log"
)

// Mem is a linear memory area mapped over a range of the bus. Its backing
// buffer has exactly one byte per address of the range.
//
// Writes are always stored: a read-only Mem (ROM) is protected by its range
// flags, the bus never routes writes to it. Load can be used to fill it.
type Mem struct {
	Name string // name of the memory area (for debugging)
	Data []byte // actual memory buffer

	rng      Range
	watchers []func(addr uint16, val uint8)
}

// NewMem creates a zeroed memory area covering [lo, hi].
func NewMem(name string, lo, hi uint16, flags RWFlags) (*Mem, error) {
	rng, err := NewRange(lo, hi, flags)
	if err != nil {
		return nil, fmt.Errorf("mem %q: %w", name, err)
	}
	return &Mem{
		Name: name,
		Data: make([]byte, rng.Size()),
		rng:  rng,
	}, nil
}

// NewMemFrom creates a memory area covering [lo, hi] backed by buf, which
// must contain exactly hi-lo+1 bytes.
func NewMemFrom(name string, lo, hi uint16, flags RWFlags, buf []byte) (*Mem, error) {
	rng, err := NewRange(lo, hi, flags)
	if err != nil {
		return nil, fmt.Errorf("mem %q: %w", name, err)
	}
	if len(buf) != rng.Size() {
		return nil, fmt.Errorf("mem %q: %w: got %d bytes, want %d", name, ErrInvalidMemorySize, len(buf), rng.Size())
	}
	return &Mem{Name: name, Data: buf, rng: rng}, nil
}

// NewRAM returns a read-write memory area covering the whole 64KB address
// space.
func NewRAM() *Mem {
	m, err := NewMem("ram", 0x0000, 0xFFFF, ReadWriteFlag)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mem) Range() Range { return m.rng }

// Watch registers fn to be called after each write, with the written address
// and value.
func (m *Mem) Watch(fn func(addr uint16, val uint8)) {
	m.watchers = append(m.watchers, fn)
}

func (m *Mem) offset(addr uint16) (int, bool) {
	if !m.rng.Contains(addr) {
		return 0, false
	}
	return int(addr - m.rng.Lo), true
}

// Read8 returns the byte at addr. Plain memory has no read side effects so
// peek is ignored.
func (m *Mem) Read8(addr uint16, _ bool) uint8 {
	off, ok := m.offset(addr)
	if !ok {
		return 0
	}
	return m.Data[off]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	off, ok := m.offset(addr)
	if !ok {
		log.ModMem.ErrorZ("Write8 outside memory area").
			String("name", m.Name).
			Hex16("addr", addr).
			End()
		return
	}
	m.Data[off] = val
	for _, fn := range m.watchers {
		fn(addr, val)
	}
}

// Load copies buf into memory, starting at addr. It's used to bootstrap
// programs and ROM images and ignores the range flags. Watchers are not
// notified.
func (m *Mem) Load(addr uint16, buf []byte) error {
	off, ok := m.offset(addr)
	if !ok || off+len(buf) > len(m.Data) {
		return fmt.Errorf("mem %q: cannot load %d bytes at $%04X, area is %s", m.Name, len(buf), addr, m.rng)
	}
	copy(m.Data[off:], buf)
	return nil
}
