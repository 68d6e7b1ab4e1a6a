package emu

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"m6502/emu/log"
	"m6502/hw"
	"m6502/hw/hwio"
	"m6502/hw/snapshot"
)

// A Machine is a CPU along with the bus and devices it's connected to.
// Machines share nothing, several of them can run in parallel.
type Machine struct {
	CPU *hw.CPU
	Bus *hwio.Table

	// Execution stops when an instruction at one of these addresses is about
	// to be fetched.
	Breakpoints hwio.AddrSet

	cfg  Config
	mems []*hwio.Mem
}

// NewMachine assembles a machine from cfg. Devices are mapped in order.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = io.Discard
	}

	m := &Machine{
		Bus: hwio.NewTable("cpu"),
		cfg: cfg,
	}
	for _, dc := range cfg.Devices {
		dev, err := m.newDevice(dc, out)
		if err != nil {
			return nil, err
		}
		if err := m.Bus.Map(dev); err != nil {
			return nil, fmt.Errorf("device %s: %w", dc.Name, err)
		}
	}
	if err := m.Bus.Validate(); err != nil {
		return nil, err
	}

	m.CPU = hw.NewCPU(m.Bus)
	switch {
	case cfg.TraceOut != nil:
		m.CPU.SetTraceOutput(cfg.TraceOut)
	case cfg.Trace.Enabled:
		m.CPU.SetTraceOutput(os.Stderr)
	}
	m.CPU.TrackCalls(cfg.Trace.CallStack)

	log.ModEmu.DebugZ("machine ready").Int("devices", len(cfg.Devices)).End()
	return m, nil
}

func (m *Machine) newDevice(dc DeviceConfig, out io.Writer) (hwio.Device, error) {
	switch dc.Kind {
	case KindRAM, KindROM:
		flags := hwio.ReadWriteFlag
		if dc.Kind == KindROM {
			flags = hwio.ReadOnlyFlag
		}
		mem, err := m.newMem(dc, flags)
		if err != nil {
			return nil, err
		}
		m.mems = append(m.mems, mem)
		return mem, nil

	case KindPort:
		return &hwio.Manual{
			Name:  dc.Name,
			Lo:    dc.Lo,
			Hi:    dc.Hi,
			Flags: hwio.WriteOnlyFlag,
			WriteCb: func(_ uint16, val uint8) {
				if _, err := out.Write([]byte{val}); err != nil {
					log.ModEmu.WarnZ("port write failed").
						String("device", dc.Name).
						Error("err", err).
						End()
				}
			},
		}, nil

	case KindRandom:
		reg := &hwio.Reg8{Name: dc.Name, Addr: dc.Lo, Flags: hwio.ReadOnlyFlag}
		reg.ReadCb = func(uint8) uint8 {
			reg.Value = uint8(rand.Uint32())
			return reg.Value
		}
		return reg, nil
	}
	return nil, fmt.Errorf("device %s: %w %q", dc.Name, ErrUnknownDeviceKind, dc.Kind)
}

// newMem creates the memory area of dc. An image shorter than the range is
// zero-padded at the end.
func (m *Machine) newMem(dc DeviceConfig, flags hwio.RWFlags) (*hwio.Mem, error) {
	if dc.Image == "" {
		return hwio.NewMem(dc.Name, dc.Lo, dc.Hi, flags)
	}

	img, err := os.ReadFile(dc.Image)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", dc.Name, err)
	}
	size := int(dc.Hi) - int(dc.Lo) + 1
	if len(img) > size {
		return nil, fmt.Errorf("device %s: %w: %d bytes, range holds %d", dc.Name, ErrImageTooLarge, len(img), size)
	}
	buf := make([]byte, size)
	copy(buf, img)

	mem, err := hwio.NewMemFrom(dc.Name, dc.Lo, dc.Hi, flags, buf)
	if err != nil {
		return nil, err
	}
	log.ModLoader.DebugZ("rom image loaded").
		String("device", dc.Name).
		String("path", dc.Image).
		Int("size", len(img)).
		End()
	return mem, nil
}

// Mems returns the memory devices of the machine, in mapping order.
func (m *Machine) Mems() []*hwio.Mem {
	return m.mems
}

// poke stores val at addr in the first memory device covering addr,
// regardless of its access flags.
func (m *Machine) poke(addr uint16, val uint8) bool {
	for _, mem := range m.mems {
		if mem.Range().Contains(addr) {
			mem.Data[addr-mem.Range().Lo] = val
			return true
		}
	}
	return false
}

// Load copies the program into memory and sets the reset vector. The
// configured reset vector takes precedence over the one the program may
// contain, which takes precedence over the program entry point.
func (m *Machine) Load(p *Program) error {
	for _, c := range p.Chunks {
		for i, b := range c.Data {
			addr := c.Addr + uint16(i)
			if !m.poke(addr, b) {
				return fmt.Errorf("no memory at $%04X", addr)
			}
		}
	}

	vector := p.Entry
	switch {
	case m.cfg.CPU.ResetVector != nil:
		vector = *m.cfg.CPU.ResetVector
	case p.covers(hw.ResetVector) && p.covers(hw.ResetVector+1):
		vector = hwio.Peek16(m.Bus, hw.ResetVector)
		log.ModLoader.DebugZ("program sets reset vector").Hex16("vector", vector).End()
		return nil
	}
	if !m.poke(hw.ResetVector, uint8(vector)) || !m.poke(hw.ResetVector+1, uint8(vector>>8)) {
		return fmt.Errorf("no memory at reset vector $%04X", hw.ResetVector)
	}
	log.ModLoader.DebugZ("reset vector set").Hex16("vector", vector).End()
	return nil
}

// Reset resets the CPU.
func (m *Machine) Reset() {
	m.CPU.Reset()
}

// Run clocks the CPU ncycles times, or until a breakpoint is reached. It
// returns the number of cycles run.
func (m *Machine) Run(ncycles int64) int64 {
	var n int64
	for n < ncycles {
		if m.CPU.Complete() && m.Breakpoints.Has(m.CPU.PC) && n > 0 {
			break
		}
		m.CPU.Clock()
		n++
	}
	return n
}

// Step runs one whole instruction and returns the number of cycles it took.
func (m *Machine) Step() int64 {
	return m.CPU.Step()
}

// A Stop tells why RunUntilTrap stopped.
type Stop uint8

const (
	StopCycles     Stop = iota // cycle budget exhausted
	StopTrap                   // instruction jumping to itself
	StopBRK                    // BRK executed
	StopBreakpoint             // breakpoint reached
	StopCanceled               // context canceled
)

func (s Stop) String() string {
	switch s {
	case StopCycles:
		return "cycles"
	case StopTrap:
		return "trap"
	case StopBRK:
		return "brk"
	case StopBreakpoint:
		return "breakpoint"
	case StopCanceled:
		return "canceled"
	}
	return fmt.Sprintf("Stop(%d)", uint8(s))
}

// RunUntilTrap runs whole instructions until the program traps (jumps to
// itself, or executes BRK if configured to), a breakpoint is reached or at
// least maxCycles cycles have run.
func (m *Machine) RunUntilTrap(maxCycles int64) Stop {
	return m.RunUntilTrapContext(context.Background(), maxCycles)
}

// context is checked once every ctxCheckInterval instructions.
const ctxCheckInterval = 1 << 12

// RunUntilTrapContext is like RunUntilTrap but also stops, with StopCanceled,
// when ctx is done.
func (m *Machine) RunUntilTrapContext(ctx context.Context, maxCycles int64) Stop {
	start := m.CPU.Cycles
	for i := 0; ; i++ {
		if i%ctxCheckInterval == 0 && ctx.Err() != nil {
			return StopCanceled
		}
		if m.CPU.Cycles-start >= maxCycles {
			return StopCycles
		}
		if i > 0 && m.Breakpoints.Has(m.CPU.PC) {
			return StopBreakpoint
		}

		m.CPU.Step()

		if m.CPU.PC == m.CPU.InstrPC() {
			log.ModEmu.InfoZ("trap").Hex16("pc", m.CPU.PC).End()
			return StopTrap
		}
		if m.cfg.CPU.TrapBRK && m.CPU.Opcode() == 0x00 {
			log.ModEmu.InfoZ("brk").Hex16("pc", m.CPU.InstrPC()).End()
			return StopBRK
		}
	}
}

// Snapshot returns the state of the CPU and of all memory devices.
func (m *Machine) Snapshot() *snapshot.Machine {
	snap := &snapshot.Machine{
		Version: snapshot.Version,
		CPU:     *m.CPU.State(),
	}
	for _, mem := range m.mems {
		snap.Mem = append(snap.Mem, snapshot.Mem{
			Name: mem.Name,
			Lo:   mem.Range().Lo,
			Data: append([]byte(nil), mem.Data...),
		})
	}
	return snap
}

// Restore sets the machine state from snap. Memory devices are matched by
// name and must have the same range.
func (m *Machine) Restore(snap *snapshot.Machine) error {
	for _, sm := range snap.Mem {
		mem := m.memByName(sm.Name)
		if mem == nil {
			return fmt.Errorf("snapshot: no memory device named %q", sm.Name)
		}
		if sm.Lo != mem.Range().Lo || len(sm.Data) != len(mem.Data) {
			return fmt.Errorf("snapshot: memory %q: range mismatch", sm.Name)
		}
	}
	for _, sm := range snap.Mem {
		copy(m.memByName(sm.Name).Data, sm.Data)
	}
	m.CPU.SetState(&snap.CPU)
	return nil
}

func (m *Machine) memByName(name string) *hwio.Mem {
	for _, mem := range m.mems {
		if mem.Name == name {
			return mem
		}
	}
	return nil
}

// SaveSnapshot writes the machine snapshot to w.
func (m *Machine) SaveSnapshot(w io.Writer) error {
	return m.Snapshot().Encode(w)
}

// LoadSnapshot reads a snapshot from r and restores it.
func (m *Machine) LoadSnapshot(r io.Reader) error {
	snap, err := snapshot.Decode(r)
	if err != nil {
		return err
	}
	return m.Restore(snap)
}

// Dump writes the content of [lo, hi] as seen from the CPU, in hex dump
// format. Memory is only peeked.
func (m *Machine) Dump(w io.Writer, lo, hi uint16) error {
	if lo > hi {
		return fmt.Errorf("dump: %w", hwio.ErrInvertedRange)
	}
	buf := make([]byte, 0, int(hi)-int(lo)+1)
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		buf = append(buf, m.Bus.Peek8(uint16(addr)))
	}
	return WriteHexDump(w, lo, buf)
}
