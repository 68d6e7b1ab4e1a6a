package hw

import (
	"io"

	"m6502/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

const stackBase = uint16(0x0100)

// A Bus is what the CPU reads from and writes to. If peek is true, the read
// must not have side effects.
type Bus interface {
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

type CPU struct {
	Bus Bus

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	Cycles int64 // clock ticks since last reset

	// per-instruction state
	opcode    uint8
	opPC      uint16 // address of the current instruction
	fetched   uint8
	temp      uint16
	addrAbs   uint16
	addrRel   uint16
	remaining uint8

	observers []Observer

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	trackCalls bool
	cstack     callStack
}

// NewCPU creates a CPU connected to bus. Registers are zeroed, Reset must be
// called before the CPU can run a program.
func NewCPU(bus Bus) *CPU {
	return &CPU{Bus: bus}
}

// Reset puts the CPU in its reset state and loads PC from the reset vector.
// The CPU then burns 8 cycles before fetching the first instruction.
func (c *CPU) Reset() {
	prev := c.regs()

	c.A = 0x00
	c.X = 0x00
	c.Y = 0x00
	c.SP = 0xFD
	c.P = P(Unused)
	c.PC = c.read16(ResetVector)

	c.opcode = 0
	c.opPC = 0
	c.fetched = 0
	c.temp = 0
	c.addrAbs = 0
	c.addrRel = 0
	c.Cycles = 0
	c.remaining = 8
	c.cstack.reset()

	log.ModCPU.DebugZ("reset").Hex16("pc", c.PC).End()
	c.notify(prev)
}

// Clock advances the CPU by one cycle. The whole effect of an instruction
// happens on the cycle it's fetched, the following cycles only count down.
func (c *CPU) Clock() {
	if c.remaining == 0 {
		prev := c.regs()

		c.opPC = c.PC
		c.traceOp()
		c.opcode = c.read(c.PC)
		c.PC++
		c.P.SetFlag(Unused, true)

		in := &instructions[c.opcode]
		c.remaining = in.Cycles
		extra1 := c.addrmode(in.Mode)
		extra2 := c.execute(in.Op)
		c.remaining += extra1 & extra2

		c.P.SetFlag(Unused, true)
		c.notify(prev)
	}

	c.Cycles++
	c.remaining--
}

// Complete reports whether the current instruction has consumed all its
// cycles, that is, whether the next call to Clock fetches a new opcode.
func (c *CPU) Complete() bool {
	return c.remaining == 0
}

// Step clocks the CPU until the current instruction is complete, then runs
// the next one entirely. It returns the number of clock ticks consumed.
func (c *CPU) Step() int64 {
	start := c.Cycles
	for !c.Complete() {
		c.Clock()
	}
	c.Clock()
	for !c.Complete() {
		c.Clock()
	}
	return c.Cycles - start
}

// Opcode returns the opcode of the last fetched instruction.
func (c *CPU) Opcode() uint8 { return c.opcode }

// InstrPC returns the address of the last fetched instruction.
func (c *CPU) InstrPC() uint16 { return c.opPC }

// IRQ requests a maskable interrupt. It's ignored if interrupts are disabled.
func (c *CPU) IRQ() {
	if c.P.IntDisable() {
		return
	}
	c.interrupt(IRQVector, 7, sffIRQ)
}

// NMI requests a non-maskable interrupt.
func (c *CPU) NMI() {
	c.interrupt(NMIVector, 8, sffNMI)
}

func (c *CPU) interrupt(vector uint16, ncycles uint8, flag stackFrameFlag) {
	prev := c.regs()
	prevpc := c.PC

	c.push16(c.PC)

	c.P.SetFlag(Break, false)
	c.P.SetFlag(Unused, true)
	c.P.SetFlag(Interrupt, true)
	c.push8(uint8(c.P))

	c.PC = c.read16(vector)
	c.remaining = ncycles

	if c.trackCalls {
		c.cstack.push(prevpc, c.PC, prevpc, flag)
	}

	log.ModCPU.DebugZ("interrupt").
		Stringer("kind", flag).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
	c.notify(prev)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.Bus.Read8(addr, false)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + stackBase
	c.write(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + stackBase
	return c.read(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* tracing / debugging */

// SetTraceOutput enables the execution trace, one line per instruction is
// written to w. A nil writer disables tracing.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	if c.tracer == nil {
		return
	}
	c.tracer.write(cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		PC:    c.PC,
		Clock: c.Cycles,
	})
}

// AddLogContext adds the CPU registers to every log entry once the CPU has
// been registered with log.AddContext.
func (c *CPU) AddLogContext(z *log.EntryZ) {
	z.Hex16("pc", c.PC).
		Hex8("a", c.A).
		Hex8("x", c.X).
		Hex8("y", c.Y).
		Hex8("sp", c.SP).
		Stringer("p", c.P)
}
