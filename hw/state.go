package hw

import "m6502/hw/snapshot"

// State returns a snapshot of the CPU registers and cycle counters.
func (c *CPU) State() *snapshot.CPU {
	return &snapshot.CPU{
		PC:        c.PC,
		SP:        c.SP,
		P:         uint8(c.P),
		A:         c.A,
		X:         c.X,
		Y:         c.Y,
		Cycles:    c.Cycles,
		Remaining: c.remaining,
		Opcode:    c.opcode,
	}
}

// SetState restores the CPU from a snapshot. Registered observers are
// notified of the changes.
func (c *CPU) SetState(state *snapshot.CPU) {
	prev := c.regs()

	c.PC = state.PC
	c.SP = state.SP
	c.P = P(state.P)
	c.A = state.A
	c.X = state.X
	c.Y = state.Y
	c.Cycles = state.Cycles
	c.remaining = state.Remaining
	c.opcode = state.Opcode
	c.cstack.reset()

	c.notify(prev)
}
