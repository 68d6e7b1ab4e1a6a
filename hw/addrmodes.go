package hw

// addrmode computes the effective address (or relative displacement) of the
// current instruction and advances PC past its operand. It returns 1 when
// the computation crossed a page, meaning the instruction may need one more
// cycle.
func (c *CPU) addrmode(m AddrMode) uint8 {
	switch m {
	case IMP:
		c.fetched = c.A

	case IMM:
		c.addrAbs = c.PC
		c.PC++

	case ZP0:
		c.addrAbs = uint16(c.read(c.PC))
		c.PC++

	case ZPX:
		c.addrAbs = uint16(c.read(c.PC) + c.X)
		c.PC++

	case ZPY:
		c.addrAbs = uint16(c.read(c.PC) + c.Y)
		c.PC++

	case REL:
		c.addrRel = uint16(c.read(c.PC))
		c.PC++
		if c.addrRel&0x80 != 0 {
			c.addrRel |= 0xFF00
		}

	case ABS:
		c.addrAbs = c.read16(c.PC)
		c.PC += 2

	case ABX:
		base := c.read16(c.PC)
		c.PC += 2
		c.addrAbs = base + uint16(c.X)
		return pageCrossed(base, c.addrAbs)

	case ABY:
		base := c.read16(c.PC)
		c.PC += 2
		c.addrAbs = base + uint16(c.Y)
		return pageCrossed(base, c.addrAbs)

	case IND:
		ptr := c.read16(c.PC)
		c.PC += 2

		// The high byte of the target is read from the same page when the
		// pointer sits at the end of a page (hardware bug).
		lo := c.read(ptr)
		var hi uint8
		if ptr&0x00FF == 0x00FF {
			hi = c.read(ptr & 0xFF00)
		} else {
			hi = c.read(ptr + 1)
		}
		c.addrAbs = uint16(hi)<<8 | uint16(lo)

	case IZX:
		zp := c.read(c.PC)
		c.PC++
		lo := c.read(uint16(zp + c.X))
		hi := c.read(uint16(zp + c.X + 1))
		c.addrAbs = uint16(hi)<<8 | uint16(lo)

	case IZY:
		zp := c.read(c.PC)
		c.PC++
		lo := c.read(uint16(zp))
		hi := c.read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		c.addrAbs = base + uint16(c.Y)
		return pageCrossed(base, c.addrAbs)
	}
	return 0
}

func pageCrossed(a, b uint16) uint8 {
	if a&0xFF00 != b&0xFF00 {
		return 1
	}
	return 0
}

// fetch reads the operand of the current instruction. For implied
// instructions the operand is the accumulator, captured by addrmode.
func (c *CPU) fetch() uint8 {
	if instructions[c.opcode].Mode != IMP {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// store writes back the result of a read-modify-write instruction, to the
// accumulator for implied instructions, to memory otherwise.
func (c *CPU) store(val uint8) {
	if instructions[c.opcode].Mode == IMP {
		c.A = val
		return
	}
	c.write(c.addrAbs, val)
}
