package hw

// execute runs the operation of the current instruction. It returns 1 if the
// operation can take the extra cycle signaled by a page crossing during
// address computation.
func (c *CPU) execute(op Operation) uint8 {
	switch op {
	case ADC:
		return c.adc(c.fetch())
	case SBC:
		return c.adc(c.fetch() ^ 0xFF)

	case AND:
		c.A &= c.fetch()
		c.P.checkNZ(c.A)
		return 1
	case EOR:
		c.A ^= c.fetch()
		c.P.checkNZ(c.A)
		return 1
	case ORA:
		c.A |= c.fetch()
		c.P.checkNZ(c.A)
		return 1

	case ASL:
		val := c.fetch()
		c.P.SetFlag(Carry, val&0x80 != 0)
		val <<= 1
		c.P.checkNZ(val)
		c.store(val)
	case LSR:
		val := c.fetch()
		c.P.SetFlag(Carry, val&0x01 != 0)
		val >>= 1
		c.P.checkNZ(val)
		c.store(val)
	case ROL:
		val := c.fetch()
		res := val<<1 | uint8(c.P.carry())
		c.P.SetFlag(Carry, val&0x80 != 0)
		c.P.checkNZ(res)
		c.store(res)
	case ROR:
		val := c.fetch()
		res := val>>1 | uint8(c.P.carry())<<7
		c.P.SetFlag(Carry, val&0x01 != 0)
		c.P.checkNZ(res)
		c.store(res)

	case BCC:
		return c.branch(!c.P.Carry())
	case BCS:
		return c.branch(c.P.Carry())
	case BEQ:
		return c.branch(c.P.Zero())
	case BNE:
		return c.branch(!c.P.Zero())
	case BMI:
		return c.branch(c.P.Negative())
	case BPL:
		return c.branch(!c.P.Negative())
	case BVC:
		return c.branch(!c.P.Overflow())
	case BVS:
		return c.branch(c.P.Overflow())

	case BIT:
		val := c.fetch()
		c.P.SetFlag(Zero, c.A&val == 0)
		c.P.SetFlag(Negative, val&0x80 != 0)
		c.P.SetFlag(Overflow, val&0x40 != 0)

	case BRK:
		c.brk()

	case CLC:
		c.P.SetFlag(Carry, false)
	case CLD:
		c.P.SetFlag(Decimal, false)
	case CLI:
		c.P.SetFlag(Interrupt, false)
	case CLV:
		c.P.SetFlag(Overflow, false)
	case SEC:
		c.P.SetFlag(Carry, true)
	case SED:
		c.P.SetFlag(Decimal, true)
	case SEI:
		c.P.SetFlag(Interrupt, true)

	case CMP:
		c.compare(c.A)
		return 1
	case CPX:
		c.compare(c.X)
	case CPY:
		c.compare(c.Y)

	case DEC:
		val := c.fetch() - 1
		c.write(c.addrAbs, val)
		c.P.checkNZ(val)
	case DEX:
		c.X--
		c.P.checkNZ(c.X)
	case DEY:
		c.Y--
		c.P.checkNZ(c.Y)
	case INC:
		val := c.fetch() + 1
		c.write(c.addrAbs, val)
		c.P.checkNZ(val)
	case INX:
		c.X++
		c.P.checkNZ(c.X)
	case INY:
		c.Y++
		c.P.checkNZ(c.Y)

	case JMP:
		c.PC = c.addrAbs
	case JSR:
		c.PC--
		c.push16(c.PC)
		if c.trackCalls {
			c.cstack.push(c.opPC, c.addrAbs, c.PC+1, sffNone)
		}
		c.PC = c.addrAbs
	case RTS:
		c.PC = c.pull16()
		c.PC++
		if c.trackCalls {
			c.cstack.pop()
		}
	case RTI:
		c.P = P(c.pull8())
		c.P.SetFlag(Break, false)
		c.P.SetFlag(Unused, false)
		c.PC = c.pull16()
		if c.trackCalls {
			c.cstack.pop()
		}

	case LDA:
		c.A = c.fetch()
		c.P.checkNZ(c.A)
		return 1
	case LDX:
		c.X = c.fetch()
		c.P.checkNZ(c.X)
		return 1
	case LDY:
		c.Y = c.fetch()
		c.P.checkNZ(c.Y)
		return 1

	case STA:
		c.write(c.addrAbs, c.A)
	case STX:
		c.write(c.addrAbs, c.X)
	case STY:
		c.write(c.addrAbs, c.Y)

	case PHA:
		c.push8(c.A)
	case PHP:
		c.push8(uint8(c.P) | uint8(Break) | uint8(Unused))
	case PLA:
		c.A = c.pull8()
		c.P.checkNZ(c.A)
	case PLP:
		c.P = P(c.pull8())
		c.P.SetFlag(Unused, true)

	case TAX:
		c.X = c.A
		c.P.checkNZ(c.X)
	case TAY:
		c.Y = c.A
		c.P.checkNZ(c.Y)
	case TSX:
		c.X = c.SP
		c.P.checkNZ(c.X)
	case TXA:
		c.A = c.X
		c.P.checkNZ(c.A)
	case TXS:
		c.SP = c.X
	case TYA:
		c.A = c.Y
		c.P.checkNZ(c.A)

	case NOP:
		switch c.opcode {
		case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
			return 1
		}

	case XXX:
	}
	return 0
}

// adc adds val and carry to the accumulator. SBC is adc of the complemented
// operand.
func (c *CPU) adc(val uint8) uint8 {
	c.temp = uint16(c.A) + uint16(val) + c.P.carry()
	c.P.SetFlag(Carry, c.temp > 0xFF)
	c.P.SetFlag(Overflow, ^(uint16(c.A)^uint16(val))&(uint16(c.A)^c.temp)&0x80 != 0)
	c.A = uint8(c.temp)
	c.P.checkNZ(c.A)
	return 1
}

func (c *CPU) compare(reg uint8) {
	val := c.fetch()
	c.temp = uint16(reg) - uint16(val)
	c.P.SetFlag(Carry, reg >= val)
	c.P.checkNZ(uint8(c.temp))
}

// branch jumps to the relative target if cond holds. A taken branch costs
// one more cycle, two if the target lies in another page.
func (c *CPU) branch(cond bool) uint8 {
	if !cond {
		return 0
	}
	c.remaining++
	c.addrAbs = c.PC + c.addrRel
	if c.addrAbs&0xFF00 != c.PC&0xFF00 {
		c.remaining++
	}
	c.PC = c.addrAbs
	return 0
}

func (c *CPU) brk() {
	c.PC++
	c.P.SetFlag(Interrupt, true)
	c.push16(c.PC)

	c.P.SetFlag(Break, true)
	c.push8(uint8(c.P))
	c.P.SetFlag(Break, false)

	ret := c.PC
	c.PC = c.read16(IRQVector)
	if c.trackCalls {
		c.cstack.push(c.opPC, c.PC, ret, sffBRK)
	}
}
