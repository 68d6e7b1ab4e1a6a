package hw

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type DisasmOp struct {
	Opcode string
	Oper   string
	Mode   AddrMode
	Buf    []byte
	PC     uint16
}

// String returns the disassembly listing line of the instruction:
//
//	$8000: LDX #$0A {IMM}
func (d DisasmOp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "$%04X: %s ", d.PC, d.Opcode)
	if d.Oper != "" {
		sb.WriteString(d.Oper)
		sb.WriteByte(' ')
	}
	sb.WriteByte('{')
	sb.WriteString(d.Mode.String())
	sb.WriteByte('}')
	return sb.String()
}

// DisasmAt decodes the instruction at pc. Memory is only peeked.
func DisasmAt(bus Bus, pc uint16) DisasmOp {
	opcode := bus.Read8(pc, true)
	in := Lookup(opcode)

	d := DisasmOp{
		Opcode: in.Name,
		Mode:   in.Mode,
		PC:     pc,
		Buf:    make([]byte, 1+in.Mode.operandSize()),
	}
	d.Buf[0] = opcode
	for i := uint16(1); i < uint16(len(d.Buf)); i++ {
		d.Buf[i] = bus.Read8(pc+i, true)
	}

	var oper16 uint16
	if len(d.Buf) == 3 {
		oper16 = uint16(d.Buf[2])<<8 | uint16(d.Buf[1])
	}

	switch in.Mode {
	case IMP:
	case IMM:
		d.Oper = fmt.Sprintf("#$%02X", d.Buf[1])
	case ZP0:
		d.Oper = fmt.Sprintf("$%02X", d.Buf[1])
	case ZPX:
		d.Oper = fmt.Sprintf("$%02X, X", d.Buf[1])
	case ZPY:
		d.Oper = fmt.Sprintf("$%02X, Y", d.Buf[1])
	case IZX:
		d.Oper = fmt.Sprintf("($%02X, X)", d.Buf[1])
	case IZY:
		d.Oper = fmt.Sprintf("($%02X), Y", d.Buf[1])
	case ABS:
		d.Oper = fmt.Sprintf("$%04X", oper16)
	case ABX:
		d.Oper = fmt.Sprintf("$%04X, X", oper16)
	case ABY:
		d.Oper = fmt.Sprintf("$%04X, Y", oper16)
	case IND:
		d.Oper = fmt.Sprintf("($%04X)", oper16)
	case REL:
		target := pc + 2 + uint16(int8(d.Buf[1]))
		d.Oper = fmt.Sprintf("$%02X [$%04X]", d.Buf[1], target)
	}
	return d
}

// Disasm decodes the instruction at pc.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	return DisasmAt(c.Bus, pc)
}

// Disassembly maps instruction addresses to listing lines.
type Disassembly map[uint16]string

// Addrs returns the instruction addresses in increasing order.
func (d Disassembly) Addrs() []uint16 {
	return slices.Sorted(maps.Keys(d))
}

// Disassemble decodes the instructions in the inclusive range [start, stop].
// Operand bytes are skipped, so only instruction boundaries are present in
// the result. The bus is only peeked.
func Disassemble(bus Bus, start, stop uint16) Disassembly {
	dis := make(Disassembly)

	// Iterate over 32 bits so that stop=0xFFFF terminates.
	for addr := uint32(start); addr <= uint32(stop); {
		op := DisasmAt(bus, uint16(addr))
		dis[uint16(addr)] = op.String()
		addr += uint32(len(op.Buf))
	}
	return dis
}

// Disassemble decodes the instructions in [start, stop], see Disassemble.
func (c *CPU) Disassemble(start, stop uint16) Disassembly {
	return Disassemble(c.Bus, start, stop)
}
