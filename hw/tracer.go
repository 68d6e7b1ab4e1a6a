package hw

import (
	"fmt"
	"io"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock int64
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// write the execution trace for current instruction.
func (t *tracer) write(state cpuState) {
	buf := t.d.Disasm(state.PC).Bytes()

	regs := [...]struct {
		name string
		val  uint8
	}{
		{"A:", state.A},
		{"X:", state.X},
		{"Y:", state.Y},
		{"P:", uint8(state.P)},
		{"SP:", state.SP},
	}
	for _, r := range regs {
		buf = append(buf, r.name...)
		buf = append(buf, 0, 0, ' ')
		hexEncode(buf[len(buf)-3:], r.val)
	}

	buf = fmt.Appendf(buf, "CYC:%d\n", state.Clock)
	t.w.Write(buf)
}

// Bytes returns the trace representation of a DisasmOp: address, raw bytes
// then instruction, padded to a fixed width.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 16; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], d.Opcode)
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) >= totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}
