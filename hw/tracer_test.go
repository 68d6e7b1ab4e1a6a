package hw

import (
	"bytes"
	"strings"
	"testing"
)

func BenchmarkDisasmOpBytes(b *testing.B) {
	const want = `C000  4C F5 C5  JMP $C5F5                       `

	op := DisasmOp{
		Opcode: "JMP",
		Oper:   "$C5F5",
		Buf:    []byte{0x4c, 0xf5, 0xc5},
		PC:     0xC000,
	}

	var opbytes []byte
	for range b.N {
		opbytes = op.Bytes()
	}

	if string(opbytes) != want {
		b.Fatalf("\ngot:  \"%s\"\nwant: \"%s\"\n", string(opbytes), want)
	}
}

type dummyDisasm map[uint16]DisasmOp

func (dd dummyDisasm) Disasm(pc uint16) DisasmOp {
	return dd[pc]
}

func TestTraceFormat(t *testing.T) {
	want := []string{
		`E052  A9 32     LDA #$32                        A:00 X:01 Y:00 P:27 SP:F4 CYC:8`,
		`E054  20 EE E0  JSR $E0EE                       A:32 X:01 Y:00 P:25 SP:F4 CYC:10`,
	}

	var out bytes.Buffer

	tr := tracer{
		d: dummyDisasm{
			0xE052: DisasmOp{
				PC:     0xE052,
				Buf:    []byte{0xA9, 0x32},
				Opcode: "LDA",
				Oper:   "#$32",
			},
			0xE054: DisasmOp{
				PC:     0xE054,
				Buf:    []byte{0x20, 0xEE, 0xE0},
				Opcode: "JSR",
				Oper:   "$E0EE",
			},
		},
		w: &out,
	}

	tr.write(cpuState{PC: 0xE052, X: 0x01, P: 0x27, SP: 0xF4, Clock: 8})
	tr.write(cpuState{PC: 0xE054, A: 0x32, X: 0x01, P: 0x25, SP: 0xF4, Clock: 10})

	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\ngot:  %q\nwant: %q", i, got[i], want[i])
		}
	}
}

func TestCPUTrace(t *testing.T) {
	cpu, _ := newTestCPU(t, multiplyProgram)

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	cpu.Step()
	cpu.Step()
	cpu.SetTraceOutput(nil)
	cpu.Step()

	want := "" +
		"8000  A2 0A     LDX #$0A                        A:00 X:00 Y:00 P:20 SP:FD CYC:8\n" +
		"8002  8E 00 00  STX $0000                       A:00 X:0A Y:00 P:20 SP:FD CYC:10\n"
	if got := out.String(); got != want {
		t.Errorf("trace mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
