package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"m6502/hw/hwio"
)

const multiplyProgram = `
8000: A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18
8010: 6D 01 00 88 D0 FA 8D 02 00`

func TestDisassemble(t *testing.T) {
	cpu, _ := newTestCPU(t, multiplyProgram)

	got := cpu.Disassemble(0x8000, 0x8018)
	want := Disassembly{
		0x8000: "$8000: LDX #$0A {IMM}",
		0x8002: "$8002: STX $0000 {ABS}",
		0x8005: "$8005: LDX #$03 {IMM}",
		0x8007: "$8007: STX $0001 {ABS}",
		0x800A: "$800A: LDY $0000 {ABS}",
		0x800D: "$800D: LDA #$00 {IMM}",
		0x800F: "$800F: CLC {IMP}",
		0x8010: "$8010: ADC $0001 {ABS}",
		0x8013: "$8013: DEY {IMP}",
		0x8014: "$8014: BNE $FA [$8010] {REL}",
		0x8016: "$8016: STA $0002 {ABS}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disassembly mismatch (-want +got):\n%s", diff)
	}

	wantAddrs := []uint16{
		0x8000, 0x8002, 0x8005, 0x8007, 0x800A, 0x800D,
		0x800F, 0x8010, 0x8013, 0x8014, 0x8016,
	}
	if diff := cmp.Diff(wantAddrs, got.Addrs()); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestDisassembleOperands(t *testing.T) {
	tests := []struct {
		dump string
		want string
	}{
		{"8000: B5 10", "$8000: LDA $10, X {ZPX}"},
		{"8000: B6 10", "$8000: LDX $10, Y {ZPY}"},
		{"8000: A5 10", "$8000: LDA $10 {ZP0}"},
		{"8000: A1 10", "$8000: LDA ($10, X) {IZX}"},
		{"8000: B1 10", "$8000: LDA ($10), Y {IZY}"},
		{"8000: BD 34 12", "$8000: LDA $1234, X {ABX}"},
		{"8000: B9 34 12", "$8000: LDA $1234, Y {ABY}"},
		{"8000: 6C FF 01", "$8000: JMP ($01FF) {IND}"},
		{"8000: D0 02", "$8000: BNE $02 [$8004] {REL}"},
		{"8000: 0A", "$8000: ASL {IMP}"},
		{"8000: 02", "$8000: ??? {IMP}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cpu, _ := newTestCPU(t, tt.dump)
			if got := cpu.Disasm(0x8000).String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisassembleEndOfMemory(t *testing.T) {
	bus := hwio.NewTable("test")
	bus.MustMap(hwio.NewRAM())

	// Zeroed memory is a stream of 2-byte BRK instructions.
	dis := Disassemble(bus, 0xFFF0, 0xFFFF)
	want := []uint16{0xFFF0, 0xFFF2, 0xFFF4, 0xFFF6, 0xFFF8, 0xFFFA, 0xFFFC, 0xFFFE}
	if diff := cmp.Diff(want, dis.Addrs()); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}

	dis = Disassemble(bus, 0x0000, 0xFFFF)
	if len(dis) != 0x8000 {
		t.Errorf("got %d instructions, want %d", len(dis), 0x8000)
	}
}

// peekOnlyBus fails the test on any side-effect read or write.
type peekOnlyBus struct {
	t   *testing.T
	mem [0x10000]uint8
}

func (b *peekOnlyBus) Read8(addr uint16, peek bool) uint8 {
	if !peek {
		b.t.Errorf("non-peek read at $%04X", addr)
	}
	return b.mem[addr]
}

func (b *peekOnlyBus) Write8(addr uint16, val uint8) {
	b.t.Errorf("write at $%04X", addr)
}

func TestDisassembleIsReadOnly(t *testing.T) {
	bus := &peekOnlyBus{t: t}
	for _, dl := range loadDump(t, multiplyProgram) {
		copy(bus.mem[dl.off:], dl.bytes)
	}

	cpu := NewCPU(bus)
	cpu.PC = 0x1234
	dis := cpu.Disassemble(0x8000, 0x8018)
	if len(dis) != 11 {
		t.Errorf("got %d instructions, want 11", len(dis))
	}
	if cpu.PC != 0x1234 || cpu.Cycles != 0 {
		t.Errorf("cpu state modified: PC=%04X Cycles=%d", cpu.PC, cpu.Cycles)
	}
}
