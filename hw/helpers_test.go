package hw

import (
	"bufio"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"m6502/hw/hwio"
)

/* cpu specific testing helpers */

type dumpline struct {
	off   uint16
	bytes []byte
}

// loadDump parses an hex dump, one "addr: bytes" line at a time. Empty lines
// and lines starting with # are ignored.
func loadDump(tb testing.TB, dump string) []dumpline {
	tb.Helper()

	var lines []dumpline
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			tb.Fatalf("malformed line: %s", line)
		}

		ioff, err := strconv.ParseUint(off, 16, 16)
		if err != nil {
			tb.Fatalf("malformed offset %s: %s", off, err)
		}
		buf, err := hex.DecodeString(strings.ReplaceAll(octets, " ", ""))
		if err != nil {
			tb.Fatalf("hex decode: %s", err)
		}
		lines = append(lines, dumpline{off: uint16(ioff), bytes: buf})
	}
	if scan.Err() != nil {
		tb.Fatalf("scan error: %s", scan.Err())
	}

	return lines
}

// newTestCPU returns a CPU connected to a full range RAM containing dump,
// with the reset vector pointing at 0x8000. The CPU is reset and the reset
// cycles are consumed.
func newTestCPU(tb testing.TB, dump string) (*CPU, *hwio.Mem) {
	tb.Helper()

	ram := hwio.NewRAM()
	bus := hwio.NewTable("test")
	bus.MustMap(ram)

	for _, dl := range loadDump(tb, dump) {
		if err := ram.Load(dl.off, dl.bytes); err != nil {
			tb.Fatal(err)
		}
	}
	if bus.Peek8(ResetVector) == 0 && bus.Peek8(ResetVector+1) == 0 {
		hwio.Write16(bus, ResetVector, 0x8000)
	}

	cpu := NewCPU(bus)
	cpu.Reset()
	for !cpu.Complete() {
		cpu.Clock()
	}
	return cpu, ram
}

func wantMem8(t *testing.T, cpu *CPU, addr uint16, want uint8) {
	t.Helper()

	if got := cpu.Bus.Read8(addr, true); got != want {
		t.Errorf("$%04X = %02X want %02X", addr, got, want)
	}
}

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// runAndCheckState executes ninstr instructions then checks the CPU state
// against states, a list of name/value pairs. Names are register names (A,
// X, Y, SP, PC, P) or P followed by flag letters (e.g. "Pnz") to check
// individual flags.
func runAndCheckState(t *testing.T, cpu *CPU, ninstr int, states ...any) {
	t.Helper()

	if len(states)%2 != 0 {
		panic("odd number of states")
	}

	checkbool := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=%d, want %d", name, got, want)
		}
	}
	checkuint8 := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%02X, want $%02X", name, got, want)
		}
	}
	checkuint16 := func(name string, got, want uint16) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%04X, want $%04X", name, got, want)
		}
	}

	if testing.Verbose() {
		cpu.SetTraceOutput(tbwriter{t})
		defer cpu.SetTraceOutput(nil)
	}

	for range ninstr {
		cpu.Step()
	}

	for i := 0; i < len(states); i += 2 {
		s := states[i].(string)
		switch {
		case s == "A":
			checkuint8("A", cpu.A, states[i+1].(uint8))
		case s == "X":
			checkuint8("X", cpu.X, states[i+1].(uint8))
		case s == "Y":
			checkuint8("Y", cpu.Y, states[i+1].(uint8))
		case s == "PC":
			checkuint16("PC", cpu.PC, states[i+1].(uint16))
		case s == "SP":
			checkuint8("SP", cpu.SP, states[i+1].(uint8))
		case s == "P":
			if got, want := uint8(cpu.P), states[i+1].(uint8); got != want {
				t.Errorf("got P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
			}
		case len(s) > 1 && s[0] == 'P':
			for j := 1; j < len(s); j++ {
				bit := states[i+1].(uint8)
				switch s[j] {
				case 'n':
					checkbool("Pn", b2i(cpu.P.Negative()), bit)
				case 'v':
					checkbool("Pv", b2i(cpu.P.Overflow()), bit)
				case 'b':
					checkbool("Pb", b2i(cpu.P.Break()), bit)
				case 'd':
					checkbool("Pd", b2i(cpu.P.Decimal()), bit)
				case 'i':
					checkbool("Pi", b2i(cpu.P.IntDisable()), bit)
				case 'z':
					checkbool("Pz", b2i(cpu.P.Zero()), bit)
				case 'c':
					checkbool("Pc", b2i(cpu.P.Carry()), bit)
				default:
					panic("unknown P bit: " + string(s[j]))
				}
			}
		default:
			panic("unknown state: " + s)
		}
	}

	if t.Failed() {
		t.FailNow()
	}
}

// tbwriter writes execution traces to the test log.
type tbwriter struct {
	tb testing.TB
}

func (w tbwriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
