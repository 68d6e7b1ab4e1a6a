package hwio_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"m6502/hw/hwio"
)

type testTable struct {
	t   testing.TB
	Bus *hwio.Table

	// $0000-$07FF
	RAM *hwio.Mem
	// $2000
	Reg0 hwio.Reg8
	// $2001
	Reg1 hwio.Reg8
	// $4000-$40FF
	DEV hwio.Manual
	// $4100-$41FF
	RoDEV hwio.Manual
	// $4200-$42FF
	WoDEV hwio.Manual

	devval uint8
}

func newTestTable(tb testing.TB) *testTable {
	tbl := &testTable{t: tb}

	ram, err := hwio.NewMem("ram", 0x0000, 0x07FF, hwio.ReadWriteFlag)
	if err != nil {
		tb.Fatal(err)
	}
	tbl.RAM = ram
	tbl.Reg0 = hwio.Reg8{Name: "reg0", Addr: 0x2000, Value: 0x77}
	tbl.Reg1 = hwio.Reg8{
		Name:   "reg1",
		Addr:   0x2001,
		Value:  0x99,
		RoMask: 0xF0,
		ReadCb: func(val uint8) uint8 { return val + 1 },
	}
	tbl.DEV = hwio.Manual{
		Name:    "dev",
		Lo:      0x4000,
		Hi:      0x40FF,
		ReadCb:  func(addr uint16) uint8 { return 0xE1 },
		WriteCb: func(addr uint16, val uint8) { tbl.devval = uint8(addr) & val },
	}
	tbl.RoDEV = hwio.Manual{
		Name:   "rodev",
		Lo:     0x4100,
		Hi:     0x41FF,
		Flags:  hwio.ReadOnlyFlag,
		ReadCb: func(addr uint16) uint8 { return 0xC5 },
		PeekCb: func(addr uint16) uint8 { return 0xC8 },
	}
	tbl.WoDEV = hwio.Manual{
		Name:    "wodev",
		Lo:      0x4200,
		Hi:      0x42FF,
		Flags:   hwio.WriteOnlyFlag,
		WriteCb: func(addr uint16, val uint8) { tbl.devval = uint8(addr) & ^val },
	}

	tbl.Bus = hwio.NewTable("bus")
	tbl.Bus.MustMap(tbl.RAM)
	tbl.Bus.MustMap(&tbl.Reg0)
	tbl.Bus.MustMap(&tbl.Reg1)
	tbl.Bus.MustMap(&tbl.DEV)
	tbl.Bus.MustMap(&tbl.RoDEV)
	tbl.Bus.MustMap(&tbl.WoDEV)
	return tbl
}

func (tbl *testTable) wantRead8(addr uint16, want uint8) {
	tbl.t.Helper()

	if got := tbl.Bus.Read8(addr, false); got != want {
		tbl.t.Errorf("Read8(%04X) = %02X, want %02X", addr, got, want)
	}
}

func (tbl *testTable) wantPeek8(addr uint16, want uint8) {
	tbl.t.Helper()

	if got := tbl.Bus.Peek8(addr); got != want {
		tbl.t.Errorf("Peek8(%04X) = %02X, want %02X", addr, got, want)
	}
}

func (tbl *testTable) Write8(addr uint16, val uint8) {
	tbl.Bus.Write8(addr, val)
}

func TestTableMem(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead8(0x00, 0)
	tbl.Write8(0x00, 0x12)
	tbl.wantRead8(0x00, 0x12)
	tbl.wantPeek8(0x00, 0x12)
	tbl.Write8(0x07FF, 0x34)
	tbl.wantRead8(0x07FF, 0x34)

	// Not mirrored.
	tbl.wantRead8(0x0800, 0x00)
}

func TestTableRegs(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead8(0x2000, 0x77)
	tbl.Write8(0x2000, 0x11)
	tbl.wantRead8(0x2000, 0x11)

	// Reg1
	tbl.wantRead8(0x2001, 0x9a)
	tbl.wantPeek8(0x2001, 0x99) // no side effects
	tbl.Write8(0x2001, 0xff)
	tbl.wantRead8(0x2001, 0xa0)
	tbl.Write8(0x2001, 0x0F)
	tbl.wantRead8(0x2001, 0xa0)
	tbl.Write8(0x2001, 0x00)
	tbl.wantRead8(0x2001, 0x91)
}

func TestTableUnmapped(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead8(0x2020, 0x00)
	tbl.wantPeek8(0x2020, 0x00)
	tbl.Write8(0x2020, 0xFF)
	tbl.wantRead8(0x2020, 0x00)
	tbl.wantRead8(0xFFFF, 0x00)
}

func TestTableManual(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead8(0x4000, 0xe1)
	tbl.wantPeek8(0x4000, 0x00) // no peek callback
	tbl.Write8(0x4020, 0x27)
	if tbl.devval != 0x20 {
		t.Errorf("devval = %02X, want 0x20", tbl.devval)
	}

	tbl.wantRead8(0x4100, 0xc5)
	tbl.wantPeek8(0x4100, 0xc8)
	tbl.Write8(0x4100, 0xff) // readonly, not routed
	if tbl.devval != 0x20 {
		t.Errorf("devval = %02X, want 0x20", tbl.devval)
	}

	tbl.wantRead8(0x4200, 0x00) // writeonly, not routed
	tbl.wantPeek8(0x4200, 0x00)
	tbl.Write8(0x4255, 0x0f)
	if tbl.devval != 0x50 {
		t.Errorf("devval = %02X, want 0x50", tbl.devval)
	}
}

// recorder is a device recording all accesses it sees.
type recorder struct {
	rng    hwio.Range
	val    uint8
	reads  []uint16
	writes []uint16
}

func (r *recorder) Range() hwio.Range { return r.rng }
func (r *recorder) Read8(addr uint16, peek bool) uint8 {
	r.reads = append(r.reads, addr)
	return r.val
}
func (r *recorder) Write8(addr uint16, val uint8) {
	r.writes = append(r.writes, addr)
}

func TestTableRouting(t *testing.T) {
	t.Run("disjoint", func(t *testing.T) {
		a := &recorder{rng: hwio.Range{Lo: 0x0000, Hi: 0x00FF}, val: 0xAA}
		b := &recorder{rng: hwio.Range{Lo: 0x8000, Hi: 0x80FF}, val: 0xBB}
		bus := hwio.NewTable("bus")
		bus.MustMap(a)
		bus.MustMap(b)

		// In neither range.
		if got := bus.Read8(0x4000, false); got != 0 {
			t.Errorf("Read8(4000) = %02X, want 00", got)
		}
		bus.Write8(0x4000, 0x12)
		if len(a.reads)+len(a.writes)+len(b.reads)+len(b.writes) != 0 {
			t.Fatalf("unmapped access reached a device")
		}

		// Exactly one range.
		if got := bus.Read8(0x0010, false); got != 0xAA {
			t.Errorf("Read8(0010) = %02X, want AA", got)
		}
		bus.Write8(0x8001, 0x12)

		if diff := cmp.Diff([]uint16{0x0010}, a.reads); diff != "" {
			t.Errorf("device a reads (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]uint16{0x8001}, b.writes); diff != "" {
			t.Errorf("device b writes (-want +got):\n%s", diff)
		}
		if len(a.writes) != 0 || len(b.reads) != 0 {
			t.Errorf("unexpected accesses: a.writes=%v b.reads=%v", a.writes, b.reads)
		}
	})

	t.Run("overlap first wins", func(t *testing.T) {
		a := &recorder{rng: hwio.Range{Lo: 0x1000, Hi: 0x1FFF}, val: 0xAA}
		b := &recorder{rng: hwio.Range{Lo: 0x0000, Hi: 0xFFFF}, val: 0xBB}
		bus := hwio.NewTable("bus")
		bus.MustMap(a)
		bus.MustMap(b)

		if got := bus.Read8(0x1800, false); got != 0xAA {
			t.Errorf("Read8(1800) = %02X, want AA", got)
		}
		if got := bus.Read8(0x2000, false); got != 0xBB {
			t.Errorf("Read8(2000) = %02X, want BB", got)
		}
	})

	t.Run("direction falls through", func(t *testing.T) {
		rom := &recorder{rng: hwio.Range{Lo: 0xC000, Hi: 0xFFFF, Flags: hwio.ReadOnlyFlag}, val: 0xEA}
		ram := &recorder{rng: hwio.Range{Lo: 0x0000, Hi: 0xFFFF}, val: 0x00}
		bus := hwio.NewTable("bus")
		bus.MustMap(rom)
		bus.MustMap(ram)

		bus.Write8(0xC000, 0x12)
		if len(rom.writes) != 0 {
			t.Errorf("write reached read-only device")
		}
		if diff := cmp.Diff([]uint16{0xC000}, ram.writes); diff != "" {
			t.Errorf("ram writes (-want +got):\n%s", diff)
		}
		if got := bus.Read8(0xC000, false); got != 0xEA {
			t.Errorf("Read8(C000) = %02X, want EA", got)
		}
	})
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name string
		devs []hwio.Device
		want error
	}{
		{
			name: "empty",
			want: hwio.ErrNoReadableDevice,
		},
		{
			name: "rom only",
			devs: []hwio.Device{&hwio.Manual{Lo: 0, Hi: 0xFFFF, Flags: hwio.ReadOnlyFlag}},
			want: hwio.ErrNoWritableDevice,
		},
		{
			name: "writeonly only",
			devs: []hwio.Device{&hwio.Manual{Lo: 0, Hi: 0xFFFF, Flags: hwio.WriteOnlyFlag}},
			want: hwio.ErrNoReadableDevice,
		},
		{
			name: "rom+writeonly",
			devs: []hwio.Device{
				&hwio.Manual{Lo: 0, Hi: 0xFFFF, Flags: hwio.ReadOnlyFlag},
				&hwio.Manual{Lo: 0, Hi: 0xFFFF, Flags: hwio.WriteOnlyFlag},
			},
		},
		{
			name: "ram",
			devs: []hwio.Device{hwio.NewRAM()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := hwio.NewTable("bus")
			for _, d := range tt.devs {
				bus.MustMap(d)
			}
			if err := bus.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTableMapInvertedRange(t *testing.T) {
	bus := hwio.NewTable("bus")
	err := bus.Map(&hwio.Manual{Name: "bad", Lo: 0x2000, Hi: 0x1000})
	if !errors.Is(err, hwio.ErrInvertedRange) {
		t.Fatalf("Map() = %v, want %v", err, hwio.ErrInvertedRange)
	}
	if len(bus.Devices()) != 0 {
		t.Errorf("device with inverted range was mapped")
	}
}
