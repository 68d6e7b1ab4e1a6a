package hwio

import (
	"m6502/emu/log"
)

// log unmapped accesses (useful for debugging but verbose since programs
// commonly read unmapped areas)
const logUnmapped = false

// Table is the system bus. It routes accesses to the devices mapped on it.
//
// Devices are scanned in the order they were mapped, the first one whose range
// contains the address and allows the access direction handles it. Devices
// may overlap: earlier mappings shadow later ones.
type Table struct {
	Name string

	devs []Device
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

// Reset unmaps all devices.
func (t *Table) Reset() {
	t.devs = nil
}

// Map attaches dev to the bus, after all previously mapped devices.
func (t *Table) Map(dev Device) error {
	rng := dev.Range()
	if err := rng.validate(); err != nil {
		return err
	}

	log.ModHwIo.DebugZ("mapping device").
		Hex16("lo", rng.Lo).
		Hex16("hi", rng.Hi).
		String("flags", rng.Flags.String()).
		String("bus", t.Name).
		End()

	t.devs = append(t.devs, dev)
	return nil
}

// MustMap is like Map but panics on error.
func (t *Table) MustMap(dev Device) {
	if err := t.Map(dev); err != nil {
		panic(err)
	}
}

// Devices returns the mapped devices, in mapping order.
func (t *Table) Devices() []Device {
	return t.devs
}

// Validate reports whether the bus can be used by a CPU, that is whether
// at least a device can be read and at least a device can be written.
func (t *Table) Validate() error {
	var readable, writable bool
	for _, d := range t.devs {
		rng := d.Range()
		readable = readable || rng.Readable()
		writable = writable || rng.Writable()
	}
	switch {
	case !readable:
		return ErrNoReadableDevice
	case !writable:
		return ErrNoWritableDevice
	}
	return nil
}

func (t *Table) search(addr uint16, write bool) Device {
	for _, d := range t.devs {
		rng := d.Range()
		if !rng.Contains(addr) {
			continue
		}
		if write && rng.Writable() || !write && rng.Readable() {
			return d
		}
	}
	return nil
}

// Read8 searches in the table for the device mapped at the given address and
// forward the read to it. Unmapped addresses read as 0.
func (t *Table) Read8(addr uint16, peek bool) uint8 {
	dev := t.search(addr, false)
	if dev == nil {
		if logUnmapped && !peek {
			log.ModHwIo.DebugZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return 0
	}
	return dev.Read8(addr, peek)
}

// Peek8 is a convenience function.
func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

// Write8 forwards the write to the device mapped at the given address. Writes
// to unmapped addresses are dropped.
func (t *Table) Write8(addr uint16, val uint8) {
	dev := t.search(addr, true)
	if dev == nil {
		if logUnmapped {
			log.ModHwIo.DebugZ("unmapped Write8").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	dev.Write8(addr, val)
}
