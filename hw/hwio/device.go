package hwio

import "m6502/emu/log"

// Manual is a Device that allows manual management of an entire range of
// memory through callbacks.
type Manual struct {
	Name   string // name of the device (for debugging)
	Lo, Hi uint16 // inclusive range
	Flags  RWFlags

	ReadCb  func(addr uint16) uint8
	PeekCb  func(addr uint16) uint8
	WriteCb func(addr uint16, val uint8)
}

func (d *Manual) Range() Range {
	return Range{Lo: d.Lo, Hi: d.Hi, Flags: d.Flags}
}

// Read8 calls ReadCb, or PeekCb if peek is true. A device without callback
// reads as 0.
func (d *Manual) Read8(addr uint16, peek bool) uint8 {
	if peek {
		if d.PeekCb != nil {
			return d.PeekCb(addr)
		}
		return 0
	}

	switch {
	case d.Flags&WriteOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid Read8 from writeonly device").
			String("name", d.Name).
			Hex16("addr", addr).
			End()
		fallthrough
	case d.ReadCb == nil:
		return 0
	}
	return d.ReadCb(addr)
}

func (d *Manual) Write8(addr uint16, val uint8) {
	switch {
	case d.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid Write8 to readonly device").
			String("name", d.Name).
			Hex16("addr", addr).
			End()
		fallthrough
	case d.WriteCb == nil:
		return
	}

	d.WriteCb(addr, val)
}
