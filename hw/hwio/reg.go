package hwio

import (
	"fmt"
	"strings"

	"m6502/emu/log"
)

// Reg8 is a Device made of a single 8-bit register mapped at Addr.
type Reg8 struct {
	Name   string
	Addr   uint16
	Value  uint8
	RoMask uint8 // bits set in RoMask can't be modified by writes

	Flags RWFlags

	// Optional hooks. ReadCb and PeekCb receive the current value and return
	// the value seen by the CPU. WriteCb is called after the register has
	// been updated.
	ReadCb  func(val uint8) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old uint8, val uint8)
}

func (reg *Reg8) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s@%04X{%02x", reg.Name, reg.Addr, reg.Value)
	for _, cb := range []struct {
		set bool
		tag string
	}{
		{reg.ReadCb != nil, ",r!"},
		{reg.PeekCb != nil, ",p!"},
		{reg.WriteCb != nil, ",w!"},
	} {
		if cb.set {
			sb.WriteString(cb.tag)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func (reg *Reg8) Range() Range {
	return Range{Lo: reg.Addr, Hi: reg.Addr, Flags: reg.Flags}
}

// Write8 updates the bits of the register not protected by RoMask.
func (reg *Reg8) Write8(addr uint16, val uint8) {
	if !reg.Range().Writable() {
		log.ModHwIo.ErrorZ("write to read-only register").
			String("name", reg.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}

	old := reg.Value
	reg.Value = old&reg.RoMask | val&^reg.RoMask
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Read8(addr uint16, peek bool) uint8 {
	cb := reg.ReadCb
	if peek {
		cb = reg.PeekCb
	} else if !reg.Range().Readable() {
		log.ModHwIo.ErrorZ("read from write-only register").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	if cb != nil {
		return cb(reg.Value)
	}
	return reg.Value
}
