package hw

// Register identifies a CPU register in change notifications.
type Register uint8

// Registers, in notification order.
const (
	RegPC Register = iota
	RegP
	RegSP
	RegA
	RegX
	RegY
)

func (r Register) String() string {
	switch r {
	case RegPC:
		return "PC"
	case RegP:
		return "P"
	case RegSP:
		return "SP"
	case RegA:
		return "A"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	}
	return "Register(?)"
}

// An Observer is notified of register changes. Notifications for a Clock,
// Reset, IRQ or NMI call are delivered synchronously before the call
// returns, once the CPU state is consistent, in register order (PC, P, SP,
// A, X, Y). Only registers whose value differs are reported.
type Observer interface {
	RegisterChanged(reg Register, val uint16)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(reg Register, val uint16)

func (f ObserverFunc) RegisterChanged(reg Register, val uint16) { f(reg, val) }

// Observe registers o for register change notifications.
func (c *CPU) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

type regSet struct {
	pc          uint16
	p           P
	sp, a, x, y uint8
}

func (c *CPU) regs() regSet {
	return regSet{pc: c.PC, p: c.P, sp: c.SP, a: c.A, x: c.X, y: c.Y}
}

func (c *CPU) notify(prev regSet) {
	if len(c.observers) == 0 {
		return
	}

	cur := c.regs()
	emit := func(reg Register, old, val uint16) {
		if old == val {
			return
		}
		for _, o := range c.observers {
			o.RegisterChanged(reg, val)
		}
	}
	emit(RegPC, prev.pc, cur.pc)
	emit(RegP, uint16(prev.p), uint16(cur.p))
	emit(RegSP, uint16(prev.sp), uint16(cur.sp))
	emit(RegA, uint16(prev.a), uint16(cur.a))
	emit(RegX, uint16(prev.x), uint16(cur.x))
	emit(RegY, uint16(prev.y), uint16(cur.y))
}
