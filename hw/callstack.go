package hw

import (
	"fmt"
	"slices"
)

type stackFrameFlag uint8

const (
	sffNone stackFrameFlag = iota
	sffNMI
	sffIRQ
	sffBRK
)

func (f stackFrameFlag) String() string {
	switch f {
	case sffNMI:
		return "nmi"
	case sffIRQ:
		return "irq"
	case sffBRK:
		return "brk"
	}
	return "jsr"
}

type stackFrame struct {
	src    uint16
	target uint16
	ret    uint16
	flag   stackFrameFlag
}

type callStack []stackFrame

func (cs *callStack) push(src, dst, ret uint16, flag stackFrameFlag) {
	*cs = append(*cs, stackFrame{
		src:    src,
		target: dst,
		ret:    ret,
		flag:   flag,
	})
}

func (cs *callStack) len() int {
	return len(*cs)
}

func (cs *callStack) pop() {
	if cs.len() == 0 {
		return
	}
	*cs = (*cs)[:cs.len()-1]
}

func (cs *callStack) reset() {
	*cs = (*cs)[:0]
}

// A CallFrame describes a call stack frame: the entry point of the routine
// and the location reached in it (call site for outer frames).
type CallFrame struct {
	Entry string
	Loc   string
}

func (cs *callStack) build(pc uint16) []CallFrame {
	frames := make([]CallFrame, 0, cs.len()+1)
	var curf *stackFrame
	for i, f := range *cs {
		if i > 0 {
			curf = &((*cs)[i-1])
		}
		frames = slices.Insert(frames, 0, CallFrame{
			Entry: cs.entryPoint(curf),
			Loc:   fmt.Sprintf("$%04X", f.src),
		})
	}

	// Current frame
	curf = nil
	if cs.len() > 0 {
		curf = &((*cs)[cs.len()-1])
	}

	return slices.Insert(frames, 0, CallFrame{
		Entry: cs.entryPoint(curf),
		Loc:   fmt.Sprintf("$%04X", pc),
	})
}

func (callStack) entryPoint(f *stackFrame) string {
	if f == nil {
		return "[bottom of stack]"
	}

	str := fmt.Sprintf("%04X", f.target)
	switch f.flag {
	case sffNone:
		return str
	default:
		return "[" + f.flag.String() + "] $" + str
	}
}

// TrackCalls enables or disables call stack tracking. Subroutine calls,
// BRK and interrupts push a frame, RTS and RTI pop one.
func (c *CPU) TrackCalls(enabled bool) {
	c.trackCalls = enabled
	if !enabled {
		c.cstack.reset()
	}
}

// CallStack returns the tracked call stack, innermost frame first.
func (c *CPU) CallStack() []CallFrame {
	return c.cstack.build(c.PC)
}

// CallDepth returns the number of tracked frames.
func (c *CPU) CallDepth() int {
	return c.cstack.len()
}
