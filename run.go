package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"m6502/emu"
	"m6502/emu/log"
	"m6502/hw"
)

func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load configuration")
	return cfg
}

func runProgram(args Run) {
	cfg := loadConfig(args.Config)
	cfg.Output = os.Stdout
	if args.Trace != nil {
		defer args.Trace.Close()
		cfg.TraceOut = args.Trace
	}
	if args.CallStack {
		cfg.Trace.CallStack = true
	}

	prog, err := emu.ReadProgram(args.ProgPath, uint16(args.LoadAddr))
	checkf(err, "failed to read program")

	m, err := emu.NewMachine(cfg)
	checkf(err, "failed to create machine")
	checkf(m.Load(prog), "failed to load program")
	checkf(setBreakpoints(m, args.Break), "invalid breakpoint")

	log.AddContext(m.CPU)
	defer log.RemoveContext(m.CPU)

	if args.Restore != "" {
		f, err := os.Open(args.Restore)
		checkf(err, "failed to open snapshot")
		err = m.LoadSnapshot(f)
		f.Close()
		checkf(err, "failed to restore snapshot")
	} else {
		m.Reset()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	why := m.RunUntilTrapContext(ctx, args.Cycles)
	log.ModEmu.InfoZ("execution stopped").
		Stringer("reason", why).
		Int64("cycles", m.CPU.Cycles).
		End()

	printState(os.Stderr, m, why)
	if args.CallStack {
		printCallStack(os.Stderr, m.CPU)
	}
	if args.Dump != nil {
		checkf(m.Dump(os.Stdout, args.Dump.lo, args.Dump.hi), "failed to dump memory")
	}
	if args.Snapshot != "" {
		f, err := os.Create(args.Snapshot)
		checkf(err, "failed to create snapshot")
		err = m.SaveSnapshot(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		checkf(err, "failed to write snapshot")
	}
}

// setBreakpoints adds each LO:HI range (or single address) of specs to the
// machine breakpoints.
func setBreakpoints(m *emu.Machine, specs []string) error {
	for _, spec := range specs {
		r, err := parseRange(spec)
		if err != nil {
			return err
		}
		m.Breakpoints.AddRange(r.lo, r.hi)
	}
	return nil
}

func printState(w io.Writer, m *emu.Machine, why emu.Stop) {
	cpu := m.CPU
	fmt.Fprintf(w, "\nstopped (%s) at %s\n", why, cpu.Disasm(cpu.InstrPC()))
	fmt.Fprintf(w, "A:%02X X:%02X Y:%02X P:%s SP:%02X PC:%04X CYC:%d\n",
		cpu.A, cpu.X, cpu.Y, cpu.P, cpu.SP, cpu.PC, cpu.Cycles)
}

func printCallStack(w io.Writer, cpu *hw.CPU) {
	fmt.Fprintln(w, "call stack:")
	for _, f := range cpu.CallStack() {
		fmt.Fprintf(w, "  %-20s %s\n", f.Entry, f.Loc)
	}
}

func disasmProgram(args Disasm) {
	cfg := loadConfig(args.Config)

	prog, err := emu.ReadProgram(args.ProgPath, uint16(args.LoadAddr))
	checkf(err, "failed to read program")

	m, err := emu.NewMachine(cfg)
	checkf(err, "failed to create machine")
	checkf(m.Load(prog), "failed to load program")

	from, to := prog.Entry, programEnd(prog)
	if args.From != nil {
		from = uint16(*args.From)
	}
	if args.To != nil {
		to = uint16(*args.To)
	}
	if from > to {
		fatalf("invalid range $%04X-$%04X", from, to)
	}

	dis := m.CPU.Disassemble(from, to)
	for _, a := range dis.Addrs() {
		fmt.Println(dis[a])
	}
}

// programEnd returns the last address of the contiguous run of chunks
// starting at the program entry point.
func programEnd(p *emu.Program) uint16 {
	end := int(p.Entry)
	for _, c := range p.Chunks {
		if int(c.Addr) <= end && int(c.Addr)+len(c.Data) > end {
			end = int(c.Addr) + len(c.Data)
		}
	}
	if end > 0xFFFF {
		return 0xFFFF
	}
	if end > int(p.Entry) {
		end--
	}
	return uint16(end)
}
