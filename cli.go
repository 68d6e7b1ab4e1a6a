package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"m6502/emu/log"
)

type mode byte

const (
	runMode        mode = iota // Run a program
	disasmMode                 // Disassemble a program
	initConfigMode             // Write the default configuration
	versionMode                // Show m6502 version
)

type (
	CLI struct {
		Run        Run        `cmd:"" help:"Run a program until it traps."`
		Disasm     Disasm     `cmd:"" help:"Disassemble a program."`
		InitConfig InitConfig `cmd:"" help:"Write the default configuration file." name:"init-config"`
		Version    Version    `cmd:"" help:"Show m6502 version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ProgPath string `arg:"" name:"/path/to/program" help:"${progpath_help}" type:"existingfile"`

		Config    string     `name:"config" help:"${config_help}" type:"existingfile"`
		LoadAddr  addr       `name:"load-addr" help:"Load address of binary images." default:"0x8000"`
		Cycles    int64      `name:"cycles" help:"Maximum number of cycles to run." default:"100000000"`
		Trace     *outfile   `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		CallStack bool       `name:"callstack" help:"Track calls and print the call stack when execution stops."`
		Restore   string     `name:"restore" help:"Start from a machine snapshot instead of resetting." type:"existingfile"`
		Snapshot  string     `name:"snapshot" help:"Write a machine snapshot when execution stops." type:"path"`
		Dump      *addrRange `name:"dump" help:"Dump memory when execution stops." placeholder:"LO:HI"`
		Break     []string   `name:"break" help:"Stop before executing an instruction in an address range." placeholder:"LO:HI"`
	}

	Disasm struct {
		ProgPath string `arg:"" name:"/path/to/program" type:"existingfile"`

		Config   string `name:"config" help:"${config_help}" type:"existingfile"`
		LoadAddr addr   `name:"load-addr" help:"Load address of binary images." default:"0x8000"`
		From     *addr  `name:"from" help:"First address to disassemble. (default: program entry point)"`
		To       *addr  `name:"to" help:"Last address to disassemble. (default: end of the program)"`
	}

	InitConfig struct {
		Path string `arg:"" optional:"" name:"path" help:"Destination file. (default: user configuration directory)" type:"path"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"progpath_help": "Hex dump (.hex, .txt) or raw binary image.",
	"config_help":   "Machine configuration file. (default: user configuration, if any)",
	"log_help":      "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("m6502"),
		kong.Description("6502 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cmd, _, _ := strings.Cut(ctx.Command(), " ")
	switch cmd {
	case "disasm":
		cfg.mode = disasmMode
	case "init-config":
		cfg.mode = initConfigMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

// An addr is a 16-bit address, written in hexadecimal with an optional 0x or
// $ prefix.
type addr uint16

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

// Implements kong.MapperValue interface.
func (a *addr) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("address", &s); err != nil {
		return err
	}
	v, err := parseAddr(s)
	if err != nil {
		return err
	}
	*a = addr(v)
	return nil
}

// An addrRange is an inclusive address range written LO:HI. A single
// address stands for a one-address range.
type addrRange struct {
	lo, hi uint16
}

func parseRange(s string) (addrRange, error) {
	var r addrRange
	los, his, ok := strings.Cut(s, ":")
	if !ok {
		his = los
	}
	var err error
	if r.lo, err = parseAddr(los); err != nil {
		return r, err
	}
	if r.hi, err = parseAddr(his); err != nil {
		return r, err
	}
	if r.lo > r.hi {
		return r, fmt.Errorf("invalid range %q, LO > HI", s)
	}
	return r, nil
}

// Implements kong.MapperValue interface.
func (r *addrRange) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("range", &s); err != nil {
		return err
	}
	v, err := parseRange(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
