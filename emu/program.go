package emu

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"m6502/emu/log"
)

var ErrMalformedDump = errors.New("malformed hex dump")

// A Chunk is a contiguous run of bytes to load at Addr.
type Chunk struct {
	Addr uint16
	Data []byte
}

// A Program is a set of chunks to load into memory before reset, along with
// its entry point.
type Program struct {
	Chunks []Chunk
	Entry  uint16
}

// Size returns the total number of bytes in the program.
func (p *Program) Size() int {
	n := 0
	for _, c := range p.Chunks {
		n += len(c.Data)
	}
	return n
}

// covers reports whether addr is part of the program.
func (p *Program) covers(addr uint16) bool {
	for _, c := range p.Chunks {
		if int(addr) >= int(c.Addr) && int(addr) < int(c.Addr)+len(c.Data) {
			return true
		}
	}
	return false
}

// ParseHexDump parses a program given as an hex dump:
//
//	# comment
//	8000: A2 0A 8E 00 00
//	8005: A2 03
//
// The entry point is the address of the first line.
func ParseHexDump(r io.Reader) (*Program, error) {
	var prog Program

	scan := bufio.NewScanner(r)
	for lineno := 1; scan.Scan(); lineno++ {
		line := scan.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing ':'", ErrMalformedDump, lineno)
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(off), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad address %q", ErrMalformedDump, lineno, off)
		}

		var data []byte
		for _, tok := range strings.Fields(octets) {
			if len(tok) != 2 {
				return nil, fmt.Errorf("%w: line %d: bad byte %q", ErrMalformedDump, lineno, tok)
			}
			b, err := hex.DecodeString(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad byte %q", ErrMalformedDump, lineno, tok)
			}
			data = append(data, b[0])
		}
		if int(addr)+len(data) > 0x10000 {
			return nil, fmt.Errorf("%w: line %d: data overflows address space", ErrMalformedDump, lineno)
		}

		if len(prog.Chunks) == 0 {
			prog.Entry = uint16(addr)
		}
		prog.Chunks = append(prog.Chunks, Chunk{Addr: uint16(addr), Data: data})
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(prog.Chunks) == 0 {
		return nil, fmt.Errorf("%w: empty program", ErrMalformedDump)
	}
	return &prog, nil
}

// ReadBinary reads a raw binary image to load at addr, which is also the
// entry point.
func ReadBinary(r io.Reader, addr uint16) (*Program, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if int(addr)+len(buf) > 0x10000 {
		return nil, fmt.Errorf("binary image of %d bytes doesn't fit at $%04X", len(buf), addr)
	}
	return &Program{
		Chunks: []Chunk{{Addr: addr, Data: buf}},
		Entry:  addr,
	}, nil
}

// ReadProgram reads the program at path. Files with the .hex or .txt
// extension are hex dumps, other files are raw binary images loaded at
// loadAddr.
func ReadProgram(path string, loadAddr uint16) (*Program, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var prog *Program
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".txt":
		prog, err = ParseHexDump(bytes.NewReader(buf))
	default:
		prog, err = ReadBinary(bytes.NewReader(buf), loadAddr)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.ModLoader.InfoZ("program loaded").
		String("path", path).
		Int("size", prog.Size()).
		Hex16("entry", prog.Entry).
		End()
	return prog, nil
}

// WriteHexDump writes buf, to be loaded at addr, in hex dump format, 16
// bytes per line.
func WriteHexDump(w io.Writer, addr uint16, buf []byte) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(buf); off += 16 {
		fmt.Fprintf(bw, "%04X:", int(addr)+off)
		for _, b := range buf[off:min(off+16, len(buf))] {
			fmt.Fprintf(bw, " %02X", b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
