package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// Version of the snapshot format.
const Version = 1

var ErrVersion = errors.New("unsupported snapshot version")

// Machine is the saved state of a whole machine: the CPU and the content of
// its memory devices, by device name.
type Machine struct {
	Version int
	CPU     CPU
	Mem     []Mem
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles    int64
	Remaining uint8
	Opcode    uint8
}

type Mem struct {
	Name string
	Lo   uint16
	Data []byte
}

// Encode writes m as JSON.
func (m *Machine) Encode(w io.Writer) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	m.encode(e)
	_, err := w.Write(e.Bytes())
	return err
}

func (m *Machine) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("version")
	e.Int(m.Version)
	e.FieldStart("cpu")
	m.CPU.encode(e)
	e.FieldStart("mem")
	e.ArrStart()
	for i := range m.Mem {
		m.Mem[i].encode(e)
	}
	e.ArrEnd()
	e.ObjEnd()
}

func (c *CPU) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(c.PC)
	e.FieldStart("sp")
	e.UInt8(c.SP)
	e.FieldStart("p")
	e.UInt8(c.P)
	e.FieldStart("a")
	e.UInt8(c.A)
	e.FieldStart("x")
	e.UInt8(c.X)
	e.FieldStart("y")
	e.UInt8(c.Y)
	e.FieldStart("cycles")
	e.Int64(c.Cycles)
	e.FieldStart("remaining")
	e.UInt8(c.Remaining)
	e.FieldStart("opcode")
	e.UInt8(c.Opcode)
	e.ObjEnd()
}

func (m *Mem) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("name")
	e.Str(m.Name)
	e.FieldStart("lo")
	e.UInt16(m.Lo)
	e.FieldStart("data")
	e.Base64(m.Data)
	e.ObjEnd()
}

// Decode reads a JSON snapshot from r.
func Decode(r io.Reader) (*Machine, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m Machine
	if err := m.decode(jx.DecodeBytes(buf)); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, m.Version)
	}
	return &m, nil
}

func (m *Machine) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			m.Version, err = d.Int()
		case "cpu":
			err = m.CPU.decode(d)
		case "mem":
			err = d.Arr(func(d *jx.Decoder) error {
				var mem Mem
				if err := mem.decode(d); err != nil {
					return err
				}
				m.Mem = append(m.Mem, mem)
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}

func (c *CPU) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			c.PC, err = d.UInt16()
		case "sp":
			c.SP, err = d.UInt8()
		case "p":
			c.P, err = d.UInt8()
		case "a":
			c.A, err = d.UInt8()
		case "x":
			c.X, err = d.UInt8()
		case "y":
			c.Y, err = d.UInt8()
		case "cycles":
			c.Cycles, err = d.Int64()
		case "remaining":
			c.Remaining, err = d.UInt8()
		case "opcode":
			c.Opcode, err = d.UInt8()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}

func (m *Mem) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			m.Name, err = d.Str()
		case "lo":
			m.Lo, err = d.UInt16()
		case "data":
			m.Data, err = d.Base64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}
