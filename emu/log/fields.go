package log

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType tells which member of a ZField holds its value.
type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeInt
	FieldTypeError
	FieldTypeStringer
)

// A ZField is a typed key/value pair of an EntryZ. Values are only formatted
// when the entry is emitted.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Error     error
	Interface any
	Boolean   bool
}

func hexPad(v uint64, width int) string {
	s := strconv.FormatUint(v, 16)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// Value formats the field value. Hex fields are zero-padded lowercase hex
// without prefix.
func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeHex8:
		return hexPad(f.Integer&0xFF, 2)
	case FieldTypeHex16:
		return hexPad(f.Integer&0xFFFF, 4)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeStringer:
		if s, ok := f.Interface.(fmt.Stringer); ok {
			return s.String()
		}
		return "<nil>"
	case FieldTypeError:
		if f.Error != nil {
			return f.Error.Error()
		}
		return "<nil>"
	}
	return ""
}
