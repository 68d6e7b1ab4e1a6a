package hw

//go:generate go tool stringer -type=AddrMode
//go:generate go tool stringer -type=Operation

// AddrMode identifies how an instruction computes its effective address.
type AddrMode uint8

const (
	IMP AddrMode = iota // implied (or accumulator)
	IMM                 // #$nn
	ZP0                 // $nn
	ZPX                 // $nn,X
	ZPY                 // $nn,Y
	REL                 // branch displacement
	ABS                 // $nnnn
	ABX                 // $nnnn,X
	ABY                 // $nnnn,Y
	IND                 // ($nnnn)
	IZX                 // ($nn,X)
	IZY                 // ($nn),Y
)

// operandSize returns the number of bytes following the opcode.
func (m AddrMode) operandSize() uint16 {
	switch m {
	case IMP:
		return 0
	case ABS, ABX, ABY, IND:
		return 2
	}
	return 1
}

// Operation identifies the semantic routine of an instruction.
type Operation uint8

const (
	ADC Operation = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	XXX // illegal opcode
)

// An Instruction describes one opcode.
type Instruction struct {
	Name   string // "???" for illegal opcodes
	Op     Operation
	Mode   AddrMode
	Cycles uint8 // base cycle count
}

// Illegal reports whether the instruction is an undocumented opcode.
func (in Instruction) Illegal() bool { return in.Name == "???" }

// Lookup returns the descriptor of opcode.
func Lookup(opcode uint8) Instruction { return instructions[opcode] }

// instructions is the opcode table, indexed by opcode byte.
var instructions = [256]Instruction{
	0x00: {"BRK", BRK, IMM, 7},
	0x01: {"ORA", ORA, IZX, 6},
	0x02: {"???", XXX, IMP, 2},
	0x03: {"???", XXX, IMP, 8},
	0x04: {"???", NOP, IMP, 3},
	0x05: {"ORA", ORA, ZP0, 3},
	0x06: {"ASL", ASL, ZP0, 5},
	0x07: {"???", XXX, IMP, 5},
	0x08: {"PHP", PHP, IMP, 3},
	0x09: {"ORA", ORA, IMM, 2},
	0x0A: {"ASL", ASL, IMP, 2},
	0x0B: {"???", XXX, IMP, 2},
	0x0C: {"???", NOP, IMP, 4},
	0x0D: {"ORA", ORA, ABS, 4},
	0x0E: {"ASL", ASL, ABS, 6},
	0x0F: {"???", XXX, IMP, 6},
	0x10: {"BPL", BPL, REL, 2},
	0x11: {"ORA", ORA, IZY, 5},
	0x12: {"???", XXX, IMP, 2},
	0x13: {"???", XXX, IMP, 8},
	0x14: {"???", NOP, IMP, 4},
	0x15: {"ORA", ORA, ZPX, 4},
	0x16: {"ASL", ASL, ZPX, 6},
	0x17: {"???", XXX, IMP, 6},
	0x18: {"CLC", CLC, IMP, 2},
	0x19: {"ORA", ORA, ABY, 4},
	0x1A: {"???", NOP, IMP, 2},
	0x1B: {"???", XXX, IMP, 7},
	0x1C: {"???", NOP, IMP, 4},
	0x1D: {"ORA", ORA, ABX, 4},
	0x1E: {"ASL", ASL, ABX, 7},
	0x1F: {"???", XXX, IMP, 7},
	0x20: {"JSR", JSR, ABS, 6},
	0x21: {"AND", AND, IZX, 6},
	0x22: {"???", XXX, IMP, 2},
	0x23: {"???", XXX, IMP, 8},
	0x24: {"BIT", BIT, ZP0, 3},
	0x25: {"AND", AND, ZP0, 3},
	0x26: {"ROL", ROL, ZP0, 5},
	0x27: {"???", XXX, IMP, 5},
	0x28: {"PLP", PLP, IMP, 4},
	0x29: {"AND", AND, IMM, 2},
	0x2A: {"ROL", ROL, IMP, 2},
	0x2B: {"???", XXX, IMP, 2},
	0x2C: {"BIT", BIT, ABS, 4},
	0x2D: {"AND", AND, ABS, 4},
	0x2E: {"ROL", ROL, ABS, 6},
	0x2F: {"???", XXX, IMP, 6},
	0x30: {"BMI", BMI, REL, 2},
	0x31: {"AND", AND, IZY, 5},
	0x32: {"???", XXX, IMP, 2},
	0x33: {"???", XXX, IMP, 8},
	0x34: {"???", NOP, IMP, 4},
	0x35: {"AND", AND, ZPX, 4},
	0x36: {"ROL", ROL, ZPX, 6},
	0x37: {"???", XXX, IMP, 6},
	0x38: {"SEC", SEC, IMP, 2},
	0x39: {"AND", AND, ABY, 4},
	0x3A: {"???", NOP, IMP, 2},
	0x3B: {"???", XXX, IMP, 7},
	0x3C: {"???", NOP, IMP, 4},
	0x3D: {"AND", AND, ABX, 4},
	0x3E: {"ROL", ROL, ABX, 7},
	0x3F: {"???", XXX, IMP, 7},
	0x40: {"RTI", RTI, IMP, 6},
	0x41: {"EOR", EOR, IZX, 6},
	0x42: {"???", XXX, IMP, 2},
	0x43: {"???", XXX, IMP, 8},
	0x44: {"???", NOP, IMP, 3},
	0x45: {"EOR", EOR, ZP0, 3},
	0x46: {"LSR", LSR, ZP0, 5},
	0x47: {"???", XXX, IMP, 5},
	0x48: {"PHA", PHA, IMP, 3},
	0x49: {"EOR", EOR, IMM, 2},
	0x4A: {"LSR", LSR, IMP, 2},
	0x4B: {"???", XXX, IMP, 2},
	0x4C: {"JMP", JMP, ABS, 3},
	0x4D: {"EOR", EOR, ABS, 4},
	0x4E: {"LSR", LSR, ABS, 6},
	0x4F: {"???", XXX, IMP, 6},
	0x50: {"BVC", BVC, REL, 2},
	0x51: {"EOR", EOR, IZY, 5},
	0x52: {"???", XXX, IMP, 2},
	0x53: {"???", XXX, IMP, 8},
	0x54: {"???", NOP, IMP, 4},
	0x55: {"EOR", EOR, ZPX, 4},
	0x56: {"LSR", LSR, ZPX, 6},
	0x57: {"???", XXX, IMP, 6},
	0x58: {"CLI", CLI, IMP, 2},
	0x59: {"EOR", EOR, ABY, 4},
	0x5A: {"???", NOP, IMP, 2},
	0x5B: {"???", XXX, IMP, 7},
	0x5C: {"???", NOP, IMP, 4},
	0x5D: {"EOR", EOR, ABX, 4},
	0x5E: {"LSR", LSR, ABX, 7},
	0x5F: {"???", XXX, IMP, 7},
	0x60: {"RTS", RTS, IMP, 6},
	0x61: {"ADC", ADC, IZX, 6},
	0x62: {"???", XXX, IMP, 2},
	0x63: {"???", XXX, IMP, 8},
	0x64: {"???", NOP, IMP, 3},
	0x65: {"ADC", ADC, ZP0, 3},
	0x66: {"ROR", ROR, ZP0, 5},
	0x67: {"???", XXX, IMP, 5},
	0x68: {"PLA", PLA, IMP, 4},
	0x69: {"ADC", ADC, IMM, 2},
	0x6A: {"ROR", ROR, IMP, 2},
	0x6B: {"???", XXX, IMP, 2},
	0x6C: {"JMP", JMP, IND, 5},
	0x6D: {"ADC", ADC, ABS, 4},
	0x6E: {"ROR", ROR, ABS, 6},
	0x6F: {"???", XXX, IMP, 6},
	0x70: {"BVS", BVS, REL, 2},
	0x71: {"ADC", ADC, IZY, 5},
	0x72: {"???", XXX, IMP, 2},
	0x73: {"???", XXX, IMP, 8},
	0x74: {"???", NOP, IMP, 4},
	0x75: {"ADC", ADC, ZPX, 4},
	0x76: {"ROR", ROR, ZPX, 6},
	0x77: {"???", XXX, IMP, 6},
	0x78: {"SEI", SEI, IMP, 2},
	0x79: {"ADC", ADC, ABY, 4},
	0x7A: {"???", NOP, IMP, 2},
	0x7B: {"???", XXX, IMP, 7},
	0x7C: {"???", NOP, IMP, 4},
	0x7D: {"ADC", ADC, ABX, 4},
	0x7E: {"ROR", ROR, ABX, 7},
	0x7F: {"???", XXX, IMP, 7},
	0x80: {"???", NOP, IMP, 2},
	0x81: {"STA", STA, IZX, 6},
	0x82: {"???", NOP, IMP, 2},
	0x83: {"???", XXX, IMP, 6},
	0x84: {"STY", STY, ZP0, 3},
	0x85: {"STA", STA, ZP0, 3},
	0x86: {"STX", STX, ZP0, 3},
	0x87: {"???", XXX, IMP, 3},
	0x88: {"DEY", DEY, IMP, 2},
	0x89: {"???", NOP, IMP, 2},
	0x8A: {"TXA", TXA, IMP, 2},
	0x8B: {"???", XXX, IMP, 2},
	0x8C: {"STY", STY, ABS, 4},
	0x8D: {"STA", STA, ABS, 4},
	0x8E: {"STX", STX, ABS, 4},
	0x8F: {"???", XXX, IMP, 4},
	0x90: {"BCC", BCC, REL, 2},
	0x91: {"STA", STA, IZY, 6},
	0x92: {"???", XXX, IMP, 2},
	0x93: {"???", XXX, IMP, 6},
	0x94: {"STY", STY, ZPX, 4},
	0x95: {"STA", STA, ZPX, 4},
	0x96: {"STX", STX, ZPY, 4},
	0x97: {"???", XXX, IMP, 4},
	0x98: {"TYA", TYA, IMP, 2},
	0x99: {"STA", STA, ABY, 5},
	0x9A: {"TXS", TXS, IMP, 2},
	0x9B: {"???", XXX, IMP, 5},
	0x9C: {"???", NOP, IMP, 5},
	0x9D: {"STA", STA, ABX, 5},
	0x9E: {"???", XXX, IMP, 5},
	0x9F: {"???", XXX, IMP, 5},
	0xA0: {"LDY", LDY, IMM, 2},
	0xA1: {"LDA", LDA, IZX, 6},
	0xA2: {"LDX", LDX, IMM, 2},
	0xA3: {"???", XXX, IMP, 6},
	0xA4: {"LDY", LDY, ZP0, 3},
	0xA5: {"LDA", LDA, ZP0, 3},
	0xA6: {"LDX", LDX, ZP0, 3},
	0xA7: {"???", XXX, IMP, 3},
	0xA8: {"TAY", TAY, IMP, 2},
	0xA9: {"LDA", LDA, IMM, 2},
	0xAA: {"TAX", TAX, IMP, 2},
	0xAB: {"???", XXX, IMP, 2},
	0xAC: {"LDY", LDY, ABS, 4},
	0xAD: {"LDA", LDA, ABS, 4},
	0xAE: {"LDX", LDX, ABS, 4},
	0xAF: {"???", XXX, IMP, 4},
	0xB0: {"BCS", BCS, REL, 2},
	0xB1: {"LDA", LDA, IZY, 5},
	0xB2: {"???", XXX, IMP, 2},
	0xB3: {"???", XXX, IMP, 5},
	0xB4: {"LDY", LDY, ZPX, 4},
	0xB5: {"LDA", LDA, ZPX, 4},
	0xB6: {"LDX", LDX, ZPY, 4},
	0xB7: {"???", XXX, IMP, 4},
	0xB8: {"CLV", CLV, IMP, 2},
	0xB9: {"LDA", LDA, ABY, 4},
	0xBA: {"TSX", TSX, IMP, 2},
	0xBB: {"???", XXX, IMP, 4},
	0xBC: {"LDY", LDY, ABX, 4},
	0xBD: {"LDA", LDA, ABX, 4},
	0xBE: {"LDX", LDX, ABY, 4},
	0xBF: {"???", XXX, IMP, 4},
	0xC0: {"CPY", CPY, IMM, 2},
	0xC1: {"CMP", CMP, IZX, 6},
	0xC2: {"???", NOP, IMP, 2},
	0xC3: {"???", XXX, IMP, 8},
	0xC4: {"CPY", CPY, ZP0, 3},
	0xC5: {"CMP", CMP, ZP0, 3},
	0xC6: {"DEC", DEC, ZP0, 5},
	0xC7: {"???", XXX, IMP, 5},
	0xC8: {"INY", INY, IMP, 2},
	0xC9: {"CMP", CMP, IMM, 2},
	0xCA: {"DEX", DEX, IMP, 2},
	0xCB: {"???", XXX, IMP, 2},
	0xCC: {"CPY", CPY, ABS, 4},
	0xCD: {"CMP", CMP, ABS, 4},
	0xCE: {"DEC", DEC, ABS, 6},
	0xCF: {"???", XXX, IMP, 6},
	0xD0: {"BNE", BNE, REL, 2},
	0xD1: {"CMP", CMP, IZY, 5},
	0xD2: {"???", XXX, IMP, 2},
	0xD3: {"???", XXX, IMP, 8},
	0xD4: {"???", NOP, IMP, 4},
	0xD5: {"CMP", CMP, ZPX, 4},
	0xD6: {"DEC", DEC, ZPX, 6},
	0xD7: {"???", XXX, IMP, 6},
	0xD8: {"CLD", CLD, IMP, 2},
	0xD9: {"CMP", CMP, ABY, 4},
	0xDA: {"NOP", NOP, IMP, 2},
	0xDB: {"???", XXX, IMP, 7},
	0xDC: {"???", NOP, IMP, 4},
	0xDD: {"CMP", CMP, ABX, 4},
	0xDE: {"DEC", DEC, ABX, 7},
	0xDF: {"???", XXX, IMP, 7},
	0xE0: {"CPX", CPX, IMM, 2},
	0xE1: {"SBC", SBC, IZX, 6},
	0xE2: {"???", NOP, IMP, 2},
	0xE3: {"???", XXX, IMP, 8},
	0xE4: {"CPX", CPX, ZP0, 3},
	0xE5: {"SBC", SBC, ZP0, 3},
	0xE6: {"INC", INC, ZP0, 5},
	0xE7: {"???", XXX, IMP, 5},
	0xE8: {"INX", INX, IMP, 2},
	0xE9: {"SBC", SBC, IMM, 2},
	0xEA: {"NOP", NOP, IMP, 2},
	0xEB: {"???", SBC, IMP, 2}, // undocumented alias of SBC #imm, not a no-op
	0xEC: {"CPX", CPX, ABS, 4},
	0xED: {"SBC", SBC, ABS, 4},
	0xEE: {"INC", INC, ABS, 6},
	0xEF: {"???", XXX, IMP, 6},
	0xF0: {"BEQ", BEQ, REL, 2},
	0xF1: {"SBC", SBC, IZY, 5},
	0xF2: {"???", XXX, IMP, 2},
	0xF3: {"???", XXX, IMP, 8},
	0xF4: {"???", NOP, IMP, 4},
	0xF5: {"SBC", SBC, ZPX, 4},
	0xF6: {"INC", INC, ZPX, 6},
	0xF7: {"???", XXX, IMP, 6},
	0xF8: {"SED", SED, IMP, 2},
	0xF9: {"SBC", SBC, ABY, 4},
	0xFA: {"NOP", NOP, IMP, 2},
	0xFB: {"???", XXX, IMP, 7},
	0xFC: {"???", NOP, IMP, 4},
	0xFD: {"SBC", SBC, ABX, 4},
	0xFE: {"INC", INC, ABX, 7},
	0xFF: {"???", XXX, IMP, 7},}
