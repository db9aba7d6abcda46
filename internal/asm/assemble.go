package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Operand shapes, an instruction form is identified by its mnemonic
// followed by the shapes of its operands.
const (
	shapeRegister = 'V'
	shapeValue    = 'N'
	shapeIndex    = 'I'
	shapeIndirect = '['
	shapeDelay    = 'D'
	shapeSound    = 'S'
	shapeKey      = 'K'
	shapeFont     = 'F'
	shapeBCD      = 'B'
)

var specialOperands = map[string]byte{
	"I":  shapeIndex,
	"DT": shapeDelay,
	"ST": shapeSound,
	"K":  shapeKey,
	"F":  shapeFont,
	"B":  shapeBCD,
}

var forms = map[string]chip8.Kind{
	"CLS":     chip8.OpCls,
	"RET":     chip8.OpRet,
	"JP N":    chip8.OpJp,
	"JP VN":   chip8.OpJpV0,
	"CALL N":  chip8.OpCall,
	"SE VN":   chip8.OpSeByte,
	"SE VV":   chip8.OpSeReg,
	"SNE VN":  chip8.OpSneByte,
	"SNE VV":  chip8.OpSneReg,
	"LD VN":   chip8.OpLdByte,
	"LD VV":   chip8.OpLdReg,
	"LD IN":   chip8.OpLdI,
	"LD VD":   chip8.OpLdVxDT,
	"LD VK":   chip8.OpLdVxK,
	"LD DV":   chip8.OpLdDTVx,
	"LD SV":   chip8.OpLdSTVx,
	"LD FV":   chip8.OpLdF,
	"LD BV":   chip8.OpLdB,
	"LD [V":   chip8.OpStore,
	"LD V[":   chip8.OpLoad,
	"ADD VN":  chip8.OpAddByte,
	"ADD VV":  chip8.OpAdd,
	"ADD IV":  chip8.OpAddI,
	"OR VV":   chip8.OpOr,
	"AND VV":  chip8.OpAnd,
	"XOR VV":  chip8.OpXor,
	"SUB VV":  chip8.OpSub,
	"SUBN VV": chip8.OpSubn,
	"SHR V":   chip8.OpShr,
	"SHR VV":  chip8.OpShr,
	"SHL V":   chip8.OpShl,
	"SHL VV":  chip8.OpShl,
	"RND VN":  chip8.OpRnd,
	"DRW VVN": chip8.OpDrw,
	"SKP V":   chip8.OpSkp,
	"SKNP V":  chip8.OpSknp,
}

// mnemonics contains the instruction names of all forms.
var mnemonics = func() set.Set[string] {
	s := set.New[string]()
	for form := range forms {
		name, _, _ := strings.Cut(form, " ")
		s.Add(name)
	}
	return s
}()

// Directives, matched case-insensitively.
const (
	directiveOrg  = ".ORG"
	directiveByte = ".BYTE"
	directiveDB   = "DB"
	directiveWord = ".WORD"
	directiveDW   = "DW"
)

// argument is a classified operand.
type argument struct {
	pos      lexer.Position
	shape    byte
	register chip8.Register
	value    uint16
	label    string // unresolved label reference
}

type assembler struct {
	labels map[string]uint16
	output []byte
}

// Assemble translates assembly source into a program that is loaded at
// chip8.ProgramStart. The name is used in error positions.
func Assemble(name, text string) ([]byte, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	src, err := parser.ParseString(name, text)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	a := &assembler{
		labels: map[string]uint16{},
	}
	if err := a.layout(src); err != nil {
		return nil, err
	}
	if err := a.emit(src); err != nil {
		return nil, err
	}
	return a.output, nil
}

// layout assigns the addresses of all labels.
func (a *assembler) layout(src *source) error {
	address := chip8.ProgramStart

	for _, l := range src.Lines {
		if l.Label != nil {
			if err := a.defineLabel(l.Pos, *l.Label, address); err != nil {
				return err
			}
		}
		if l.Statement == nil {
			continue
		}

		size, origin, err := statementSize(l.Statement, address)
		if err != nil {
			return err
		}
		if origin >= 0 {
			address = origin
		}
		address += size
	}
	return nil
}

func (a *assembler) defineLabel(pos lexer.Position, name string, address int) error {
	if isReserved(name) {
		return errorAt(pos, ErrInvalidOperands, "reserved name %s used as label", name)
	}
	if _, ok := a.labels[name]; ok {
		return errorAt(pos, ErrDuplicateLabel, "%s", name)
	}
	a.labels[name] = uint16(address)
	return nil
}

// statementSize returns the number of bytes a statement emits and the new
// address for .org directives, -1 otherwise.
func statementSize(st *statement, address int) (int, int, error) {
	switch strings.ToUpper(st.Mnemonic) {
	case directiveOrg:
		origin, err := parseOrigin(st, address)
		return 0, origin, err
	case directiveByte, directiveDB:
		return len(st.Operands), -1, nil
	case directiveWord, directiveDW:
		return 2 * len(st.Operands), -1, nil
	default:
		return 2, -1, nil
	}
}

func parseOrigin(st *statement, address int) (int, error) {
	if len(st.Operands) != 1 || st.Operands[0].Number == nil {
		return 0, errorAt(st.Pos, ErrInvalidOperands, ".org expects a single address")
	}

	value, err := parseNumber(*st.Operands[0].Number)
	if err != nil {
		return 0, errorAt(st.Pos, ErrValueOutOfRange, "%s", *st.Operands[0].Number)
	}
	origin := int(value)
	if origin < address || origin > chip8.MemorySize {
		return 0, errorAt(st.Pos, ErrInvalidOrigin, "$%03X with current address $%03X", origin, address)
	}
	return origin, nil
}

// emit encodes all statements into the output.
func (a *assembler) emit(src *source) error {
	for _, l := range src.Lines {
		if l.Statement == nil {
			continue
		}
		if err := a.emitStatement(l.Statement); err != nil {
			return err
		}
		if len(a.output) > chip8.MaxProgramSize {
			return errorAt(l.Statement.Pos, chip8.ErrProgramTooLarge, "%d bytes", len(a.output))
		}
	}
	return nil
}

func (a *assembler) emitStatement(st *statement) error {
	args, err := a.arguments(st.Operands)
	if err != nil {
		return err
	}

	mnemonic := strings.ToUpper(st.Mnemonic)
	switch mnemonic {
	case directiveOrg:
		origin, err := parseOrigin(st, chip8.ProgramStart+len(a.output))
		if err != nil {
			return err
		}
		a.output = append(a.output, make([]byte, origin-chip8.ProgramStart-len(a.output))...)
		return nil

	case directiveByte, directiveDB:
		return a.emitData(args, 1)

	case directiveWord, directiveDW:
		return a.emitData(args, 2)
	}

	op, err := instruction(st, mnemonic, args)
	if err != nil {
		return err
	}
	word := op.Encode()
	a.output = append(a.output, byte(word>>8), byte(word))
	return nil
}

// emitData emits every argument as a big endian value of the given size.
func (a *assembler) emitData(args []argument, size int) error {
	limit := uint16(0xFF)
	if size == 2 {
		limit = 0xFFFF
	}

	for _, arg := range args {
		if arg.shape != shapeValue {
			return errorAt(arg.pos, ErrInvalidOperands, "data expects numbers or labels")
		}
		if arg.value > limit {
			return errorAt(arg.pos, ErrValueOutOfRange, "$%X exceeds $%X", arg.value, limit)
		}
		if size == 2 {
			a.output = append(a.output, byte(arg.value>>8))
		}
		a.output = append(a.output, byte(arg.value))
	}
	return nil
}

// arguments classifies the operands and resolves label references.
func (a *assembler) arguments(operands []*operand) ([]argument, error) {
	args := make([]argument, 0, len(operands))
	for _, o := range operands {
		arg, err := classify(o)
		if err != nil {
			return nil, err
		}

		if arg.label != "" {
			address, ok := a.labels[arg.label]
			if !ok {
				return nil, errorAt(o.Pos, ErrUndefinedLabel, "%s", arg.label)
			}
			arg.value = address
		}
		args = append(args, arg)
	}
	return args, nil
}

func classify(o *operand) (argument, error) {
	arg := argument{pos: o.Pos}

	switch {
	case o.Indirect != nil:
		if strings.ToUpper(*o.Indirect) != "[I]" {
			return arg, errorAt(o.Pos, ErrInvalidOperands, "unsupported indirect operand %s", *o.Indirect)
		}
		arg.shape = shapeIndirect

	case o.Number != nil:
		value, err := parseNumber(*o.Number)
		if err != nil {
			return arg, errorAt(o.Pos, ErrValueOutOfRange, "%s", *o.Number)
		}
		arg.shape = shapeValue
		arg.value = uint16(value)

	case o.Name != nil:
		name := strings.ToUpper(*o.Name)
		if register, ok := parseRegister(name); ok {
			arg.shape = shapeRegister
			arg.register = register
		} else if shape, ok := specialOperands[name]; ok {
			arg.shape = shape
		} else {
			arg.shape = shapeValue
			arg.label = *o.Name
		}
	}
	return arg, nil
}

// instruction matches the arguments against the forms of the mnemonic.
func instruction(st *statement, mnemonic string, args []argument) (chip8.Opcode, error) {
	if !mnemonics.Contains(mnemonic) {
		return chip8.Opcode{}, errorAt(st.Pos, ErrUnknownMnemonic, "%s", st.Mnemonic)
	}

	shapes := make([]byte, 0, len(args))
	var registers []chip8.Register
	var value argument
	for _, arg := range args {
		shapes = append(shapes, arg.shape)
		switch arg.shape {
		case shapeRegister:
			registers = append(registers, arg.register)
		case shapeValue:
			value = arg
		}
	}

	form := mnemonic
	if len(shapes) > 0 {
		form += " " + string(shapes)
	}
	kind, ok := forms[form]
	if !ok {
		return chip8.Opcode{}, errorAt(st.Pos, ErrInvalidOperands, "%s with operands %s", mnemonic, string(shapes))
	}

	op := chip8.Opcode{Kind: kind}
	if len(registers) > 0 {
		op.X = registers[0]
	}
	if len(registers) > 1 {
		op.Y = registers[1]
	}

	switch kind {
	case chip8.OpJpV0:
		if op.X != 0 {
			return chip8.Opcode{}, errorAt(st.Pos, ErrInvalidOperands, "indexed jump requires V0")
		}
		fallthrough
	case chip8.OpJp, chip8.OpCall, chip8.OpLdI:
		if value.value > chip8.MaxAddress {
			return chip8.Opcode{}, errorAt(value.pos, ErrValueOutOfRange, "address $%X", value.value)
		}
		op.NNN = value.value

	case chip8.OpSeByte, chip8.OpSneByte, chip8.OpLdByte, chip8.OpAddByte, chip8.OpRnd:
		if value.value > 0xFF {
			return chip8.Opcode{}, errorAt(value.pos, ErrValueOutOfRange, "byte $%X", value.value)
		}
		op.NN = uint8(value.value)

	case chip8.OpDrw:
		if value.value > 0xF {
			return chip8.Opcode{}, errorAt(value.pos, ErrValueOutOfRange, "sprite height $%X", value.value)
		}
		op.N = uint8(value.value)
	}
	return op, nil
}

// parseNumber parses $hex, 0xhex and decimal numbers up to 16 bits.
func parseNumber(s string) (uint64, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		return strconv.ParseUint(s[1:], 16, 16)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return strconv.ParseUint(s[2:], 16, 16)
	default:
		return strconv.ParseUint(s, 10, 16)
	}
}

// parseRegister parses an upper case register name V0-VF.
func parseRegister(name string) (chip8.Register, bool) {
	if len(name) != 2 || name[0] != 'V' {
		return 0, false
	}
	index, err := strconv.ParseUint(name[1:], 16, 8)
	if err != nil {
		return 0, false
	}
	return chip8.Register(index), true
}

func isReserved(name string) bool {
	upper := strings.ToUpper(name)
	if _, ok := parseRegister(upper); ok {
		return true
	}
	_, ok := specialOperands[upper]
	return ok
}
