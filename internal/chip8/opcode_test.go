package chip8

import (
	"errors"
	"strings"
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word     uint16
		expected Opcode
		text     string
	}{
		{0x00E0, Opcode{Kind: OpCls}, "CLS"},
		{0x00EE, Opcode{Kind: OpRet}, "RET"},
		{0x1ABC, Opcode{Kind: OpJp, NNN: 0xABC}, "JP $ABC"},
		{0x2204, Opcode{Kind: OpCall, NNN: 0x204}, "CALL $204"},
		{0x3A2B, Opcode{Kind: OpSeByte, X: 0xA, NN: 0x2B}, "SE VA, $2B"},
		{0x4A2B, Opcode{Kind: OpSneByte, X: 0xA, NN: 0x2B}, "SNE VA, $2B"},
		{0x5120, Opcode{Kind: OpSeReg, X: 1, Y: 2}, "SE V1, V2"},
		{0x6105, Opcode{Kind: OpLdByte, X: 1, NN: 0x05}, "LD V1, $05"},
		{0x7F03, Opcode{Kind: OpAddByte, X: 0xF, NN: 0x03}, "ADD VF, $03"},
		{0x8120, Opcode{Kind: OpLdReg, X: 1, Y: 2}, "LD V1, V2"},
		{0x8121, Opcode{Kind: OpOr, X: 1, Y: 2}, "OR V1, V2"},
		{0x8122, Opcode{Kind: OpAnd, X: 1, Y: 2}, "AND V1, V2"},
		{0x8123, Opcode{Kind: OpXor, X: 1, Y: 2}, "XOR V1, V2"},
		{0x8124, Opcode{Kind: OpAdd, X: 1, Y: 2}, "ADD V1, V2"},
		{0x8125, Opcode{Kind: OpSub, X: 1, Y: 2}, "SUB V1, V2"},
		{0x8106, Opcode{Kind: OpShr, X: 1}, "SHR V1"},
		{0x8126, Opcode{Kind: OpShr, X: 1, Y: 2}, "SHR V1, V2"},
		{0x8127, Opcode{Kind: OpSubn, X: 1, Y: 2}, "SUBN V1, V2"},
		{0x810E, Opcode{Kind: OpShl, X: 1}, "SHL V1"},
		{0x9120, Opcode{Kind: OpSneReg, X: 1, Y: 2}, "SNE V1, V2"},
		{0xA123, Opcode{Kind: OpLdI, NNN: 0x123}, "LD I, $123"},
		{0xB300, Opcode{Kind: OpJpV0, NNN: 0x300}, "JP V0, $300"},
		{0xC30F, Opcode{Kind: OpRnd, X: 3, NN: 0x0F}, "RND V3, $0F"},
		{0xD125, Opcode{Kind: OpDrw, X: 1, Y: 2, N: 5}, "DRW V1, V2, $5"},
		{0xE49E, Opcode{Kind: OpSkp, X: 4}, "SKP V4"},
		{0xE4A1, Opcode{Kind: OpSknp, X: 4}, "SKNP V4"},
		{0xF507, Opcode{Kind: OpLdVxDT, X: 5}, "LD V5, DT"},
		{0xF50A, Opcode{Kind: OpLdVxK, X: 5}, "LD V5, K"},
		{0xF515, Opcode{Kind: OpLdDTVx, X: 5}, "LD DT, V5"},
		{0xF518, Opcode{Kind: OpLdSTVx, X: 5}, "LD ST, V5"},
		{0xF51E, Opcode{Kind: OpAddI, X: 5}, "ADD I, V5"},
		{0xF529, Opcode{Kind: OpLdF, X: 5}, "LD F, V5"},
		{0xF533, Opcode{Kind: OpLdB, X: 5}, "LD B, V5"},
		{0xF555, Opcode{Kind: OpStore, X: 5}, "LD [I], V5"},
		{0xF565, Opcode{Kind: OpLoad, X: 5}, "LD V5, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			op, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, op)
			assert.Equal(t, tt.text, op.String())
			assert.Equal(t, tt.word, op.Encode())
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	words := []uint16{
		0x0000, // SYS
		0x0123, // SYS
		0x00E1,
		0x5121, // nonzero tail
		0x812F,
		0x8128,
		0x9121,
		0xE19F,
		0xF1FF,
		0xF100,
	}

	for _, word := range words {
		op, err := Decode(word)
		assert.Error(t, err)
		assert.Equal(t, Opcode{}, op)

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, word, decodeErr.Word)
	}
}

func TestDecodeError_Message(t *testing.T) {
	err := &DecodeError{Word: 0x0123}
	assert.Equal(t, "unknown instruction $0123", err.Error())

	err.Address = 0x2A4
	assert.Equal(t, "unknown instruction $0123 at $2A4", err.Error())
}

func TestDecode_AllWords(t *testing.T) {
	valid := 0
	kinds := map[Kind]struct{}{}

	for word := range 0x10000 {
		op, err := Decode(uint16(word))
		if err != nil {
			continue
		}
		valid++
		kinds[op.Kind] = struct{}{}

		// decoding is the inverse of encoding for every valid word
		assert.Equal(t, uint16(word), op.Encode())
	}

	assert.Equal(t, int(kindCount)-1, len(kinds))
	assert.True(t, valid > 0)
}

func TestOpcode_IsSkip(t *testing.T) {
	skips := []uint16{0x3000, 0x4000, 0x5000, 0x9000, 0xE09E, 0xE0A1}
	for _, word := range skips {
		op, err := Decode(word)
		assert.NoError(t, err)
		assert.True(t, op.IsSkip(), op.String())
	}

	op, err := Decode(0x1200)
	assert.NoError(t, err)
	assert.False(t, op.IsSkip())
}

func TestOpcode_InvalidKind(t *testing.T) {
	op := Opcode{Kind: kindCount}
	assert.True(t, op.Instruction() == nil)
	assert.Equal(t, uint16(0), op.Encode())
	assert.True(t, strings.HasPrefix(op.String(), "invalid opcode kind"))
}

// TestOpcode_InstructionTable cross-checks the mnemonic of every decoded
// word against the opcode table of the CPU definition.
func TestOpcode_InstructionTable(t *testing.T) {
	for kind := OpJp; kind < kindCount; kind++ {
		op := Opcode{Kind: kind, X: 1, Y: 2, N: 3, NN: 0x45, NNN: 0x678}
		word := op.Encode()

		var match *chip8cpu.Instruction
		for _, candidate := range chip8cpu.Opcodes[int(word>>12)] {
			if candidate.Info.Mask&word == candidate.Info.Value {
				match = candidate.Instruction
				break
			}
		}

		if match == nil {
			t.Errorf("no table entry for %s", op)
			continue
		}
		assert.Equal(t, match.Name, op.Instruction().Name, op.String())
	}
}

func TestOpcode_InstructionDefinitions(t *testing.T) {
	for kind := OpCls; kind < kindCount; kind++ {
		ins := Opcode{Kind: kind}.Instruction()
		if ins == nil {
			t.Errorf("kind %d has no instruction definition", kind)
			continue
		}
		assert.NotEmpty(t, ins.Name)
	}

	tests := []struct {
		kind Kind
		want *chip8cpu.Instruction
	}{
		{OpCls, chip8cpu.ClsInst},
		{OpRet, chip8cpu.RetInst},
		{OpJpV0, chip8cpu.JpInst},
		{OpCall, chip8cpu.CallInst},
		{OpSeReg, chip8cpu.SeInst},
		{OpSneByte, chip8cpu.SneInst},
		{OpLoad, chip8cpu.LdInst},
		{OpAddI, chip8cpu.AddInst},
		{OpOr, chip8cpu.OrInst},
		{OpAnd, chip8cpu.AndInst},
		{OpXor, chip8cpu.XorInst},
		{OpSub, chip8cpu.SubInst},
		{OpShr, chip8cpu.ShrInst},
		{OpSubn, chip8cpu.SubnInst},
		{OpShl, chip8cpu.ShlInst},
		{OpRnd, chip8cpu.RndInst},
		{OpDrw, chip8cpu.DrwInst},
		{OpSkp, chip8cpu.SkpInst},
		{OpSknp, chip8cpu.SknpInst},
	}
	for _, tt := range tests {
		assert.True(t, Opcode{Kind: tt.kind}.Instruction() == tt.want, Opcode{Kind: tt.kind}.String())
	}
}
