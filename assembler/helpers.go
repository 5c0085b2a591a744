package assembler

import (
	"math/bits"
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// PopCount returns the number of set bits in x.
func PopCount(x uint32) int {
	return bits.OnesCount32(x)
}

// mulsTransitions counts the 01 and 10 bit patterns of a 16 bit MULS source
// extended with a zero LSB.
func mulsTransitions(v int64) int {
	return PopCount(uint32((v ^ (v << 1)) & 0xFFFF))
}

// splitLines normalizes line endings and splits source text into lines.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

// instructionQualifier returns the explicit size of an instruction, or its
// default when none is given.
func instructionQualifier(stmt *Statement) cpu.Size {
	op := stmt.Opcode
	if op.Size != cpu.SizeNone {
		return op.Size
	}

	m := op.Mnemonic
	switch {
	case m == cpu.MOVEQ || m == cpu.EXG || m == cpu.LEA || m == cpu.PEA:
		return cpu.SizeLong

	case m == cpu.NBCD || m == cpu.ABCD || m == cpu.SBCD || m == cpu.TAS || m.IsScc():
		return cpu.SizeByte

	case m == cpu.BCHG || m == cpu.BSET || m == cpu.BCLR || m == cpu.BTST:
		if len(stmt.Operands) > 1 && stmt.Operands[1].Mode == cpu.ModeDn {
			return cpu.SizeLong
		}
		return cpu.SizeByte

	case unsizedMnemonics.Contains(m):
		return cpu.SizeNone
	}
	return cpu.SizeWord
}
