package assembler

import (
	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/set"
)

var (
	// always two words: opcode plus one extension word
	twoWordMnemonics = newMnemonicSet(append([]cpu.Mnemonic{
		cpu.LINK, cpu.MOVEM, cpu.MOVEP, cpu.STOP,
	}, cpu.DBccGroup...)...)

	quickMnemonics = newMnemonicSet(cpu.MOVEQ, cpu.ADDQ, cpu.SUBQ)

	// bit operations take a single extension word for an immediate bit number
	bitMnemonics = newMnemonicSet(cpu.BCHG, cpu.BCLR, cpu.BSET, cpu.BTST)
)

func newMnemonicSet(mnemonics ...cpu.Mnemonic) set.Set[cpu.Mnemonic] {
	s := set.New[cpu.Mnemonic]()
	for _, m := range mnemonics {
		s.Add(m)
	}
	return s
}

// StatementSize returns the number of bytes an instruction or data directive
// occupies. Other statements have a size of 0.
func StatementSize(stmt *Statement, vars map[string]int64) int {
	switch stmt.Kind {
	case StatementDirective:
		return directiveSize(stmt, vars)
	case StatementInstruction:
		return instructionBytes(stmt)
	default:
		return 0
	}
}

// instructionBytes returns the encoded length of an instruction.
func instructionBytes(stmt *Statement) int {
	op := stmt.Opcode
	m := op.Mnemonic

	if m.IsBranch() {
		if op.Size == cpu.SizeByte {
			return 2
		}
		return 4
	}
	if twoWordMnemonics.Contains(m) {
		return 4
	}
	if len(stmt.Operands) == 0 {
		return 2
	}

	words := 1
	for _, o := range stmt.Operands {
		switch {
		case o.Mode == cpu.ModeAbsW:
			words++
		case o.Mode == cpu.ModeAbsL:
			words += 2
		case o.Mode.HasExtension():
			words++
		case o.Mode == cpu.ModeImm && !quickMnemonics.Contains(m) && !m.IsShift():
			switch {
			case bitMnemonics.Contains(m):
				words++
			case op.Size == cpu.SizeLong:
				words += 2
			default:
				words++
			}
		}
	}
	return words * 2
}
