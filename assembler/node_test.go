package assembler

import (
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseStatementKinds(t *testing.T) {
	tests := []struct {
		line string
		kind StatementKind
	}{
		{"", StatementEmpty},
		{"   ; nothing here", StatementEmpty},
		{"* banner", StatementEmpty},
		{"start:", StatementLabel},
		{".local", StatementLabel},
		{" move.w d0,d1", StatementInstruction},
		{"loop: dbra d0,loop", StatementInstruction},
		{" dc.b 1,2,3", StatementDirective},
		{"VALUE equ 10", StatementDirective},
		{" section data,bss", StatementDirective},
		{" mymacro d0,d1", StatementMacroInvocation},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			stmt := ParseStatement(tt.line)
			assert.Equal(t, tt.kind, stmt.Kind)
		})
	}
}

func TestParseStatementInstruction(t *testing.T) {
	stmt := ParseStatement("copy: move.l #$10,(a0)+ ; store")
	assert.True(t, stmt.IsInstruction())

	assert.NotNil(t, stmt.Label)
	assert.Equal(t, "copy", stmt.Label.Name)
	assert.False(t, stmt.Label.Local)

	assert.Equal(t, cpu.MOVE, stmt.Mnemonic())
	assert.Equal(t, "MOVE", stmt.Opcode.Name)
	assert.Equal(t, cpu.SizeLong, stmt.Opcode.Size)
	assert.Equal(t, "; store", stmt.Comment)

	assert.Len(t, stmt.Operands, 2)
	assert.Equal(t, cpu.ModeImm, stmt.Operands[0].Mode)
	assert.NotNil(t, stmt.Operands[0].Value)
	assert.Equal(t, int64(16), *stmt.Operands[0].Value)
	assert.Equal(t, cpu.ModeAnPostInc, stmt.Operands[1].Mode)
	assert.Nil(t, stmt.Operands[1].Value)
}

func TestParseStatementSymbolicImmediate(t *testing.T) {
	stmt := ParseStatement(" lsl.w #SHIFT,d0")
	assert.Equal(t, cpu.ModeImm, stmt.Operands[0].Mode)
	assert.Nil(t, stmt.Operands[0].Value)
}

func TestParseStatementRegisterList(t *testing.T) {
	stmt := ParseStatement(" movem.l d0-d4/a0-a2,-(sp)")
	assert.Equal(t, cpu.ModeRegList, stmt.Operands[0].Mode)
	assert.NotNil(t, stmt.Operands[0].Value)
	assert.Equal(t, int64(8), *stmt.Operands[0].Value)
}

func TestParseStatementDirective(t *testing.T) {
	stmt := ParseStatement(` dc.b "text",0`)
	assert.True(t, stmt.IsDirective())
	assert.Equal(t, DirDC, stmt.Directive())
	assert.Equal(t, cpu.SizeByte, stmt.Opcode.Size)
	assert.Len(t, stmt.Operands, 2)
	assert.Equal(t, OperandString, stmt.Operands[0].Kind)
	assert.Equal(t, "text", stmt.Operands[0].Str)
	assert.Equal(t, OperandEffectiveAddress, stmt.Operands[1].Kind)
}

func TestParseStatementMacro(t *testing.T) {
	stmt := ParseStatement(` push.l \1`)
	assert.True(t, stmt.IsMacroInvocation())
	assert.Equal(t, "PUSH", stmt.Opcode.Name)
	assert.Equal(t, cpu.SizeLong, stmt.Opcode.Size)
	assert.Equal(t, OperandMacroArg, stmt.Operands[0].Kind)
	assert.Equal(t, 1, stmt.Operands[0].Index)

	stmt = ParseStatement(`.loop\@: nop`)
	assert.True(t, stmt.Label.Local)
	assert.True(t, stmt.Label.Macro)
}
