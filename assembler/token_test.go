package assembler

import (
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

type tokenSummary struct {
	text  string
	kind  TokenKind
	value string
}

func summarize(tokens []Token) []tokenSummary {
	s := make([]tokenSummary, len(tokens))
	for i, tok := range tokens {
		s[i] = tokenSummary{tok.Text, tok.Kind, tok.Value}
	}
	return s
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []tokenSummary
	}{
		{"instruction with comment", " move.w d0,d1 ; copy", []tokenSummary{
			{"move", TokenMnemonic, "MOVE"},
			{"w", TokenQualifier, "W"},
			{"d0", TokenOperand, ""},
			{"d1", TokenOperand, ""},
			{"; copy", TokenComment, ""},
		}},
		{"label with colon", "start: rts", []tokenSummary{
			{"start", TokenLabel, ""},
			{"rts", TokenMnemonic, "RTS"},
		}},
		{"label without colon", "loop\tdbra d0,loop", []tokenSummary{
			{"loop", TokenLabel, ""},
			{"dbra", TokenMnemonic, "DBF"},
			{"d0", TokenOperand, ""},
			{"loop", TokenOperand, ""},
		}},
		{"short branch", " bra.s loop", []tokenSummary{
			{"bra", TokenMnemonic, "BRA"},
			{"s", TokenQualifier, "B"},
			{"loop", TokenOperand, ""},
		}},
		{"string", " dc.b 'It''s',0", []tokenSummary{
			{"dc", TokenDirective, "DC"},
			{"b", TokenQualifier, "B"},
			{"'It''s'", TokenString, "It's"},
			{"0", TokenOperand, ""},
		}},
		{"string with separators", ` dc.b "a, b",0`, []tokenSummary{
			{"dc", TokenDirective, "DC"},
			{"b", TokenQualifier, "B"},
			{`"a, b"`, TokenString, "a, b"},
			{"0", TokenOperand, ""},
		}},
		{"assignment", "SIZE=4*2", []tokenSummary{
			{"SIZE", TokenLabel, ""},
			{"=", TokenDirective, "="},
			{"4*2", TokenOperand, ""},
		}},
		{"equ", "SIZE equ 8", []tokenSummary{
			{"SIZE", TokenLabel, ""},
			{"equ", TokenDirective, "EQU"},
			{"8", TokenOperand, ""},
		}},
		{"star comment", "* header", []tokenSummary{
			{"* header", TokenComment, ""},
		}},
		{"indexed operand", " move.l 4(a0,d0.w),d1", []tokenSummary{
			{"move", TokenMnemonic, "MOVE"},
			{"l", TokenQualifier, "L"},
			{"4(a0,d0.w)", TokenOperand, ""},
			{"d1", TokenOperand, ""},
		}},
		{"absolute word operand", " move $100.w,d1", []tokenSummary{
			{"move", TokenMnemonic, "MOVE"},
			{"$100.w", TokenOperand, ""},
			{"d1", TokenOperand, ""},
		}},
		{"macro invocation with size", " push.l d0", []tokenSummary{
			{"push", TokenOperand, ""},
			{"l", TokenQualifier, "L"},
			{"d0", TokenOperand, ""},
		}},
		{"macro placeholders", ` move.w \1,\@`, []tokenSummary{
			{"move", TokenMnemonic, "MOVE"},
			{"w", TokenQualifier, "W"},
			{`\1`, TokenMacroArg, ""},
			{`\@`, TokenMacroCount, ""},
		}},
		{"blk alias", " blk.w 10", []tokenSummary{
			{"blk", TokenDirective, "DCB"},
			{"w", TokenQualifier, "W"},
			{"10", TokenOperand, ""},
		}},
		{"empty", "   ", []tokenSummary{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, summarize(Tokenize(tt.line)))
		})
	}
}

func TestTokenizeOperandModes(t *testing.T) {
	tokens := Tokenize(" movem.l d0-a6,-(sp)")
	assert.Len(t, tokens, 4)
	assert.Equal(t, cpu.ModeRegList, tokens[2].Mode)
	assert.Equal(t, cpu.ModeAnPreDec, tokens[3].Mode)
}

func TestTokenizeMacroArgIndex(t *testing.T) {
	tokens := Tokenize(` dc.w \12`)
	assert.Len(t, tokens, 3)
	assert.Equal(t, TokenMacroArg, tokens[2].Kind)
	assert.Equal(t, 12, tokens[2].Index)
}

func TestTokenizeUnbalanced(t *testing.T) {
	tokens := Tokenize(" dc.b 'open, quote")
	assert.Len(t, tokens, 3)
	assert.Equal(t, "'open, quote", tokens[2].Text)
	assert.Equal(t, TokenString, tokens[2].Kind)

	tokens = Tokenize(" move.w (a0,d1")
	assert.Len(t, tokens, 3)
	assert.Equal(t, "(a0,d1", tokens[2].Text)
}

func TestTokenizePositions(t *testing.T) {
	lines := []string{
		" move.w d0,d1 ; copy",
		"loop: dbra d7,loop",
		" dc.b 'hello, world',10,0",
		"VALUE = (1<<4)|2",
		" movem.l d0-d7/a0-a6,-(sp)",
	}

	for _, line := range lines {
		tokens := Tokenize(line)
		for _, tok := range tokens {
			assert.Equal(t, tok.Text, line[tok.Start:tok.End])
		}
		assert.Equal(t, tokens, Tokenize(line))
	}
}
