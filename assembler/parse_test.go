package assembler

import (
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestOperandMode(t *testing.T) {
	tests := []struct {
		text string
		mode cpu.Mode
	}{
		{"d0", cpu.ModeDn},
		{"D7", cpu.ModeDn},
		{"a3", cpu.ModeAn},
		{"sp", cpu.ModeAn},
		{"(a0)", cpu.ModeAnInd},
		{"( SP )", cpu.ModeAnInd},
		{"(a1)+", cpu.ModeAnPostInc},
		{"-(sp)", cpu.ModeAnPreDec},
		{"4(a0)", cpu.ModeAnDisp},
		{"(4,a0)", cpu.ModeAnDisp},
		{"offset(a5)", cpu.ModeAnDisp},
		{"(-2,a6)", cpu.ModeAnDisp},
		{"4(a0,d0.w)", cpu.ModeAnDispIx},
		{"(a0,d1.l)", cpu.ModeAnDispIx},
		{"0(a0,a1)", cpu.ModeAnDispIx},
		{"table(pc)", cpu.ModePCDisp},
		{"(8,PC)", cpu.ModePCDisp},
		{"table(pc,d0.w)", cpu.ModePCDispIx},
		{"#1", cpu.ModeImm},
		{"#$ff<<2", cpu.ModeImm},
		{"d0-d7", cpu.ModeRegList},
		{"d0/a1", cpu.ModeRegList},
		{"d0-d4/a0-a2", cpu.ModeRegList},
		{"ccr", cpu.ModeCCR},
		{"SR", cpu.ModeSR},
		{"usp", cpu.ModeUSP},
		{"$400.w", cpu.ModeAbsW},
		{"label.W", cpu.ModeAbsW},
		{"$dff000", cpu.ModeAbsL},
		{"label", cpu.ModeAbsL},
		{"$4.l", cpu.ModeAbsL},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.mode, OperandMode(tt.text))
		})
	}
}
