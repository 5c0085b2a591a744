package assembler

import (
	"encoding/json"
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func timingOf(t *testing.T, line string, vars map[string]int64) *InstructionTiming {
	t.Helper()
	timing := InstructionTimings(ParseStatement(line), vars)
	assert.NotNil(t, timing, line)
	return timing
}

func TestInstructionTimings(t *testing.T) {
	tests := []struct {
		line     string
		expected []cpu.Timing
	}{
		{" move.w d0,d1", []cpu.Timing{{4, 1, 0}}},
		{" move.l (a0)+,(a1)+", []cpu.Timing{{20, 3, 2}}},
		{" add.w (a0),d1", []cpu.Timing{{8, 2, 0}}},
		{" add.w d1,(a0)", []cpu.Timing{{12, 2, 1}}},
		{" addq.w #1,(a0)", []cpu.Timing{{12, 2, 1}}},
		{" nop", []cpu.Timing{{4, 1, 0}}},
		{" moveq #0,d0", []cpu.Timing{{4, 1, 0}}},
		{" btst.b d0,#1", []cpu.Timing{{10, 2, 0}}},
		{" btst #1,d0", []cpu.Timing{{10, 2, 0}}},
		{" lsl.w #4,d0", []cpu.Timing{{14, 1, 0}}},
		{" lsl.w d0", []cpu.Timing{{8, 1, 0}}},
		{" lsl.w d0,d1", []cpu.Timing{{6, 1, 0}, {132, 1, 0}}},
		{" lsl.w #UNKNOWN,d0", []cpu.Timing{{8, 1, 0}, {22, 1, 0}}},
		{" movem.l d0-a6,-(sp)", []cpu.Timing{{128, 2, 30}}},
		{" movem.l DrawBuffer(PC),a2-a3", []cpu.Timing{{32, 8, 0}}},
		{" movem.w d0,(a0)", []cpu.Timing{{12, 2, 1}}},
		{" movem.w (a0),d0", []cpu.Timing{{16, 4, 0}}},
		{" mulu #0,d0", []cpu.Timing{{42, 2, 0}}},
		{" mulu #$ffff,d0", []cpu.Timing{{74, 2, 0}}},
		{" muls #0,d0", []cpu.Timing{{42, 2, 0}}},
		{" muls #$5555,d0", []cpu.Timing{{74, 2, 0}}},
		{" muls d0,d1", []cpu.Timing{{38, 1, 0}, {70, 1, 0}}},
		{" bra.s loop", []cpu.Timing{{10, 2, 0}}},
		{" bne.s loop", []cpu.Timing{{10, 2, 0}, {8, 1, 0}}},
		{" dbra d0,loop", []cpu.Timing{{10, 2, 0}, {12, 2, 0}, {14, 3, 0}}},
		{" trapv", []cpu.Timing{{4, 1, 0}, {34, 5, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			timing := timingOf(t, tt.line, nil)
			assert.Equal(t, tt.expected, timing.Values)
		})
	}
}

func TestInstructionTimingsVars(t *testing.T) {
	vars := map[string]int64{"SHIFT": 3}
	timing := timingOf(t, " asr.l #SHIFT,d2", vars)
	assert.Equal(t, []cpu.Timing{{14, 1, 0}}, timing.Values)
	assert.Equal(t, &NValue{Lo: 3, Hi: 3}, timing.Calculation.N)

	timing = timingOf(t, " asr.l #SHIFT,d2", nil)
	assert.Equal(t, []cpu.Timing{{10, 1, 0}, {24, 1, 0}}, timing.Values)
	assert.Equal(t, &NValue{Lo: 1, Hi: 8, IsRange: true}, timing.Calculation.N)
}

func TestInstructionTimingsLabels(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{" beq.w target", []string{LabelTaken, LabelNotTaken}},
		{" sne d0", []string{LabelTaken, LabelNotTaken}},
		{" dbf d1,target", []string{LabelTaken, LabelNotTaken, LabelExpired}},
		{" chk (a0),d0", []string{LabelNoTrap, LabelTrapGT, LabelTrapLT}},
		{" trapv", []string{LabelNoTrap, LabelTrap}},
		{" ror.w d1,d2", []string{LabelMin, LabelMax}},
		{" move.w d0,d1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			timing := timingOf(t, tt.line, nil)
			assert.Equal(t, tt.expected, timing.Labels)
			if tt.expected != nil {
				assert.Len(t, timing.Values, len(tt.expected))
			}
		})
	}
}

func TestInstructionTimingsCalculation(t *testing.T) {
	timing := timingOf(t, " mulu #3,d0", nil)
	calc := timing.Calculation
	assert.Equal(t, []cpu.Timing{{38, 1, 0}}, calc.Base)
	assert.Equal(t, &cpu.Timing{Clock: 4, Read: 1}, calc.EA)
	assert.Equal(t, &cpu.Timing{Clock: 2}, calc.Multiplier)
	assert.Equal(t, &NValue{Lo: 2, Hi: 2}, calc.N)
	assert.Equal(t, []cpu.Timing{{46, 2, 0}}, timing.Values)
}

func TestInstructionTimingsMissing(t *testing.T) {
	assert.Nil(t, InstructionTimings(ParseStatement(" dc.w 1"), nil))
	assert.Nil(t, InstructionTimings(ParseStatement("label:"), nil))
	assert.Nil(t, InstructionTimings(ParseStatement(" move.w ccr,usp"), nil))
	assert.Nil(t, InstructionTimings(ParseStatement(` move.w \1,d0`), nil))
}

func TestTimingKey(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{" move.w d0,d1", "MOVE.W Dn,Dn"},
		{" moveq #1,d0", "MOVEQ.L #xxx,Dn"},
		{" nop", "NOP"},
		{" sne d0", "SNE.B Dn"},
		{" btst d0,d1", "BTST.L Dn,Dn"},
		{" btst d0,(a0)", "BTST.B Dn,(An)"},
		{" movem d0,(a0)", "MOVEM.W RegList,(An)"},
		{" jmp (a0)", "JMP (An)"},
		{" lea 4(a0),a1", "LEA.L d(An),An"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimingKey(ParseStatement(tt.line)))
		})
	}
}

func TestNValueJSON(t *testing.T) {
	b, err := json.Marshal(NValue{Lo: 4, Hi: 4})
	assert.NoError(t, err)
	assert.Equal(t, "4", string(b))

	b, err = json.Marshal(NValue{Lo: 0, Hi: 63, IsRange: true})
	assert.NoError(t, err)
	assert.Equal(t, "[0,63]", string(b))
}
