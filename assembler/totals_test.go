package assembler

import (
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestCalculateTotals(t *testing.T) {
	lines := []*Line{
		{Bytes: 2, Timing: &InstructionTiming{Values: []cpu.Timing{{4, 1, 0}}}},
		{Bytes: 2, Timing: &InstructionTiming{Values: []cpu.Timing{{10, 2, 0}, {8, 1, 0}}}},
		{Bytes: 0},
		{Bytes: 64, BSS: true},
		{Bytes: 4, Timing: &InstructionTiming{Values: []cpu.Timing{{12, 2, 1}}}},
	}

	totals := CalculateTotals(lines)
	assert.True(t, totals.IsRange)
	assert.Equal(t, cpu.Timing{Clock: 24, Read: 4, Write: 1}, totals.Min)
	assert.Equal(t, cpu.Timing{Clock: 26, Read: 5, Write: 1}, totals.Max)
	assert.Equal(t, 72, totals.Bytes)
	assert.Equal(t, 64, totals.BSSBytes)
	assert.Equal(t, 8, totals.ObjectBytes)
}

func TestCalculateTotalsComponentWise(t *testing.T) {
	// the smallest clock and the smallest read count come from different alternatives
	lines := []*Line{
		{Timing: &InstructionTiming{Values: []cpu.Timing{{10, 1, 2}, {8, 3, 0}}}},
	}

	totals := CalculateTotals(lines)
	assert.Equal(t, cpu.Timing{Clock: 8, Read: 1, Write: 0}, totals.Min)
	assert.Equal(t, cpu.Timing{Clock: 10, Read: 3, Write: 2}, totals.Max)
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)
	assert.False(t, totals.IsRange)
	assert.Equal(t, Totals{}, totals)
}
