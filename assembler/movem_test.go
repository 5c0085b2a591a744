package assembler

import (
	"testing"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestRangeN(t *testing.T) {
	tests := []struct {
		list     string
		expected int
	}{
		{"d0", 1},
		{"d0-d4", 5},
		{"d0/d4/d6", 3},
		{"d0-d4/a0-a2", 8},
		{"d0-d4/d6/a0-a2/a4", 10},
		{"d0-a6", 15},
		{"D0-D7/A0-A6", 15},
		{"a0-sp", 8},
		{"d4-d0", 5},
		{"d0-x9", 1},
		{"d0//d1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			assert.Equal(t, tt.expected, RangeN(tt.list))
		})
	}
}

func TestParseRegIndex(t *testing.T) {
	idx, err := parseRegIndex("d3")
	assert.NoError(t, err)
	assert.Equal(t, cpu.D0+3, idx)

	idx, err = parseRegIndex("A2")
	assert.NoError(t, err)
	assert.Equal(t, cpu.A0+2, idx)

	idx, err = parseRegIndex("sp")
	assert.NoError(t, err)
	assert.Equal(t, cpu.A7, idx)

	_, err = parseRegIndex("d8")
	assert.Error(t, err)
	_, err = parseRegIndex("x1")
	assert.Error(t, err)
	_, err = parseRegIndex("a")
	assert.Error(t, err)
}

func TestMovemRegisterCount(t *testing.T) {
	tests := []struct {
		line     string
		expected int
	}{
		{" movem.l d0-d7/a0-a6,-(sp)", 15},
		{" movem.l (sp)+,d0-d2", 3},
		{" movem.w d0,(a0)", 1},
		{" movem.w (a0),a1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			n, ok := movemRegisterCount(ParseStatement(tt.line))
			assert.True(t, ok)
			assert.Equal(t, tt.expected, n)
		})
	}

	_, ok := movemRegisterCount(ParseStatement(" movem.l (a0),(a1)"))
	assert.False(t, ok)
}
