package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimingLevel(t *testing.T) {
	tests := []struct {
		clock int
		want  Level
	}{
		{4, LevelLow},
		{11, LevelLow},
		{12, LevelMed},
		{20, LevelMed},
		{21, LevelHigh},
		{30, LevelHigh},
		{31, LevelVHigh},
		{158, LevelVHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimingLevel(Timing{Clock: tt.clock}))
		assert.Equal(t, tt.want, Timing{Clock: tt.clock}.Level())
	}
}

func TestLengthLevel(t *testing.T) {
	tests := []struct {
		bytes int
		want  Level
	}{
		{0, LevelLow},
		{2, LevelLow},
		{3, LevelLow},
		{4, LevelMed},
		{5, LevelHigh},
		{6, LevelHigh},
		{8, LevelVHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LengthLevel(tt.bytes))
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "low", LevelLow.String())
	assert.Equal(t, "vhigh", LevelVHigh.String())
	assert.Equal(t, "unknown", Level(9).String())
}
