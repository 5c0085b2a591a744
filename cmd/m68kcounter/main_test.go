package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Urethramancer/m68kcounter/format"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "test.s")
	assert.NoError(t, os.WriteFile(name, []byte(src), 0o644))
	return name
}

func TestRunPlainText(t *testing.T) {
	opts := optionFlags{
		input:   writeSource(t, " move.w d0,d1\n rts\n"),
		include: "totals",
		depth:   64,
		noColor: true,
	}

	var buf bytes.Buffer
	err := run(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, "\nTotals:\n20(5/0)\n4 bytes (4 object, 0 BSS)\n", buf.String())
}

func TestRunJSON(t *testing.T) {
	opts := optionFlags{
		input:   writeSource(t, " nop\n"),
		include: format.DefaultInclude,
		depth:   64,
		json:    true,
	}

	var buf bytes.Buffer
	err := run(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotNil(t, out["lines"])
	assert.NotNil(t, out["totals"])
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     optionFlags
		expected string
	}{
		{
			name:     "unknown include element",
			opts:     optionFlags{input: writeSource(t, " nop"), include: "text,cycles"},
			expected: "cycles",
		},
		{
			name:     "missing file",
			opts:     optionFlags{input: filepath.Join(t.TempDir(), "missing.s"), include: "text"},
			expected: "missing.s",
		},
		{
			name:     "nesting too deep",
			opts:     optionFlags{input: writeSource(t, "m macro\n m\n endm\n m\n"), include: "text", depth: 4},
			expected: "nesting",
		},
		{
			name:     "too many lines",
			opts:     optionFlags{input: writeSource(t, " rept 1000\n nop\n endr\n"), include: "text", lines: 10},
			expected: "too many expanded lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := run(context.Background(), log.NewTestLogger(t), tt.opts, &buf)
			assert.ErrorContains(t, err, tt.expected)
			assert.Equal(t, 0, buf.Len())
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := optionFlags{input: writeSource(t, " nop"), include: "text"}
	var buf bytes.Buffer
	err := run(ctx, log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, buf.Len())
}

func TestNewFormatter(t *testing.T) {
	inc := format.AllElements()

	f := newFormatter(optionFlags{json: true, pretty: true}, inc)
	assert.Equal(t, format.Formatter(format.JSON{Pretty: true, Include: inc}), f)

	f = newFormatter(optionFlags{color: true}, inc)
	assert.Equal(t, format.Formatter(format.PlainText{Color: true, Include: inc}), f)

	f = newFormatter(optionFlags{color: true, noColor: true}, inc)
	plain, ok := f.(format.PlainText)
	assert.True(t, ok)
	assert.False(t, plain.Color)
}

func TestReadInputFile(t *testing.T) {
	src := " move.l d0,d1\n"
	got, err := readInput(writeSource(t, src))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, " move.l"))
}
