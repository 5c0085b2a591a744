package assembler

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEvaluate(t *testing.T) {
	vars := map[string]int64{
		"WIDTH":  320,
		"HEIGHT": 256,
		"depth":  5,
		".local": 2,
	}

	tests := []struct {
		expr     string
		expected int64
	}{
		{"42", 42},
		{"#42", 42},
		{"$ff", 255},
		{"$FF", 255},
		{"%110", 6},
		{"@10", 8},
		{"'A'", 65},
		{"'AB'", 0x4142},
		{`"FORM"`, 0x464f524d},
		{"12~8", 4},
		{"2!4", 6},
		{"~0", -1},
		{"-5+2", -3},
		{"+3", 3},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"100/7", 14},
		{"100%7", 2},
		{"1<<4", 16},
		{"$100>>4", 16},
		{"$f0&$3c", 0x30},
		{"$f0|$0f", 0xff},
		{"$ff^$0f", 0xf0},
		{"1+2<<3", 24},
		{"WIDTH*HEIGHT/8", 10240},
		{"WIDTH/8*depth", 200},
		{".local*2", 4},
		{" 1 + 1 ", 2},
		{"-(2*3)", -6},
		{"7%%11", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, ok := Evaluate(tt.expr, vars)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestEvaluateAbsent(t *testing.T) {
	tests := []string{
		"",
		"#",
		"UNDEFINED",
		"width",
		"1+",
		"(1+2",
		"1+2)",
		"1 2",
		"4/0",
		"4%0",
		"$",
		"12abc",
		"1 < 2",
		"'toolong'",
	}

	vars := map[string]int64{"WIDTH": 320}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, ok := Evaluate(expr, vars)
			assert.False(t, ok)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := evaluate("1/0", nil)
	assert.True(t, errors.Is(err, errDivideByZero))

	_, err = evaluate("FOO+1", nil)
	assert.True(t, errors.Is(err, errUnknownValue))
	assert.ErrorContains(t, err, "FOO")

	_, err = evaluate("1+*2", nil)
	assert.True(t, errors.Is(err, errExprSyntax))
}
