package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// RangeN counts the registers named by a MOVEM register list such as
// "d0-d3/a1/a3". Address registers are numbered after the data registers,
// so "d0-a6" counts 15. Malformed segments count as a single register.
func RangeN(list string) int {
	n := 0
	for _, p := range strings.Split(list, "/") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		from, to, isRange := strings.Cut(p, "-")
		if !isRange {
			n++
			continue
		}

		start, err1 := parseRegIndex(from)
		end, err2 := parseRegIndex(to)
		if err1 != nil || err2 != nil {
			n++
			continue
		}
		if start > end {
			start, end = end, start
		}
		n += end - start + 1
	}
	return n
}

// parseRegIndex returns the register list index of a register name (e.g. "d0", "a6", "sp").
func parseRegIndex(reg string) (int, error) {
	reg = strings.TrimSpace(strings.ToLower(reg))
	if reg == "sp" {
		return cpu.A7, nil
	}
	if len(reg) < 2 {
		return 0, fmt.Errorf("invalid register name: %s", reg)
	}

	num, err := strconv.Atoi(reg[1:])
	if err != nil || num < 0 || num > 7 {
		return 0, fmt.Errorf("invalid register number: %s", reg)
	}

	switch reg[0] {
	case 'd':
		return cpu.D0 + num, nil
	case 'a':
		return cpu.A0 + num, nil
	default:
		return 0, fmt.Errorf("invalid register type: %s", reg)
	}
}

// movemRegisterCount returns n for a MOVEM instruction: the size of its
// register list operand. A single Dn or An operand counts as one register.
func movemRegisterCount(stmt *Statement) (int, bool) {
	for _, o := range stmt.Operands {
		switch o.Mode {
		case cpu.ModeRegList:
			if o.Value != nil {
				return int(*o.Value), true
			}
			return RangeN(o.Text), true
		case cpu.ModeDn, cpu.ModeAn:
			return 1, true
		}
	}
	return 0, false
}
