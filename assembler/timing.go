package assembler

import (
	"encoding/json"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// Outcome labels of instructions with more than one timing.
const (
	LabelTaken    = "Taken"
	LabelNotTaken = "Not taken"
	LabelExpired  = "Expired"
	LabelNoTrap   = "No trap"
	LabelTrap     = "Trap"
	LabelTrapGT   = "Trap >"
	LabelTrapLT   = "Trap <"
	LabelMin      = "Min"
	LabelMax      = "Max"
)

var unsizedMnemonics = newMnemonicSet(
	cpu.JMP, cpu.JSR, cpu.NOP, cpu.RESET, cpu.RTE, cpu.RTR, cpu.RTS,
	cpu.STOP, cpu.TRAP, cpu.TRAPV, cpu.UNLK, cpu.ILLEGAL,
)

// InstructionTiming is the execution time of an instruction. Values holds
// one timing per outcome, named by Labels when there is more than one.
type InstructionTiming struct {
	Values      []cpu.Timing `json:"values"`
	Labels      []string     `json:"labels,omitempty"`
	Calculation *Calculation `json:"calculation,omitempty"`
}

// Calculation describes how the timing values were derived.
type Calculation struct {
	Base       []cpu.Timing `json:"base"`
	EA         *cpu.Timing  `json:"ea,omitempty"`
	Multiplier *cpu.Timing  `json:"multiplier,omitempty"`
	N          *NValue      `json:"n,omitempty"`
}

// NValue is the count the multiplier of an instruction is applied to,
// either a known number or a range.
type NValue struct {
	Lo, Hi  int
	IsRange bool
}

func exactN(n int) *NValue { return &NValue{Lo: n, Hi: n} }

func rangeN(lo, hi int) *NValue { return &NValue{Lo: lo, Hi: hi, IsRange: true} }

// MarshalJSON encodes a number, or a [lo, hi] pair for a range.
func (n NValue) MarshalJSON() ([]byte, error) {
	if n.IsRange {
		return json.Marshal([2]int{n.Lo, n.Hi})
	}
	return json.Marshal(n.Lo)
}

// Min returns the smallest clock count of all outcomes.
func (t *InstructionTiming) Min() cpu.Timing {
	m := t.Values[0]
	for _, v := range t.Values[1:] {
		m = m.Min(v)
	}
	return m
}

// Max returns the largest clock count of all outcomes.
func (t *InstructionTiming) Max() cpu.Timing {
	m := t.Values[0]
	for _, v := range t.Values[1:] {
		m = m.Max(v)
	}
	return m
}

// TimingKey returns the timing table key of an instruction statement.
func TimingKey(stmt *Statement) string {
	m := stmt.Opcode.Mnemonic
	modes := make([]cpu.Mode, len(stmt.Operands))
	for i, o := range stmt.Operands {
		modes[i] = o.Mode
		if m == cpu.MOVEM && (o.Mode == cpu.ModeDn || o.Mode == cpu.ModeAn) {
			modes[i] = cpu.ModeRegList
		}
	}
	return cpu.TimingKey(m, instructionQualifier(stmt), modes...)
}

// InstructionTimings looks up the execution time of an instruction. It
// returns nil for statements that are not instructions and for instruction
// forms the timing table does not know.
func InstructionTimings(stmt *Statement, vars map[string]int64) *InstructionTiming {
	if stmt.Kind != StatementInstruction {
		return nil
	}
	entry, ok := cpu.LookupTiming(TimingKey(stmt))
	if !ok {
		return nil
	}

	calc := &Calculation{
		Base:       entry.Base,
		EA:         entry.EA,
		Multiplier: entry.Multiplier,
	}
	values := make([]cpu.Timing, len(entry.Base))
	copy(values, entry.Base)

	if calc.Multiplier != nil {
		calc.N = multiplierN(stmt, vars)
		values = applyMultiplier(values, calc)
	}

	if calc.EA != nil {
		for i := range values {
			values[i] = values[i].Add(*calc.EA)
		}
	}

	timing := &InstructionTiming{
		Values:      values,
		Calculation: calc,
	}
	if len(values) > 1 {
		timing.Labels = timingLabels(stmt.Opcode.Mnemonic)
	}
	return timing
}

// multiplierN determines n for instructions whose time depends on an operand.
func multiplierN(stmt *Statement, vars map[string]int64) *NValue {
	m := stmt.Opcode.Mnemonic
	var source Operand
	if len(stmt.Operands) > 0 {
		source = stmt.Operands[0]
	}
	imm, immOK := int64(0), false
	if source.Mode == cpu.ModeImm {
		imm, immOK = Evaluate(source.Text, vars)
	}

	switch {
	case m.IsShift():
		if source.Mode != cpu.ModeImm {
			return rangeN(0, 63)
		}
		if !immOK {
			return rangeN(1, 8)
		}
		return exactN(int(imm))

	case m == cpu.MULU:
		if !immOK {
			return rangeN(0, 16)
		}
		return exactN(PopCount(uint32(imm) & 0xFFFF))

	case m == cpu.MULS:
		if !immOK {
			return rangeN(0, 16)
		}
		return exactN(mulsTransitions(imm))

	case m == cpu.MOVEM:
		if n, ok := movemRegisterCount(stmt); ok {
			return exactN(n)
		}
	}
	return nil
}

// applyMultiplier adds n times the multiplier to the base timings. A range
// of n replaces the base timings with its lower and upper bound.
func applyMultiplier(values []cpu.Timing, calc *Calculation) []cpu.Timing {
	n, mult := calc.N, *calc.Multiplier
	switch {
	case n == nil:
		return values

	case n.IsRange:
		return []cpu.Timing{
			calc.Base[0].Add(mult.Mul(n.Lo)),
			calc.Base[0].Add(mult.Mul(n.Hi)),
		}

	default:
		for i := range values {
			values[i] = values[i].Add(mult.Mul(n.Lo))
		}
		return values
	}
}

func timingLabels(m cpu.Mnemonic) []string {
	switch {
	case m.IsBcc(), m.IsScc():
		return []string{LabelTaken, LabelNotTaken}
	case m.IsDBcc():
		return []string{LabelTaken, LabelNotTaken, LabelExpired}
	case m == cpu.CHK:
		return []string{LabelNoTrap, LabelTrapGT, LabelTrapLT}
	case m == cpu.TRAPV:
		return []string{LabelNoTrap, LabelTrap}
	default:
		return []string{LabelMin, LabelMax}
	}
}
