package assembler

import (
	"regexp"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// Operand pattern fragments.
const (
	reDn    = `(d[0-7])`
	reAn    = `(a[0-7]|sp)`
	reRn    = `([ad][0-7]|sp)`
	reOpen  = `\(\s*`
	reClose = `\s*\)`
	reComma = `\s*,\s*`
	reIndex = reRn + `(\.(w|l))?`
)

type modePattern struct {
	mode cpu.Mode
	re   *regexp.Regexp
}

func mustMode(mode cpu.Mode, expr string) modePattern {
	return modePattern{mode: mode, re: regexp.MustCompile(`(?i)` + expr)}
}

// operandPatterns are tried in order and the first match wins. Index forms
// come before displacement forms, which would also match them.
var operandPatterns = []modePattern{
	mustMode(cpu.ModeDn, `^`+reDn+`$`),
	mustMode(cpu.ModeAn, `^`+reAn+`$`),
	mustMode(cpu.ModeAnInd, `^`+reOpen+reAn+reClose+`$`),
	mustMode(cpu.ModeAnPostInc, `^`+reOpen+reAn+reClose+`\+$`),
	mustMode(cpu.ModeAnPreDec, `^-`+reOpen+reAn+reClose+`$`),
	// An,Xn)
	mustMode(cpu.ModeAnDispIx, reAn+reComma+reIndex+reClose),
	// d(An) or (d,An)
	mustMode(cpu.ModeAnDisp, `(\w`+reOpen+reAn+`|`+reOpen+`[-\w]+`+reComma+reAn+reClose+`$)`),
	// PC,Xn)
	mustMode(cpu.ModePCDispIx, `pc`+reComma+reIndex+reClose),
	// d(PC) or (d,PC)
	mustMode(cpu.ModePCDisp, `(\w`+reOpen+`pc|`+reOpen+`[-\w]+`+reComma+`pc`+reClose+`$)`),
	mustMode(cpu.ModeImm, `^#.`),
	// Rn-Rn or Rn/Rn
	mustMode(cpu.ModeRegList, reRn+`[/-]`+reRn),
	mustMode(cpu.ModeCCR, `^ccr$`),
	mustMode(cpu.ModeSR, `^sr$`),
	mustMode(cpu.ModeUSP, `^usp$`),
	mustMode(cpu.ModeAbsW, `\.w$`),
}

// OperandMode classifies the addressing mode of an operand. Text that matches
// no pattern is an absolute long address.
func OperandMode(text string) cpu.Mode {
	for _, p := range operandPatterns {
		if p.re.MatchString(text) {
			return p.mode
		}
	}
	return cpu.ModeAbsL
}
