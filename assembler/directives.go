package assembler

import (
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/set"
)

// Directive is a canonical, upper case assembler directive name.
type Directive string

// Directives the resolver and size calculator act on.
const (
	DirDC  Directive = "DC"
	DirDCB Directive = "DCB"
	DirDS  Directive = "DS"
	DirDB  Directive = "DB"
	DirDW  Directive = "DW"
	DirDL  Directive = "DL"

	DirSection Directive = "SECTION"
	DirBSS     Directive = "BSS"
	DirBSSC    Directive = "BSS_C"
	DirBSSF    Directive = "BSS_F"
	DirCode    Directive = "CODE"
	DirCodeC   Directive = "CODE_C"
	DirCodeF   Directive = "CODE_F"
	DirData    Directive = "DATA"
	DirDataC   Directive = "DATA_C"
	DirDataF   Directive = "DATA_F"

	DirAssign Directive = "="
	DirEQU    Directive = "EQU"
	DirFEQU   Directive = "FEQU"
	DirSET    Directive = "SET"

	DirMacro Directive = "MACRO"
	DirEndM  Directive = "ENDM"
	DirRept  Directive = "REPT"
	DirEndR  Directive = "ENDR"
)

// otherDirectives are recognized lexically but do not affect sizes or timings.
var otherDirectives = []Directive{
	"CSEG", "DSEG",
	"INCLUDE", "INCDIR", "INCBIN",
	"IFEQ", "IFNE", "IFGT", "IFGE", "IFLT", "IFLE", "IFB", "IFNB", "IFC", "IFNC",
	"IFD", "IFND", "IFMACROD", "IFMACROND", "ELSE", "END", "ENDIF",
	"OPT", "ALIGN", "CARGS", "CLRFO", "CLRSO", "CNOP", "COMM", "COMMENT", "ECHO",
	"EINLINE", "ENDC", "ENDF", "ENDP", "EREM", "EVEN", "FAIL", "FPU", "IDNT",
	"INLINE", "JUMPPTR", "LIST", "LLEN", "LOAD", "MACHINE", "MEXIT", "MMU",
	"NOLIST", "NOPAGE", "NREF", "ODD", "OFFSET", "OPWORD", "ORG", "OUTPUT", "PAGE",
	"PLEN", "PRINTT", "PRINTV", "PUBLIC", "RECORD", "REM", "RORG", "RSRESET",
	"RSSET", "SETFO", "SETSO", "SPC", "TEXT", "TTL", "WEAK", "XDEF", "XREF",
}

var directiveAliases = map[string]Directive{
	"BLK": DirDCB,
}

var (
	assignmentDirectives = newDirectiveSet(DirAssign, DirEQU, DirFEQU, DirSET)

	sectionDirectives = newDirectiveSet(
		DirSection, DirBSS, DirBSSC, DirBSSF,
		DirData, DirDataC, DirDataF,
		DirCode, DirCodeC, DirCodeF,
	)

	directiveSet = newDirectiveSet(append([]Directive{
		DirDC, DirDCB, DirDS, DirDB, DirDW, DirDL,
		DirSection, DirBSS, DirBSSC, DirBSSF, DirCode, DirCodeC, DirCodeF,
		DirData, DirDataC, DirDataF,
		DirAssign, DirEQU, DirFEQU, DirSET,
		DirMacro, DirEndM, DirRept, DirEndR,
	}, otherDirectives...)...)
)

func newDirectiveSet(directives ...Directive) set.Set[Directive] {
	s := set.New[Directive]()
	for _, d := range directives {
		s.Add(d)
	}
	return s
}

// LookupDirective resolves a case insensitive directive name, applying aliases.
func LookupDirective(name string) (Directive, bool) {
	name = strings.ToUpper(name)
	if alias, ok := directiveAliases[name]; ok {
		return alias, true
	}
	d := Directive(name)
	if !directiveSet.Contains(d) {
		return "", false
	}
	return d, true
}

// IsAssignment reports whether d assigns a value to its label.
func (d Directive) IsAssignment() bool { return assignmentDirectives.Contains(d) }

// IsSection reports whether d switches the current section.
func (d Directive) IsSection() bool { return sectionDirectives.Contains(d) }

// directiveSize returns the number of bytes a data directive emits or reserves.
func directiveSize(stmt *Statement, vars map[string]int64) int {
	op := stmt.Opcode
	switch op.Directive {
	case DirDC:
		if op.Size == cpu.SizeNone || op.Size == cpu.SizeByte {
			return dataBytes(stmt.Operands)
		}
		return len(stmt.Operands) * op.Size.Bytes()

	case DirDB:
		return dataBytes(stmt.Operands)

	case DirDW:
		return len(stmt.Operands) * 2

	case DirDL:
		return len(stmt.Operands) * 4

	case DirDCB, DirDS:
		if len(stmt.Operands) == 0 {
			return 0
		}
		count, ok := Evaluate(stmt.Operands[0].Text, vars)
		if !ok || count <= 0 {
			return 0
		}
		width := op.Size.Bytes()
		if op.Size == cpu.SizeNone {
			width = cpu.SizeWord.Bytes()
		}
		return int(count) * width
	}
	return 0
}

// dataBytes counts one byte per value, or the decoded length of a string.
func dataBytes(operands []Operand) int {
	n := 0
	for _, o := range operands {
		if o.Kind == OperandString {
			n += len(o.Str)
			continue
		}
		n++
	}
	return n
}
