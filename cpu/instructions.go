package cpu

import (
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Size defines the data size qualifier of an instruction or directive.
type Size int

const (
	// SizeNone is the zero value, indicating no size suffix was provided
	// or that the instruction is unsized.
	SizeNone Size = iota
	// SizeByte represents 8-bit data size.
	SizeByte
	// SizeWord represents 16-bit data size.
	SizeWord
	// SizeLong represents 32-bit data size.
	SizeLong
	// SizeShort is the .S branch suffix, and single precision for data directives.
	SizeShort
	// SizeDouble is double precision.
	SizeDouble
	// SizeQuad is a packed BCD quad.
	SizeQuad
	// SizeExtended is extended precision.
	SizeExtended
)

var sizeLetters = map[Size]string{
	SizeByte:     "B",
	SizeWord:     "W",
	SizeLong:     "L",
	SizeShort:    "S",
	SizeDouble:   "D",
	SizeQuad:     "Q",
	SizeExtended: "X",
}

var sizeBytes = map[Size]int{
	SizeByte:     1,
	SizeWord:     2,
	SizeLong:     4,
	SizeShort:    4,
	SizeDouble:   8,
	SizeQuad:     8,
	SizeExtended: 12,
}

// ParseSize parses a single letter qualifier such as "w" or "L".
func ParseSize(s string) (Size, bool) {
	s = strings.ToUpper(s)
	for sz, letter := range sizeLetters {
		if letter == s {
			return sz, true
		}
	}
	return SizeNone, false
}

// String returns the qualifier letter, or an empty string for SizeNone.
func (s Size) String() string {
	return sizeLetters[s]
}

// Bytes returns the width in bytes of one element of this size.
func (s Size) Bytes() int {
	return sizeBytes[s]
}

// Mnemonic is a canonical, upper case instruction name.
type Mnemonic string

// Instruction mnemonics.
const (
	// Arithmetic
	ABCD  Mnemonic = "ABCD"
	ADD   Mnemonic = "ADD"
	ADDA  Mnemonic = "ADDA"
	ADDI  Mnemonic = "ADDI"
	ADDQ  Mnemonic = "ADDQ"
	ADDX  Mnemonic = "ADDX"
	CLR   Mnemonic = "CLR"
	CMP   Mnemonic = "CMP"
	CMPA  Mnemonic = "CMPA"
	CMPI  Mnemonic = "CMPI"
	CMPM  Mnemonic = "CMPM"
	DIVS  Mnemonic = "DIVS"
	DIVU  Mnemonic = "DIVU"
	EXT   Mnemonic = "EXT"
	MULS  Mnemonic = "MULS"
	MULU  Mnemonic = "MULU"
	NBCD  Mnemonic = "NBCD"
	NEG   Mnemonic = "NEG"
	NEGX  Mnemonic = "NEGX"
	SBCD  Mnemonic = "SBCD"
	SUB   Mnemonic = "SUB"
	SUBA  Mnemonic = "SUBA"
	SUBI  Mnemonic = "SUBI"
	SUBQ  Mnemonic = "SUBQ"
	SUBX  Mnemonic = "SUBX"
	TAS   Mnemonic = "TAS"
	TST   Mnemonic = "TST"
	CHK   Mnemonic = "CHK"
	SWAP  Mnemonic = "SWAP"
	EXG   Mnemonic = "EXG"
	LEA   Mnemonic = "LEA"
	PEA   Mnemonic = "PEA"
	LINK  Mnemonic = "LINK"
	UNLK  Mnemonic = "UNLK"
	MOVE  Mnemonic = "MOVE"
	MOVEA Mnemonic = "MOVEA"
	MOVEM Mnemonic = "MOVEM"
	MOVEP Mnemonic = "MOVEP"
	MOVEQ Mnemonic = "MOVEQ"

	// Logical
	AND  Mnemonic = "AND"
	ANDI Mnemonic = "ANDI"
	EOR  Mnemonic = "EOR"
	EORI Mnemonic = "EORI"
	NOT  Mnemonic = "NOT"
	OR   Mnemonic = "OR"
	ORI  Mnemonic = "ORI"

	// Shift and rotate
	ASL  Mnemonic = "ASL"
	ASR  Mnemonic = "ASR"
	LSL  Mnemonic = "LSL"
	LSR  Mnemonic = "LSR"
	ROL  Mnemonic = "ROL"
	ROR  Mnemonic = "ROR"
	ROXL Mnemonic = "ROXL"
	ROXR Mnemonic = "ROXR"

	// Bit manipulation
	BCHG Mnemonic = "BCHG"
	BCLR Mnemonic = "BCLR"
	BSET Mnemonic = "BSET"
	BTST Mnemonic = "BTST"

	// Program control
	BRA     Mnemonic = "BRA"
	BSR     Mnemonic = "BSR"
	JMP     Mnemonic = "JMP"
	JSR     Mnemonic = "JSR"
	NOP     Mnemonic = "NOP"
	RESET   Mnemonic = "RESET"
	RTE     Mnemonic = "RTE"
	RTR     Mnemonic = "RTR"
	RTS     Mnemonic = "RTS"
	STOP    Mnemonic = "STOP"
	TRAP    Mnemonic = "TRAP"
	TRAPV   Mnemonic = "TRAPV"
	ILLEGAL Mnemonic = "ILLEGAL"

	// Branch on condition
	BCC Mnemonic = "BCC"
	BCS Mnemonic = "BCS"
	BEQ Mnemonic = "BEQ"
	BGE Mnemonic = "BGE"
	BGT Mnemonic = "BGT"
	BHI Mnemonic = "BHI"
	BLE Mnemonic = "BLE"
	BLS Mnemonic = "BLS"
	BLT Mnemonic = "BLT"
	BMI Mnemonic = "BMI"
	BNE Mnemonic = "BNE"
	BPL Mnemonic = "BPL"
	BVC Mnemonic = "BVC"
	BVS Mnemonic = "BVS"

	// Decrement and branch
	DBCC Mnemonic = "DBCC"
	DBCS Mnemonic = "DBCS"
	DBEQ Mnemonic = "DBEQ"
	DBF  Mnemonic = "DBF"
	DBGE Mnemonic = "DBGE"
	DBGT Mnemonic = "DBGT"
	DBHI Mnemonic = "DBHI"
	DBLE Mnemonic = "DBLE"
	DBLS Mnemonic = "DBLS"
	DBLT Mnemonic = "DBLT"
	DBMI Mnemonic = "DBMI"
	DBNE Mnemonic = "DBNE"
	DBPL Mnemonic = "DBPL"
	DBT  Mnemonic = "DBT"
	DBVC Mnemonic = "DBVC"
	DBVS Mnemonic = "DBVS"

	// Set on condition
	SCC Mnemonic = "SCC"
	SCS Mnemonic = "SCS"
	SEQ Mnemonic = "SEQ"
	SF  Mnemonic = "SF"
	SGE Mnemonic = "SGE"
	SGT Mnemonic = "SGT"
	SHI Mnemonic = "SHI"
	SLE Mnemonic = "SLE"
	SLS Mnemonic = "SLS"
	SLT Mnemonic = "SLT"
	SMI Mnemonic = "SMI"
	SNE Mnemonic = "SNE"
	SPL Mnemonic = "SPL"
	ST  Mnemonic = "ST"
	SVC Mnemonic = "SVC"
	SVS Mnemonic = "SVS"
)

// Mnemonic families that share sizing and timing rules.
var (
	BccGroup = []Mnemonic{
		BCC, BCS, BEQ, BGE, BGT, BHI, BLE, BLS, BLT, BMI, BNE, BPL, BVC, BVS,
	}
	DBccGroup = []Mnemonic{
		DBCC, DBCS, DBEQ, DBF, DBGE, DBGT, DBHI, DBLE, DBLS, DBLT, DBMI, DBNE, DBPL, DBT, DBVC, DBVS,
	}
	SccGroup = []Mnemonic{
		SCC, SCS, SEQ, SF, SGE, SGT, SHI, SLE, SLS, SLT, SMI, SNE, SPL, ST, SVC, SVS,
	}
	ShiftGroup = []Mnemonic{
		LSL, LSR, ASL, ASR, ROL, ROR, ROXL, ROXR,
	}
)

// mnemonicAliases maps alternate spellings to the canonical mnemonic.
var mnemonicAliases = map[string]Mnemonic{
	"BLO":  BCS,
	"BHS":  BCC,
	"DBLO": DBCS,
	"DBHS": DBCC,
	"DBRA": DBF,
	"SLO":  SCS,
	"SHS":  SCC,
}

var (
	bccSet   = newMnemonicSet(BccGroup...)
	dbccSet  = newMnemonicSet(DBccGroup...)
	sccSet   = newMnemonicSet(SccGroup...)
	shiftSet = newMnemonicSet(ShiftGroup...)

	mnemonicSet = newMnemonicSet(append(append(append(append([]Mnemonic{
		ABCD, ADD, ADDA, ADDI, ADDQ, ADDX, CLR, CMP, CMPA, CMPI, CMPM, DIVS, DIVU, EXT,
		MULS, MULU, NBCD, NEG, NEGX, SBCD, SUB, SUBA, SUBI, SUBQ, SUBX, TAS, TST, CHK,
		SWAP, EXG, LEA, PEA, LINK, UNLK, MOVE, MOVEA, MOVEM, MOVEP, MOVEQ,
		AND, ANDI, EOR, EORI, NOT, OR, ORI,
		BCHG, BCLR, BSET, BTST,
		BRA, BSR, JMP, JSR, NOP, RESET, RTE, RTR, RTS, STOP, TRAP, TRAPV, ILLEGAL,
	}, BccGroup...), DBccGroup...), SccGroup...), ShiftGroup...)...)
)

func newMnemonicSet(mnemonics ...Mnemonic) set.Set[Mnemonic] {
	s := set.New[Mnemonic]()
	for _, m := range mnemonics {
		s.Add(m)
	}
	return s
}

// LookupMnemonic resolves a case insensitive instruction name, applying aliases.
func LookupMnemonic(name string) (Mnemonic, bool) {
	name = strings.ToUpper(name)
	if alias, ok := mnemonicAliases[name]; ok {
		return alias, true
	}
	m := Mnemonic(name)
	if !mnemonicSet.Contains(m) {
		return "", false
	}
	return m, true
}

// IsBcc reports whether m is a conditional branch.
func (m Mnemonic) IsBcc() bool { return bccSet.Contains(m) }

// IsDBcc reports whether m is a decrement and branch instruction.
func (m Mnemonic) IsDBcc() bool { return dbccSet.Contains(m) }

// IsScc reports whether m is a set on condition instruction.
func (m Mnemonic) IsScc() bool { return sccSet.Contains(m) }

// IsShift reports whether m is a shift or rotate instruction.
func (m Mnemonic) IsShift() bool { return shiftSet.Contains(m) }

// IsBranch reports whether m is BRA, BSR or a conditional branch.
func (m Mnemonic) IsBranch() bool {
	return m == BRA || m == BSR || m.IsBcc()
}
