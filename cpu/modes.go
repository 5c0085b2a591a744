package cpu

// Mode is the addressing mode category of an operand.
type Mode int

// Addressing modes, in the order the operand classifier tries them.
const (
	// ModeInvalid is the zero value for operands that are not effective addresses.
	ModeInvalid Mode = iota

	// Data Register Direct: Dn
	ModeDn

	// Address Register Direct: An
	ModeAn

	// Address Register Indirect: (An)
	ModeAnInd

	// Address Register Indirect with Postincrement: (An)+
	ModeAnPostInc

	// Address Register Indirect with Predecrement: -(An)
	ModeAnPreDec

	// Address Register Indirect with Displacement: d(An)
	ModeAnDisp

	// Address Register Indirect with Index: d(An,Xn)
	ModeAnDispIx

	// Program counter with displacement: d(PC)
	ModePCDisp

	// Program counter with index: d(PC,Xn)
	ModePCDispIx

	// Absolute short address: xxx.W
	ModeAbsW

	// Absolute long address: xxx.L
	ModeAbsL

	// Register list for MOVEM: d0-d7/a0
	ModeRegList

	// Immediate: #<data>
	ModeImm

	// Special registers.
	ModeCCR
	ModeSR
	ModeUSP
)

var modeNames = map[Mode]string{
	ModeDn:        "Dn",
	ModeAn:        "An",
	ModeAnInd:     "(An)",
	ModeAnPostInc: "(An)+",
	ModeAnPreDec:  "-(An)",
	ModeAnDisp:    "d(An)",
	ModeAnDispIx:  "d(An,ix)",
	ModePCDisp:    "d(PC)",
	ModePCDispIx:  "d(PC,ix)",
	ModeAbsW:      "xxx.W",
	ModeAbsL:      "xxx.L",
	ModeRegList:   "RegList",
	ModeImm:       "#xxx",
	ModeCCR:       "CCR",
	ModeSR:        "SR",
	ModeUSP:       "USP",
}

// String returns the mode name used in timing table keys.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "invalid"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// HasExtension reports whether the mode takes a displacement or index extension word.
func (m Mode) HasExtension() bool {
	switch m {
	case ModeAnDisp, ModeAnDispIx, ModePCDisp, ModePCDispIx:
		return true
	}
	return false
}

// Addressing mode groups used by the timing tables.
var (
	// ModesEA are all effective address modes.
	ModesEA = []Mode{
		ModeDn, ModeAn,
		ModeAnInd, ModeAnPostInc, ModeAnPreDec, ModeAnDisp, ModeAnDispIx,
		ModePCDisp, ModePCDispIx,
		ModeAbsW, ModeAbsL,
		ModeImm,
	}

	// ModesDI are the data, address and immediate modes.
	ModesDI = []Mode{ModeDn, ModeAn, ModeImm}

	// ModesM are the memory modes.
	ModesM = []Mode{
		ModeAnInd, ModeAnPostInc, ModeAnPreDec, ModeAnDisp, ModeAnDispIx,
		ModePCDisp, ModePCDispIx,
		ModeAbsW, ModeAbsL,
	}
)

// Register numbers
const (
	// Data registers
	D0 = 0
	D7 = 7

	// Address registers are numbered after the data registers in register lists.
	A0 = 8
	A7 = 15 // stack pointer
)
