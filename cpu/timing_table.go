package cpu

import (
	"strings"
	"sync"
)

// TimingEntry is one flattened row of the timing table.
type TimingEntry struct {
	// Base holds one timing per outcome, e.g. branch taken and not taken.
	Base []Timing
	// EA is the effective address calculation surcharge, if the row declared one.
	EA *Timing
	// Multiplier is the cost per unit of the instruction's n value.
	Multiplier *Timing
}

// TimingKey builds the table key for an instruction, e.g. "MOVE.W Dn,(An)".
func TimingKey(m Mnemonic, size Size, modes ...Mode) string {
	var sb strings.Builder
	sb.WriteString(string(m))
	if size != SizeNone {
		sb.WriteByte('.')
		sb.WriteString(size.String())
	}
	for i, mode := range modes {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(mode.String())
	}
	return sb.String()
}

var (
	timingOnce  sync.Once
	timingTable map[string]TimingEntry
)

// TimingTable returns the flattened timing table. It is built on first use
// and must not be modified by callers.
func TimingTable() map[string]TimingEntry {
	timingOnce.Do(func() {
		timingTable = buildTimingTable()
	})
	return timingTable
}

// LookupTiming returns the timing entry for a key built by TimingKey.
func LookupTiming(key string) (TimingEntry, bool) {
	e, ok := TimingTable()[key]
	return e, ok
}

// eaCosts holds the effective address calculation times for byte/word and long operations.
var eaCosts = map[Mode][2]Timing{
	ModeDn:        {{0, 0, 0}, {0, 0, 0}},
	ModeAn:        {{0, 0, 0}, {0, 0, 0}},
	ModeAnInd:     {{4, 1, 0}, {8, 2, 0}},
	ModeAnPostInc: {{4, 1, 0}, {8, 2, 0}},
	ModeAnPreDec:  {{6, 1, 0}, {10, 2, 0}},
	ModeAnDisp:    {{8, 2, 0}, {12, 3, 0}},
	ModeAnDispIx:  {{10, 2, 0}, {14, 3, 0}},
	ModeAbsW:      {{8, 2, 0}, {12, 3, 0}},
	ModeAbsL:      {{12, 3, 0}, {16, 4, 0}},
	ModePCDisp:    {{8, 2, 0}, {12, 3, 0}},
	ModePCDispIx:  {{10, 2, 0}, {14, 3, 0}},
	ModeImm:       {{4, 1, 0}, {8, 2, 0}},
}

// EACost returns the effective address calculation time of a mode.
func EACost(m Mode, long bool) Timing {
	c := eaCosts[m]
	if long {
		return c[1]
	}
	return c[0]
}

// operandSpec is either a single concrete mode or a group of modes
// that is expanded into one table entry per member.
type operandSpec struct {
	modes []Mode
	group bool
}

func one(m Mode) operandSpec { return operandSpec{modes: []Mode{m}} }

func group(modes []Mode) operandSpec { return operandSpec{modes: modes, group: true} }

type timingRow struct {
	mnemonics  []Mnemonic
	sizes      []Size
	operands   []operandSpec
	base       []Timing
	multiplier *Timing
}

var (
	sizeB   = []Size{SizeByte}
	sizeW   = []Size{SizeWord}
	sizeL   = []Size{SizeLong}
	sizeBW  = []Size{SizeByte, SizeWord}
	sizeWL  = []Size{SizeWord, SizeLong}
	sizeBWL = []Size{SizeByte, SizeWord, SizeLong}
	unsized = []Size{SizeNone}

	opDn      = one(ModeDn)
	opAn      = one(ModeAn)
	opAnInd   = one(ModeAnInd)
	opPostInc = one(ModeAnPostInc)
	opPreDec  = one(ModeAnPreDec)
	opAnDisp  = one(ModeAnDisp)
	opAnIx    = one(ModeAnDispIx)
	opPCDisp  = one(ModePCDisp)
	opPCIx    = one(ModePCDispIx)
	opAbsW    = one(ModeAbsW)
	opAbsL    = one(ModeAbsL)
	opRegList = one(ModeRegList)
	opImm     = one(ModeImm)
	opCCR     = one(ModeCCR)
	opSR      = one(ModeSR)
	opUSP     = one(ModeUSP)

	opEA = group(ModesEA)
	opDI = group(ModesDI)
	opM  = group(ModesM)
)

func mn(m ...Mnemonic) []Mnemonic { return m }

func ops(o ...operandSpec) []operandSpec { return o }

func tm(t ...Timing) []Timing { return t }

func per(clock, read, write int) *Timing { return &Timing{clock, read, write} }

// moveDestinations are the destination modes MOVE can write to.
var moveDestinations = []Mode{
	ModeDn, ModeAn, ModeAnInd, ModeAnPostInc, ModeAnPreDec,
	ModeAnDisp, ModeAnDispIx, ModeAbsW, ModeAbsL,
}

// moveWriteCost is the time MOVE spends on its destination, for byte/word and long.
var moveWriteCost = map[Mode][2]Timing{
	ModeDn:        {{0, 0, 0}, {0, 0, 0}},
	ModeAn:        {{0, 0, 0}, {0, 0, 0}},
	ModeAnInd:     {{4, 0, 1}, {8, 0, 2}},
	ModeAnPostInc: {{4, 0, 1}, {8, 0, 2}},
	ModeAnPreDec:  {{4, 0, 1}, {8, 0, 2}},
	ModeAnDisp:    {{8, 1, 1}, {12, 1, 2}},
	ModeAnDispIx:  {{10, 1, 1}, {14, 1, 2}},
	ModeAbsW:      {{8, 1, 1}, {12, 1, 2}},
	ModeAbsL:      {{12, 2, 1}, {16, 2, 2}},
}

// moveRows generates the MOVE and MOVEA execution times: a 4(1/0) opcode fetch,
// plus the source operand fetch, plus the destination write.
func moveRows() []timingRow {
	var rows []timingRow
	for _, sizes := range [][]Size{sizeBW, sizeL} {
		long := sizes[0] == SizeLong
		for _, src := range ModesEA {
			for _, dst := range moveDestinations {
				write := moveWriteCost[dst][0]
				if long {
					write = moveWriteCost[dst][1]
				}
				t := Timing{4, 1, 0}.Add(EACost(src, long)).Add(write)

				mnemonics := mn(MOVE)
				if dst == ModeAn {
					mnemonics = mn(MOVE, MOVEA)
				}
				rows = append(rows, timingRow{mnemonics, sizes, ops(one(src), one(dst)), tm(t), nil})
			}
		}
	}
	return rows
}

// timingRows are the remaining instruction execution times. Rows are applied
// in order and later rows replace earlier entries with the same key.
var timingRows = []timingRow{
	// Standard instructions
	{mn(ADD, SUB), sizeBW, ops(opEA, opAn), tm(Timing{8, 1, 0}), nil},
	{mn(ADDA, SUBA), sizeW, ops(opEA, opAn), tm(Timing{8, 1, 0}), nil},
	{mn(ADD, SUB), sizeBW, ops(opEA, opDn), tm(Timing{4, 1, 0}), nil},
	{mn(ADD, SUB), sizeBW, ops(opDn, opM), tm(Timing{8, 1, 1}), nil},
	{mn(ADD, ADDA, SUB, SUBA), sizeL, ops(opM, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(ADD, SUB), sizeL, ops(opM, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(ADD, ADDA, SUB, SUBA), sizeL, ops(opDI, opAn), tm(Timing{8, 1, 0}), nil},
	{mn(ADD, SUB), sizeL, ops(opDI, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(ADD, SUB), sizeL, ops(opDn, opM), tm(Timing{12, 1, 2}), nil},

	{mn(AND, OR), sizeBW, ops(opEA, opDn), tm(Timing{4, 1, 0}), nil},
	{mn(AND, OR), sizeBW, ops(opDn, opM), tm(Timing{8, 1, 1}), nil},
	{mn(AND, OR), sizeL, ops(opM, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(AND, OR), sizeL, ops(opDI, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(AND, OR), sizeL, ops(opDn, opM), tm(Timing{12, 1, 2}), nil},

	{mn(EOR), sizeBW, ops(opDn, opDn), tm(Timing{4, 1, 0}), nil},
	{mn(EOR), sizeBW, ops(opDn, opM), tm(Timing{8, 1, 1}), nil},
	{mn(EOR), sizeL, ops(opDn, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(EOR), sizeL, ops(opDn, opM), tm(Timing{12, 1, 2}), nil},

	{mn(CMP), sizeBW, ops(opEA, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(CMPA), sizeW, ops(opEA, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(CMP, CMPA), sizeL, ops(opEA, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(CMP), sizeL, ops(opEA, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(CMP), sizeBW, ops(opEA, opDn), tm(Timing{4, 1, 0}), nil},

	{mn(DIVS), sizeW, ops(opEA, opDn), tm(Timing{158, 1, 0}), nil},
	{mn(DIVU), sizeW, ops(opEA, opDn), tm(Timing{140, 1, 0}), nil},
	{mn(MULS, MULU), sizeW, ops(opEA, opDn), tm(Timing{38, 1, 0}), per(2, 0, 0)},

	// Immediate instructions
	{mn(ADD, ADDI, SUB, SUBI), sizeBW, ops(opImm, opDn), tm(Timing{8, 2, 0}), nil},
	{mn(ADD, ADDI, SUB, SUBI), sizeBW, ops(opImm, opM), tm(Timing{12, 2, 1}), nil},
	{mn(ADD, ADDI, SUB, SUBI), sizeL, ops(opImm, opDn), tm(Timing{16, 3, 0}), nil},
	{mn(ADD, ADDI, SUB, SUBI), sizeL, ops(opImm, opM), tm(Timing{20, 3, 2}), nil},

	{mn(ADDQ, SUBQ), sizeBW, ops(opImm, opDn), tm(Timing{4, 1, 0}), nil},
	{mn(ADDQ, SUBQ), sizeBW, ops(opImm, opAn), tm(Timing{8, 1, 0}), nil},
	{mn(ADDQ, SUBQ), sizeBW, ops(opImm, opM), tm(Timing{8, 1, 1}), nil},
	{mn(ADDQ, SUBQ), sizeL, ops(opImm, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(ADDQ, SUBQ), sizeL, ops(opImm, opAn), tm(Timing{8, 1, 0}), nil},
	{mn(ADDQ, SUBQ), sizeL, ops(opImm, opM), tm(Timing{12, 1, 2}), nil},

	{mn(AND, ANDI, OR, ORI), sizeBW, ops(opImm, opDn), tm(Timing{8, 2, 0}), nil},
	{mn(AND, ANDI, OR, ORI), sizeBW, ops(opImm, opM), tm(Timing{12, 2, 1}), nil},
	{mn(AND, ANDI, OR, ORI), sizeL, ops(opImm, opDn), tm(Timing{16, 3, 0}), nil},
	{mn(AND, ANDI, OR, ORI), sizeL, ops(opImm, opM), tm(Timing{20, 3, 2}), nil},

	{mn(CMP, CMPI), sizeBW, ops(opImm, opDn), tm(Timing{8, 2, 0}), nil},
	{mn(CMP, CMPI), sizeBW, ops(opImm, opM), tm(Timing{8, 2, 0}), nil},
	{mn(CMP, CMPI), sizeL, ops(opImm, opDn), tm(Timing{14, 3, 0}), nil},
	{mn(CMP, CMPI), sizeL, ops(opImm, opM), tm(Timing{12, 3, 0}), nil},

	{mn(EOR, EORI), sizeBW, ops(opImm, opDn), tm(Timing{8, 2, 0}), nil},
	{mn(EOR, EORI), sizeBW, ops(opImm, opM), tm(Timing{12, 2, 1}), nil},
	{mn(EOR, EORI), sizeL, ops(opImm, opDn), tm(Timing{16, 3, 0}), nil},
	{mn(EOR, EORI), sizeL, ops(opImm, opM), tm(Timing{20, 3, 2}), nil},

	{mn(MOVEQ), sizeL, ops(opImm, opDn), tm(Timing{4, 1, 0}), nil},

	// Single operand instructions
	{mn(CLR, NOT, NEG), sizeBW, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(CLR, NOT, NEG), sizeBW, ops(opM), tm(Timing{8, 1, 1}), nil},
	{mn(CLR, NOT, NEG), sizeL, ops(opDn), tm(Timing{6, 1, 0}), nil},
	{mn(CLR, NOT, NEG), sizeL, ops(opM), tm(Timing{12, 1, 2}), nil},

	{mn(NBCD), sizeB, ops(opDn), tm(Timing{6, 1, 0}), nil},
	{mn(NBCD), sizeB, ops(opM), tm(Timing{8, 1, 1}), nil},

	{mn(NEGX), sizeBW, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(NEGX), sizeBW, ops(opM), tm(Timing{8, 1, 1}), nil},
	{mn(NEGX), sizeL, ops(opDn), tm(Timing{6, 1, 0}), nil},
	{mn(NEGX), sizeL, ops(opM), tm(Timing{12, 1, 2}), nil},

	{SccGroup, sizeB, ops(opDn), tm(Timing{4, 1, 0}, Timing{6, 1, 0}), nil},
	{SccGroup, sizeB, ops(opM), tm(Timing{8, 1, 1}, Timing{8, 1, 1}), nil},

	{mn(TAS), sizeB, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(TAS), sizeB, ops(opM), tm(Timing{10, 1, 1}), nil},

	{mn(TST), sizeBWL, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(TST), sizeBWL, ops(opM), tm(Timing{4, 1, 0}), nil},

	// Shift and rotate instructions
	{ShiftGroup, sizeBW, ops(opImm, opDn), tm(Timing{6, 1, 0}), per(2, 0, 0)},
	{ShiftGroup, sizeBW, ops(opImm, opM), tm(Timing{8, 1, 1}), per(2, 0, 0)},
	{ShiftGroup, sizeBW, ops(opDn, opDn), tm(Timing{6, 1, 0}), per(2, 0, 0)},
	{ShiftGroup, sizeBW, ops(opDn, opM), tm(Timing{8, 1, 1}), per(2, 0, 0)},
	{ShiftGroup, sizeBW, ops(opDn), tm(Timing{8, 1, 0}), nil},
	{ShiftGroup, sizeBW, ops(opM), tm(Timing{8, 1, 1}), nil},
	{ShiftGroup, sizeL, ops(opImm, opDn), tm(Timing{8, 1, 0}), per(2, 0, 0)},
	{ShiftGroup, sizeL, ops(opDn), tm(Timing{10, 1, 0}), nil},
	{ShiftGroup, sizeL, ops(opDn, opDn), tm(Timing{8, 1, 0}), per(2, 0, 0)},

	// Bit manipulation instructions
	{mn(BCHG, BSET, BCLR), sizeB, ops(opDn, opM), tm(Timing{8, 1, 1}), nil},
	{mn(BCHG, BSET, BCLR), sizeB, ops(opImm, opM), tm(Timing{12, 2, 1}), nil},
	{mn(BCHG, BSET), sizeL, ops(opDn, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(BCHG, BSET), sizeL, ops(opImm, opDn), tm(Timing{12, 2, 0}), nil},
	{mn(BCLR), sizeL, ops(opDn, opDn), tm(Timing{10, 1, 0}), nil},
	{mn(BCLR), sizeL, ops(opImm, opDn), tm(Timing{14, 2, 0}), nil},

	{mn(BTST), sizeB, ops(opDn, opM), tm(Timing{4, 1, 0}), nil},
	{mn(BTST), sizeB, ops(opImm, opM), tm(Timing{8, 2, 0}), nil},
	{mn(BTST), sizeB, ops(opDn, opImm), tm(Timing{10, 2, 0}), nil},
	{mn(BTST), sizeL, ops(opDn, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(BTST), sizeL, ops(opImm, opDn), tm(Timing{10, 2, 0}), nil},

	// Conditional instructions: taken, not taken, expired
	{BccGroup, sizeB, ops(opAbsL), tm(Timing{10, 2, 0}, Timing{8, 1, 0}), nil},
	{BccGroup, sizeW, ops(opAbsL), tm(Timing{10, 2, 0}, Timing{12, 2, 0}), nil},
	{mn(BRA), sizeBW, ops(opAbsL), tm(Timing{10, 2, 0}), nil},
	{mn(BSR), sizeBW, ops(opAbsL), tm(Timing{18, 2, 2}), nil},
	{DBccGroup, sizeW, ops(opDn, opAbsL), tm(Timing{10, 2, 0}, Timing{12, 2, 0}, Timing{14, 3, 0}), nil},

	// JMP, JSR, LEA, PEA
	{mn(JMP), unsized, ops(opAnInd), tm(Timing{8, 2, 0}), nil},
	{mn(JMP), unsized, ops(opAnDisp), tm(Timing{10, 2, 0}), nil},
	{mn(JMP), unsized, ops(opAnIx), tm(Timing{14, 2, 0}), nil},
	{mn(JMP), unsized, ops(opAbsW), tm(Timing{10, 2, 0}), nil},
	{mn(JMP), unsized, ops(opAbsL), tm(Timing{12, 3, 0}), nil},
	{mn(JMP), unsized, ops(opPCDisp), tm(Timing{10, 2, 0}), nil},
	{mn(JMP), unsized, ops(opPCIx), tm(Timing{14, 2, 0}), nil},

	{mn(JSR), unsized, ops(opAnInd), tm(Timing{16, 2, 2}), nil},
	{mn(JSR), unsized, ops(opAnDisp), tm(Timing{18, 2, 2}), nil},
	{mn(JSR), unsized, ops(opAnIx), tm(Timing{22, 2, 2}), nil},
	{mn(JSR), unsized, ops(opAbsW), tm(Timing{18, 2, 2}), nil},
	{mn(JSR), unsized, ops(opAbsL), tm(Timing{20, 3, 2}), nil},
	{mn(JSR), unsized, ops(opPCDisp), tm(Timing{18, 2, 2}), nil},
	{mn(JSR), unsized, ops(opPCIx), tm(Timing{22, 2, 2}), nil},

	{mn(LEA), sizeL, ops(opAnInd, opAn), tm(Timing{4, 1, 0}), nil},
	{mn(LEA), sizeL, ops(opAnDisp, opAn), tm(Timing{8, 2, 0}), nil},
	{mn(LEA), sizeL, ops(opAnIx, opAn), tm(Timing{12, 2, 0}), nil},
	{mn(LEA), sizeL, ops(opAbsW, opAn), tm(Timing{8, 2, 0}), nil},
	{mn(LEA), sizeL, ops(opAbsL, opAn), tm(Timing{12, 3, 0}), nil},
	{mn(LEA), sizeL, ops(opPCDisp, opAn), tm(Timing{8, 2, 0}), nil},
	{mn(LEA), sizeL, ops(opPCIx, opAn), tm(Timing{12, 2, 0}), nil},

	{mn(PEA), sizeL, ops(opAnInd), tm(Timing{12, 1, 2}), nil},
	{mn(PEA), sizeL, ops(opAnDisp), tm(Timing{16, 2, 2}), nil},
	{mn(PEA), sizeL, ops(opAnIx), tm(Timing{20, 2, 2}), nil},
	{mn(PEA), sizeL, ops(opAbsW), tm(Timing{16, 2, 2}), nil},
	{mn(PEA), sizeL, ops(opAbsL), tm(Timing{20, 3, 2}), nil},
	{mn(PEA), sizeL, ops(opPCDisp), tm(Timing{16, 2, 2}), nil},
	{mn(PEA), sizeL, ops(opPCIx), tm(Timing{20, 2, 2}), nil},

	// MOVEM memory to registers
	{mn(MOVEM), sizeW, ops(opAnInd, opRegList), tm(Timing{12, 3, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opPostInc, opRegList), tm(Timing{12, 3, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opAnDisp, opRegList), tm(Timing{16, 4, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opAnIx, opRegList), tm(Timing{18, 4, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opAbsW, opRegList), tm(Timing{16, 4, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opAbsL, opRegList), tm(Timing{20, 5, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opPCDisp, opRegList), tm(Timing{16, 4, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeW, ops(opPCIx, opRegList), tm(Timing{18, 4, 0}), per(4, 1, 0)},
	{mn(MOVEM), sizeL, ops(opAnInd, opRegList), tm(Timing{12, 3, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opPostInc, opRegList), tm(Timing{12, 3, 0}), per(8, 1, 0)},
	{mn(MOVEM), sizeL, ops(opAnDisp, opRegList), tm(Timing{16, 4, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opAnIx, opRegList), tm(Timing{18, 4, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opAbsW, opRegList), tm(Timing{16, 4, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opAbsL, opRegList), tm(Timing{20, 5, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opPCDisp, opRegList), tm(Timing{16, 4, 0}), per(8, 2, 0)},
	{mn(MOVEM), sizeL, ops(opPCIx, opRegList), tm(Timing{18, 4, 0}), per(8, 2, 0)},

	// MOVEM registers to memory
	{mn(MOVEM), sizeW, ops(opRegList, opAnInd), tm(Timing{8, 2, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeW, ops(opRegList, opPreDec), tm(Timing{8, 2, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeW, ops(opRegList, opAnDisp), tm(Timing{12, 3, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeW, ops(opRegList, opAnIx), tm(Timing{14, 3, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeW, ops(opRegList, opAbsW), tm(Timing{12, 3, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeW, ops(opRegList, opAbsL), tm(Timing{16, 4, 0}), per(4, 0, 1)},
	{mn(MOVEM), sizeL, ops(opRegList, opAnInd), tm(Timing{8, 2, 0}), per(8, 0, 2)},
	{mn(MOVEM), sizeL, ops(opRegList, opPreDec), tm(Timing{8, 2, 0}), per(8, 0, 2)},
	{mn(MOVEM), sizeL, ops(opRegList, opAnDisp), tm(Timing{12, 3, 0}), per(8, 0, 2)},
	{mn(MOVEM), sizeL, ops(opRegList, opAnIx), tm(Timing{14, 3, 0}), per(8, 0, 2)},
	{mn(MOVEM), sizeL, ops(opRegList, opAbsW), tm(Timing{12, 3, 0}), per(8, 0, 2)},
	{mn(MOVEM), sizeL, ops(opRegList, opAbsL), tm(Timing{16, 4, 0}), per(8, 0, 2)},

	// Multiprecision instructions
	{mn(ADDX, SUBX), sizeBW, ops(opDn, opDn), tm(Timing{4, 1, 0}), nil},
	{mn(ADDX, SUBX), sizeBW, ops(opPreDec, opPreDec), tm(Timing{18, 3, 1}), nil},
	{mn(ADDX, SUBX), sizeL, ops(opDn, opDn), tm(Timing{8, 1, 0}), nil},
	{mn(ADDX, SUBX), sizeL, ops(opPreDec, opPreDec), tm(Timing{30, 5, 2}), nil},
	{mn(CMPM), sizeBW, ops(opPostInc, opPostInc), tm(Timing{12, 3, 0}), nil},
	{mn(CMPM), sizeL, ops(opPostInc, opPostInc), tm(Timing{20, 5, 0}), nil},
	{mn(ABCD, SBCD), sizeB, ops(opDn, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(ABCD, SBCD), sizeB, ops(opPreDec, opPreDec), tm(Timing{18, 3, 1}), nil},

	// Miscellaneous instructions: no trap, trap >, trap <
	{mn(CHK), sizeWL, ops(opEA, opDn), tm(Timing{10, 1, 0}, Timing{38, 5, 3}, Timing{40, 5, 3}), nil},
	{mn(EXG), sizeL, ops(opDn, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(EXG), sizeL, ops(opDn, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(EXG), sizeL, ops(opAn, opDn), tm(Timing{6, 1, 0}), nil},
	{mn(EXG), sizeL, ops(opAn, opAn), tm(Timing{6, 1, 0}), nil},
	{mn(EXT), sizeWL, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(LINK), sizeWL, ops(opAn, opImm), tm(Timing{16, 2, 2}), nil},
	{mn(NOP), unsized, nil, tm(Timing{4, 1, 0}), nil},
	{mn(RESET), unsized, nil, tm(Timing{132, 1, 0}), nil},
	{mn(RTE), unsized, nil, tm(Timing{20, 5, 0}), nil},
	{mn(RTR), unsized, nil, tm(Timing{20, 5, 0}), nil},
	{mn(RTS), unsized, nil, tm(Timing{16, 4, 0}), nil},
	{mn(STOP), unsized, ops(opImm), tm(Timing{4, 1, 0}), nil},
	{mn(SWAP), sizeW, ops(opDn), tm(Timing{4, 1, 0}), nil},
	{mn(TRAP), unsized, ops(opImm), tm(Timing{34, 4, 3}), nil},
	{mn(TRAPV), unsized, nil, tm(Timing{4, 1, 0}, Timing{34, 5, 3}), nil},
	{mn(UNLK), unsized, ops(opAn), tm(Timing{12, 3, 0}), nil},
	{mn(ILLEGAL), unsized, nil, tm(Timing{34, 4, 3}), nil},

	// CCR and SR
	{mn(AND, ANDI, EOR, EORI), sizeBW, ops(opImm, opCCR), tm(Timing{20, 3, 0}), nil},
	{mn(OR, ORI), sizeBW, ops(opImm, opCCR), tm(Timing{20, 3, 0}), nil},
	{mn(AND, ANDI, EOR, EORI), sizeBW, ops(opImm, opSR), tm(Timing{20, 3, 0}), nil},
	{mn(OR, ORI), sizeBW, ops(opImm, opSR), tm(Timing{20, 3, 0}), nil},
	{mn(MOVE), sizeW, ops(opSR, opEA), tm(Timing{6, 1, 0}), nil},
	{mn(MOVE), sizeW, ops(opEA, opCCR), tm(Timing{12, 1, 0}), nil},
	{mn(MOVE), sizeW, ops(opEA, opSR), tm(Timing{12, 1, 0}), nil},
	{mn(MOVE), sizeL, ops(opAn, opUSP), tm(Timing{4, 1, 0}), nil},
	{mn(MOVE), sizeL, ops(opUSP, opAn), tm(Timing{4, 1, 0}), nil},

	// Move peripheral instructions
	{mn(MOVEP), sizeW, ops(opDn, opAnDisp), tm(Timing{16, 2, 2}), nil},
	{mn(MOVEP), sizeW, ops(opAnDisp, opDn), tm(Timing{16, 4, 0}), nil},
	{mn(MOVEP), sizeL, ops(opDn, opAnDisp), tm(Timing{24, 2, 4}), nil},
	{mn(MOVEP), sizeL, ops(opAnDisp, opDn), tm(Timing{24, 6, 0}), nil},
}

// buildTimingTable flattens the rows into a map keyed by TimingKey.
func buildTimingTable() map[string]TimingEntry {
	table := make(map[string]TimingEntry, 2048)
	for _, row := range moveRows() {
		row.expand(table)
	}
	for _, row := range timingRows {
		row.expand(table)
	}
	return table
}

// expand adds one entry per mnemonic, size and concrete operand mode of the row.
func (r timingRow) expand(table map[string]TimingEntry) {
	for _, m := range r.mnemonics {
		for _, size := range r.sizes {
			long := size == SizeLong

			switch {
			case len(r.operands) > 0 && r.operands[0].group:
				for _, mode := range r.operands[0].modes {
					ea := sourceEACost(m, mode, long)
					modes := []Mode{mode}
					if len(r.operands) > 1 {
						modes = append(modes, r.operands[1].modes[0])
					}
					table[TimingKey(m, size, modes...)] = r.entry(&ea)
				}

			case len(r.operands) > 1 && r.operands[1].group:
				for _, mode := range r.operands[1].modes {
					ea := EACost(mode, long)
					table[TimingKey(m, size, r.operands[0].modes[0], mode)] = r.entry(&ea)
				}

			default:
				modes := make([]Mode, 0, len(r.operands))
				for _, o := range r.operands {
					modes = append(modes, o.modes[0])
				}
				table[TimingKey(m, size, modes...)] = r.entry(nil)
			}
		}
	}
}

func (r timingRow) entry(ea *Timing) TimingEntry {
	return TimingEntry{Base: r.base, EA: ea, Multiplier: r.multiplier}
}

// sourceEACost applies the instructions whose absolute source operand fetch
// deviates from the standard effective address calculation times.
func sourceEACost(m Mnemonic, mode Mode, long bool) Timing {
	switch {
	case m == TAS && mode == ModeAbsW:
		return Timing{8, 1, 0}
	case (m == TAS || m == CHK || m == MULS || m == MULU) && mode == ModeAbsL:
		return Timing{12, 2, 0}
	}
	return EACost(mode, long)
}
