package assembler

import (
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// StatementKind defines the type of a parsed source line.
type StatementKind int

const (
	// StatementEmpty is a blank or comment only line.
	StatementEmpty StatementKind = iota
	// StatementLabel is a line with a label and no opcode.
	StatementLabel
	// StatementInstruction has a 68000 mnemonic as its opcode.
	StatementInstruction
	// StatementDirective has an assembler directive as its opcode.
	StatementDirective
	// StatementMacroInvocation has an unknown opcode, assumed to name a macro.
	StatementMacroInvocation
)

var statementKindNames = map[StatementKind]string{
	StatementEmpty:           "empty",
	StatementLabel:           "label",
	StatementInstruction:     "instruction",
	StatementDirective:       "directive",
	StatementMacroInvocation: "macro",
}

func (k StatementKind) String() string {
	return statementKindNames[k]
}

// Label is the symbol defined at column 0.
type Label struct {
	Name  string
	Start int
	Local bool // starts with '.'
	Macro bool // contains '@'
}

// Opcode is the operation of a statement.
type Opcode struct {
	// Name is the upper case opcode text, after alias resolution.
	Name      string
	Start     int
	Mnemonic  cpu.Mnemonic // set for instructions
	Directive Directive    // set for directives
	Size      cpu.Size     // explicit qualifier, SizeNone when absent
}

// OperandKind defines the type of an operand.
type OperandKind int

const (
	// OperandEffectiveAddress is a regular instruction or directive argument.
	OperandEffectiveAddress OperandKind = iota
	// OperandString is a quoted string literal.
	OperandString
	// OperandMacroArg is a positional macro placeholder.
	OperandMacroArg
	// OperandMacroCount is the \@ marker.
	OperandMacroCount
)

// Operand is one argument of a statement.
type Operand struct {
	Text  string
	Start int
	Kind  OperandKind
	Mode  cpu.Mode

	// Value holds the evaluated number of an immediate without symbols,
	// or the register count of a register list.
	Value *int64
	// Str is the decoded contents of a string operand.
	Str string
	// Index is the placeholder number of a macro argument.
	Index int
}

// Statement is one parsed source line. It is not modified after parsing;
// macro expansion parses substituted text into new statements.
type Statement struct {
	Text     string
	Kind     StatementKind
	Label    *Label
	Opcode   *Opcode
	Operands []Operand
	Comment  string
	Tokens   []Token
}

// ParseStatement tokenizes and classifies a single source line.
func ParseStatement(line string) *Statement {
	stmt := &Statement{
		Text:   line,
		Tokens: Tokenize(line),
	}

	for _, tok := range stmt.Tokens {
		switch tok.Kind {
		case TokenComment:
			stmt.Comment = tok.Text

		case TokenLabel:
			stmt.Label = &Label{
				Name:  tok.Text,
				Start: tok.Start,
				Local: strings.HasPrefix(tok.Text, "."),
				Macro: strings.Contains(tok.Text, "@"),
			}

		case TokenQualifier:
			if stmt.Opcode != nil {
				stmt.Opcode.Size, _ = cpu.ParseSize(tok.Value)
			}

		default:
			if stmt.Opcode == nil {
				stmt.Opcode = newOpcode(tok)
				continue
			}
			stmt.Operands = append(stmt.Operands, newOperand(tok))
		}
	}

	switch {
	case stmt.Opcode != nil && stmt.Opcode.Mnemonic != "":
		stmt.Kind = StatementInstruction
	case stmt.Opcode != nil && stmt.Opcode.Directive != "":
		stmt.Kind = StatementDirective
	case stmt.Opcode != nil:
		stmt.Kind = StatementMacroInvocation
	case stmt.Label != nil:
		stmt.Kind = StatementLabel
	default:
		stmt.Kind = StatementEmpty
	}
	return stmt
}

func newOpcode(tok Token) *Opcode {
	op := &Opcode{
		Name:  strings.ToUpper(tok.Text),
		Start: tok.Start,
	}
	switch tok.Kind {
	case TokenMnemonic:
		op.Mnemonic = cpu.Mnemonic(tok.Value)
		op.Name = tok.Value
	case TokenDirective:
		op.Directive = Directive(tok.Value)
		op.Name = tok.Value
	}
	return op
}

func newOperand(tok Token) Operand {
	o := Operand{
		Text:  tok.Text,
		Start: tok.Start,
		Mode:  tok.Mode,
	}

	switch tok.Kind {
	case TokenString:
		o.Kind = OperandString
		o.Str = tok.Value
		o.Mode = cpu.ModeInvalid

	case TokenMacroArg:
		o.Kind = OperandMacroArg
		o.Index = tok.Index

	case TokenMacroCount:
		o.Kind = OperandMacroCount

	default:
		switch o.Mode {
		case cpu.ModeImm:
			if v, ok := Evaluate(tok.Text, nil); ok {
				o.Value = &v
			}
		case cpu.ModeRegList:
			v := int64(RangeN(tok.Text))
			o.Value = &v
		}
	}
	return o
}

// IsLabel reports whether the statement only defines a label.
func (s *Statement) IsLabel() bool { return s.Kind == StatementLabel }

// IsInstruction reports whether the statement is a 68000 instruction.
func (s *Statement) IsInstruction() bool { return s.Kind == StatementInstruction }

// IsDirective reports whether the statement is an assembler directive.
func (s *Statement) IsDirective() bool { return s.Kind == StatementDirective }

// IsMacroInvocation reports whether the statement invokes a macro.
func (s *Statement) IsMacroInvocation() bool { return s.Kind == StatementMacroInvocation }

// Mnemonic returns the instruction mnemonic, or an empty string.
func (s *Statement) Mnemonic() cpu.Mnemonic {
	if s.Opcode == nil {
		return ""
	}
	return s.Opcode.Mnemonic
}

// Directive returns the directive name, or an empty string.
func (s *Statement) Directive() Directive {
	if s.Opcode == nil {
		return ""
	}
	return s.Opcode.Directive
}
