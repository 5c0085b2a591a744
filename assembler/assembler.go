package assembler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/retroenv/retrogolib/log"
)

// ErrNestingTooDeep is returned when macro invocations and repeat blocks
// nest deeper than Options.MaxDepth.
var ErrNestingTooDeep = errors.New("macro or repeat nesting too deep")

// ErrTooManyLines is returned when macro invocations and repeat blocks
// expand to more than Options.MaxLines lines in one pass.
var ErrTooManyLines = errors.New("too many expanded lines")

var errNilAssembler = errors.New("assembler is nil")

// passes is the number of resolution passes. The second pass sees labels
// that are defined after their first use.
const passes = 2

var bssSectionName = regexp.MustCompile(`(?i)^bss`)

// Options tunes the resolver.
type Options struct {
	// MaxDepth limits the nesting of macro expansions and repeat blocks.
	MaxDepth int
	// MaxLines limits the number of lines produced by expansions in one pass.
	MaxLines int
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		MaxDepth: 64,
		MaxLines: 1 << 18,
	}
}

// Line is a resolved source line.
type Line struct {
	Statement *Statement `json:"-"`

	// MacroLines holds the expanded lines of a macro invocation or repeat block.
	MacroLines []*Line             `json:"macroLines,omitempty"`
	Bytes      int                `json:"bytes"`
	BSS        bool               `json:"bss"`
	Timing     *InstructionTiming `json:"timing,omitempty"`
}

// Assembler resolves the sizes and timings of assembly source.
type Assembler struct {
	logger *log.Logger
	opts   Options

	vars   map[string]int64
	macros map[string][]*Statement
	ctx      context.Context
	pass     int
	bss      bool
	expanded int
}

// New creates a new Assembler instance.
func New(logger *log.Logger, opts Options) *Assembler {
	defaults := NewOptions()
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if opts.MaxLines <= 0 {
		opts.MaxLines = defaults.MaxLines
	}
	return &Assembler{
		logger: logger,
		opts:   opts,
	}
}

// frame is the state of one sequence of statements being resolved: the
// source file itself or the body of an expansion.
type frame struct {
	depth  int
	offset int

	macro *macroCapture
	rept  *repeatBlock
}

type macroCapture struct {
	name string
}

type repeatBlock struct {
	start  *Statement
	body   []*Statement
	nested int // REPT statements inside the body still waiting for their ENDR
}

// Parse splits src into lines and resolves their sizes and timings. Symbols
// and macros from a previous call are discarded.
func (asm *Assembler) Parse(src string) ([]*Line, error) {
	return asm.ParseContext(context.Background(), src)
}

// ParseContext is like Parse but stops with the context error when ctx is
// cancelled before a pass or an expansion.
func (asm *Assembler) ParseContext(ctx context.Context, src string) ([]*Line, error) {
	if asm == nil {
		return nil, errNilAssembler
	}
	asm.ctx = ctx
	defer func() { asm.ctx = nil }()

	var statements []*Statement
	for _, text := range splitLines(src) {
		statements = append(statements, ParseStatement(text))
	}

	asm.vars = make(map[string]int64)
	asm.macros = make(map[string][]*Statement)

	var lines []*Line
	for asm.pass = 1; asm.pass <= passes; asm.pass++ {
		asm.logger.Debug("Resolver pass",
			log.Int("pass", asm.pass),
			log.Int("statements", len(statements)))

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		asm.bss = false
		asm.expanded = 0
		var err error
		lines, err = asm.resolve(&frame{}, statements)
		if err != nil {
			return nil, fmt.Errorf("resolving pass %d: %w", asm.pass, err)
		}
	}
	return lines, nil
}

// Vars returns a copy of the symbol values known after the last Parse call.
func (asm *Assembler) Vars() map[string]int64 {
	return maps.Clone(asm.vars)
}

// resolve processes a sequence of statements in order, advancing the byte
// offset of the frame after every line.
func (asm *Assembler) resolve(f *frame, statements []*Statement) ([]*Line, error) {
	lines := make([]*Line, 0, len(statements))
	for _, stmt := range statements {
		line, err := asm.resolveStatement(f, stmt)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		f.offset += line.Bytes
	}

	if f.macro != nil {
		asm.logger.Debug("Macro definition without ENDM", log.String("macro", f.macro.name))
	}
	if f.rept != nil {
		asm.logger.Debug("Repeat block without ENDR", log.String("line", f.rept.start.Text))
	}
	return lines, nil
}

func (asm *Assembler) resolveStatement(f *frame, stmt *Statement) (*Line, error) {
	line := &Line{Statement: stmt}

	if f.macro != nil {
		if stmt.Directive() == DirEndM {
			f.macro = nil
		} else {
			asm.macros[f.macro.name] = append(asm.macros[f.macro.name], stmt)
		}
		return line, nil
	}

	if f.rept != nil {
		return asm.collectRepeat(f, line)
	}

	switch stmt.Kind {
	case StatementEmpty:

	case StatementLabel:
		asm.vars[stmt.Label.Name] = int64(f.offset)
		line.BSS = asm.bss

	case StatementDirective:
		asm.resolveDirective(f, line)

	case StatementInstruction:
		asm.defineLabel(f, stmt)
		line.Bytes = StatementSize(stmt, asm.vars)
		line.BSS = asm.bss
		line.Timing = InstructionTimings(stmt, asm.vars)

	case StatementMacroInvocation:
		asm.defineLabel(f, stmt)
		if err := asm.invokeMacro(f, line); err != nil {
			return nil, err
		}
	}
	return line, nil
}

// defineLabel records the offset of a label placed in front of an
// instruction or macro invocation.
func (asm *Assembler) defineLabel(f *frame, stmt *Statement) {
	if stmt.Label != nil {
		asm.vars[stmt.Label.Name] = int64(f.offset)
	}
}

func (asm *Assembler) resolveDirective(f *frame, line *Line) {
	stmt := line.Statement
	dir := stmt.Directive()

	switch {
	case dir.IsAssignment() && stmt.Label != nil:
		if len(stmt.Operands) == 0 {
			return
		}
		if v, ok := Evaluate(stmt.Operands[0].Text, asm.vars); ok {
			asm.vars[stmt.Label.Name] = v
		}

	case dir == DirMacro:
		name := ""
		switch {
		case stmt.Label != nil:
			name = stmt.Label.Name
		case len(stmt.Operands) > 0:
			name = stmt.Operands[0].Text
		}
		if name == "" {
			return
		}
		name = strings.ToUpper(name)
		asm.logger.Debug("Macro definition", log.String("macro", name))
		asm.macros[name] = nil
		f.macro = &macroCapture{name: name}

	case dir == DirRept:
		f.rept = &repeatBlock{start: stmt}

	case dir.IsSection():
		asm.bss = strings.Contains(string(dir), "BSS")
		for _, o := range stmt.Operands {
			if bssSectionName.MatchString(o.Text) {
				asm.bss = true
			}
		}

	default:
		asm.defineLabel(f, stmt)
		line.Bytes = StatementSize(stmt, asm.vars)
		line.BSS = asm.bss
	}
}

// collectRepeat adds a statement to the open repeat block, or expands the
// block when the statement is its closing ENDR.
func (asm *Assembler) collectRepeat(f *frame, line *Line) (*Line, error) {
	rept := f.rept
	switch line.Statement.Directive() {
	case DirRept:
		rept.nested++

	case DirEndR:
		if rept.nested == 0 {
			f.rept = nil
			return line, asm.expandRepeat(f, line, rept)
		}
		rept.nested--
	}

	rept.body = append(rept.body, line.Statement)
	return line, nil
}

func (asm *Assembler) expandRepeat(f *frame, line *Line, rept *repeatBlock) error {
	var count int64
	if len(rept.start.Operands) > 0 {
		count, _ = Evaluate(rept.start.Operands[0].Text, asm.vars)
	}
	asm.logger.Debug("Repeat block",
		log.Int("count", int(count)),
		log.Int("statements", len(rept.body)))

	line.MacroLines = []*Line{}
	offset := f.offset
	for range max(count, 0) {
		lines, err := asm.expand(f, offset, rept.body)
		if err != nil {
			return err
		}
		line.MacroLines = append(line.MacroLines, lines...)
		offset += CalculateTotals(lines).Bytes
	}
	asm.rollup(line)
	return nil
}

// invokeMacro substitutes the operands of a macro invocation into the
// statements of the macro and resolves them.
func (asm *Assembler) invokeMacro(f *frame, line *Line) error {
	stmt := line.Statement
	body, ok := asm.macros[stmt.Opcode.Name]
	if !ok {
		// macros defined further down are known in the second pass
		if asm.pass == passes {
			asm.logger.Warn("Undefined macro", log.String("macro", stmt.Opcode.Name))
		}
		return nil
	}

	statements := make([]*Statement, len(body))
	for i, s := range body {
		statements[i] = ParseStatement(substituteArgs(s.Text, stmt.Operands))
	}

	lines, err := asm.expand(f, f.offset, statements)
	if err != nil {
		return err
	}
	line.MacroLines = lines
	asm.rollup(line)
	return nil
}

// expand resolves the statements of an expansion in a new frame that starts
// at the given byte offset.
func (asm *Assembler) expand(parent *frame, offset int, statements []*Statement) ([]*Line, error) {
	if err := asm.ctx.Err(); err != nil {
		return nil, err
	}

	depth := parent.depth + 1
	if depth > asm.opts.MaxDepth {
		return nil, fmt.Errorf("%w: limit is %d", ErrNestingTooDeep, asm.opts.MaxDepth)
	}

	// an empty body still costs an iteration
	asm.expanded += max(len(statements), 1)
	if asm.expanded > asm.opts.MaxLines {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyLines, asm.opts.MaxLines)
	}
	return asm.resolve(&frame{depth: depth, offset: offset}, statements)
}

// rollup sums the bytes and timings of the expanded lines onto line. BSS
// only reflects the section current after the expansion; CalculateTotals
// splits the bytes by the expanded lines themselves.
func (asm *Assembler) rollup(line *Line) {
	totals := CalculateTotals(line.MacroLines)
	line.Bytes = totals.Bytes
	line.BSS = asm.bss
	if totals.Min.Clock == 0 {
		return
	}

	if totals.IsRange {
		line.Timing = &InstructionTiming{
			Values: []cpu.Timing{totals.Min, totals.Max},
			Labels: []string{LabelMin, LabelMax},
		}
		return
	}
	line.Timing = &InstructionTiming{
		Values: []cpu.Timing{totals.Min},
	}
}

// substituteArgs replaces the positional placeholders \1, \2, ... of a macro
// line with the operand texts. Higher numbers are replaced first so that \1
// does not match the start of \10.
func substituteArgs(text string, operands []Operand) string {
	for i := len(operands); i >= 1; i-- {
		text = strings.ReplaceAll(text, `\`+strconv.Itoa(i), operands[i-1].Text)
	}
	return text
}
