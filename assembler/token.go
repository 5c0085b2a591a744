package assembler

import (
	"strconv"
	"strings"

	"github.com/Urethramancer/m68kcounter/cpu"
)

// TokenKind classifies a lexical token of a source line.
type TokenKind int

const (
	// TokenOperand is any token not otherwise recognized.
	TokenOperand TokenKind = iota
	// TokenComment is a comment running to the end of the line.
	TokenComment
	// TokenLabel is the token starting at column 0.
	TokenLabel
	// TokenMnemonic is an instruction name.
	TokenMnemonic
	// TokenQualifier is a size suffix following a '.' separator.
	TokenQualifier
	// TokenDirective is an assembler directive name.
	TokenDirective
	// TokenString is a quoted string literal.
	TokenString
	// TokenMacroArg is a positional macro placeholder such as \1.
	TokenMacroArg
	// TokenMacroCount is the \@ expansion counter marker.
	TokenMacroCount
)

var tokenKindNames = map[TokenKind]string{
	TokenOperand:    "operand",
	TokenComment:    "comment",
	TokenLabel:      "label",
	TokenMnemonic:   "mnemonic",
	TokenQualifier:  "qualifier",
	TokenDirective:  "directive",
	TokenString:     "string",
	TokenMacroArg:   "macro argument",
	TokenMacroCount: "macro counter",
}

func (k TokenKind) String() string {
	return tokenKindNames[k]
}

// Token is a classified span of a source line.
type Token struct {
	Text  string
	Kind  TokenKind
	Start int
	End   int

	// Value is the canonical mnemonic or directive name, the qualifier
	// letter, or the decoded contents of a string.
	Value string
	// Index is the placeholder number of a macro argument.
	Index int
	// Mode is the addressing mode of an operand token.
	Mode cpu.Mode
}

// Tokenize splits a single source line into classified tokens.
// Unbalanced quotes or parentheses extend the open token to the end of the line.
func Tokenize(line string) []Token {
	t := &tokenizer{line: line, opcode: -1}
	t.run()
	return t.tokens
}

type tokenizer struct {
	line   string
	tokens []Token

	parens   int
	inSingle bool
	inDouble bool

	started  bool
	start    int
	afterDot bool // current token follows a '.' separator

	opcodeDone bool // '.' no longer separates once the opcode is complete
	opcode     int  // index of the opcode token, -1 until seen
}

func (t *tokenizer) run() {
	line := t.line
	for i := 0; i < len(line); i++ {
		c := line[i]

		if !t.inSingle && c == '"' {
			t.inDouble = !t.inDouble
		}
		if !t.inDouble && c == '\'' {
			t.inSingle = !t.inSingle
		}
		quoted := t.inSingle || t.inDouble

		if !quoted {
			switch c {
			case '(':
				t.parens++
			case ')':
				t.parens--
			}
		}

		if quoted || t.parens > 0 {
			if !t.started {
				t.begin(i)
			}
			continue
		}

		switch {
		case c == ';' || (c == '*' && !t.started):
			t.end(i, false)
			t.emit(i, len(line))
			return

		case c == '=':
			t.end(i, false)
			t.emit(i, i+1)
			t.opcodeDone = true

		case c == ' ' || c == '\t' || c == ',' || c == ':':
			t.end(i, false)

		case c == '.' && t.splitsOnDot(i):
			t.end(i, true)

		case !t.started:
			t.begin(i)
		}
	}
	t.end(len(line), false)
}

// splitsOnDot reports whether a '.' at position i ends the current token.
func (t *tokenizer) splitsOnDot(i int) bool {
	return t.started && t.start > 0 && i > t.start && !t.opcodeDone
}

func (t *tokenizer) begin(i int) {
	t.started = true
	t.start = i
}

// end finishes the token in progress, if any. dot is set when the token
// was terminated by a '.' separator.
func (t *tokenizer) end(i int, dot bool) {
	if !t.started {
		t.afterDot = false
		return
	}
	t.started = false
	t.emit(t.start, i)
	if t.start > 0 && !dot {
		t.opcodeDone = true
	}
	t.afterDot = dot
}

func (t *tokenizer) emit(start, end int) {
	tok := Token{
		Text:  t.line[start:end],
		Start: start,
		End:   end,
	}
	afterDot := t.afterDot
	t.afterDot = false
	isOpcode := t.classify(&tok, afterDot)
	t.tokens = append(t.tokens, tok)
	if isOpcode {
		t.opcode = len(t.tokens) - 1
	}
}

// classify assigns the kind of a token based on its text and position.
// It reports whether the token is the opcode of the line.
func (t *tokenizer) classify(tok *Token, afterDot bool) bool {
	text := tok.Text
	switch {
	case text[0] == ';' || text[0] == '*':
		tok.Kind = TokenComment
		return false

	case tok.Start == 0:
		tok.Kind = TokenLabel
		return false

	case t.opcode < 0:
		if m, ok := cpu.LookupMnemonic(text); ok {
			tok.Kind, tok.Value = TokenMnemonic, string(m)
			return true
		}
		if d, ok := LookupDirective(text); ok {
			tok.Kind, tok.Value = TokenDirective, string(d)
			return true
		}
		t.classifyOperand(tok, false)
		return true

	case afterDot && t.opcode == len(t.tokens)-1:
		if size, ok := cpu.ParseSize(text); ok && len(text) == 1 {
			if size == cpu.SizeShort && t.tokens[t.opcode].Kind == TokenMnemonic {
				size = cpu.SizeByte
			}
			tok.Kind, tok.Value = TokenQualifier, size.String()
			return false
		}
	}

	t.classifyOperand(tok, true)
	return false
}

// classifyOperand recognizes strings and macro placeholders; anything else
// is a plain operand.
func (t *tokenizer) classifyOperand(tok *Token, withMode bool) {
	text := tok.Text

	switch {
	case text[0] == '\'' || text[0] == '"':
		tok.Kind = TokenString
		tok.Value = decodeString(text)

	case text == `\@`:
		tok.Kind = TokenMacroCount

	case len(text) > 1 && text[0] == '\\' && isDigits(text[1:]):
		tok.Kind = TokenMacroArg
		tok.Index, _ = strconv.Atoi(text[1:])

	default:
		tok.Kind = TokenOperand
		if withMode {
			tok.Mode = OperandMode(text)
		}
	}
}

// decodeString strips the delimiters of a quoted string and collapses
// doubled delimiters inside it.
func decodeString(text string) string {
	quote := text[:1]
	s := text[1:]
	if strings.HasSuffix(s, quote) {
		s = s[:len(s)-1]
	}
	return strings.ReplaceAll(s, quote+quote, quote)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
