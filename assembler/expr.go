package assembler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errExprSyntax   = errors.New("expression syntax error")
	errDivideByZero = errors.New("division by zero")
	errUnknownValue = errors.New("unknown symbol")
)

// Evaluate computes the value of an assembler expression. Symbols are looked
// up in vars, case sensitively. The second result is false when the
// expression cannot be evaluated yet, e.g. because it references a symbol
// that is not defined.
//
// Supported literals are decimal, $hex, %binary, @octal and quoted
// characters. A leading '#' is ignored. Infix '!' is a bitwise OR and infix
// '~' a bitwise XOR; prefix '~' is a bitwise NOT.
func Evaluate(expr string, vars map[string]int64) (int64, bool) {
	v, err := evaluate(expr, vars)
	return v, err == nil
}

func evaluate(expr string, vars map[string]int64) (int64, error) {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "#")

	p := exprParser{vars: vars}
	if err := p.parse(expr); err != nil {
		return 0, err
	}
	return p.eval()
}

type exprOp byte

const (
	opNil exprOp = iota
	opMultiply
	opDivide
	opModulo
	opAdd
	opSubtract
	opShiftLeft
	opShiftRight
	opAnd
	opXor
	opOr
	opNot
	opNegate
	opPlus
)

type opData struct {
	precedence int
	unary      bool
	eval       func(a, b int64) (int64, error)
}

var ops = [...]opData{
	opNil:        {},
	opMultiply:   {6, false, func(a, b int64) (int64, error) { return a * b, nil }},
	opDivide:     {6, false, divide},
	opModulo:     {6, false, modulo},
	opAdd:        {5, false, func(a, b int64) (int64, error) { return a + b, nil }},
	opSubtract:   {5, false, func(a, b int64) (int64, error) { return a - b, nil }},
	opShiftLeft:  {4, false, func(a, b int64) (int64, error) { return a << uint64(b), nil }},
	opShiftRight: {4, false, func(a, b int64) (int64, error) { return a >> uint64(b), nil }},
	opAnd:        {3, false, func(a, b int64) (int64, error) { return a & b, nil }},
	opXor:        {2, false, func(a, b int64) (int64, error) { return a ^ b, nil }},
	opOr:         {1, false, func(a, b int64) (int64, error) { return a | b, nil }},
	opNot:        {7, true, func(a, _ int64) (int64, error) { return ^a, nil }},
	opNegate:     {7, true, func(a, _ int64) (int64, error) { return -a, nil }},
	opPlus:       {7, true, func(a, _ int64) (int64, error) { return a, nil }},
}

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}

func modulo(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a % b, nil
}

type exprTokenType byte

const (
	exprNumber exprTokenType = iota
	exprOperator
	exprLParen
)

type exprToken struct {
	typ   exprTokenType
	value int64
	op    exprOp
}

// exprParser converts an infix expression to reverse polish notation using
// the shunting yard algorithm.
type exprParser struct {
	vars      map[string]int64
	output    []exprToken
	operators []exprToken
	prevValue bool // last token was a number, symbol or closing parenthesis
}

func (p *exprParser) parse(s string) error {
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			if p.prevValue {
				return errExprSyntax
			}
			p.operators = append(p.operators, exprToken{typ: exprLParen})
			i++

		case c == ')':
			if !p.prevValue {
				return errExprSyntax
			}
			if err := p.closeParen(); err != nil {
				return err
			}
			i++

		case isDecimal(c), c == '$', c == '\'', c == '"',
			c == '%' && !p.prevValue, c == '@' && !p.prevValue:
			v, n, err := parseLiteral(s[i:])
			if err != nil {
				return err
			}
			if err := p.pushValue(v); err != nil {
				return err
			}
			i += n

		case isIdentStart(c):
			n := scanWhile(s[i:], isIdentChar)
			v, ok := p.vars[s[i:i+n]]
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownValue, s[i:i+n])
			}
			if err := p.pushValue(v); err != nil {
				return err
			}
			i += n

		default:
			op, n, err := p.parseOperator(s[i:])
			if err != nil {
				return err
			}
			p.pushOperator(op)
			i += n
		}
	}

	if !p.prevValue {
		return errExprSyntax
	}
	for len(p.operators) > 0 {
		top := p.popOperator()
		if top.typ == exprLParen {
			return errExprSyntax
		}
		p.output = append(p.output, top)
	}
	return nil
}

func (p *exprParser) pushValue(v int64) error {
	if p.prevValue {
		return errExprSyntax
	}
	p.output = append(p.output, exprToken{typ: exprNumber, value: v})
	p.prevValue = true
	return nil
}

// parseOperator reads an operator. Whether + - ~ are unary depends on the
// preceding token.
func (p *exprParser) parseOperator(s string) (exprOp, int, error) {
	var op exprOp
	n := 1
	switch s[0] {
	case '*':
		op = opMultiply
	case '/':
		op = opDivide
	case '%':
		op = opModulo
	case '&':
		op = opAnd
	case '^':
		op = opXor
	case '|', '!':
		op = opOr
	case '+':
		op = opAdd
		if !p.prevValue {
			op = opPlus
		}
	case '-':
		op = opSubtract
		if !p.prevValue {
			op = opNegate
		}
	case '~':
		op = opXor
		if !p.prevValue {
			op = opNot
		}
	case '<', '>':
		if len(s) < 2 || s[1] != s[0] {
			return opNil, 0, errExprSyntax
		}
		op, n = opShiftLeft, 2
		if s[0] == '>' {
			op = opShiftRight
		}
	default:
		return opNil, 0, fmt.Errorf("%w: unexpected %q", errExprSyntax, s[0])
	}

	if !ops[op].unary && !p.prevValue {
		return opNil, 0, errExprSyntax
	}
	return op, n, nil
}

func (p *exprParser) pushOperator(op exprOp) {
	// prefix operators bind to what follows and never collapse the stack
	if !ops[op].unary {
		for p.isCollapsible(op) {
			p.output = append(p.output, p.popOperator())
		}
	}
	p.operators = append(p.operators, exprToken{typ: exprOperator, op: op})
	p.prevValue = false
}

func (p *exprParser) isCollapsible(op exprOp) bool {
	if len(p.operators) == 0 {
		return false
	}
	top := p.operators[len(p.operators)-1]
	if top.typ != exprOperator {
		return false
	}
	return ops[top.op].precedence >= ops[op].precedence
}

func (p *exprParser) closeParen() error {
	for len(p.operators) > 0 {
		top := p.popOperator()
		if top.typ == exprLParen {
			return nil
		}
		p.output = append(p.output, top)
	}
	return errExprSyntax
}

func (p *exprParser) popOperator() exprToken {
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]
	return top
}

// eval computes the result of the reverse polish output queue.
func (p *exprParser) eval() (int64, error) {
	var stack []int64
	for _, tok := range p.output {
		if tok.typ == exprNumber {
			stack = append(stack, tok.value)
			continue
		}

		op := ops[tok.op]
		var a, b int64
		switch {
		case op.unary && len(stack) >= 1:
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case !op.unary && len(stack) >= 2:
			a, b = stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
		default:
			return 0, errExprSyntax
		}

		v, err := op.eval(a, b)
		if err != nil {
			return 0, err
		}
		stack = append(stack, v)
	}

	if len(stack) != 1 {
		return 0, errExprSyntax
	}
	return stack[0], nil
}

// parseLiteral reads a numeric or character literal from the start of s and
// returns its value and length.
func parseLiteral(s string) (int64, int, error) {
	base, prefix, digit := 10, 0, isDecimal
	switch s[0] {
	case '$':
		base, prefix, digit = 16, 1, isHex
	case '%':
		base, prefix, digit = 2, 1, isBinary
	case '@':
		base, prefix, digit = 8, 1, isOctal
	case '\'', '"':
		return parseChars(s)
	}

	n := scanWhile(s[prefix:], digit)
	if n == 0 {
		return 0, 0, errExprSyntax
	}
	end := prefix + n
	if end < len(s) && isIdentChar(s[end]) {
		return 0, 0, fmt.Errorf("%w: bad number %q", errExprSyntax, s[:end+1])
	}

	v, err := strconv.ParseUint(s[prefix:end], base, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errExprSyntax, err)
	}
	return int64(v), end, nil
}

// parseChars reads a quoted literal of up to four characters, packed big endian.
func parseChars(s string) (int64, int, error) {
	quote := s[0]
	end := strings.IndexByte(s[1:], quote)
	if end < 1 || end > 4 {
		return 0, 0, errExprSyntax
	}

	var v int64
	for i := 1; i <= end; i++ {
		v = v<<8 | int64(s[i])
	}
	return v, end + 2, nil
}

func scanWhile(s string, fn func(c byte) bool) int {
	i := 0
	for i < len(s) && fn(s[i]) {
		i++
	}
	return i
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinary(c byte) bool {
	return c == '0' || c == '1'
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDecimal(c)
}
