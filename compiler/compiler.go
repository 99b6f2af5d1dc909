// Package compiler implements the Chunk container and the single-pass
// Pratt-style expression compiler that emits bytecode directly from the
// token stream -- no intermediate AST. The approach is adapted from the
// teacher's token-based Compiler (as opposed to its tree-walking
// ASTCompiler, which this expression-only, AST-free core has no use for).
package compiler

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"lox/lexer"
	"lox/token"
	"lox/value"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// precedence levels, lowest to highest.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

// rules is indexed by token kind. Kinds with no entry get Go's zero value
// (nil, nil, precNone), which is exactly "all others -- NONE" from the
// parse table. Populated by the init() below.
var rules = map[token.Kind]parseRule{}

func getRule(kind token.Kind) parseRule {
	return rules[kind]
}

// Compiler is the transient parser state that lives only for the duration
// of a single Compile call: a scanner, a target chunk, a heap handle, the
// current/previous tokens and the sticky error-tracking flags.
type Compiler struct {
	lex     *lexer.Lexer
	chunk   *Chunk
	heap    *value.Heap
	current token.Token
	prev    token.Token

	hadError  bool
	panicMode bool
	errors    *multierror.Error

	// Trace, when set, makes Compile log the freshly compiled chunk's
	// disassembly through Logger at Debug level after a successful compile --
	// the compiler-side half of the module's debug-trace facility (the VM
	// side traces execution instead of compilation).
	Trace  bool
	Logger *logrus.Logger
}

// Compile parses source as a single expression and emits its bytecode into
// chunk, allocating any string literals on heap. It returns true on
// success. On failure chunk may contain partial code and must not be
// executed.
func Compile(source string, chunk *Chunk, heap *value.Heap) bool {
	c := &Compiler{
		lex:    lexer.New(source),
		chunk:  chunk,
		heap:   heap,
		Logger: logrus.StandardLogger(),
	}
	return c.compile()
}

// CompileTraced is Compile with the debug-trace disassembly dump enabled,
// logged through logger.
func CompileTraced(source string, chunk *Chunk, heap *value.Heap, logger *logrus.Logger) bool {
	c := &Compiler{
		lex:    lexer.New(source),
		chunk:  chunk,
		heap:   heap,
		Trace:  true,
		Logger: logger,
	}
	return c.compile()
}

func (c *Compiler) compile() bool {
	c.advance()
	c.expression()
	c.consume(token.EOF, "Expect end of expression")
	c.emitReturn()

	if c.Trace && !c.hadError {
		var buf bytes.Buffer
		DisassembleChunk(&buf, c.chunk, "code")
		c.Logger.Debug(buf.String())
	}

	return !c.hadError
}

// Errors returns the accumulated parse errors as a single error value (nil
// if there were none). Compile and CompileTraced return only a bool and do
// not hand their Compiler to the caller, so this is reachable only from
// inside package compiler.
func (c *Compiler) Errors() error {
	return c.errors.ErrorOrNil()
}

/* token stream management */

func (c *Compiler) advance() {
	c.prev = c.current
	for {
		c.current = c.lex.Next()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

/* error reporting */

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.prev, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var at string
	switch tok.Kind {
	case token.EOF:
		at = " at end"
	case token.Error:
		at = ""
	default:
		at = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}

	err := CompileError{Line: tok.Line, At: at, Message: message}
	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
	c.errors = multierror.Append(c.errors, err)
}

/* expression parsing */

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefix := getRule(c.prev.Kind).prefix
	if prefix == nil {
		c.error("Expect expression")
		return
	}
	prefix(c)

	for prec <= getRule(c.current.Kind).prec {
		c.advance()
		infix := getRule(c.prev.Kind).infix
		infix(c)
	}
}

func init() {
	rules[token.LeftParen] = parseRule{grouping, nil, precNone}
	rules[token.Minus] = parseRule{unary, binary, precTerm}
	rules[token.Plus] = parseRule{nil, binary, precTerm}
	rules[token.Slash] = parseRule{nil, binary, precFactor}
	rules[token.Star] = parseRule{nil, binary, precFactor}
	rules[token.Bang] = parseRule{unary, nil, precNone}
	rules[token.BangEqual] = parseRule{nil, binary, precEquality}
	rules[token.EqualEqual] = parseRule{nil, binary, precEquality}
	rules[token.Greater] = parseRule{nil, binary, precComparison}
	rules[token.GreaterEqual] = parseRule{nil, binary, precComparison}
	rules[token.Less] = parseRule{nil, binary, precComparison}
	rules[token.LessEqual] = parseRule{nil, binary, precComparison}
	rules[token.Number] = parseRule{number, nil, precNone}
	rules[token.String] = parseRule{stringLiteral, nil, precNone}
	rules[token.False] = parseRule{literal, nil, precNone}
	rules[token.Nil] = parseRule{literal, nil, precNone}
	rules[token.True] = parseRule{literal, nil, precNone}
}

func grouping(c *Compiler) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression")
}

func unary(c *Compiler) {
	operator := c.prev.Kind
	c.parsePrecedence(precUnary)
	switch operator {
	case token.Bang:
		c.emitByte(byte(OpNot))
	case token.Minus:
		c.emitByte(byte(OpNegate))
	}
}

func binary(c *Compiler) {
	operator := c.prev.Kind
	rule := getRule(operator)
	c.parsePrecedence(rule.prec + 1)

	switch operator {
	case token.BangEqual:
		c.emitBytes(byte(OpEqual), byte(OpNot))
	case token.EqualEqual:
		c.emitByte(byte(OpEqual))
	case token.Greater:
		c.emitByte(byte(OpGreater))
	case token.GreaterEqual:
		c.emitBytes(byte(OpLess), byte(OpNot))
	case token.Less:
		c.emitByte(byte(OpLess))
	case token.LessEqual:
		c.emitBytes(byte(OpGreater), byte(OpNot))
	case token.Plus:
		c.emitByte(byte(OpAdd))
	case token.Minus:
		c.emitByte(byte(OpSubtract))
	case token.Star:
		c.emitByte(byte(OpMultiply))
	case token.Slash:
		c.emitByte(byte(OpDivide))
	}
}

func literal(c *Compiler) {
	switch c.prev.Kind {
	case token.False:
		c.emitByte(byte(OpFalse))
	case token.Nil:
		c.emitByte(byte(OpNil))
	case token.True:
		c.emitByte(byte(OpTrue))
	}
}

func number(c *Compiler) {
	n, _ := strconv.ParseFloat(c.prev.Lexeme, 64)
	c.emitConstant(value.NumberValue(n))
}

func stringLiteral(c *Compiler) {
	lexeme := c.prev.Lexeme
	content := lexeme[1 : len(lexeme)-1]
	s := c.heap.AllocateString([]byte(content))
	c.emitConstant(value.StringValue(s))
}

/* bytecode emission */

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.prev.Line)
}

func (c *Compiler) emitBytes(a, b byte) {
	c.emitByte(a)
	c.emitByte(b)
}

func (c *Compiler) emitReturn() {
	c.emitByte(byte(OpReturn))
}

// makeConstant appends v to the chunk's constant pool and returns its index
// as a byte. A chunk may not hold more than 256 constants -- the index must
// fit in the single operand byte OP_CONSTANT carries -- so overflow is
// reported as a compile error and index 0 is emitted instead of aborting.
func (c *Compiler) makeConstant(v value.Value) byte {
	idx := c.chunk.AddConstant(v)
	if idx > 255 {
		c.error("Too many constants in one chunk")
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitBytes(byte(OpConstant), c.makeConstant(v))
}
