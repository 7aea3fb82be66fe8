// Package parser turns a token stream into a literal-value AST.
//
// The parser is single pass and fails fast: the first unexpected token
// aborts the whole parse and the caller receives no partial tree. Running
// out of input is an ordinary terminator at the top level only; inside an
// array or hash it is a syntax error.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lupuchard/inko/internal/ast"
	"github.com/lupuchard/inko/internal/lexer"
	"github.com/lupuchard/inko/internal/token"
)

var (
	// ErrEndOfInput is returned when the token source ran out of tokens
	// while one was still required.
	ErrEndOfInput = errors.New("unexpected end of input")

	// ErrInvalidToken is returned when the token seen does not match what
	// the current grammar position requires.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidTokenValue is returned when a token of the correct kind
	// carried text that could not be converted into the target value, e.g.
	// an integer literal outside the int64 range.
	ErrInvalidTokenValue = errors.New("invalid token value")
)

// Error wraps one of the three error kinds together with the position of
// the token that triggered it. errors.Is still matches the bare kind.
type Error struct {
	Err    error
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%3d:%2d] %s", e.Line, e.Column, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func errAt(kind error, tok token.Token) error {
	return &Error{Err: kind, Line: tok.Line, Column: tok.Column}
}

// Parse constructs a lexer over input and parses a top-level expression
// sequence. The returned Program may be empty; an empty input is valid.
func Parse(input string) (*ast.Program, error) {
	l := lexer.New(input)

	return parseExpressions(l)
}

// parseExpressions accumulates expressions until the input runs out. This
// is the only place where end of input terminates normally; any other
// error aborts the whole parse.
func parseExpressions(l *lexer.Lexer) (*ast.Program, error) {
	program := &ast.Program{Expressions: []ast.Expression{}}

	for {
		expr, err := parseExpression(l)
		if err != nil {
			// Only the bare sentinel marks ordinary exhaustion between
			// top-level expressions. Exhaustion inside a compound arrives
			// wrapped with the position of its opening token and stays a
			// syntax error.
			if err == ErrEndOfInput {
				break
			}
			return nil, err
		}
		program.Expressions = append(program.Expressions, expr)
	}

	return program, nil
}

// parseExpression pulls a single token and dispatches on its kind.
func parseExpression(l *lexer.Lexer) (ast.Expression, error) {
	tok, ok := l.Next()
	if !ok {
		return nil, ErrEndOfInput
	}

	switch tok.Type {
	case token.INT:
		return parseInteger(tok)
	case token.FLOAT:
		return parseFloat(tok)
	case token.STRING:
		return parseString(tok)
	case token.LBRACKET:
		return parseArray(tok, l)
	case token.LBRACE:
		return parseHash(tok, l)
	default:
		return nil, errAt(ErrInvalidToken, tok)
	}
}

func parseInteger(tok token.Token) (ast.Expression, error) {
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, errAt(ErrInvalidTokenValue, tok)
	}

	return &ast.IntegerLiteral{Token: tok, Value: value}, nil
}

func parseFloat(tok token.Token) (ast.Expression, error) {
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, errAt(ErrInvalidTokenValue, tok)
	}

	return &ast.FloatLiteral{Token: tok, Value: value}, nil
}

func parseString(tok token.Token) (ast.Expression, error) {
	// The token text is passed through verbatim; escape decoding already
	// happened in the lexer.
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
}

// parseArray is entered after the [ token has been consumed. The grammar
// requires at least one element: [] is a syntax error. This mirrors the
// grammar of the embedding toolchain and is kept as a compatibility
// constraint.
func parseArray(open token.Token, l *lexer.Lexer) (ast.Expression, error) {
	array := &ast.ArrayLiteral{Token: open}

	for {
		element, err := parseExpression(l)
		if err != nil {
			return nil, unterminated(err, open)
		}
		array.Elements = append(array.Elements, element)

		tok, ok := l.Next()
		if !ok {
			return nil, errAt(ErrEndOfInput, open)
		}
		switch tok.Type {
		case token.COMMA:
		case token.RBRACKET:
			return array, nil
		default:
			return nil, errAt(ErrInvalidToken, tok)
		}
	}
}

// parseHash is entered after the { token has been consumed. Keys may be
// arbitrary expressions; duplicates are not rejected at this layer. The
// same non-empty constraint as arrays applies: {} is a syntax error.
func parseHash(open token.Token, l *lexer.Lexer) (ast.Expression, error) {
	hash := &ast.HashLiteral{Token: open}

	for {
		key, err := parseExpression(l)
		if err != nil {
			return nil, unterminated(err, open)
		}

		if err := expectToken(l, token.COLON); err != nil {
			return nil, unterminated(err, open)
		}

		value, err := parseExpression(l)
		if err != nil {
			return nil, unterminated(err, open)
		}

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		tok, ok := l.Next()
		if !ok {
			return nil, errAt(ErrEndOfInput, open)
		}
		switch tok.Type {
		case token.COMMA:
		case token.RBRACE:
			return hash, nil
		default:
			return nil, errAt(ErrInvalidToken, tok)
		}
	}
}

// unterminated converts bare input exhaustion into an error carrying the
// position of the enclosing compound's opening token. Inside an array or
// hash, running out of tokens is a syntax error, and the top-level loop
// must not mistake it for its normal terminator. Wrapped or positioned
// errors pass through untouched.
func unterminated(err error, open token.Token) error {
	if err == ErrEndOfInput {
		return errAt(ErrEndOfInput, open)
	}
	return err
}

func expectToken(l *lexer.Lexer, t token.TokenType) error {
	tok, ok := l.Next()
	if !ok {
		return ErrEndOfInput
	}
	if tok.Type != t {
		return errAt(ErrInvalidToken, tok)
	}
	return nil
}
