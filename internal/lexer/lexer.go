package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lupuchard/inko/internal/token"
)

// Lexer produces tokens on demand, one Next call at a time. Exhaustion of
// the input is reported through the second return value of Next, never as a
// token; malformed input comes back as an ILLEGAL token instead.
type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF

	line   int // 1-based line of ch
	column int // 1-based column of ch, counted in runes
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Next returns the next token and true, or a zero token and false once the
// input is exhausted.
func (l *Lexer) Next() (token.Token, bool) {
	l.skipWhitespace()

	if l.ch == 0 {
		return token.Token{}, false
	}

	startLine, startColumn := l.line, l.column

	var tok token.Token
	switch l.ch {
	case ',':
		tok = l.newToken(token.COMMA, startLine, startColumn)
	case ':':
		tok = l.newToken(token.COLON, startLine, startColumn)
	case '[':
		tok = l.newToken(token.LBRACKET, startLine, startColumn)
	case ']':
		tok = l.newToken(token.RBRACKET, startLine, startColumn)
	case '{':
		tok = l.newToken(token.LBRACE, startLine, startColumn)
	case '}':
		tok = l.newToken(token.RBRACE, startLine, startColumn)
	case '"':
		l.readChar() // consume the opening "
		return l.readString(startLine, startColumn), true
	case '-':
		if isDigit(l.peekChar()) {
			return l.readNumber(startLine, startColumn), true
		}
		tok = l.newToken(token.ILLEGAL, startLine, startColumn)
	default:
		if isDigit(l.ch) {
			return l.readNumber(startLine, startColumn), true
		}
		tok = l.newToken(token.ILLEGAL, startLine, startColumn)
	}

	l.readChar()
	return tok, true
}

func (l *Lexer) newToken(tokenType token.TokenType, line, column int) token.Token {
	return token.Token{Type: tokenType, Literal: string(l.ch), Line: line, Column: column}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '#':
			l.skipToLineEnd()
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte position and the
// line/column bookkeeping.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readNumber scans an optionally signed number with an optional fractional
// part and exponent. The token kind is FLOAT as soon as either appears.
func (l *Lexer) readNumber(line, column int) token.Token {
	var numStr strings.Builder
	kind := token.TokenType(token.INT)

	if l.ch == '-' {
		numStr.WriteRune(l.ch)
		l.readChar()
	}
	for isDigit(l.ch) {
		numStr.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		kind = token.FLOAT
		numStr.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			numStr.WriteRune(l.ch)
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		kind = token.FLOAT
		numStr.WriteRune(l.ch)
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			numStr.WriteRune(l.ch)
			l.readChar()
		}
		for isDigit(l.ch) {
			numStr.WriteRune(l.ch)
			l.readChar()
		}
	}

	return token.Token{Type: kind, Literal: numStr.String(), Line: line, Column: column}
}

// readString assumes the opening " has already been consumed. An input that
// ends before the closing " yields an ILLEGAL token.
func (l *Lexer) readString(line, column int) token.Token {
	var result strings.Builder

	for {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Literal: result.String(), Line: line, Column: column}
		}

		if l.ch == '"' {
			l.readChar() // consume the closing "
			break
		}

		if l.ch == '\\' {
			l.readChar() // move to the escaped character
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case '"':
				result.WriteRune('"')
			default:
				result.WriteRune('\\')
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}

		l.readChar()
	}

	return token.Token{Type: token.STRING, Literal: result.String(), Line: line, Column: column}
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
