package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"

	// Literals
	INT    = "INT"    // 1343456, -42
	FLOAT  = "FLOAT"  // 10.5, 1e3
	STRING = "STRING" // "foobar"

	// Delimiters
	COMMA = ","
	COLON = ":"

	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"
)

// Token is one classified lexical unit. Line and Column are 1-based and
// point at the token's first character.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}
