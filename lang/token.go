package lang

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	TokenIllegal TokenType = "ILLEGAL"
	TokenEOF     TokenType = "EOF"
	TokenNewline TokenType = "NEWLINE"

	TokenIdent  TokenType = "IDENT"
	TokenInt    TokenType = "INT"
	TokenFloat  TokenType = "FLOAT"
	TokenString TokenType = "STRING"

	TokenUse   TokenType = "USE"
	TokenTrue  TokenType = "TRUE"
	TokenFalse TokenType = "FALSE"
	TokenNil   TokenType = "NIL"
	TokenAnd   TokenType = "AND"
	TokenOr    TokenType = "OR"
	TokenNot   TokenType = "NOT"

	TokenAssign    TokenType = "="
	TokenPlus      TokenType = "+"
	TokenMinus     TokenType = "-"
	TokenStar      TokenType = "*"
	TokenSlash     TokenType = "/"
	TokenPercent   TokenType = "%"
	TokenEq        TokenType = "=="
	TokenNotEq     TokenType = "!="
	TokenLt        TokenType = "<"
	TokenLte       TokenType = "<="
	TokenGt        TokenType = ">"
	TokenGte       TokenType = ">="
	TokenComma     TokenType = ","
	TokenDot       TokenType = "."
	TokenSemicolon TokenType = ";"
	TokenLParen    TokenType = "("
	TokenRParen    TokenType = ")"
	TokenLBracket  TokenType = "["
	TokenRBracket  TokenType = "]"
)

// Token is a single lexical unit with its source position.
// Line and Column are 1-based.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"use":   TokenUse,
	"true":  TokenTrue,
	"false": TokenFalse,
	"nil":   TokenNil,
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
}

// lookupIdent returns the keyword token type for ident, or TokenIdent
// if it is not a reserved word.
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
