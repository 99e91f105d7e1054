package lang

import "fmt"

// lexer turns snippet source into a stream of tokens. Newlines are
// significant (they terminate statements) and are emitted as tokens;
// spaces, tabs and carriage returns are skipped. Comments run from '#'
// to the end of the line.
type lexer struct {
	input  string
	pos    int  // current position in input
	next   int  // reading position (one past pos)
	ch     byte // current character, 0 at EOF
	line   int
	column int
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.next >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.next]
	}
	l.pos = l.next
	l.next++
	l.column++
}

func (l *lexer) peekChar() byte {
	if l.next >= len(l.input) {
		return 0
	}
	return l.input[l.next]
}

// nextToken scans and returns the next token in the input.
func (l *lexer) nextToken() Token {
	l.skipSpace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		return tok
	case '\n':
		tok.Type = TokenNewline
		tok.Literal = "\n"
		l.readChar()
		l.line++
		l.column = 1
		return tok
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenEq, "=="
		} else {
			tok.Type, tok.Literal = TokenAssign, "="
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenNotEq, "!="
		} else {
			tok.Type, tok.Literal = TokenNot, "!"
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenLte, "<="
		} else {
			tok.Type, tok.Literal = TokenLt, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenGte, ">="
		} else {
			tok.Type, tok.Literal = TokenGt, ">"
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok.Type, tok.Literal = TokenAnd, "&&"
		} else {
			tok.Type = TokenIllegal
			tok.Literal = "unexpected character '&'"
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok.Type, tok.Literal = TokenOr, "||"
		} else {
			tok.Type = TokenIllegal
			tok.Literal = "unexpected character '|'"
		}
	case '+':
		tok.Type, tok.Literal = TokenPlus, "+"
	case '-':
		tok.Type, tok.Literal = TokenMinus, "-"
	case '*':
		tok.Type, tok.Literal = TokenStar, "*"
	case '/':
		tok.Type, tok.Literal = TokenSlash, "/"
	case '%':
		tok.Type, tok.Literal = TokenPercent, "%"
	case ',':
		tok.Type, tok.Literal = TokenComma, ","
	case '.':
		tok.Type, tok.Literal = TokenDot, "."
	case ';':
		tok.Type, tok.Literal = TokenSemicolon, ";"
	case '(':
		tok.Type, tok.Literal = TokenLParen, "("
	case ')':
		tok.Type, tok.Literal = TokenRParen, ")"
	case '[':
		tok.Type, tok.Literal = TokenLBracket, "["
	case ']':
		tok.Type, tok.Literal = TokenRBracket, "]"
	case '\'', '"':
		return l.readString(l.ch)
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			tok.Type = lookupIdent(lit)
			tok.Literal = lit
			return tok
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok.Type = TokenIllegal
		tok.Literal = fmt.Sprintf("unexpected character %q", string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *lexer) skipSpace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *lexer) readNumber() Token {
	tok := Token{Type: TokenInt, Line: l.line, Column: l.column}
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tok.Type = TokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Literal = l.input[start:l.pos]
	return tok
}

func (l *lexer) readString(quote byte) Token {
	tok := Token{Type: TokenString, Line: l.line, Column: l.column}
	l.readChar() // consume opening quote

	var out []byte
	for l.ch != quote {
		switch l.ch {
		case 0, '\n':
			tok.Type = TokenIllegal
			tok.Literal = "unterminated string literal"
			return tok
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\', '\'', '"':
				out = append(out, l.ch)
			default:
				tok.Type = TokenIllegal
				tok.Literal = fmt.Sprintf("invalid escape sequence \\%s", string(l.ch))
				return tok
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
	l.readChar() // consume closing quote
	tok.Literal = string(out)
	return tok
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
