package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := newLexer(src)
	var toks []Token
	for {
		tok := l.nextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF || tok.Type == TokenIllegal {
			return toks
		}
	}
}

func TestLexerTokens(t *testing.T) {
	src := `total = frames.frame(rows).sum("area_sqm") + 2 * -1.5`
	want := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdent, "total"},
		{TokenAssign, "="},
		{TokenIdent, "frames"},
		{TokenDot, "."},
		{TokenIdent, "frame"},
		{TokenLParen, "("},
		{TokenIdent, "rows"},
		{TokenRParen, ")"},
		{TokenDot, "."},
		{TokenIdent, "sum"},
		{TokenLParen, "("},
		{TokenString, "area_sqm"},
		{TokenRParen, ")"},
		{TokenPlus, "+"},
		{TokenInt, "2"},
		{TokenStar, "*"},
		{TokenMinus, "-"},
		{TokenFloat, "1.5"},
		{TokenEOF, ""},
	}

	toks := lexAll(t, src)
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, toks[i].Type, "token %d", i)
		assert.Equal(t, w.lit, toks[i].Literal, "token %d", i)
	}
}

func TestLexerOperators(t *testing.T) {
	src := `== != <= >= < > && || ! and or not %`
	want := []TokenType{
		TokenEq, TokenNotEq, TokenLte, TokenGte, TokenLt, TokenGt,
		TokenAnd, TokenOr, TokenNot, TokenAnd, TokenOr, TokenNot,
		TokenPercent, TokenEOF,
	}

	toks := lexAll(t, src)
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestLexerKeywords(t *testing.T) {
	toks := lexAll(t, "use true false nil used")
	want := []TokenType{TokenUse, TokenTrue, TokenFalse, TokenNil, TokenIdent, TokenEOF}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
	assert.Equal(t, "used", toks[4].Literal)
}

func TestLexerStrings(t *testing.T) {
	t.Run("double quoted", func(t *testing.T) {
		toks := lexAll(t, `"hello world"`)
		require.Equal(t, TokenString, toks[0].Type)
		assert.Equal(t, "hello world", toks[0].Literal)
	})

	t.Run("single quoted", func(t *testing.T) {
		toks := lexAll(t, `'park'`)
		require.Equal(t, TokenString, toks[0].Type)
		assert.Equal(t, "park", toks[0].Literal)
	})

	t.Run("escapes", func(t *testing.T) {
		toks := lexAll(t, `"a\nb\t\"c\""`)
		require.Equal(t, TokenString, toks[0].Type)
		assert.Equal(t, "a\nb\t\"c\"", toks[0].Literal)
	})

	t.Run("unterminated", func(t *testing.T) {
		toks := lexAll(t, `'oops`)
		require.Equal(t, TokenIllegal, toks[0].Type)
		assert.Contains(t, toks[0].Literal, "unterminated string")
	})

	t.Run("unterminated at newline", func(t *testing.T) {
		toks := lexAll(t, "'oops\nnext")
		require.Equal(t, TokenIllegal, toks[0].Type)
		assert.Contains(t, toks[0].Literal, "unterminated string")
	})

	t.Run("bad escape", func(t *testing.T) {
		toks := lexAll(t, `"a\qb"`)
		require.Equal(t, TokenIllegal, toks[0].Type)
		assert.Contains(t, toks[0].Literal, "invalid escape")
	})
}

func TestLexerComments(t *testing.T) {
	src := "x = 1 # bind x\n# full line comment\ny"
	toks := lexAll(t, src)
	want := []TokenType{
		TokenIdent, TokenAssign, TokenInt, TokenNewline,
		TokenNewline, TokenIdent, TokenEOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestLexerPositions(t *testing.T) {
	toks := lexAll(t, "x = 1\ny")

	require.Len(t, toks, 6)
	assert.Equal(t, [2]int{1, 1}, [2]int{toks[0].Line, toks[0].Column}, "x")
	assert.Equal(t, [2]int{1, 3}, [2]int{toks[1].Line, toks[1].Column}, "=")
	assert.Equal(t, [2]int{1, 5}, [2]int{toks[2].Line, toks[2].Column}, "1")
	assert.Equal(t, [2]int{1, 6}, [2]int{toks[3].Line, toks[3].Column}, "newline")
	assert.Equal(t, [2]int{2, 1}, [2]int{toks[4].Line, toks[4].Column}, "y")
}

func TestLexerIllegalCharacter(t *testing.T) {
	toks := lexAll(t, "x @ y")
	require.Equal(t, TokenIdent, toks[0].Type)
	require.Equal(t, TokenIllegal, toks[1].Type)
	assert.Contains(t, toks[1].Literal, "unexpected character")
}
