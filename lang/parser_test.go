package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatements(t *testing.T) {
	prog, err := Parse("use frames\nparks = 1\nparks + 1")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	use, ok := prog.Statements[0].(*UseStatement)
	require.True(t, ok)
	assert.Equal(t, "frames", use.Module)

	assign, ok := prog.Statements[1].(*AssignStatement)
	require.True(t, ok)
	assert.Equal(t, "parks", assign.Name)
	lit, ok := assign.Value.(*IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)

	_, ok = prog.Statements[2].(*ExprStatement)
	require.True(t, ok)
}

func TestParseSemicolonSeparator(t *testing.T) {
	prog, err := Parse("a = 1; a + 1")
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 2)
}

func TestParseEmptyAndComments(t *testing.T) {
	t.Run("empty snippet", func(t *testing.T) {
		prog, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, prog.Statements)
	})

	t.Run("comments only", func(t *testing.T) {
		prog, err := Parse("# nothing here\n\n# still nothing")
		require.NoError(t, err)
		assert.Empty(t, prog.Statements)
	})

	t.Run("trailing comment", func(t *testing.T) {
		prog, err := Parse("1 + 1 # sum")
		require.NoError(t, err)
		assert.Len(t, prog.Statements, 1)
	})
}

func TestParsePrecedence(t *testing.T) {
	t.Run("multiplication binds tighter", func(t *testing.T) {
		prog, err := Parse("1 + 2 * 3")
		require.NoError(t, err)
		stmt := prog.Statements[0].(*ExprStatement)
		bin, ok := stmt.Expr.(*BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, "+", bin.Op)
		right, ok := bin.Right.(*BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, "*", right.Op)
	})

	t.Run("comparison binds tighter than and", func(t *testing.T) {
		prog, err := Parse("a > 1 and b < 2")
		require.NoError(t, err)
		bin := prog.Statements[0].(*ExprStatement).Expr.(*BinaryExpr)
		assert.Equal(t, "and", bin.Op)
		assert.Equal(t, ">", bin.Left.(*BinaryExpr).Op)
		assert.Equal(t, "<", bin.Right.(*BinaryExpr).Op)
	})

	t.Run("or binds loosest", func(t *testing.T) {
		prog, err := Parse("a and b or c")
		require.NoError(t, err)
		bin := prog.Statements[0].(*ExprStatement).Expr.(*BinaryExpr)
		assert.Equal(t, "or", bin.Op)
		assert.Equal(t, "and", bin.Left.(*BinaryExpr).Op)
	})

	t.Run("not applies to comparison", func(t *testing.T) {
		prog, err := Parse("not a == b")
		require.NoError(t, err)
		un := prog.Statements[0].(*ExprStatement).Expr.(*UnaryExpr)
		assert.Equal(t, "not", un.Op)
		assert.Equal(t, "==", un.Operand.(*BinaryExpr).Op)
	})

	t.Run("unary minus", func(t *testing.T) {
		prog, err := Parse("-2 + 3")
		require.NoError(t, err)
		bin := prog.Statements[0].(*ExprStatement).Expr.(*BinaryExpr)
		assert.Equal(t, "+", bin.Op)
		un := bin.Left.(*UnaryExpr)
		assert.Equal(t, "-", un.Op)
	})

	t.Run("parentheses override", func(t *testing.T) {
		prog, err := Parse("(1 + 2) * 3")
		require.NoError(t, err)
		bin := prog.Statements[0].(*ExprStatement).Expr.(*BinaryExpr)
		assert.Equal(t, "*", bin.Op)
		assert.Equal(t, "+", bin.Left.(*BinaryExpr).Op)
	})
}

func TestParsePostfixChain(t *testing.T) {
	prog, err := Parse(`frames.frame(data.features).filter("kind", "==", "park").count()`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	// count() on the result of filter(...)
	call, ok := prog.Statements[0].(*ExprStatement).Expr.(*CallExpr)
	require.True(t, ok)
	assert.Empty(t, call.Args)
	countAttr, ok := call.Callee.(*AttrExpr)
	require.True(t, ok)
	assert.Equal(t, "count", countAttr.Name)

	filterCall, ok := countAttr.Target.(*CallExpr)
	require.True(t, ok)
	require.Len(t, filterCall.Args, 3)
	filterAttr := filterCall.Callee.(*AttrExpr)
	assert.Equal(t, "filter", filterAttr.Name)

	frameCall := filterAttr.Target.(*CallExpr)
	require.Len(t, frameCall.Args, 1)
	featAttr, ok := frameCall.Args[0].(*AttrExpr)
	require.True(t, ok)
	assert.Equal(t, "features", featAttr.Name)
	assert.Equal(t, "data", featAttr.Target.(*Ident).Name)
}

func TestParseIndexing(t *testing.T) {
	prog, err := Parse(`rows[0]["name"]`)
	require.NoError(t, err)
	outer := prog.Statements[0].(*ExprStatement).Expr.(*IndexExpr)
	key, ok := outer.Index.(*StringLit)
	require.True(t, ok)
	assert.Equal(t, "name", key.Value)
	inner := outer.Target.(*IndexExpr)
	assert.Equal(t, int64(0), inner.Index.(*IntLit).Value)
	assert.Equal(t, "rows", inner.Target.(*Ident).Name)
}

func TestParseListLiterals(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		prog, err := Parse(`[1, 2.5, "three", true, nil]`)
		require.NoError(t, err)
		list := prog.Statements[0].(*ExprStatement).Expr.(*ListLit)
		require.Len(t, list.Elems, 5)
	})

	t.Run("empty", func(t *testing.T) {
		prog, err := Parse("[]")
		require.NoError(t, err)
		list := prog.Statements[0].(*ExprStatement).Expr.(*ListLit)
		assert.Empty(t, list.Elems)
	})

	t.Run("multiline", func(t *testing.T) {
		prog, err := Parse("[\n  1,\n  2,\n  3\n]")
		require.NoError(t, err)
		list := prog.Statements[0].(*ExprStatement).Expr.(*ListLit)
		assert.Len(t, list.Elems, 3)
	})

	t.Run("multiline arguments", func(t *testing.T) {
		prog, err := Parse("f.filter(\n  \"kind\",\n  \"==\",\n  \"park\"\n)")
		require.NoError(t, err)
		call := prog.Statements[0].(*ExprStatement).Expr.(*CallExpr)
		assert.Len(t, call.Args, 3)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"dangling operator", "1 +", "unexpected end of snippet"},
		{"missing value", "x =\n1", "unexpected end of line"},
		{"bad use", "use 5", "use requires a module name"},
		{"unterminated string", "'oops", "unterminated string"},
		{"illegal character", "x @ y", "unexpected character"},
		{"two statements one line", "x = 1 y = 2", `unexpected "y"`},
		{"missing paren", "(1 + 2", "expected ')'"},
		{"missing bracket", "rows[0", "expected ']'"},
		{"dangling dot", "data.", "expected attribute name"},
		{"bad argument list", "f(1 2)", "expected ',' or ')'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "syntax error at ")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInspect(t *testing.T) {
	prog, err := Parse(`x = f(1 + 2)
x`)
	require.NoError(t, err)

	t.Run("visits all nodes", func(t *testing.T) {
		var calls, idents int
		Inspect(prog, func(n Node) bool {
			if _, ok := n.(*CallExpr); ok {
				calls++
			}
			if _, ok := n.(*Ident); ok {
				idents++
			}
			return true
		})
		assert.Equal(t, 1, calls)
		assert.Equal(t, 2, idents) // callee f and the final x
	})

	t.Run("false skips children", func(t *testing.T) {
		var ints int
		Inspect(prog, func(n Node) bool {
			if _, ok := n.(*CallExpr); ok {
				return false
			}
			if _, ok := n.(*IntLit); ok {
				ints++
			}
			return true
		})
		assert.Zero(t, ints)
	})
}
