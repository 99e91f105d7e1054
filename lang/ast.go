package lang

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() (line, column int)
}

// Statement is a top-level statement in a snippet.
type Statement interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed snippet.
type Program struct {
	Statements []Statement
}

// Pos returns the position of the first statement, or 1:1 for an
// empty program.
func (p *Program) Pos() (int, int) {
	if len(p.Statements) == 0 {
		return 1, 1
	}
	return p.Statements[0].Pos()
}

// UseStatement binds a named module into the snippet, e.g. "use frames".
type UseStatement struct {
	Tok    Token
	Module string
}

func (s *UseStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Column }
func (s *UseStatement) stmtNode()       {}

// AssignStatement binds the value of an expression to a name.
type AssignStatement struct {
	Tok   Token // the identifier token
	Name  string
	Value Expr
}

func (s *AssignStatement) Pos() (int, int) { return s.Tok.Line, s.Tok.Column }
func (s *AssignStatement) stmtNode()       {}

// ExprStatement is a bare expression evaluated for its value.
type ExprStatement struct {
	Expr Expr
}

func (s *ExprStatement) Pos() (int, int) { return s.Expr.Pos() }
func (s *ExprStatement) stmtNode()       {}

// IntLit is an integer literal.
type IntLit struct {
	Tok   Token
	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Tok   Token
	Value float64
}

// StringLit is a quoted string literal.
type StringLit struct {
	Tok   Token
	Value string
}

// BoolLit is true or false.
type BoolLit struct {
	Tok   Token
	Value bool
}

// NilLit is the nil literal.
type NilLit struct {
	Tok Token
}

// ListLit is a bracketed list of expressions.
type ListLit struct {
	Tok   Token
	Elems []Expr
}

// Ident is a reference to a bound name.
type Ident struct {
	Tok  Token
	Name string
}

// AttrExpr selects a named attribute of a target, e.g. data.features.
type AttrExpr struct {
	Tok    Token // the '.' token
	Target Expr
	Name   string
}

// IndexExpr subscripts a target, e.g. rows[0] or data["features"].
type IndexExpr struct {
	Tok    Token // the '[' token
	Target Expr
	Index  Expr
}

// CallExpr invokes a callable with arguments. The callee is either an
// Ident (a builtin) or an AttrExpr (a module function or method).
type CallExpr struct {
	Tok    Token // the '(' token
	Callee Expr
	Args   []Expr
}

// UnaryExpr applies a prefix operator ("-" or "not").
type UnaryExpr struct {
	Tok     Token
	Op      string
	Operand Expr
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	Tok   Token // the operator token
	Op    string
	Left  Expr
	Right Expr
}

func (e *IntLit) Pos() (int, int)     { return e.Tok.Line, e.Tok.Column }
func (e *FloatLit) Pos() (int, int)   { return e.Tok.Line, e.Tok.Column }
func (e *StringLit) Pos() (int, int)  { return e.Tok.Line, e.Tok.Column }
func (e *BoolLit) Pos() (int, int)    { return e.Tok.Line, e.Tok.Column }
func (e *NilLit) Pos() (int, int)     { return e.Tok.Line, e.Tok.Column }
func (e *ListLit) Pos() (int, int)    { return e.Tok.Line, e.Tok.Column }
func (e *Ident) Pos() (int, int)      { return e.Tok.Line, e.Tok.Column }
func (e *AttrExpr) Pos() (int, int)   { return e.Tok.Line, e.Tok.Column }
func (e *IndexExpr) Pos() (int, int)  { return e.Tok.Line, e.Tok.Column }
func (e *CallExpr) Pos() (int, int)   { return e.Tok.Line, e.Tok.Column }
func (e *UnaryExpr) Pos() (int, int)  { return e.Tok.Line, e.Tok.Column }
func (e *BinaryExpr) Pos() (int, int) { return e.Tok.Line, e.Tok.Column }

func (e *IntLit) exprNode()     {}
func (e *FloatLit) exprNode()   {}
func (e *StringLit) exprNode()  {}
func (e *BoolLit) exprNode()    {}
func (e *NilLit) exprNode()     {}
func (e *ListLit) exprNode()    {}
func (e *Ident) exprNode()      {}
func (e *AttrExpr) exprNode()   {}
func (e *IndexExpr) exprNode()  {}
func (e *CallExpr) exprNode()   {}
func (e *UnaryExpr) exprNode()  {}
func (e *BinaryExpr) exprNode() {}
