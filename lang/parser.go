package lang

import (
	"fmt"
	"strconv"
)

// Parse turns snippet source into a Program. It fails fast: the first
// syntax error encountered is returned with its source position.
func Parse(src string) (*Program, error) {
	p := &parser{lex: newLexer(src)}
	p.advance()
	p.advance()
	return p.parseProgram()
}

// parser is a recursive descent parser over the token stream. Grammar,
// loosest binding first:
//
//	program    = { statement (NEWLINE | ";") }
//	statement  = "use" IDENT | IDENT "=" expr | expr
//	expr       = or
//	or         = and { ("or" | "||") and }
//	and        = not { ("and" | "&&") not }
//	not        = ("not" | "!") not | comparison
//	comparison = additive { ("==" | "!=" | "<" | "<=" | ">" | ">=") additive }
//	additive   = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = unary { ("*" | "/" | "%") unary }
//	unary      = "-" unary | postfix
//	postfix    = primary { "." IDENT | "[" expr "]" | "(" args ")" }
//	primary    = INT | FLOAT | STRING | "true" | "false" | "nil"
//	           | IDENT | list | "(" expr ")"
//
// Newlines separate statements but are ignored inside parentheses and
// brackets, so argument lists and list literals may span lines.
type parser struct {
	lex  *lexer
	cur  Token
	peek Token
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.nextToken()
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return fmt.Errorf("syntax error at %d:%d: %s", tok.Line, tok.Column, fmt.Sprintf(format, args...))
}

func (p *parser) unexpected(tok Token) error {
	switch tok.Type {
	case TokenIllegal:
		return p.errorf(tok, "%s", tok.Literal)
	case TokenEOF:
		return p.errorf(tok, "unexpected end of snippet")
	case TokenNewline:
		return p.errorf(tok, "unexpected end of line")
	default:
		return p.errorf(tok, "unexpected %q", tok.Literal)
	}
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.cur.Type != TokenEOF {
		if p.cur.Type == TokenNewline || p.cur.Type == TokenSemicolon {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		switch p.cur.Type {
		case TokenEOF, TokenNewline, TokenSemicolon:
		default:
			return nil, p.unexpected(p.cur)
		}
	}
	return prog, nil
}

func (p *parser) parseStatement() (Statement, error) {
	switch {
	case p.cur.Type == TokenUse:
		return p.parseUse()
	case p.cur.Type == TokenIdent && p.peek.Type == TokenAssign:
		return p.parseAssign()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ExprStatement{Expr: expr}, nil
	}
}

func (p *parser) parseUse() (Statement, error) {
	stmt := &UseStatement{Tok: p.cur}
	p.advance()
	if p.cur.Type != TokenIdent {
		return nil, p.errorf(p.cur, "use requires a module name")
	}
	stmt.Module = p.cur.Literal
	p.advance()
	return stmt, nil
}

func (p *parser) parseAssign() (Statement, error) {
	stmt := &AssignStatement{Tok: p.cur, Name: p.cur.Literal}
	p.advance() // name
	p.advance() // '='
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenOr {
		tok := p.cur
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Tok: tok, Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenAnd {
		tok := p.cur
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Tok: tok, Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.cur.Type == TokenNot {
		tok := p.cur
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Tok: tok, Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[TokenType]string{
	TokenEq:    "==",
	TokenNotEq: "!=",
	TokenLt:    "<",
	TokenLte:   "<=",
	TokenGt:    ">",
	TokenGte:   ">=",
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		tok := p.cur
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Tok: tok, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenPlus || p.cur.Type == TokenMinus {
		tok := p.cur
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Tok: tok, Op: string(tok.Type), Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenStar || p.cur.Type == TokenSlash || p.cur.Type == TokenPercent {
		tok := p.cur
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Tok: tok, Op: string(tok.Type), Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.cur.Type == TokenMinus {
		tok := p.cur
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Tok: tok, Op: "-", Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case TokenDot:
			tok := p.cur
			p.advance()
			if p.cur.Type != TokenIdent {
				return nil, p.errorf(p.cur, "expected attribute name after '.'")
			}
			expr = &AttrExpr{Tok: tok, Target: expr, Name: p.cur.Literal}
			p.advance()
		case TokenLBracket:
			tok := p.cur
			p.advance()
			p.skipNewlines()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			p.skipNewlines()
			if p.cur.Type != TokenRBracket {
				return nil, p.errorf(p.cur, "expected ']'")
			}
			p.advance()
			expr = &IndexExpr{Tok: tok, Target: expr, Index: index}
		case TokenLParen:
			tok := p.cur
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Tok: tok, Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

// parseArgs parses a parenthesized, comma separated argument list.
// The current token must be '('.
func (p *parser) parseArgs() ([]Expr, error) {
	p.advance() // '('
	p.skipNewlines()
	var args []Expr
	if p.cur.Type == TokenRParen {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		switch p.cur.Type {
		case TokenComma:
			p.advance()
			p.skipNewlines()
		case TokenRParen:
			p.advance()
			return args, nil
		default:
			return nil, p.errorf(p.cur, "expected ',' or ')' in argument list")
		}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.Type {
	case TokenInt:
		v, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(p.cur, "invalid integer literal %q", p.cur.Literal)
		}
		expr := &IntLit{Tok: p.cur, Value: v}
		p.advance()
		return expr, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, p.errorf(p.cur, "invalid number literal %q", p.cur.Literal)
		}
		expr := &FloatLit{Tok: p.cur, Value: v}
		p.advance()
		return expr, nil
	case TokenString:
		expr := &StringLit{Tok: p.cur, Value: p.cur.Literal}
		p.advance()
		return expr, nil
	case TokenTrue, TokenFalse:
		expr := &BoolLit{Tok: p.cur, Value: p.cur.Type == TokenTrue}
		p.advance()
		return expr, nil
	case TokenNil:
		expr := &NilLit{Tok: p.cur}
		p.advance()
		return expr, nil
	case TokenIdent:
		expr := &Ident{Tok: p.cur, Name: p.cur.Literal}
		p.advance()
		return expr, nil
	case TokenLBracket:
		return p.parseList()
	case TokenLParen:
		p.advance()
		p.skipNewlines()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if p.cur.Type != TokenRParen {
			return nil, p.errorf(p.cur, "expected ')'")
		}
		p.advance()
		return expr, nil
	default:
		return nil, p.unexpected(p.cur)
	}
}

func (p *parser) parseList() (Expr, error) {
	list := &ListLit{Tok: p.cur}
	p.advance() // '['
	p.skipNewlines()
	if p.cur.Type == TokenRBracket {
		p.advance()
		return list, nil
	}
	for {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		p.skipNewlines()
		switch p.cur.Type {
		case TokenComma:
			p.advance()
			p.skipNewlines()
		case TokenRBracket:
			p.advance()
			return list, nil
		default:
			return nil, p.errorf(p.cur, "expected ',' or ']' in list")
		}
	}
}

func (p *parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.advance()
	}
}
