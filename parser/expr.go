package parser

import (
	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/lexer"
)

var binaryOps = map[lexer.Kind]string{
	lexer.Or:  ast.OpOr,
	lexer.Lt:  ast.OpLt,
	lexer.Gt:  ast.OpGt,
	lexer.Inc: ast.OpInc,
	lexer.Dec: ast.OpDec,
}

var robotActions = map[lexer.Kind]string{
	lexer.Step:  ast.ActionStep,
	lexer.Back:  ast.ActionBack,
	lexer.Left:  ast.ActionLeft,
	lexer.Right: ast.ActionRight,
	lexer.Look:  ast.ActionLook,
}

// startsExpr reports whether a token of kind k can begin an expression.
func startsExpr(k lexer.Kind) bool {
	switch k {
	case lexer.IntDecimal, lexer.Variable, lexer.True, lexer.False, lexer.Not:
		return true
	}
	_, bin := binaryOps[k]
	_, act := robotActions[k]
	return bin || act
}

// parseExpr parses one prefix-form expression. Every operator has a fixed
// arity, so operands need no delimiters.
func (p *parser) parseExpr() (ast.Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, diag.Errorf(diag.SyntaxError, p.tok.Line, "expression nesting too deep")
	}

	t := p.tok
	at := ast.At{Line: t.Line}
	switch t.Kind {
	case lexer.IntDecimal:
		p.advance()
		return ast.IntLit{At: at, Value: t.Int}, nil
	case lexer.True, lexer.False:
		p.advance()
		return ast.BoolLit{At: at, Value: t.Kind == lexer.True}, nil
	case lexer.Variable:
		p.advance()
		if p.is(lexer.LeftSquareBracket) {
			return p.parseCall(t)
		}
		return ast.VarRef{At: at, Name: t.Text}, nil
	case lexer.Not:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{At: at, Op: ast.OpNot, X: x}, nil
	}
	if op, ok := binaryOps[t.Kind]; ok {
		p.advance()
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.BinaryExpr{At: at, Op: op, Left: left, Right: right}, nil
	}
	if action, ok := robotActions[t.Kind]; ok {
		p.advance()
		x := ast.RobotExpr{At: at, Action: action}
		if action == ast.ActionStep && startsExpr(p.tok.Kind) {
			amount, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			x.Amount = amount
		}
		return x, nil
	}
	return nil, p.unexpected("expression")
}

// parseCall reads the bracketed argument list after a procedure name.
func (p *parser) parseCall(name lexer.Token) (ast.Expr, error) {
	p.advance() // [
	call := ast.CallExpr{At: ast.At{Line: name.Line}, Name: name.Text}
	for !p.is(lexer.RightSquareBracket) {
		if !startsExpr(p.tok.Kind) {
			return nil, p.unexpected(`argument or "]"`)
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	p.advance() // ]
	return call, nil
}
