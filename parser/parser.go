package parser

import (
	"strings"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/lexer"
)

const maxNesting = 256

// Parse builds the syntax tree and procedure table for src. Every syntax
// error is raised on sink; the returned flag reports whether any occurred.
// The tree is always returned, with unparseable statements left out.
func Parse(src string, sink diag.Sink) (*ast.Program, bool) {
	if sink == nil {
		sink = diag.Discard
	}
	p := &parser{
		lx:    lexer.New(src, sink),
		sink:  sink,
		procs: map[string]*ast.Proc{},
	}
	p.advance()
	body := p.parseStatements(false)
	prog := &ast.Program{
		Body:  body,
		Procs: p.procs,
		Order: p.order,
	}
	return prog, p.errors+p.lx.Errors() > 0
}

type parser struct {
	lx     *lexer.Lexer
	sink   diag.Sink
	tok    lexer.Token
	ahead  *lexer.Token
	errors int
	blocks int
	depth  int
	procs  map[string]*ast.Proc
	order  []string
}

func (p *parser) advance() {
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
		return
	}
	p.tok = p.lx.Next()
}

func (p *parser) peek() lexer.Token {
	if p.ahead == nil {
		t := p.lx.Next()
		p.ahead = &t
	}
	return *p.ahead
}

func (p *parser) is(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

func (p *parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	t := p.tok
	if t.Kind != kind {
		return t, p.unexpected(what)
	}
	p.advance()
	return t, nil
}

func (p *parser) skipNewLines() {
	for p.tok.Kind == lexer.NewLine {
		p.advance()
	}
}

func (p *parser) unexpected(what string) error {
	switch p.tok.Kind {
	case lexer.EOF:
		return diag.Errorf(diag.SyntaxError, p.tok.Line, "expected %s, found end of input", what)
	case lexer.NewLine:
		return diag.Errorf(diag.SyntaxError, p.tok.Line, "expected %s, found end of line", what)
	default:
		return diag.Errorf(diag.SyntaxError, p.tok.Line, "expected %s, found %q", what, p.tok.Text)
	}
}

func (p *parser) report(err error) {
	p.errors++
	if de, ok := err.(*diag.Error); ok {
		p.sink.Raise(de.Diagnostic())
		return
	}
	p.sink.Raise(diag.Diagnostic{Kind: diag.SyntaxError, Line: p.tok.Line, Message: err.Error()})
}

// skipStatement skips the rest of a broken statement. Inside a block it stops in
// front of a closing bracket so the block can still be closed.
func (p *parser) skipStatement() {
	for {
		switch p.tok.Kind {
		case lexer.EOF:
			return
		case lexer.NewLine:
			p.advance()
			return
		case lexer.RightBracket:
			if p.blocks > 0 {
				return
			}
		}
		p.advance()
	}
}

// parseStatements reads statements until EOF or, inside a block, until the
// closing bracket, which is left unconsumed.
func (p *parser) parseStatements(inBlock bool) *ast.Block {
	block := &ast.Block{At: ast.At{Line: p.tok.Line}}
	for {
		p.skipNewLines()
		switch p.tok.Kind {
		case lexer.EOF:
			return block
		case lexer.RightBracket:
			if inBlock {
				return block
			}
			p.report(diag.Errorf(diag.SyntaxError, p.tok.Line, "unmatched %q", p.tok.Text))
			p.advance()
			continue
		}
		st, err := p.parseStatement()
		if err == nil {
			err = p.endStatement(inBlock)
		}
		if err != nil {
			p.report(err)
			p.skipStatement()
			continue
		}
		if st != nil {
			block.Statements = append(block.Statements, st)
		}
	}
}

// endStatement checks the statement terminator. A closing bracket or end of
// input also ends a statement; neither is consumed.
func (p *parser) endStatement(inBlock bool) error {
	switch p.tok.Kind {
	case lexer.NewLine:
		p.advance()
		return nil
	case lexer.EOF:
		return nil
	case lexer.RightBracket:
		if inBlock {
			return nil
		}
	}
	return p.unexpected("end of line")
}

// parseStatement returns a nil statement for procedure definitions, which
// go to the procedure table instead of the statement list.
func (p *parser) parseStatement() (ast.Statement, error) {
	switch p.tok.Kind {
	case lexer.Int, lexer.CInt, lexer.Boolean, lexer.CBoolean:
		return p.parseDeclaration()
	case lexer.Map:
		return p.parseMapDecl()
	case lexer.Bar, lexer.Emp, lexer.Set, lexer.Clr:
		return p.parseMapAction()
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.Proc:
		return nil, p.parseProc()
	case lexer.Variable:
		switch p.peek().Kind {
		case lexer.Assign:
			return p.parseAssignment()
		case lexer.LeftSquareBracket:
			return p.parseExprStmt()
		}
		p.advance()
		return nil, p.unexpected(`":=" or "["`)
	case lexer.Step, lexer.Back, lexer.Left, lexer.Right, lexer.Look,
		lexer.Inc, lexer.Dec,
		lexer.Not, lexer.Or, lexer.Lt, lexer.Gt, lexer.True, lexer.False:
		return p.parseExprStmt()
	}
	return nil, p.unexpected("statement")
}

var typeNames = map[lexer.Kind]ast.TypeName{
	lexer.Int:      ast.TypeInt,
	lexer.CInt:     ast.TypeCInt,
	lexer.Boolean:  ast.TypeBoolean,
	lexer.CBoolean: ast.TypeCBoolean,
}

func (p *parser) parseDeclaration() (ast.Statement, error) {
	line := p.tok.Line
	typ := typeNames[p.tok.Kind]
	p.advance()
	name, err := p.expect(lexer.Variable, "variable name")
	if err != nil {
		return nil, err
	}
	decl := ast.Declaration{At: ast.At{Line: line}, Type: typ, Name: name.Text}
	if p.is(lexer.Equal) {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	return decl, nil
}

func (p *parser) parseMapDecl() (ast.Statement, error) {
	line := p.tok.Line
	p.advance()
	name, err := p.expect(lexer.Variable, "map name")
	if err != nil {
		return nil, err
	}
	return ast.MapDecl{At: ast.At{Line: line}, Name: name.Text}, nil
}

func (p *parser) parseMapAction() (ast.Statement, error) {
	line := p.tok.Line
	op := p.tok.Kind.String()
	p.advance()
	if _, err := p.expect(lexer.LeftSquareBracket, `"["`); err != nil {
		return nil, err
	}
	args := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		name, err := p.expect(lexer.Variable, "map argument")
		if err != nil {
			return nil, err
		}
		args = append(args, name.Text)
	}
	if _, err := p.expect(lexer.RightSquareBracket, `"]"`); err != nil {
		return nil, err
	}
	return ast.MapAction{At: ast.At{Line: line}, Op: strings.ToLower(op), Args: args}, nil
}

func (p *parser) parseAssignment() (ast.Statement, error) {
	name := p.tok
	p.advance() // name
	p.advance() // :=
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Assignment{At: ast.At{Line: name.Line}, Name: name.Text, Value: value}, nil
}

func (p *parser) parseExprStmt() (ast.Statement, error) {
	line := p.tok.Line
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.ExprStmt{At: ast.At{Line: line}, X: x}, nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	line := p.tok.Line
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	st := ast.IfStmt{At: ast.At{Line: line}, Cond: cond, Then: then}
	if p.is(lexer.NewLine) && p.peek().Kind == lexer.Else {
		p.advance()
	}
	if p.is(lexer.Else) {
		p.advance()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		st.Else = els
	}
	return st, nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	line := p.tok.Line
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipNewLines()
	if _, err := p.expect(lexer.Do, `"do"`); err != nil {
		return nil, err
	}
	st := ast.WhileStmt{At: ast.At{Line: line}, Cond: cond}
	if p.is(lexer.LeftBracket) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		st.Body = body
		return st, nil
	}
	bodyLine := p.tok.Line
	if p.is(lexer.Proc) {
		return nil, diag.Errorf(diag.SyntaxError, bodyLine, "procedure definition cannot be a loop body")
	}
	inner, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	st.Body = &ast.Block{At: ast.At{Line: bodyLine}, Statements: []ast.Statement{inner}}
	return st, nil
}

func (p *parser) parseProc() error {
	line := p.tok.Line
	p.advance()
	name, err := p.expect(lexer.Variable, "procedure name")
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.LeftSquareBracket, `"["`); err != nil {
		return err
	}
	params := []string{}
	seen := map[string]bool{}
	for p.is(lexer.Variable) {
		if seen[p.tok.Text] {
			return diag.Errorf(diag.SyntaxError, p.tok.Line, "duplicate parameter %s in procedure %s", p.tok.Text, name.Text)
		}
		seen[p.tok.Text] = true
		params = append(params, p.tok.Text)
		p.advance()
	}
	if _, err := p.expect(lexer.RightSquareBracket, `parameter name or "]"`); err != nil {
		return err
	}
	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	if prev, ok := p.procs[name.Text]; ok {
		return diag.Errorf(diag.SyntaxError, line, "procedure %s already defined on line %d", name.Text, prev.Line)
	}
	p.procs[name.Text] = &ast.Proc{Name: name.Text, Params: params, Body: body, Line: line}
	p.order = append(p.order, name.Text)
	return nil
}

// parseBlock reads "(" [NEW_LINE] statements ")".
func (p *parser) parseBlock() (*ast.Block, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, diag.Errorf(diag.SyntaxError, p.tok.Line, "block nesting too deep")
	}
	open, err := p.expect(lexer.LeftBracket, `"("`)
	if err != nil {
		return nil, err
	}
	p.blocks++
	body := p.parseStatements(true)
	p.blocks--
	body.Line = open.Line
	if _, err := p.expect(lexer.RightBracket, `")"`); err != nil {
		return nil, err
	}
	return body, nil
}
