package truntime

import (
	"fmt"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
)

// execBlock runs statements in order in the current frame. A failing
// statement is raised and skipped; only fatal conditions are returned.
func (in *Interpreter) execBlock(b *ast.Block) error {
	if b == nil {
		return nil
	}
	for _, st := range b.Statements {
		err := in.exec(st)
		if err == nil {
			continue
		}
		err = diag.AtLine(err, st.Pos())
		if diag.IsFatal(err) {
			return err
		}
		in.raise(err, st.Pos())
	}
	return nil
}

// execScoped runs b in a fresh block frame.
func (in *Interpreter) execScoped(b *ast.Block) error {
	release := in.scopes.Push()
	defer release()
	return in.execBlock(b)
}

func (in *Interpreter) exec(st ast.Statement) error {
	switch s := st.(type) {
	case ast.Declaration:
		return in.declare(s)
	case ast.Assignment:
		return in.assign(s)
	case ast.IfStmt:
		return in.execIf(s)
	case ast.WhileStmt:
		return in.execWhile(s)
	case ast.ExprStmt:
		_, err := in.eval(s.X)
		return err
	case ast.MapDecl:
		in.log.Debug("map statement skipped", "name", s.Name, "line", s.Line)
		return nil
	case ast.MapAction:
		in.log.Debug("map statement skipped", "op", s.Op, "line", s.Line)
		return nil
	default:
		return diag.Errorf(diag.UnexpectedInternal, st.Pos(), "unsupported statement %T", st)
	}
}

func (in *Interpreter) declare(s ast.Declaration) error {
	typ, ok := TypeOf(s.Type)
	if !ok {
		return diag.Errorf(diag.UnexpectedType, s.Line, "unknown type %q", s.Type)
	}
	val := Zero(None)
	if s.Init != nil {
		v, err := in.eval(s.Init)
		if err != nil {
			return err
		}
		val = v
	}
	v, err := Coerce(val, typ)
	if err != nil {
		return err
	}
	return in.scopes.Declare(s.Name, v)
}

func (in *Interpreter) assign(s ast.Assignment) error {
	cur, ok := in.scopes.Lookup(s.Name)
	if !ok {
		return diag.Errorf(diag.UndeclaredVariable, s.Line, "%s is not declared", s.Name)
	}
	if cur.typ.Constant() {
		return diag.Errorf(diag.ConstantAssignment, s.Line, "%s is a constant %s", s.Name, cur.typ)
	}
	val, err := in.eval(s.Value)
	if err != nil {
		return err
	}
	next, err := Coerce(val, cur.typ)
	if err != nil {
		return err
	}
	return in.scopes.Assign(s.Name, next)
}

func (in *Interpreter) execIf(s ast.IfStmt) error {
	release := in.scopes.Push()
	defer release()

	cond, err := in.condition(s.Cond)
	if err != nil {
		return err
	}
	if cond {
		return in.execBlock(s.Then)
	}
	return in.execBlock(s.Else)
}

// execWhile runs the body, then tests the condition. The condition lives in
// one frame for the whole loop and each body execution gets its own frame.
func (in *Interpreter) execWhile(s ast.WhileStmt) error {
	release := in.scopes.Push()
	defer release()

	for n := 0; ; n++ {
		if n == in.limits.MaxLoopIterations {
			return diag.Errorf(diag.LoopLimitExceeded, s.Line, "loop ran %d times", n)
		}
		if err := in.execScoped(s.Body); err != nil {
			return err
		}
		cond, err := in.condition(s.Cond)
		if err != nil {
			return err
		}
		if !cond {
			in.log.Debug("loop done", "line", s.Line, "iterations", n+1)
			return nil
		}
	}
}

func (in *Interpreter) condition(x ast.Expr) (bool, error) {
	v, err := in.eval(x)
	if err != nil {
		return false, err
	}
	return truth(v)
}

// call runs a procedure in its own frame. Arguments are evaluated in the
// caller's scope. The depth counter and the frame are released on every
// path out of the body.
func (in *Interpreter) call(c ast.CallExpr) (Variable, error) {
	proc, ok := in.prog.Procs[c.Name]
	if !ok {
		return Variable{}, diag.Errorf(diag.UndeclaredProcedure, c.Line, "%s is not defined", c.Name)
	}
	if len(c.Args) != len(proc.Params) {
		return Variable{}, diag.Errorf(diag.TypeMismatch, c.Line,
			"%s takes %d %s, got %d", c.Name, len(proc.Params), plural(len(proc.Params), "argument"), len(c.Args))
	}
	args := make([]Variable, len(c.Args))
	for i, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return Variable{}, err
		}
		args[i] = v
	}

	in.depth[c.Name]++
	defer func() { in.depth[c.Name]-- }()
	if d := in.depth[c.Name]; d > in.limits.MaxCallDepth {
		return Variable{}, diag.Errorf(diag.RecursionLimitExceeded, c.Line,
			"%s exceeded call depth %d", c.Name, in.limits.MaxCallDepth)
	}

	release := in.scopes.PushProc()
	defer release()
	for i, name := range proc.Params {
		if err := in.scopes.Declare(name, param(args[i])); err != nil {
			return Variable{}, err
		}
	}
	in.log.Debug("call", "proc", c.Name, "depth", in.depth[c.Name])
	if err := in.execBlock(proc.Body); err != nil {
		return Variable{}, err
	}
	return Zero(None), nil
}

// param binds an argument as a mutable variable of the argument's base type.
func param(v Variable) Variable {
	t := v.typ.Base()
	if t == None {
		t = Int
	}
	p, _ := Coerce(v, t)
	return p
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%ss", word)
}
