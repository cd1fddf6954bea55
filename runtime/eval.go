package truntime

import (
	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
)

func (in *Interpreter) eval(e ast.Expr) (Variable, error) {
	switch x := e.(type) {
	case ast.IntLit:
		return NewInt(x.Value), nil
	case ast.BoolLit:
		return NewBool(x.Value), nil
	case ast.VarRef:
		v, ok := in.scopes.Lookup(x.Name)
		if !ok {
			return Variable{}, diag.Errorf(diag.UndeclaredVariable, x.Line, "%s is not declared", x.Name)
		}
		return v, nil
	case ast.UnaryExpr:
		return in.evalUnary(x)
	case ast.BinaryExpr:
		return in.evalBinary(x)
	case ast.CallExpr:
		return in.call(x)
	case ast.RobotExpr:
		return in.evalRobot(x)
	case nil:
		return Variable{}, diag.Errorf(diag.UnexpectedInternal, 0, "missing expression")
	default:
		return Variable{}, diag.Errorf(diag.UnexpectedInternal, e.Pos(), "unsupported expression %T", e)
	}
}

func (in *Interpreter) evalUnary(x ast.UnaryExpr) (Variable, error) {
	v, err := in.eval(x.X)
	if err != nil {
		return Variable{}, err
	}
	if x.Op != ast.OpNot {
		return Variable{}, diag.Errorf(diag.UnexpectedInternal, x.Line, "unsupported unary operator %q", x.Op)
	}
	b, err := truth(v)
	if err != nil {
		return Variable{}, err
	}
	return NewBool(!b), nil
}

// evalBinary evaluates both operands left to right before applying the
// operator; "or" does not short-circuit, so robot actions on the right
// always happen.
func (in *Interpreter) evalBinary(x ast.BinaryExpr) (Variable, error) {
	left, err := in.eval(x.Left)
	if err != nil {
		return Variable{}, err
	}
	right, err := in.eval(x.Right)
	if err != nil {
		return Variable{}, err
	}

	if x.Op == ast.OpOr {
		l, err := truth(left)
		if err != nil {
			return Variable{}, err
		}
		r, err := truth(right)
		if err != nil {
			return Variable{}, err
		}
		return NewBool(l || r), nil
	}

	l, err := intOperand(left, x.Op)
	if err != nil {
		return Variable{}, diag.AtLine(err, x.Line)
	}
	r, err := intOperand(right, x.Op)
	if err != nil {
		return Variable{}, diag.AtLine(err, x.Line)
	}
	switch x.Op {
	case ast.OpInc:
		return NewInt(l + r), nil
	case ast.OpDec:
		return NewInt(l - r), nil
	case ast.OpLt:
		return NewBool(l < r), nil
	case ast.OpGt:
		return NewBool(l > r), nil
	}
	return Variable{}, diag.Errorf(diag.UnexpectedInternal, x.Line, "unsupported operator %q", x.Op)
}

func (in *Interpreter) evalRobot(x ast.RobotExpr) (Variable, error) {
	switch x.Action {
	case ast.ActionStep:
		n := 1
		if x.Amount != nil {
			v, err := in.eval(x.Amount)
			if err != nil {
				return Variable{}, err
			}
			n, err = intOperand(v, ast.ActionStep)
			if err != nil {
				return Variable{}, diag.AtLine(err, x.Line)
			}
		}
		return NewBool(in.robot.Step(n)), nil
	case ast.ActionBack:
		return NewInt(in.robot.Back()), nil
	case ast.ActionLook:
		return NewBool(in.robot.Exit()), nil
	case ast.ActionLeft:
		in.robot.Left()
		return Zero(None), nil
	case ast.ActionRight:
		in.robot.Right()
		return Zero(None), nil
	}
	return Variable{}, diag.Errorf(diag.UnexpectedInternal, x.Line, "unsupported robot action %q", x.Action)
}
