package truntime

import "github.com/gosuda/tarobot/diag"

// Coerce converts v to type to. Same-base conversions keep the payload,
// int to boolean maps nonzero to true, boolean to int maps true to 1, and
// None becomes the zero value of to. The result carries the target tag, so
// coercing into cint or cboolean yields a constant.
func Coerce(v Variable, to Type) (Variable, error) {
	if to < Int || to > CBoolean {
		return Variable{}, diag.Errorf(diag.UnexpectedType, 0, "cannot convert %s to %s", v.typ, to)
	}
	switch v.typ.Base() {
	case None:
		return Zero(to), nil
	case Int:
		if to.Base() == Int {
			return Variable{typ: to, i: v.i}, nil
		}
		return Variable{typ: to, b: v.i != 0}, nil
	case Boolean:
		if to.Base() == Boolean {
			return Variable{typ: to, b: v.b}, nil
		}
		return Variable{typ: to, i: v.Int()}, nil
	}
	return Variable{}, diag.Errorf(diag.UnexpectedType, 0, "cannot convert %s to %s", v.typ, to)
}

// intOperand reads an arithmetic operand. None counts as 0; booleans are
// rejected.
func intOperand(v Variable, op string) (int, error) {
	switch v.typ.Base() {
	case Int, None:
		return v.i, nil
	}
	return 0, diag.Errorf(diag.TypeMismatch, 0, "%s expects int operands, got %s", op, v.typ)
}

// truth reads a condition or logical operand.
func truth(v Variable) (bool, error) {
	c, err := Coerce(v, Boolean)
	if err != nil {
		return false, err
	}
	return c.b, nil
}
