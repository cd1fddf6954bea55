package truntime

import (
	"strconv"

	"github.com/gosuda/tarobot/ast"
)

// Type is the tag carried by every value.
type Type int

const (
	// None is the "no value" sentinel: an omitted initializer, the result of
	// a procedure call or a turn. It coerces to the zero value of any type.
	None Type = iota
	Int
	Boolean
	CInt
	CBoolean
)

var typeNames = [...]string{
	None:     "none",
	Int:      "int",
	Boolean:  "boolean",
	CInt:     "cint",
	CBoolean: "cboolean",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Constant reports whether bindings of this type refuse assignment.
func (t Type) Constant() bool {
	return t == CInt || t == CBoolean
}

// Base strips constancy: cint is int, cboolean is boolean.
func (t Type) Base() Type {
	switch t {
	case CInt:
		return Int
	case CBoolean:
		return Boolean
	}
	return t
}

// TypeOf maps a declared type name to its tag.
func TypeOf(name ast.TypeName) (Type, bool) {
	switch name {
	case ast.TypeInt:
		return Int, true
	case ast.TypeCInt:
		return CInt, true
	case ast.TypeBoolean:
		return Boolean, true
	case ast.TypeCBoolean:
		return CBoolean, true
	}
	return None, false
}

// Variable is an immutable tagged value. Rebinding a name replaces the
// Variable; it is never mutated in place.
type Variable struct {
	typ Type
	i   int
	b   bool
}

func NewInt(n int) Variable {
	return Variable{typ: Int, i: n}
}

func NewBool(b bool) Variable {
	return Variable{typ: Boolean, b: b}
}

// Zero returns the zero value of t.
func Zero(t Type) Variable {
	return Variable{typ: t}
}

func (v Variable) Type() Type {
	return v.typ
}

func (v Variable) IsNone() bool {
	return v.typ == None
}

// Int returns the integer payload. Booleans and None read as their integer
// coercion.
func (v Variable) Int() int {
	if v.typ.Base() == Boolean {
		if v.b {
			return 1
		}
		return 0
	}
	return v.i
}

// Bool returns the truth value under the int to boolean coercion.
func (v Variable) Bool() bool {
	if v.typ.Base() == Boolean {
		return v.b
	}
	return v.i != 0
}

// Text formats the payload alone.
func (v Variable) Text() string {
	switch v.typ.Base() {
	case None:
		return "none"
	case Boolean:
		return strconv.FormatBool(v.b)
	}
	return strconv.Itoa(v.i)
}

func (v Variable) String() string {
	if v.typ == None {
		return "none"
	}
	return v.typ.String() + " " + v.Text()
}
