package ast

// Program is the result of parsing: the top-level statement list and the
// procedure table lifted out of it.
type Program struct {
	Body  *Block
	Procs map[string]*Proc
	Order []string
}

// Proc is one procedure definition.
type Proc struct {
	Name   string
	Params []string
	Body   *Block
	Line   int
}

// At records the source line a node starts on.
type At struct {
	Line int
}

func (a At) Pos() int { return a.Line }

type Node interface {
	Pos() int
}

// Block is an ordered statement list.
type Block struct {
	At
	Statements []Statement
}

type Statement interface {
	Node
	isStatement()
}

type TypeName string

const (
	TypeInt      TypeName = "int"
	TypeCInt     TypeName = "cint"
	TypeBoolean  TypeName = "boolean"
	TypeCBoolean TypeName = "cboolean"
)

// Declaration binds Name in the current scope. Init is nil when the source
// omits the initializer.
type Declaration struct {
	At
	Type TypeName
	Name string
	Init Expr
}

func (Declaration) isStatement() {}

type MapDecl struct {
	At
	Name string
}

func (MapDecl) isStatement() {}

// MapAction is one of bar, emp, set, clr applied to four names.
type MapAction struct {
	At
	Op   string
	Args []string
}

func (MapAction) isStatement() {}

type Assignment struct {
	At
	Name  string
	Value Expr
}

func (Assignment) isStatement() {}

type IfStmt struct {
	At
	Cond Expr
	Then *Block
	Else *Block
}

func (IfStmt) isStatement() {}

// WhileStmt runs Body and then tests Cond.
type WhileStmt struct {
	At
	Cond Expr
	Body *Block
}

func (WhileStmt) isStatement() {}

// ExprStmt evaluates an expression for its side effects: procedure calls,
// robot actions, and bare logical or arithmetic forms.
type ExprStmt struct {
	At
	X Expr
}

func (ExprStmt) isStatement() {}

type Expr interface {
	Node
	isExpr()
}

type IntLit struct {
	At
	Value int
}

func (IntLit) isExpr() {}

type BoolLit struct {
	At
	Value bool
}

func (BoolLit) isExpr() {}

type VarRef struct {
	At
	Name string
}

func (VarRef) isExpr() {}

const (
	OpNot = "not"
	OpOr  = "or"
	OpLt  = "lt"
	OpGt  = "gt"
	OpInc = "inc"
	OpDec = "dec"
)

type UnaryExpr struct {
	At
	Op string
	X  Expr
}

func (UnaryExpr) isExpr() {}

type BinaryExpr struct {
	At
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

type CallExpr struct {
	At
	Name string
	Args []Expr
}

func (CallExpr) isExpr() {}

const (
	ActionStep  = "step"
	ActionBack  = "back"
	ActionLeft  = "left"
	ActionRight = "right"
	ActionLook  = "look"
)

// RobotExpr is a robot primitive. Amount is only used by step and may be nil.
type RobotExpr struct {
	At
	Action string
	Amount Expr
}

func (RobotExpr) isExpr() {}
