package ast

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes an indented view of the program: the top-level statements
// followed by every procedure in name order.
func Dump(w io.Writer, prog *Program) error {
	d := &dumper{w: w}
	d.line(0, "Program")
	d.node(1, prog.Body)
	names := make([]string, 0, len(prog.Procs))
	for name := range prog.Procs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := prog.Procs[name]
		d.line(1, "Proc %s [%s] @%d", p.Name, strings.Join(p.Params, " "), p.Line)
		d.node(2, p.Body)
	}
	return d.err
}

// DumpNode writes a single subtree.
func DumpNode(w io.Writer, n Node) error {
	d := &dumper{w: w}
	d.node(0, n)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(level int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("\t", level), fmt.Sprintf(format, args...))
}

func (d *dumper) node(level int, n Node) {
	switch n := n.(type) {
	case nil:
	case *Block:
		if n == nil {
			return
		}
		d.line(level, "SentenceList @%d", n.Line)
		for _, st := range n.Statements {
			d.node(level+1, st)
		}
	case Declaration:
		d.line(level, "Declaration %s %s @%d", n.Type, n.Name, n.Line)
		d.node(level+1, n.Init)
	case MapDecl:
		d.line(level, "Map %s @%d", n.Name, n.Line)
	case MapAction:
		d.line(level, "MapAction %s [%s] @%d", n.Op, strings.Join(n.Args, " "), n.Line)
	case Assignment:
		d.line(level, "Assignment %s @%d", n.Name, n.Line)
		d.node(level+1, n.Value)
	case IfStmt:
		d.line(level, "If @%d", n.Line)
		d.node(level+1, n.Cond)
		d.node(level+1, n.Then)
		if n.Else != nil {
			d.line(level, "Else")
			d.node(level+1, n.Else)
		}
	case WhileStmt:
		d.line(level, "While @%d", n.Line)
		d.node(level+1, n.Body)
		d.node(level+1, n.Cond)
	case ExprStmt:
		d.node(level, n.X)
	case IntLit:
		d.line(level, "Int %d", n.Value)
	case BoolLit:
		d.line(level, "Bool %t", n.Value)
	case VarRef:
		d.line(level, "Variable %s", n.Name)
	case UnaryExpr:
		d.line(level, "%s @%d", strings.ToUpper(n.Op), n.Line)
		d.node(level+1, n.X)
	case BinaryExpr:
		d.line(level, "%s @%d", strings.ToUpper(n.Op), n.Line)
		d.node(level+1, n.Left)
		d.node(level+1, n.Right)
	case CallExpr:
		d.line(level, "ProcCall %s @%d", n.Name, n.Line)
		for _, a := range n.Args {
			d.node(level+1, a)
		}
	case RobotExpr:
		d.line(level, "Robot %s @%d", n.Action, n.Line)
		d.node(level+1, n.Amount)
	default:
		d.line(level, "%T", n)
	}
}
