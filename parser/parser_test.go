package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	var sink diag.Collector
	prog, failed := parser.Parse(src, &sink)
	if failed {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	require.Equal(t, 0, sink.Len())
	return prog
}

func TestParseDeclarations(t *testing.T) {
	prog := mustParse(t, "int x = 5\ncint y\nBOOLEAN b = true\n")
	require.Len(t, prog.Body.Statements, 3)

	x, ok := prog.Body.Statements[0].(ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, ast.TypeInt, x.Type)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, ast.IntLit{At: ast.At{Line: 1}, Value: 5}, x.Init)

	y := prog.Body.Statements[1].(ast.Declaration)
	assert.Equal(t, ast.TypeCInt, y.Type)
	assert.Nil(t, y.Init)
	assert.Equal(t, 2, y.Pos())

	b := prog.Body.Statements[2].(ast.Declaration)
	assert.Equal(t, ast.TypeBoolean, b.Type)
	assert.Equal(t, ast.BoolLit{At: ast.At{Line: 3}, Value: true}, b.Init)
}

func TestProceduresAreLifted(t *testing.T) {
	prog := mustParse(t, `
proc main [ ] (
    step 2
)
proc f [ a b ] (
    left
)
int g = 1
`)
	require.Len(t, prog.Body.Statements, 1)
	assert.IsType(t, ast.Declaration{}, prog.Body.Statements[0])
	assert.Equal(t, []string{"main", "f"}, prog.Order)

	main := prog.Procs["main"]
	require.NotNil(t, main)
	assert.Empty(t, main.Params)
	assert.Equal(t, 2, main.Line)
	require.Len(t, main.Body.Statements, 1)
	stmt := main.Body.Statements[0].(ast.ExprStmt)
	act := stmt.X.(ast.RobotExpr)
	assert.Equal(t, ast.ActionStep, act.Action)
	assert.Equal(t, ast.IntLit{At: ast.At{Line: 3}, Value: 2}, act.Amount)

	f := prog.Procs["f"]
	require.NotNil(t, f)
	assert.Equal(t, []string{"a", "b"}, f.Params)
}

func TestParseIf(t *testing.T) {
	prog := mustParse(t, "if gt 5 3 ( int y = 1 ) else ( int y = 2 )\n")
	require.Len(t, prog.Body.Statements, 1)
	st := prog.Body.Statements[0].(ast.IfStmt)
	cond := st.Cond.(ast.BinaryExpr)
	assert.Equal(t, ast.OpGt, cond.Op)
	require.Len(t, st.Then.Statements, 1)
	require.NotNil(t, st.Else)
	require.Len(t, st.Else.Statements, 1)

	prog = mustParse(t, "if x (\n    left\n)\nelse (\n    right\n)\nback\n")
	require.Len(t, prog.Body.Statements, 2)
	st = prog.Body.Statements[0].(ast.IfStmt)
	require.NotNil(t, st.Else)
	assert.Equal(t, ast.ActionRight, st.Else.Statements[0].(ast.ExprStmt).X.(ast.RobotExpr).Action)

	prog = mustParse(t, "if not look (\n    step\n)\n")
	st = prog.Body.Statements[0].(ast.IfStmt)
	assert.Nil(t, st.Else)
	not := st.Cond.(ast.UnaryExpr)
	assert.Equal(t, ast.ActionLook, not.X.(ast.RobotExpr).Action)
}

func TestParseWhile(t *testing.T) {
	prog := mustParse(t, "while gt 1 0 do step 1\n")
	st := prog.Body.Statements[0].(ast.WhileStmt)
	require.Len(t, st.Body.Statements, 1)
	assert.IsType(t, ast.ExprStmt{}, st.Body.Statements[0])

	prog = mustParse(t, "while x\ndo (\n    right\n    x := dec x 1\n)\n")
	st = prog.Body.Statements[0].(ast.WhileStmt)
	assert.Equal(t, ast.VarRef{At: ast.At{Line: 1}, Name: "x"}, st.Cond)
	require.Len(t, st.Body.Statements, 2)
	as := st.Body.Statements[1].(ast.Assignment)
	assert.Equal(t, "x", as.Name)
	assert.Equal(t, ast.OpDec, as.Value.(ast.BinaryExpr).Op)
}

func TestParseCall(t *testing.T) {
	prog := mustParse(t, "f[1 inc 2 3 back]\ng[]\n")
	require.Len(t, prog.Body.Statements, 2)
	call := prog.Body.Statements[0].(ast.ExprStmt).X.(ast.CallExpr)
	assert.Equal(t, "f", call.Name)
	require.Len(t, call.Args, 3)
	assert.IsType(t, ast.BinaryExpr{}, call.Args[1])
	assert.IsType(t, ast.RobotExpr{}, call.Args[2])

	empty := prog.Body.Statements[1].(ast.ExprStmt).X.(ast.CallExpr)
	assert.Empty(t, empty.Args)
}

func TestParseMapStatements(t *testing.T) {
	prog := mustParse(t, "map m\nBar [ a b c d ]\nclr [ a b c d ]\n")
	require.Len(t, prog.Body.Statements, 3)
	assert.Equal(t, "m", prog.Body.Statements[0].(ast.MapDecl).Name)
	bar := prog.Body.Statements[1].(ast.MapAction)
	assert.Equal(t, "bar", bar.Op)
	assert.Equal(t, []string{"a", "b", "c", "d"}, bar.Args)
	assert.Equal(t, "clr", prog.Body.Statements[2].(ast.MapAction).Op)
}

func TestCommentKeepsTerminator(t *testing.T) {
	prog := mustParse(t, "left // turn\nright\n")
	assert.Len(t, prog.Body.Statements, 2)
}

func TestErrorRecovery(t *testing.T) {
	var sink diag.Collector
	prog, failed := parser.Parse("int x = 5\nint = 3\nstep 1\n", &sink)
	assert.True(t, failed)
	require.Len(t, prog.Body.Statements, 2)
	assert.IsType(t, ast.RobotExpr{}, prog.Body.Statements[1].(ast.ExprStmt).X)

	got := sink.Diagnostics()
	require.Len(t, got, 1)
	assert.Equal(t, diag.SyntaxError, got[0].Kind)
	assert.Equal(t, 2, got[0].Line)
	assert.Contains(t, got[0].Message, "variable name")
}

func TestErrorInsideBlockKeepsBlock(t *testing.T) {
	var sink diag.Collector
	prog, failed := parser.Parse("proc main [ ] (\n    x 1\n    left\n)\n", &sink)
	assert.True(t, failed)
	main := prog.Procs["main"]
	require.NotNil(t, main)
	require.Len(t, main.Body.Statements, 1)
	assert.Equal(t, 1, sink.Count(diag.SyntaxError))
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"duplicate procedure", "proc f [ ] (\n)\nproc f [ ] (\n)\n", 3, "already defined"},
		{"duplicate parameter", "proc f [ a a ] (\n)\n", 1, "duplicate parameter"},
		{"unclosed block", "if true (\n    left\n", 3, "end of input"},
		{"unmatched bracket", "left\n)\n", 2, "unmatched"},
		{"missing do", "while true step\n", 1, `"do"`},
		{"two statements on a line", "left right\n", 1, "end of line"},
		{"bare variable", "x\n", 1, `":=" or "["`},
		{"proc as loop body", "while true do proc f [ ] (\n)\n", 1, "loop body"},
		{"short map action", "set [ a b c ]\n", 1, "map argument"},
		{"unterminated call", "f[1 2\n", 1, `argument or "]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sink diag.Collector
			_, failed := parser.Parse(tt.src, &sink)
			require.True(t, failed)
			got := sink.Diagnostics()
			require.NotEmpty(t, got)
			assert.Equal(t, diag.SyntaxError, got[0].Kind)
			assert.Equal(t, tt.line, got[0].Line)
			assert.Contains(t, got[0].Message, tt.msg)
		})
	}
}

func TestDeepNestingIsRejected(t *testing.T) {
	var sink diag.Collector
	_, failed := parser.Parse(strings.Repeat("not ", 300)+"true\n", &sink)
	assert.True(t, failed)
	assert.Contains(t, sink.Diagnostics()[0].Message, "too deep")
}

func TestDeepBlockNestingIsRejected(t *testing.T) {
	src := "proc main [ ] (\n" + strings.Repeat("if true (\n", 300) + strings.Repeat(")\n", 301)
	var sink diag.Collector
	_, failed := parser.Parse(src, &sink)
	assert.True(t, failed)
	require.True(t, sink.Has(diag.SyntaxError))
	found := false
	for _, d := range sink.Diagnostics() {
		if strings.Contains(d.Message, "nesting too deep") {
			found = true
			break
		}
	}
	assert.True(t, found, "%v", sink.Diagnostics())
}

func TestIllegalCharacterIsNotSyntaxError(t *testing.T) {
	var sink diag.Collector
	prog, failed := parser.Parse("step 1 $\n", &sink)
	assert.False(t, failed)
	assert.Len(t, prog.Body.Statements, 1)
	assert.True(t, sink.Has(diag.IllegalCharacter))
}
