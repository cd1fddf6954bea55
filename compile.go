// Package tarobot parses and runs robot programs.
package tarobot

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/parser"
	truntime "github.com/gosuda/tarobot/runtime"
)

// ErrSyntax is returned when a program did not parse and nothing was run.
var ErrSyntax = errors.New("program has syntax errors")

// Result is what a run leaves behind.
type Result struct {
	RunID       uuid.UUID
	Globals     map[string]truntime.Variable
	Diagnostics []diag.Diagnostic
}

// Parse only returns the syntax tree for tooling use. The flag reports
// whether any syntax error was raised on sink.
func Parse(src string, sink diag.Sink) (*ast.Program, bool) {
	return parser.Parse(src, sink)
}

// Compile parses src and refuses programs with syntax errors.
func Compile(src string, sink diag.Sink) (*ast.Program, error) {
	var col diag.Collector
	prog, failed := parser.Parse(src, diag.Multi(&col, sink))
	if failed {
		return nil, fmt.Errorf("compile: %w (%d)", ErrSyntax, col.Count(diag.SyntaxError))
	}
	return prog, nil
}

// Run parses src and executes it against robot. Every diagnostic goes to
// sink, which may be nil, and is also collected into the Result. A program
// with syntax errors is not run; a fatal runtime condition is returned after
// it was raised.
func Run(src string, robot truntime.Robot, sink diag.Sink, opts ...truntime.Option) (*Result, error) {
	var col diag.Collector
	all := diag.Multi(&col, sink)

	prog, failed := parser.Parse(src, all)
	if failed {
		n := col.Count(diag.SyntaxError)
		all.Raise(diag.Diagnostic{
			Kind:    diag.SyntaxError,
			Message: fmt.Sprintf("invalid program, not run (%d %s)", n, plural(n, "error")),
		})
		return &Result{Diagnostics: col.Diagnostics()}, fmt.Errorf("run: %w", ErrSyntax)
	}

	opts = append(opts, truntime.WithSink(all))
	in := truntime.New(prog, robot, opts...)
	err := in.Run()
	res := &Result{
		RunID:       in.RunID(),
		Globals:     in.Globals(),
		Diagnostics: col.Diagnostics(),
	}
	if err != nil {
		return res, fmt.Errorf("run: %w", err)
	}
	return res, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
