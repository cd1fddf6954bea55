// Package mobile exposes string-in, JSON-out entry points for gomobile
// bindings and the wasm build.
package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gosuda/tarobot"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/maze"
	truntime "github.com/gosuda/tarobot/runtime"
)

type diagnostic struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message,omitempty"`
	Fatal   bool   `json:"fatal,omitempty"`
}

type variable struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type runResult struct {
	RunID       string              `json:"run_id,omitempty"`
	Diagnostics []diagnostic        `json:"diagnostics"`
	Globals     map[string]variable `json:"globals,omitempty"`
	Trail       []maze.Move         `json:"trail,omitempty"`
	Exit        bool                `json:"exit"`
	Error       string              `json:"error,omitempty"`
}

func encode(result runResult) string {
	if result.Diagnostics == nil {
		result.Diagnostics = []diagnostic{}
	}
	b, _ := json.Marshal(result)
	return string(b)
}

func convertDiagnostics(ds []diag.Diagnostic) []diagnostic {
	out := make([]diagnostic, len(ds))
	for i, d := range ds {
		out[i] = diagnostic{Kind: d.Kind.String(), Line: d.Line, Message: d.Message, Fatal: d.Kind.Fatal()}
	}
	return out
}

// MoveListener receives every robot primitive as JSON while a run is in
// progress.
type MoveListener interface {
	OnMove(moveJSON string)
}

// Run executes program on the maze described by mazeYAML and returns the
// diagnostics, final globals and robot trail as JSON. An empty mazeYAML runs
// against a robot that never moves.
func Run(program, mazeYAML string) string {
	return RunWithListener(program, mazeYAML, nil)
}

// RunWithListener is Run with a listener that may be nil.
func RunWithListener(program, mazeYAML string, listener MoveListener) string {
	var result runResult

	var robot truntime.Robot
	var m *maze.Maze
	if strings.TrimSpace(mazeYAML) != "" {
		var err error
		m, err = maze.Parse([]byte(mazeYAML))
		if err != nil {
			result.Error = fmt.Sprintf("maze: %v", err)
			return encode(result)
		}
		if listener != nil {
			m.OnMove = func(mv maze.Move) {
				b, _ := json.Marshal(mv)
				listener.OnMove(string(b))
			}
		}
		robot = m
	}

	res, err := tarobot.Run(program, robot, nil)
	if err != nil {
		result.Error = err.Error()
	}
	if res != nil {
		result.Diagnostics = convertDiagnostics(res.Diagnostics)
		if res.RunID != uuid.Nil {
			result.RunID = res.RunID.String()
		}
		if len(res.Globals) > 0 {
			result.Globals = make(map[string]variable, len(res.Globals))
			for name, v := range res.Globals {
				result.Globals[name] = variable{Type: v.Type().String(), Value: v.Text()}
			}
		}
	}
	if m != nil {
		result.Trail = m.Trail()
		result.Exit = m.AtExit()
	}
	return encode(result)
}

// Check parses program without running it.
func Check(program string) string {
	var col diag.Collector
	_, failed := tarobot.Parse(program, &col)
	result := runResult{Diagnostics: convertDiagnostics(col.Diagnostics())}
	if failed {
		result.Error = tarobot.ErrSyntax.Error()
	}
	return encode(result)
}
