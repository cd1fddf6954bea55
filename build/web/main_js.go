//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/gosuda/tarobot/build/mobile"
)

type errorResult struct {
	Error string `json:"error"`
}

// jsListener forwards moves to window.tarobotOnMove when the page defines it.
type jsListener struct {
	fn js.Value
}

func (l jsListener) OnMove(moveJSON string) {
	l.fn.Invoke(moveJSON)
}

func fail(msg string) any {
	b, _ := json.Marshal(errorResult{Error: msg})
	return string(b)
}

// runProgram is tarobotRun(program, mazeYAML?).
func runProgram(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("tarobotRun requires program text")
	}
	mazeYAML := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		mazeYAML = args[1].String()
	}
	var listener mobile.MoveListener
	if fn := js.Global().Get("tarobotOnMove"); fn.Type() == js.TypeFunction {
		listener = jsListener{fn: fn}
	}
	return mobile.RunWithListener(args[0].String(), mazeYAML, listener)
}

func checkProgram(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("tarobotCheck requires program text")
	}
	return mobile.Check(args[0].String())
}

func main() {
	js.Global().Set("tarobotRun", js.FuncOf(runProgram))
	js.Global().Set("tarobotCheck", js.FuncOf(checkProgram))
	select {}
}
