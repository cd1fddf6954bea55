package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/tarobot"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/maze"
)

type tuiConfig struct {
	file  string
	src   string
	maze  []byte
	delay time.Duration
}

type runStartedMsg struct {
	events <-chan tea.Msg
	stop   chan struct{}
	grid   []string
	name   string
}

// robotMovedMsg carries a grid snapshot taken on the interpreter goroutine.
type robotMovedMsg struct {
	move maze.Move
	grid []string
}

type diagnosticMsg struct {
	d diag.Diagnostic
}

type runDoneMsg struct {
	res    *tarobot.Result
	err    error
	atExit bool
}
