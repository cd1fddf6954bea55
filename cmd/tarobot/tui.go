package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/gosuda/tarobot"
	"github.com/gosuda/tarobot/config"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/maze"
	truntime "github.com/gosuda/tarobot/runtime"
)

const debugLogFile = "tarobot-debug.log"

func runTUI(opts runOptions, cfg *config.Config, logger *log.Logger) error {
	src, err := readSource(opts.program)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(opts.maze)
	if err != nil {
		return fmt.Errorf("load maze: %w", err)
	}
	if _, err := maze.Parse(data); err != nil {
		return fmt.Errorf("load maze: %w", err)
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger.SetOutput(io.Discard)
	if verbose {
		f, err := tea.LogToFile(debugLogFile, "tarobot")
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	tc := tuiConfig{
		file:  opts.program,
		src:   src,
		maze:  data,
		delay: cfg.Robot.StepDelay.Duration,
	}
	runOpts := []truntime.Option{
		truntime.WithLimits(cfg.RuntimeLimits()),
		truntime.WithLogger(logger),
	}
	p := tea.NewProgram(newModel(tc, runOpts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type model struct {
	tc       tuiConfig
	opts     []truntime.Option
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	events   <-chan tea.Msg
	stop     chan struct{}
	name     string
	grid     []string
	lines    []string
	moves    int
}

func newModel(tc tuiConfig, opts []truntime.Option) model {
	return model{
		tc:       tc,
		opts:     opts,
		viewport: viewport.New(80, 10),
		status:   "starting",
	}
}

// startRun runs the program on a fresh maze in its own goroutine. Every
// robot primitive is forwarded as a message and then paced by the step
// delay; closing stop releases a run the UI no longer listens to.
func startRun(tc tuiConfig, opts []truntime.Option) tea.Cmd {
	return func() tea.Msg {
		m, err := maze.Parse(tc.maze)
		if err != nil {
			return runDoneMsg{err: err}
		}
		events := make(chan tea.Msg, 64)
		stop := make(chan struct{})
		send := func(msg tea.Msg) bool {
			select {
			case events <- msg:
				return true
			case <-stop:
				return false
			}
		}
		m.OnMove = func(mv maze.Move) {
			if !send(robotMovedMsg{move: mv, grid: m.Lines()}) || tc.delay <= 0 {
				return
			}
			select {
			case <-time.After(tc.delay):
			case <-stop:
			}
		}
		sink := diag.SinkFunc(func(d diag.Diagnostic) {
			send(diagnosticMsg{d: d})
		})
		grid := m.Lines()
		go func() {
			defer close(events)
			res, err := tarobot.Run(tc.src, m, sink, opts...)
			send(runDoneMsg{res: res, err: err, atExit: m.AtExit()})
		}()
		return runStartedMsg{events: events, stop: stop, grid: grid, name: m.Name}
	}
}

func waitEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m model) Init() tea.Cmd {
	return startRun(m.tc, m.opts)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case runStartedMsg:
		m.events = msg.events
		m.stop = msg.stop
		m.grid = msg.grid
		m.name = msg.name
		m.running = true
		m.status = "running"
		m.resize()
		return m, waitEvent(m.events)

	case robotMovedMsg:
		m.grid = msg.grid
		m.moves++
		m.appendLine(renderMove(m.moves, msg.move))
		return m, waitEvent(m.events)

	case diagnosticMsg:
		m.appendLine(renderDiagnostic(m.tc.file, msg.d))
		return m, waitEvent(m.events)

	case runDoneMsg:
		m.running = false
		m.stop = nil
		switch {
		case msg.err != nil:
			m.status = "failed"
			m.appendLine(errStyle.Render(msg.err.Error()))
		case msg.atExit:
			m.status = "exit reached"
		default:
			m.status = "done"
		}
		if msg.res != nil {
			m.appendLine(titleStyle.Render("globals"))
			m.appendLine(renderGlobals(msg.res.Globals))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.halt()
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.lines = nil
			m.moves = 0
			m.viewport.SetContent("")
			m.status = "restarting"
			return m, startRun(m.tc, m.opts)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	board := boxStyle.Render(titleStyle.Render(m.name) + "\n" + renderGrid(m.grid))
	status := statusStyle.Render(fmt.Sprintf("%s · %d actions", m.status, m.moves)) +
		dimStyle.Render("  q quit · r restart · g/G scroll")
	return lipgloss.JoinVertical(lipgloss.Left, board, m.viewport.View(), status)
}

// resize gives the log pane whatever the board and status line leave.
func (m *model) resize() {
	if m.height == 0 {
		return
	}
	used := len(m.grid) + 3 + 1
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-used, 1)
}

func (m *model) appendLine(s string) {
	m.lines = append(m.lines, s)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) halt() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}
