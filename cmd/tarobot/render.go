package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/maze"
	truntime "github.com/gosuda/tarobot/runtime"
)

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	robotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24"))
	exitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func renderDiagnostic(file string, d diag.Diagnostic) string {
	style := warnStyle
	if d.Kind.Fatal() || d.Kind == diag.SyntaxError {
		style = errStyle
	}
	pos := file
	if d.Line > 0 {
		pos = fmt.Sprintf("%s:%d", file, d.Line)
	}
	msg := d.Message
	if msg == "" {
		return fmt.Sprintf("%s %s", dimStyle.Render(pos+":"), style.Render(d.Kind.String()))
	}
	return fmt.Sprintf("%s %s %s", dimStyle.Render(pos+":"), style.Render(d.Kind.String()+":"), msg)
}

// renderGlobals lists the global scope sorted by name.
func renderGlobals(globals map[string]truntime.Variable) string {
	if len(globals) == 0 {
		return dimStyle.Render("(no globals)")
	}
	names := make([]string, 0, len(globals))
	width := 0
	for name := range globals {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		v := globals[name]
		lines = append(lines, fmt.Sprintf("%-*s %s %s", width, name, dimStyle.Render(fmt.Sprintf("%-8s", v.Type())), v.Text()))
	}
	return strings.Join(lines, "\n")
}

// renderGrid colors a maze snapshot as produced by maze.Lines.
func renderGrid(lines []string) string {
	var b strings.Builder
	for y, row := range lines {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			switch c {
			case '#':
				b.WriteString(wallStyle.Render("#"))
			case 'E':
				b.WriteString(exitStyle.Render("E"))
			case '^', '>', 'v', '<':
				b.WriteString(robotStyle.Render(string(c)))
			case '.':
				b.WriteString(dimStyle.Render("·"))
			default:
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

func renderMove(i int, mv maze.Move) string {
	line := fmt.Sprintf("%4d %-5s", i, mv.Action)
	if mv.Action == "step" {
		line += fmt.Sprintf(" %d", mv.Amount)
	}
	if mv.Result != "" {
		line += " -> " + mv.Result
	}
	return line + dimStyle.Render(fmt.Sprintf("  at %s facing %s", mv.Pos, mv.Facing))
}
