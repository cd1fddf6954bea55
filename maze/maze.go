// Package maze is a grid world that implements the robot a program drives.
package maze

import (
	"fmt"
	"strings"
)

type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var markers = [...]byte{North: '^', East: '>', South: 'v', West: '<'}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	for c := North; c <= West; c++ {
		if c.String() == string(b) {
			*d = c
			return nil
		}
	}
	return fmt.Errorf("maze: unknown direction %q", b)
}

func (d Direction) left() Direction  { return (d + 3) % 4 }
func (d Direction) right() Direction { return (d + 1) % 4 }

func (d Direction) delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

const (
	wall  = '#'
	floor = '.'
	exit  = 'E'
)

// Move records one robot primitive and the state after it.
type Move struct {
	Action string    `json:"action"`
	Amount int       `json:"amount,omitempty"`
	Result string    `json:"result,omitempty"`
	Pos    Point     `json:"pos"`
	Facing Direction `json:"facing"`
}

// Maze is a rectangular grid with one robot. Cells outside the grid are
// walls. A Maze is driven by one interpreter at a time.
type Maze struct {
	Name string

	cells  [][]byte
	start  Point
	startD Direction
	pos    Point
	facing Direction
	trail  []Move

	// OnMove, if set, is called after every primitive.
	OnMove func(Move)
}

func (m *Maze) Width() int {
	if len(m.cells) == 0 {
		return 0
	}
	return len(m.cells[0])
}

func (m *Maze) Height() int {
	return len(m.cells)
}

func (m *Maze) Position() Point {
	return m.pos
}

func (m *Maze) Facing() Direction {
	return m.facing
}

// Trail returns every primitive performed since the last Reset.
func (m *Maze) Trail() []Move {
	return append([]Move(nil), m.trail...)
}

// Reset puts the robot back on its start cell and clears the trail.
func (m *Maze) Reset() {
	m.pos = m.start
	m.facing = m.startD
	m.trail = nil
}

func (m *Maze) cell(p Point) byte {
	if p.Y < 0 || p.Y >= len(m.cells) || p.X < 0 || p.X >= len(m.cells[p.Y]) {
		return wall
	}
	return m.cells[p.Y][p.X]
}

func (m *Maze) blocked(p Point) bool {
	return m.cell(p) == wall
}

func (m *Maze) ahead(d Direction) Point {
	dx, dy := d.delta()
	return Point{X: m.pos.X + dx, Y: m.pos.Y + dy}
}

func (m *Maze) record(mv Move) {
	mv.Pos = m.pos
	mv.Facing = m.facing
	m.trail = append(m.trail, mv)
	if m.OnMove != nil {
		m.OnMove(mv)
	}
}

// Step moves forward one cell at a time and stops in front of a wall. It
// reports whether all n cells were walked; a negative n moves nothing and
// fails.
func (m *Maze) Step(n int) bool {
	ok := n >= 0
	for i := 0; ok && i < n; i++ {
		next := m.ahead(m.facing)
		if m.blocked(next) {
			ok = false
			break
		}
		m.pos = next
	}
	m.record(Move{Action: "step", Amount: n, Result: fmt.Sprint(ok)})
	return ok
}

// Back counts the free cells behind the robot up to the first wall.
func (m *Maze) Back() int {
	dx, dy := m.facing.left().left().delta()
	n := 0
	for p := (Point{X: m.pos.X + dx, Y: m.pos.Y + dy}); !m.blocked(p); p = (Point{X: p.X + dx, Y: p.Y + dy}) {
		n++
	}
	m.record(Move{Action: "back", Result: fmt.Sprint(n)})
	return n
}

// AtExit reports whether the robot stands on an exit cell without recording
// a move.
func (m *Maze) AtExit() bool {
	return m.cell(m.pos) == exit
}

func (m *Maze) Exit() bool {
	ok := m.AtExit()
	m.record(Move{Action: "look", Result: fmt.Sprint(ok)})
	return ok
}

func (m *Maze) Left() {
	m.facing = m.facing.left()
	m.record(Move{Action: "left"})
}

func (m *Maze) Right() {
	m.facing = m.facing.right()
	m.record(Move{Action: "right"})
}

// Lines renders the grid with the robot marker at its current cell.
func (m *Maze) Lines() []string {
	out := make([]string, len(m.cells))
	for y, row := range m.cells {
		b := []byte(string(row))
		if y == m.pos.Y {
			b[m.pos.X] = markers[m.facing]
		}
		out[y] = string(b)
	}
	return out
}

func (m *Maze) String() string {
	return strings.Join(m.Lines(), "\n")
}
