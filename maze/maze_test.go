package maze_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/tarobot/maze"
	truntime "github.com/gosuda/tarobot/runtime"
)

var _ truntime.Robot = (*maze.Maze)(nil)

const corridor = `
name: corridor
grid:
  - "######"
  - "#>..E#"
  - "######"
`

func TestLoad(t *testing.T) {
	m, err := maze.Parse([]byte(corridor))
	require.NoError(t, err)
	assert.Equal(t, "corridor", m.Name)
	assert.Equal(t, 6, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, maze.Point{X: 1, Y: 1}, m.Position())
	assert.Equal(t, maze.East, m.Facing())
	assert.Equal(t, "######\n#>..E#\n######", m.String())
}

func TestRobotPrimitives(t *testing.T) {
	m, err := maze.Parse([]byte(corridor))
	require.NoError(t, err)

	var seen []string
	m.OnMove = func(mv maze.Move) { seen = append(seen, mv.Action) }

	assert.True(t, m.Step(2))
	assert.Equal(t, maze.Point{X: 3, Y: 1}, m.Position())
	assert.False(t, m.Exit())
	assert.False(t, m.Step(5), "walks into the wall")
	assert.Equal(t, maze.Point{X: 4, Y: 1}, m.Position())
	assert.True(t, m.Exit())
	assert.Equal(t, 3, m.Back())

	m.Left()
	assert.Equal(t, maze.North, m.Facing())
	assert.False(t, m.Step(1))
	assert.Equal(t, maze.Point{X: 4, Y: 1}, m.Position())
	assert.Equal(t, []string{"######", "#...^#", "######"}, m.Lines())

	m.Right()
	m.Right()
	assert.Equal(t, maze.South, m.Facing())
	assert.False(t, m.Step(-1))
	assert.True(t, m.Step(0))

	trail := m.Trail()
	require.Len(t, trail, 11)
	assert.Equal(t, seen, actions(trail))
	assert.Equal(t, maze.Move{Action: "step", Amount: 5, Result: "false", Pos: maze.Point{X: 4, Y: 1}, Facing: maze.East}, trail[2])
	assert.Equal(t, "3", trail[4].Result)

	m.Reset()
	assert.Equal(t, maze.Point{X: 1, Y: 1}, m.Position())
	assert.Equal(t, maze.East, m.Facing())
	assert.Empty(t, m.Trail())
}

func actions(trail []maze.Move) []string {
	out := make([]string, len(trail))
	for i, mv := range trail {
		out[i] = mv.Action
	}
	return out
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"empty document", "", "empty document"},
		{"unknown key", "grid: [\">\"]\nsize: 3\n", "size"},
		{"no grid", "name: x\n", "grid is empty"},
		{"ragged rows", "grid: [\"#>#\", \"##\"]\n", "row 1 is 2 cells wide"},
		{"no robot", "grid: [\"#.#\"]\n", "no robot marker"},
		{"two robots", "grid: [\">.<\"]\n", "second robot"},
		{"unknown cell", "grid: [\">x\"]\n", "unknown cell"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maze.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFileNamesAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiral.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  - \"v\"\n"), 0o644))
	m, err := maze.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spiral", m.Name)
	assert.Equal(t, maze.South, m.Facing())
	assert.Equal(t, 0, m.Back())
}

func TestEncodeUsesStartCell(t *testing.T) {
	m, err := maze.Parse([]byte(corridor))
	require.NoError(t, err)
	m.Step(1)
	m.Left()

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	again, err := maze.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, m.Name, again.Name)
	assert.Equal(t, maze.Point{X: 1, Y: 1}, again.Position())
	assert.Equal(t, maze.East, again.Facing())
	assert.Equal(t, maze.Point{X: 2, Y: 1}, m.Position())
}
