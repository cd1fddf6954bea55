package maze

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// file is the on-disk layout:
//
//	name: corridor
//	grid:
//	  - "#####"
//	  - "#>.E#"
//	  - "#####"
type file struct {
	Name string   `yaml:"name"`
	Grid []string `yaml:"grid"`
}

// Load reads a maze from YAML. Unknown keys are rejected.
func Load(r io.Reader) (*Maze, error) {
	var raw file
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("maze: empty document")
		}
		return nil, fmt.Errorf("maze: parse: %w", err)
	}
	return build(raw)
}

// Parse is Load over an in-memory document.
func Parse(data []byte) (*Maze, error) {
	return Load(bytes.NewReader(data))
}

func LoadFile(path string) (*Maze, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("maze: resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	return m, nil
}

// Encode writes m in the format Load reads, with the robot at its start
// cell.
func (m *Maze) Encode(w io.Writer) error {
	cur, curD := m.pos, m.facing
	m.pos, m.facing = m.start, m.startD
	raw := file{Name: m.Name, Grid: m.Lines()}
	m.pos, m.facing = cur, curD

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("maze: marshal: %w", err)
	}
	return enc.Close()
}

func build(raw file) (*Maze, error) {
	if len(raw.Grid) == 0 {
		return nil, fmt.Errorf("maze: grid is empty")
	}
	width := len(raw.Grid[0])
	m := &Maze{Name: strings.TrimSpace(raw.Name)}
	found := false
	for y, row := range raw.Grid {
		if len(row) != width {
			return nil, fmt.Errorf("maze: row %d is %d cells wide, want %d", y, len(row), width)
		}
		cells := []byte(row)
		for x, c := range cells {
			switch c {
			case wall, floor, exit:
				continue
			}
			d := bytes.IndexByte(markers[:], c)
			if d < 0 {
				return nil, fmt.Errorf("maze: row %d: unknown cell %q", y, c)
			}
			if found {
				return nil, fmt.Errorf("maze: row %d: second robot at column %d", y, x)
			}
			found = true
			m.start = Point{X: x, Y: y}
			m.startD = Direction(d)
			cells[x] = floor
		}
		m.cells = append(m.cells, cells)
	}
	if width == 0 {
		return nil, fmt.Errorf("maze: grid is empty")
	}
	if !found {
		return nil, fmt.Errorf("maze: no robot marker (one of %q)", string(markers[:]))
	}
	m.Reset()
	return m, nil
}
