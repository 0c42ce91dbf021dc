// grid.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the crossword Grid, a square matrix of cells
// that are either blocked or hold a single letter

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package xword

import (
	"fmt"
	"strings"
)

// MinGridSize and MaxGridSize delimit the supported grid dimensions.
// Grids are always square and of odd size, so that 180-degree
// rotational symmetry has a well-defined center cell.
const (
	MinGridSize = 9
	MaxGridSize = 25
)

// DefaultGridSize is used when no explicit size is requested
const DefaultGridSize = 15

// BlockedRune is the rune used to mark a blocked cell when a
// Grid is rendered to or parsed from text
const BlockedRune = '#'

// EmptyRune is the rune used for an unblocked cell that does not
// hold a letter yet
const EmptyRune = '.'

// Coord identifies a single cell by zero-based row and column
type Coord struct {
	Row, Col int
}

// String returns the canonical "row,col" form of a coordinate,
// which is also used as a map key in serialized puzzles
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// CellSet is a set of cell coordinates, typically the blocked
// cells produced by the pattern generator
type CellSet map[Coord]bool

// Grid represents a crossword grid as a matrix of cells.
// A cell is either blocked, empty, or holds an uppercase letter.
// The zero rune marks an empty cell internally.
type Grid struct {
	// Size is the number of rows and columns
	Size int
	// cells is indexed by row, then column
	cells [][]rune
}

// NewGrid creates an empty, unblocked grid of the given size.
// The size must be positive; sizes outside the supported range
// are a caller error and are rejected by ValidGridSize instead.
func NewGrid(size int) *Grid {
	if size < 1 {
		panic(fmt.Sprintf("invalid grid size %v", size))
	}
	cells := make([][]rune, size)
	for i := range cells {
		cells[i] = make([]rune, size)
	}
	return &Grid{Size: size, cells: cells}
}

// ValidGridSize reports whether size is an odd number within the
// supported range
func ValidGridSize(size int) bool {
	return size >= MinGridSize && size <= MaxGridSize && size%2 == 1
}

// InBounds reports whether the coordinate falls inside the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// IsBlocked reports whether the cell at (row, col) is blocked.
// Out-of-bounds coordinates are treated as blocked, which makes
// run scanning uniform at the edges.
func (g *Grid) IsBlocked(row, col int) bool {
	if !g.InBounds(row, col) {
		return true
	}
	return g.cells[row][col] == BlockedRune
}

// Block marks the cell at (row, col) as blocked. Blocking a cell
// that holds a letter is a programmer error.
func (g *Grid) Block(row, col int) {
	if g.cells[row][col] != 0 && g.cells[row][col] != BlockedRune {
		panic(fmt.Sprintf("cannot block cell (%v,%v) holding a letter", row, col))
	}
	g.cells[row][col] = BlockedRune
}

// Unblock clears a blocked cell back to empty
func (g *Grid) Unblock(row, col int) {
	if g.cells[row][col] == BlockedRune {
		g.cells[row][col] = 0
	}
}

// Letter returns the letter at (row, col), or 0 if the cell is
// empty or blocked
func (g *Grid) Letter(row, col int) rune {
	ch := g.cells[row][col]
	if ch == BlockedRune {
		return 0
	}
	return ch
}

// SetLetter places an uppercase letter in an unblocked cell
func (g *Grid) SetLetter(row, col int, ch rune) {
	if g.cells[row][col] == BlockedRune {
		panic(fmt.Sprintf("cannot place letter in blocked cell (%v,%v)", row, col))
	}
	g.cells[row][col] = ch
}

// ClearLetter empties an unblocked cell
func (g *Grid) ClearLetter(row, col int) {
	if g.cells[row][col] != BlockedRune {
		g.cells[row][col] = 0
	}
}

// NumBlocked returns the number of blocked cells in the grid
func (g *Grid) NumBlocked() int {
	count := 0
	for _, row := range g.cells {
		for _, ch := range row {
			if ch == BlockedRune {
				count++
			}
		}
	}
	return count
}

// Mirror returns the cell that is the 180-degree rotation of
// (row, col) about the grid center
func (g *Grid) Mirror(row, col int) (int, int) {
	return g.Size - 1 - row, g.Size - 1 - col
}

// IsSymmetric reports whether the block layout has 180-degree
// rotational symmetry
func (g *Grid) IsSymmetric() bool {
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			mr, mc := g.Mirror(row, col)
			if g.IsBlocked(row, col) != g.IsBlocked(mr, mc) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Size)
	for i, row := range g.cells {
		copy(c.cells[i], row)
	}
	return c
}

// ApplyPattern blocks every cell in the given set
func (g *Grid) ApplyPattern(blocks CellSet) {
	for coord := range blocks {
		g.Block(coord.Row, coord.Col)
	}
}

// Rows renders the grid as one string per row, using BlockedRune
// for blocked cells and EmptyRune for cells without a letter.
// This is the serialization format used in puzzle records.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	var sb strings.Builder
	for i := 0; i < g.Size; i++ {
		sb.Reset()
		for j := 0; j < g.Size; j++ {
			ch := g.cells[i][j]
			if ch == 0 {
				ch = EmptyRune
			}
			sb.WriteRune(ch)
		}
		rows[i] = sb.String()
	}
	return rows
}

// ParseGrid builds a grid from the row strings produced by Rows.
// Each row must have the same length as the number of rows.
func ParseGrid(rows []string) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("cannot parse empty grid")
	}
	g := NewGrid(size)
	for i, row := range rows {
		cells := []rune(row)
		if len(cells) != size {
			return nil, fmt.Errorf("row %v has %v cells, expected %v", i, len(cells), size)
		}
		for j, ch := range cells {
			switch {
			case ch == BlockedRune:
				g.Block(i, j)
			case ch == EmptyRune || ch == ' ':
				// Leave empty
			case ch >= 'A' && ch <= 'Z':
				g.SetLetter(i, j, ch)
			default:
				return nil, fmt.Errorf("invalid cell %q at (%v,%v)", ch, i, j)
			}
		}
	}
	return g, nil
}

// String returns a human-readable rendering of the grid with
// row and column indices, suitable for debugging output
func (g *Grid) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for j := 0; j < g.Size; j++ {
		sb.WriteString(fmt.Sprintf("%2d", j%100))
	}
	sb.WriteString("\n")
	for i, row := range g.Rows() {
		sb.WriteString(fmt.Sprintf("%2d ", i))
		for _, ch := range row {
			sb.WriteString(fmt.Sprintf(" %c", ch))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
