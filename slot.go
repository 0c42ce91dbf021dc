// slot.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the extraction and numbering of word slots,
// the maximal unblocked runs of a crossword grid

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

import "strings"

// MinWordLength is the shortest run of cells that forms a word
// slot. Shorter runs are not slots and carry no answer of their
// own.
const MinWordLength = 3

// Direction distinguishes across (left to right) from down (top
// to bottom) slots
type Direction int

const (
	Across Direction = iota
	Down
)

// String returns the lower-case name of a direction
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Slot is a maximal run of at least MinWordLength unblocked
// cells, to be filled with a single word. Number is zero until
// NumberSlots assigns the crossword numbering.
type Slot struct {
	Row    int
	Col    int
	Length int
	Dir    Direction
	Number int
}

// Cell returns the coordinate of the i-th cell of the slot
func (s Slot) Cell(i int) Coord {
	if s.Dir == Down {
		return Coord{s.Row + i, s.Col}
	}
	return Coord{s.Row, s.Col + i}
}

// ExtractSlots scans the grid and returns its across and down
// slots. Across slots are found by scanning rows top to bottom,
// down slots by scanning columns left to right, so both lists are
// ordered by position. The scan is linear in the number of cells
// per direction.
func ExtractSlots(g *Grid) (across, down []Slot) {
	for row := 0; row < g.Size; row++ {
		start, length := -1, 0
		for col := 0; col <= g.Size; col++ {
			if g.IsBlocked(row, col) {
				if length >= MinWordLength {
					across = append(across, Slot{Row: row, Col: start, Length: length, Dir: Across})
				}
				start, length = -1, 0
				continue
			}
			if start < 0 {
				start = col
			}
			length++
		}
	}
	for col := 0; col < g.Size; col++ {
		start, length := -1, 0
		for row := 0; row <= g.Size; row++ {
			if g.IsBlocked(row, col) {
				if length >= MinWordLength {
					down = append(down, Slot{Row: start, Col: col, Length: length, Dir: Down})
				}
				start, length = -1, 0
				continue
			}
			if start < 0 {
				start = row
			}
			length++
		}
	}
	return across, down
}

// runLength returns the length of the unblocked run that starts
// at (row, col) and extends in the given direction. The result is
// zero if the cell is not the first cell of a run.
func runLength(g *Grid, row, col int, dir Direction) int {
	dr, dc := 0, 1
	if dir == Down {
		dr, dc = 1, 0
	}
	if g.IsBlocked(row, col) || !g.IsBlocked(row-dr, col-dc) {
		return 0
	}
	length := 0
	for !g.IsBlocked(row+length*dr, col+length*dc) {
		length++
	}
	return length
}

// NumberSlots assigns crossword numbers to the given slots and
// returns the numbering as a map from "row,col" keys to numbers.
// Cells are visited in row-major order; a cell receives the next
// number if it starts an across slot, a down slot, or both, so a
// shared start cell carries a single number for both directions.
func NumberSlots(g *Grid, across, down []Slot) map[string]int {
	byCell := make(map[Coord]int)
	n := 0
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			startsAcross := runLength(g, row, col, Across) >= MinWordLength
			startsDown := runLength(g, row, col, Down) >= MinWordLength
			if startsAcross || startsDown {
				n++
				byCell[Coord{row, col}] = n
			}
		}
	}
	for i := range across {
		across[i].Number = byCell[Coord{across[i].Row, across[i].Col}]
	}
	for i := range down {
		down[i].Number = byCell[Coord{down[i].Row, down[i].Col}]
	}
	positions := make(map[string]int, len(byCell))
	for coord, num := range byCell {
		positions[coord.String()] = num
	}
	return positions
}

// WordAt reads the letters of a slot from the grid. Cells without
// a letter appear as EmptyRune, so a fully filled slot yields a
// plain uppercase word.
func WordAt(g *Grid, s Slot) string {
	var sb strings.Builder
	for i := 0; i < s.Length; i++ {
		c := s.Cell(i)
		ch := g.Letter(c.Row, c.Col)
		if ch == 0 {
			ch = EmptyRune
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
