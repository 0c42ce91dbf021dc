// pattern.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the generator for symmetric block patterns,
// driven by the requested difficulty level

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
	"math/rand"
	"strings"
)

// Difficulty selects the block density of generated patterns and
// the wording tier of synthesized clues
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	// Mixed cycles through the other difficulties across a
	// collection; individual puzzles always resolve to one of them
	Mixed
)

// String returns the canonical upper-case name of a difficulty
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "EASY"
	case Medium:
		return "MEDIUM"
	case Hard:
		return "HARD"
	case Mixed:
		return "MIXED"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty converts a difficulty name to a Difficulty,
// accepting any letter case
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return Easy, nil
	case "MEDIUM":
		return Medium, nil
	case "HARD":
		return Hard, nil
	case "MIXED":
		return Mixed, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// Resolve maps Mixed to a concrete difficulty for the puzzle with
// the given index, cycling EASY, MEDIUM, HARD. Concrete
// difficulties resolve to themselves.
func (d Difficulty) Resolve(index int) Difficulty {
	if d != Mixed {
		return d
	}
	switch index % 3 {
	case 0:
		return Easy
	case 1:
		return Medium
	}
	return Hard
}

// patternSpec holds the pattern shape parameters for one
// difficulty level
type patternSpec struct {
	// maxRun caps the length of word slots, i.e. the longest
	// word the pattern will call for
	maxRun int
	// stretch is the probability that a line keeps the fewest,
	// longest slots its length admits instead of a random split
	stretch float64
	// centerBias weights line splits toward blocks near the
	// middle of the grid
	centerBias bool
}

// patternSpecs maps each concrete difficulty to its shape. Blocks
// grow denser with difficulty: EASY stretches lines into few long
// slots, HARD splits them into many short ones and pulls the
// splitting blocks inward.
var patternSpecs = map[Difficulty]patternSpec{
	Easy:   {maxRun: 7, stretch: 0.7},
	Medium: {maxRun: 7, stretch: 0.35},
	Hard:   {maxRun: 5, centerBias: true},
}

// patternRetries bounds the regeneration loop that discards the
// rare pattern whose unblocked cells are not all connected
const patternRetries = 20

// GeneratePattern returns the blocked cells of a fresh puzzle
// pattern for the given difficulty and grid size. The pattern is
// point-symmetric, its unblocked cells are connected, and every
// unblocked cell belongs to at least one word slot, so a complete
// fill leaves no cell empty. Identical arguments and rng state
// produce an identical pattern.
func GeneratePattern(d Difficulty, size int, rng *rand.Rand) CellSet {
	spec := patternSpecs[d.Resolve(0)]
	return latticePattern(size, spec.maxRun, spec.stretch, spec.centerBias, rng)
}

// patternForAttempt builds the pattern for one assembly attempt
// of a concrete difficulty. maxWordLength caps the slot lengths
// at what the lexicon can fill; each retry shortens the runs and
// drops the stretch, so later attempts ask for shorter, more
// plentiful words.
func patternForAttempt(d Difficulty, size, maxWordLength, attempt int, rng *rand.Rand) CellSet {
	spec := patternSpecs[d]
	maxRun := spec.maxRun
	if maxWordLength >= MinWordLength && maxWordLength < maxRun {
		maxRun = maxWordLength
	}
	maxRun -= 2 * attempt
	stretch := spec.stretch - 0.35*float64(attempt)
	if stretch < 0 {
		stretch = 0
	}
	return latticePattern(size, maxRun, stretch, spec.centerBias, rng)
}

// latticePattern builds a point-symmetric lattice pattern: every
// cell on an odd row and an odd column is blocked, so across
// slots live on the even rows and down slots on the even columns,
// crossing wherever both coordinates are even. Each even line is
// then split into runs of admissible word lengths. A split blocks
// an odd offset of its line and therefore touches no slot of the
// other direction, which keeps the line layouts independent; the
// only way a layout can go wrong is by cutting the grid into
// disconnected parts, and such patterns are regenerated a bounded
// number of times.
func latticePattern(size, maxRun int, stretch float64, centerBias bool, rng *rand.Rand) CellSet {
	if maxRun%2 == 0 {
		// Lattice runs have odd lengths
		maxRun--
	}
	if maxRun < 5 {
		// A cap under 5 cannot split every supported line length
		maxRun = 5
	}
	var blocks CellSet
	for try := 0; try < patternRetries; try++ {
		blocks = latticeAttempt(size, maxRun, stretch, centerBias, rng)
		g := NewGrid(size)
		g.ApplyPattern(blocks)
		if Connected(g) {
			break
		}
	}
	return blocks
}

// latticeAttempt generates one candidate lattice pattern, not yet
// checked for connectivity
func latticeAttempt(size, maxRun int, stretch float64, centerBias bool, rng *rand.Rand) CellSet {
	blocks := make(CellSet)
	for row := 1; row < size; row += 2 {
		for col := 1; col < size; col += 2 {
			blocks[Coord{row, col}] = true
		}
	}
	comps := compositions(size, maxRun)
	center := (size - 1) / 2
	// Split each across line below the center together with its
	// mirror line, which receives the reversed split
	for row := 0; row < center; row += 2 {
		comp := pickComposition(comps, stretch, centerBias, size, rng)
		for _, col := range splitOffsets(comp) {
			blocks[Coord{row, col}] = true
			blocks[Coord{size - 1 - row, size - 1 - col}] = true
		}
	}
	// The same for the down lines left of the center
	for col := 0; col < center; col += 2 {
		comp := pickComposition(comps, stretch, centerBias, size, rng)
		for _, row := range splitOffsets(comp) {
			blocks[Coord{row, col}] = true
			blocks[Coord{size - 1 - row, size - 1 - col}] = true
		}
	}
	if center%2 == 0 {
		// The center row and column carry slots and are their own
		// mirrors, so their splits must be palindromic. A size 9
		// line has no palindromic split; blocking the center cell
		// instead halves both lines into runs of 4.
		pal := palindromes(comps)
		if len(pal) == 0 {
			blocks[Coord{center, center}] = true
		} else {
			comp := pickComposition(pal, stretch, centerBias, size, rng)
			for _, col := range splitOffsets(comp) {
				blocks[Coord{center, col}] = true
			}
			comp = pickComposition(pal, stretch, centerBias, size, rng)
			for _, row := range splitOffsets(comp) {
				blocks[Coord{row, center}] = true
			}
		}
	}
	return blocks
}

// compositions enumerates the ways to carve a line of the given
// length into odd runs of MinWordLength..maxRun cells separated
// by single blocks. Every supported grid size has at least one
// such composition.
func compositions(length, maxRun int) [][]int {
	var out [][]int
	var prefix []int
	var walk func(remaining int)
	walk = func(remaining int) {
		for part := MinWordLength; part <= maxRun && part <= remaining; part += 2 {
			if part == remaining {
				comp := make([]int, len(prefix)+1)
				copy(comp, prefix)
				comp[len(prefix)] = part
				out = append(out, comp)
				continue
			}
			if rest := remaining - part - 1; rest >= MinWordLength {
				prefix = append(prefix, part)
				walk(rest)
				prefix = prefix[:len(prefix)-1]
			}
		}
	}
	walk(length)
	return out
}

// palindromes filters the compositions that read the same from
// both ends of the line
func palindromes(comps [][]int) [][]int {
	var out [][]int
	for _, comp := range comps {
		mirrored := true
		for i, j := 0, len(comp)-1; i < j; i, j = i+1, j-1 {
			if comp[i] != comp[j] {
				mirrored = false
				break
			}
		}
		if mirrored {
			out = append(out, comp)
		}
	}
	return out
}

// pickComposition selects the split for one line. With the given
// stretch probability the line keeps the fewest slots its length
// admits; under centerBias the choice is weighted toward splits
// whose blocks sit near the middle of the line.
func pickComposition(comps [][]int, stretch float64, centerBias bool, length int, rng *rand.Rand) []int {
	if len(comps) == 1 {
		return comps[0]
	}
	if centerBias {
		weights := make([]float64, len(comps))
		total := 0.0
		for i, comp := range comps {
			weights[i] = 1.0 / (1.0 + centerDistance(comp, length))
			total += weights[i]
		}
		pick := rng.Float64() * total
		for i, w := range weights {
			pick -= w
			if pick < 0 {
				return comps[i]
			}
		}
		return comps[len(comps)-1]
	}
	if rng.Float64() < stretch {
		fewest := len(comps[0])
		for _, comp := range comps[1:] {
			if len(comp) < fewest {
				fewest = len(comp)
			}
		}
		var longest [][]int
		for _, comp := range comps {
			if len(comp) == fewest {
				longest = append(longest, comp)
			}
		}
		return longest[rng.Intn(len(longest))]
	}
	return comps[rng.Intn(len(comps))]
}

// centerDistance is the mean distance of the blocks of a split
// from the middle of its line
func centerDistance(comp []int, length int) float64 {
	center := (length - 1) / 2
	total, count := 0, 0
	offset := 0
	for _, part := range comp[:len(comp)-1] {
		offset += part
		d := offset - center
		if d < 0 {
			d = -d
		}
		total += d
		count++
		offset++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// splitOffsets returns the blocked offsets within a line that
// realize a composition of runs
func splitOffsets(comp []int) []int {
	var offsets []int
	pos := 0
	for _, part := range comp[:len(comp)-1] {
		pos += part
		offsets = append(offsets, pos)
		pos++
	}
	return offsets
}
