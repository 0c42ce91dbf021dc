// validate.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the puzzle validator, a pure inspection
// step that checks a filled grid and its clues against the
// structural quality rules

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

// The issue strings reported by Validate. Each check contributes
// its string at most once.
const (
	IssueTooFewWords  = "too few words"
	IssueUnbalanced   = "unbalanced word distribution"
	IssueDuplicates   = "duplicate words"
	IssueShortWords   = "too many short words"
	IssueIsolated     = "grid has isolated sections"
	IssueClueMismatch = "clue mismatch"
)

// Validation thresholds
const (
	// minTotalWords is the least acceptable number of across
	// plus down entries
	minTotalWords = 20
	// minBalancePercent is the least share of the total that
	// the sparser direction may hold
	minBalancePercent = 30
	// shortWordLimit is the number of words of fewer than
	// MinWordLength letters at which a puzzle is rejected.
	// Slots are at least MinWordLength cells by construction,
	// so this guards against hand-built or corrupted input.
	shortWordLimit = 3
)

// ValidationResult is the outcome of validating one puzzle
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// Validate checks a filled grid, its slots and its clues, and
// returns the list of quality issues found. It never mutates its
// inputs. The slots are expected to be numbered; clues may be nil
// when no clue consistency check is wanted.
func Validate(g *Grid, across, down []Slot, clues *ClueSet) ValidationResult {
	var issues []string
	total := len(across) + len(down)
	if total < minTotalWords {
		issues = append(issues, IssueTooFewWords)
	}
	minCount := len(across)
	if len(down) < minCount {
		minCount = len(down)
	}
	if total > 0 && minCount*100 < total*minBalancePercent {
		issues = append(issues, IssueUnbalanced)
	}
	seen := make(map[string]bool)
	duplicates := false
	shortWords := 0
	for _, s := range across {
		word := WordAt(g, s)
		if len(word) < MinWordLength {
			shortWords++
		}
		if seen[word] {
			duplicates = true
		}
		seen[word] = true
	}
	for _, s := range down {
		word := WordAt(g, s)
		if len(word) < MinWordLength {
			shortWords++
		}
		if seen[word] {
			duplicates = true
		}
		seen[word] = true
	}
	if duplicates {
		issues = append(issues, IssueDuplicates)
	}
	if shortWords >= shortWordLimit {
		issues = append(issues, IssueShortWords)
	}
	if !Connected(g) {
		issues = append(issues, IssueIsolated)
	}
	if clues != nil && !cluesMatch(g, across, down, clues) {
		issues = append(issues, IssueClueMismatch)
	}
	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// Cell adjacency offsets, in the order above, left, right, below
var adjacent = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// Connected reports whether every unblocked cell of the grid is
// reachable from every other through orthogonally adjacent
// unblocked cells. A grid without unblocked cells is considered
// connected. The check is a breadth-first flood fill from the
// first unblocked cell.
func Connected(g *Grid) bool {
	var start Coord
	found := false
	unblocked := 0
	for row := 0; row < g.Size && !found; row++ {
		for col := 0; col < g.Size; col++ {
			if !g.IsBlocked(row, col) {
				start = Coord{row, col}
				found = true
				break
			}
		}
	}
	if !found {
		return true
	}
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if !g.IsBlocked(row, col) {
				unblocked++
			}
		}
	}
	visited := make(map[Coord]bool, unblocked)
	visited[start] = true
	queue := []Coord{start}
	reached := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		reached++
		for _, d := range adjacent {
			n := Coord{c.Row + d[0], c.Col + d[1]}
			if !visited[n] && !g.IsBlocked(n.Row, n.Col) {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return reached == unblocked
}

// clueKey identifies a clue or slot by number and direction
type clueKey struct {
	number int
	dir    Direction
}

// cluesMatch verifies that the clue lists and the numbered slots
// describe each other exactly: same counts, same numbers, and
// each clue's answer equal to the word read from its slot
func cluesMatch(g *Grid, across, down []Slot, clues *ClueSet) bool {
	if len(clues.Across) != len(across) || len(clues.Down) != len(down) {
		return false
	}
	words := make(map[clueKey]string, len(across)+len(down))
	for _, s := range across {
		words[clueKey{s.Number, Across}] = WordAt(g, s)
	}
	for _, s := range down {
		words[clueKey{s.Number, Down}] = WordAt(g, s)
	}
	for _, c := range clues.Across {
		if w, ok := words[clueKey{c.Number, Across}]; !ok || w != c.Answer {
			return false
		}
	}
	for _, c := range clues.Down {
		if w, ok := words[clueKey{c.Number, Down}]; !ok || w != c.Answer {
			return false
		}
	}
	return true
}
