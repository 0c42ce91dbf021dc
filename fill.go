// fill.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the backtracking grid filler, which places
// one word per slot under crossing constraints

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

/*

The code herein fills a blocked crossword grid with words.

The filler is a depth-first backtracking search over the word
slots of the grid, in the spirit of the classic treatment of
crossword construction as constraint satisfaction by Ginsberg et
al., "Search Lessons Learned from Crossword Puzzles" (AAAI-90).

The main function in this module is FillGrid(). Given a grid, its
across and down slots, and FillOptions carrying the lexicon, the
theme words, the random source and the step budget, it either
completes the grid in place or restores it and reports why it
could not.

The search proceeds roughly as follows:

1) Order the slots most-constrained-first: decreasing number of
	crossing cells, then decreasing length, with positional
	tie-breaks making the order total and a fill therefore
	reproducible. The order is computed once, by orderSlots().
2) For the current slot, collect the letters already fixed by
	words in crossing slots, and build the candidate list:
	theme words of matching length first, in bank order,
	followed by the lexicon's matching words shuffled by the
	random source. Words already placed elsewhere in the grid
	are excluded.
3) Place a candidate, then check every still-unfilled crossing
	slot for remaining candidates; abandon the placement at
	once if some crossing slot has none left. This forward
	check is implemented by viable() and hasCandidate().
4) Recurse into the next slot. When the recursion fails, undo
	the placement and try the next candidate. Undoing restores
	only the cells that no other placed word still covers; the
	filler keeps a per-cell cover count for this, so letters
	shared with committed crossing words stay put.
5) A slot with no workable candidate left reports failure
	upward, driving the backtracking.

Each tentative placement counts against a step budget; exceeding
the budget aborts the whole search with ErrFillExhausted, and a
done context aborts it with the context's error. Exhausting the
search space without a complete fill returns ErrNoFill. Letters
present in the grid before the search starts are treated as
fixed constraints and are never cleared.

*/

package xword

import (
	"context"
	"errors"
	"math/rand"
	"sort"
)

// DefaultMaxSteps bounds the search effort of a single fill
// attempt. A step is one tentative word placement.
const DefaultMaxSteps = 200000

// ErrNoFill is returned when the search space is exhausted
// without finding a consistent fill for every slot
var ErrNoFill = errors.New("no consistent fill for grid")

// ErrFillExhausted is returned when a fill attempt runs out of
// its step budget before completing
var ErrFillExhausted = errors.New("fill attempt exceeded step budget")

// FillOptions configures a call to FillGrid
type FillOptions struct {
	// Lexicon supplies candidate words; nil means DefaultLexicon
	Lexicon *Lexicon
	// Theme words are tried before dictionary words in slots
	// they fit, in the order given. They may include words that
	// are not in the lexicon.
	Theme []string
	// Rng drives candidate shuffling. Identical state yields an
	// identical fill. A nil Rng falls back to a fixed seed.
	Rng *rand.Rand
	// MaxSteps caps tentative placements; zero or negative means
	// DefaultMaxSteps
	MaxSteps int
}

// FillGrid fills every slot of the grid with a word, honoring
// crossing constraints and never using the same word twice. Slots
// are processed most-constrained-first: decreasing number of
// intersections, then decreasing length. On success the letters
// remain in the grid; on failure the grid is restored to its
// prior state and an error is returned, ErrNoFill when the search
// space is exhausted, ErrFillExhausted when the step budget runs
// out, or the context error when the context is done. Letters
// already present in the grid are treated as fixed.
func FillGrid(ctx context.Context, g *Grid, across, down []Slot, opts FillOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lex := opts.Lexicon
	if lex == nil {
		lex = DefaultLexicon
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	f := &filler{
		ctx:      ctx,
		grid:     g,
		slots:    orderSlots(across, down),
		lex:      lex,
		theme:    opts.Theme,
		rng:      rng,
		used:     make(map[string]bool),
		maxSteps: maxSteps,
	}
	f.initCover()
	f.initCrossers()
	return f.fill(0)
}

// orderSlots merges the across and down slots into a single
// search order: slots with more intersections first, longer slots
// first among those. The remaining tie-breaks make the order a
// total one, so a fill is reproducible.
func orderSlots(across, down []Slot) []Slot {
	slots := make([]Slot, 0, len(across)+len(down))
	slots = append(slots, across...)
	slots = append(slots, down...)
	cover := make(map[Coord]int)
	for _, s := range slots {
		for i := 0; i < s.Length; i++ {
			cover[s.Cell(i)]++
		}
	}
	crossings := make(map[Slot]int, len(slots))
	for _, s := range slots {
		n := 0
		for i := 0; i < s.Length; i++ {
			if cover[s.Cell(i)] > 1 {
				n++
			}
		}
		crossings[s] = n
	}
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if crossings[a] != crossings[b] {
			return crossings[a] > crossings[b]
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Dir < b.Dir
	})
	return slots
}

// filler carries the state of one fill search
type filler struct {
	ctx   context.Context
	grid  *Grid
	slots []Slot
	lex   *Lexicon
	theme []string
	rng   *rand.Rand
	// used holds the words currently placed in the grid
	used map[string]bool
	// cover counts, per cell, how many placed slots cover it;
	// a letter is cleared only when its count returns to zero
	cover [][]int
	// crossers lists, per slot index, the indices of the
	// perpendicular slots sharing a cell with it
	crossers [][]int
	steps    int
	maxSteps int
}

func (f *filler) initCover() {
	f.cover = make([][]int, f.grid.Size)
	for row := range f.cover {
		f.cover[row] = make([]int, f.grid.Size)
		for col := range f.cover[row] {
			if f.grid.Letter(row, col) != 0 {
				// Pre-set letters are pinned
				f.cover[row][col] = 1
			}
		}
	}
}

func (f *filler) initCrossers() {
	owner := make(map[Coord]map[Direction]int)
	for idx, s := range f.slots {
		for i := 0; i < s.Length; i++ {
			c := s.Cell(i)
			if owner[c] == nil {
				owner[c] = make(map[Direction]int)
			}
			owner[c][s.Dir] = idx
		}
	}
	f.crossers = make([][]int, len(f.slots))
	for idx, s := range f.slots {
		perp := Down
		if s.Dir == Down {
			perp = Across
		}
		for i := 0; i < s.Length; i++ {
			if j, ok := owner[s.Cell(i)][perp]; ok {
				f.crossers[idx] = append(f.crossers[idx], j)
			}
		}
	}
}

// fill places a word in the slot at idx and recurses to the next
// one, backtracking when no candidate leads to a complete fill
func (f *filler) fill(idx int) error {
	if idx == len(f.slots) {
		return nil
	}
	s := f.slots[idx]
	fixed := f.fixedLetters(s)
	for _, word := range f.candidates(s, fixed) {
		f.steps++
		if f.steps >= f.maxSteps {
			return ErrFillExhausted
		}
		if f.steps&63 == 0 {
			if err := f.ctx.Err(); err != nil {
				return err
			}
		}
		f.place(s, word)
		if f.viable(idx) {
			err := f.fill(idx + 1)
			if err == nil {
				return nil
			}
			if !errors.Is(err, ErrNoFill) {
				f.unplace(s, word)
				return err
			}
		}
		f.unplace(s, word)
	}
	return ErrNoFill
}

// fixedLetters collects the letters already present in the cells
// of a slot, keyed by position within the slot
func (f *filler) fixedLetters(s Slot) map[int]rune {
	var fixed map[int]rune
	for i := 0; i < s.Length; i++ {
		c := s.Cell(i)
		if ch := f.grid.Letter(c.Row, c.Col); ch != 0 {
			if fixed == nil {
				fixed = make(map[int]rune)
			}
			fixed[i] = ch
		}
	}
	return fixed
}

// candidates returns the words to try for a slot: unused theme
// words that fit, in bank order, followed by the matching
// dictionary words in shuffled order
func (f *filler) candidates(s Slot, fixed map[int]rune) []string {
	var themed []string
	for _, w := range f.theme {
		if len(w) == s.Length && !f.used[w] && matchesFixed(w, fixed) {
			themed = append(themed, w)
		}
	}
	dict := f.lex.Candidates(s.Length, fixed, f.used)
	f.rng.Shuffle(len(dict), func(i, j int) {
		dict[i], dict[j] = dict[j], dict[i]
	})
	if len(themed) == 0 {
		return dict
	}
	result := themed
	for _, w := range dict {
		if !ContainsWord(themed, w) {
			result = append(result, w)
		}
	}
	return result
}

func matchesFixed(word string, fixed map[int]rune) bool {
	for pos, ch := range fixed {
		if rune(word[pos]) != ch {
			return false
		}
	}
	return true
}

// hasCandidate reports whether a slot still has at least one
// placeable word under the current grid letters
func (f *filler) hasCandidate(s Slot) bool {
	fixed := f.fixedLetters(s)
	for _, w := range f.theme {
		if len(w) == s.Length && !f.used[w] && matchesFixed(w, fixed) {
			return true
		}
	}
	return len(f.lex.Candidates(s.Length, fixed, f.used)) > 0
}

// viable checks the slots crossing the one at idx: if any
// still-unfilled crosser has no candidate left, the current
// placement cannot lead to a complete fill
func (f *filler) viable(idx int) bool {
	for _, j := range f.crossers[idx] {
		if j <= idx {
			continue
		}
		if !f.hasCandidate(f.slots[j]) {
			return false
		}
	}
	return true
}

// place writes a word into a slot, bumping the cover count of
// each cell. Cells already holding the same letter from a
// crossing word are left as they are.
func (f *filler) place(s Slot, word string) {
	for i, ch := range word {
		c := s.Cell(i)
		if f.grid.Letter(c.Row, c.Col) == 0 {
			f.grid.SetLetter(c.Row, c.Col, ch)
		}
		f.cover[c.Row][c.Col]++
	}
	f.used[word] = true
}

// unplace removes a word from a slot, clearing only the letters
// no other placed word still covers
func (f *filler) unplace(s Slot, word string) {
	for i := 0; i < s.Length; i++ {
		c := s.Cell(i)
		f.cover[c.Row][c.Col]--
		if f.cover[c.Row][c.Col] == 0 {
			f.grid.ClearLetter(c.Row, c.Col)
		}
	}
	delete(f.used, word)
}
