// xword_test.go
// Copyright (C) 2025 The GoXword Authors
// This file contains tests for the xword package

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
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// emptyFallbackPattern returns the fallback layout with its
// letters removed, leaving only the block pattern
func emptyFallbackPattern() *Grid {
	g, err := ParseGrid(fallbackLayout)
	if err != nil {
		panic(err)
	}
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if !g.IsBlocked(row, col) {
				g.ClearLetter(row, col)
			}
		}
	}
	return g
}

func TestGrid(t *testing.T) {
	g := NewGrid(9)
	if g.Size != 9 {
		t.Errorf("NewGrid(9) has size %v", g.Size)
	}
	if g.NumBlocked() != 0 {
		t.Errorf("A fresh grid should have no blocked cells")
	}
	if !g.InBounds(0, 0) || !g.InBounds(8, 8) {
		t.Errorf("Corner cells should be in bounds")
	}
	if g.InBounds(9, 0) || g.InBounds(0, -1) {
		t.Errorf("Out-of-range cells should not be in bounds")
	}
	// Out-of-bounds cells read as blocked, which keeps run
	// scanning uniform at the edges
	if !g.IsBlocked(-1, 0) || !g.IsBlocked(0, 9) {
		t.Errorf("Out-of-bounds cells should read as blocked")
	}
	g.Block(0, 0)
	if !g.IsBlocked(0, 0) || g.NumBlocked() != 1 {
		t.Errorf("Block() did not block the cell")
	}
	g.Unblock(0, 0)
	if g.IsBlocked(0, 0) || g.NumBlocked() != 0 {
		t.Errorf("Unblock() did not clear the cell")
	}
	// Letters
	if g.Letter(4, 4) != 0 {
		t.Errorf("An empty cell should read as letter 0")
	}
	g.SetLetter(4, 4, 'Q')
	if g.Letter(4, 4) != 'Q' {
		t.Errorf("SetLetter() did not store the letter")
	}
	g.ClearLetter(4, 4)
	if g.Letter(4, 4) != 0 {
		t.Errorf("ClearLetter() did not clear the letter")
	}
	// Mirroring and symmetry
	if row, col := g.Mirror(0, 0); row != 8 || col != 8 {
		t.Errorf("Mirror(0,0) = (%v,%v), expected (8,8)", row, col)
	}
	if row, col := g.Mirror(4, 4); row != 4 || col != 4 {
		t.Errorf("The center cell should mirror onto itself")
	}
	if !g.IsSymmetric() {
		t.Errorf("An all-open grid should be symmetric")
	}
	g.Block(1, 2)
	if g.IsSymmetric() {
		t.Errorf("A lone block should break symmetry")
	}
	g.Block(7, 6)
	if !g.IsSymmetric() {
		t.Errorf("Blocking the mirror cell should restore symmetry")
	}
	// Clones are independent of the original
	c := g.Clone()
	c.Block(3, 3)
	c.SetLetter(0, 0, 'A')
	if g.IsBlocked(3, 3) || g.Letter(0, 0) != 0 {
		t.Errorf("Clone() should not share cells with the original")
	}
	for _, size := range []int{9, 11, 15, 25} {
		if !ValidGridSize(size) {
			t.Errorf("Size %v should be valid", size)
		}
	}
	for _, size := range []int{-9, 0, 7, 8, 10, 14, 26, 27} {
		if ValidGridSize(size) {
			t.Errorf("Size %v should not be valid", size)
		}
	}
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(fallbackLayout)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if g.Size != 9 {
		t.Errorf("Parsed grid has size %v, expected 9", g.Size)
	}
	if !g.IsBlocked(0, 4) {
		t.Errorf("Cell (0,4) should be blocked")
	}
	if g.Letter(0, 0) != 'L' || g.Letter(8, 8) != 'T' {
		t.Errorf("Parsed letters are wrong")
	}
	// Rows() must reproduce the parsed input exactly
	for i, row := range g.Rows() {
		if row != fallbackLayout[i] {
			t.Errorf("Row %v round-trips to '%v', expected '%v'", i, row, fallbackLayout[i])
		}
	}
	// Empty cells serialize as '.'
	e := NewGrid(3)
	e.Block(1, 1)
	if rows := e.Rows(); rows[0] != "..." || rows[1] != ".#." {
		t.Errorf("Empty cells should serialize as '.', got %v", rows)
	}
	// Blanks parse as empty cells
	p, err := ParseGrid([]string{"A. ", ".#.", " .Z"})
	if err != nil {
		t.Fatalf("ParseGrid failed on blanks: %v", err)
	}
	if p.Letter(0, 0) != 'A' || p.Letter(2, 2) != 'Z' || !p.IsBlocked(1, 1) {
		t.Errorf("Blank-bearing grid parsed incorrectly")
	}
	badCases := [][]string{
		{},                    // no rows at all
		{"AB", "A"},           // ragged rows
		{"AB"},                // row wider than the grid
		{"ab#", "...", "..."}, // lowercase letters
		{"A@C", "...", "..."}, // invalid rune
	}
	for _, rows := range badCases {
		if _, err := ParseGrid(rows); err == nil {
			t.Errorf("ParseGrid(%v) should fail", rows)
		}
	}
}

func TestGeneratePattern(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		maxSlot := patternSpecs[d].maxRun
		for _, size := range []int{9, 11, 15, 25} {
			g := NewGrid(size)
			g.ApplyPattern(GeneratePattern(d, size, rand.New(rand.NewSource(17))))
			if !g.IsSymmetric() {
				t.Errorf("%v pattern of size %v is not symmetric", d, size)
			}
			if g.NumBlocked() == 0 {
				t.Errorf("%v pattern of size %v has no blocks", d, size)
			}
			if !Connected(g) {
				t.Errorf("%v pattern of size %v is disconnected", d, size)
			}
			// Every multi-cell run must be a slot of admissible
			// length; runs of 2 are never allowed
			for row := 0; row < size; row++ {
				for col := 0; col < size; col++ {
					if g.IsBlocked(row, col) {
						continue
					}
					if g.IsBlocked(row, col-1) {
						n := runLength(g, row, col, Across)
						if n != 1 && (n < MinWordLength || n > maxSlot) {
							t.Errorf("%v pattern of size %v has an across run of %v cells at %v",
								d, size, n, Coord{row, col})
						}
					}
					if g.IsBlocked(row-1, col) {
						n := runLength(g, row, col, Down)
						if n != 1 && (n < MinWordLength || n > maxSlot) {
							t.Errorf("%v pattern of size %v has a down run of %v cells at %v",
								d, size, n, Coord{row, col})
						}
					}
				}
			}
			// Every unblocked cell must belong to a slot, so that
			// a completed fill leaves no cell empty
			across, down := ExtractSlots(g)
			covered := make(map[Coord]bool)
			for _, s := range append(append([]Slot{}, across...), down...) {
				for i := 0; i < s.Length; i++ {
					covered[s.Cell(i)] = true
				}
			}
			for row := 0; row < size; row++ {
				for col := 0; col < size; col++ {
					if !g.IsBlocked(row, col) && !covered[Coord{row, col}] {
						t.Errorf("%v pattern of size %v leaves %v outside every slot",
							d, size, Coord{row, col})
					}
				}
			}
			if len(across) < 10 || len(down) < 10 {
				t.Errorf("%v pattern of size %v yields %v across and %v down slots",
					d, size, len(across), len(down))
			}
		}
	}
	// Block density grows with difficulty
	meanBlocks := func(d Difficulty) float64 {
		total := 0
		for seed := int64(1); seed <= 20; seed++ {
			g := NewGrid(15)
			g.ApplyPattern(GeneratePattern(d, 15, rand.New(rand.NewSource(seed))))
			total += g.NumBlocked()
		}
		return float64(total) / 20
	}
	easy, medium, hard := meanBlocks(Easy), meanBlocks(Medium), meanBlocks(Hard)
	if easy >= medium || medium >= hard {
		t.Errorf("Block density does not grow with difficulty: %.1f / %.1f / %.1f",
			easy, medium, hard)
	}
	// Identical rng state yields an identical pattern
	p1 := GeneratePattern(Medium, 15, rand.New(rand.NewSource(5)))
	p2 := GeneratePattern(Medium, 15, rand.New(rand.NewSource(5)))
	if len(p1) != len(p2) {
		t.Errorf("Patterns from the same seed differ in size: %v vs %v", len(p1), len(p2))
	}
	for coord := range p1 {
		if !p2[coord] {
			t.Errorf("Patterns from the same seed differ at %v", coord)
		}
	}
}

func TestDifficulty(t *testing.T) {
	parseCases := []struct {
		s string
		d Difficulty
	}{
		{"easy", Easy},
		{"EASY", Easy},
		{" Medium ", Medium},
		{"hard", Hard},
		{"mixed", Mixed},
	}
	for _, c := range parseCases {
		d, err := ParseDifficulty(c.s)
		if err != nil || d != c.d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", c.s, d, err)
		}
	}
	for _, s := range []string{"", "brutal", "easy peasy"} {
		if _, err := ParseDifficulty(s); err == nil {
			t.Errorf("ParseDifficulty(%q) should fail", s)
		}
	}
	if Easy.String() != "EASY" || Mixed.String() != "MIXED" {
		t.Errorf("Difficulty names render incorrectly")
	}
	// Mixed cycles through the concrete difficulties per index
	cycle := []Difficulty{Easy, Medium, Hard, Easy, Medium, Hard}
	for i, d := range cycle {
		if Mixed.Resolve(i) != d {
			t.Errorf("Mixed.Resolve(%v) = %v, expected %v", i, Mixed.Resolve(i), d)
		}
	}
	if Hard.Resolve(7) != Hard {
		t.Errorf("Concrete difficulties should resolve to themselves")
	}
}

func TestSlots(t *testing.T) {
	g, err := ParseGrid(fallbackLayout)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	across, down := ExtractSlots(g)
	if len(across) != 7 || len(down) != 7 {
		t.Fatalf("Expected 7 across and 7 down slots, got %v and %v", len(across), len(down))
	}
	first := across[0]
	if first.Row != 0 || first.Col != 0 || first.Length != 4 || first.Dir != Across {
		t.Errorf("Unexpected first across slot %+v", first)
	}
	if first.Cell(2) != (Coord{0, 2}) {
		t.Errorf("Cell(2) of the first slot is %v", first.Cell(2))
	}
	// Across slots arrive in row order, down slots in column order
	acrossWords := []string{"LAMP", "DOVE", "RANGERS", "HOLIDAY", "DRAGONS", "CITY", "EXIT"}
	for i, s := range across {
		if WordAt(g, s) != acrossWords[i] {
			t.Errorf("Across slot %v reads '%v', expected '%v'", i, WordAt(g, s), acrossWords[i])
		}
	}
	downWords := []string{"AIR", "RAT", "NIL", "GOING", "DUO", "OUR", "SKI"}
	for i, s := range down {
		if WordAt(g, s) != downWords[i] {
			t.Errorf("Down slot %v reads '%v', expected '%v'", i, WordAt(g, s), downWords[i])
		}
	}
	// Crossword numbering is row-major over the slot starts
	positions := NumberSlots(g, across, down)
	if len(positions) != 14 {
		t.Fatalf("Expected 14 numbered positions, got %v", len(positions))
	}
	expected := map[string]int{
		"0,0": 1, "0,1": 2, "0,5": 3, "0,6": 4, "2,1": 5, "2,3": 6, "2,4": 7,
		"4,1": 8, "4,5": 9, "6,1": 10, "6,2": 11, "6,7": 12, "8,0": 13, "8,5": 14,
	}
	for key, number := range expected {
		if positions[key] != number {
			t.Errorf("Position %v numbered %v, expected %v", key, positions[key], number)
		}
	}
	// The numbers are also written back into the slots
	if across[0].Number != 1 || across[6].Number != 14 {
		t.Errorf("Across slot numbers not assigned: %v, %v", across[0].Number, across[6].Number)
	}
	if down[0].Number != 2 || down[1].Number != 11 {
		t.Errorf("Down slot numbers not assigned: %v, %v", down[0].Number, down[1].Number)
	}
}

func TestLexicon(t *testing.T) {
	// Construction normalizes, deduplicates and length-filters
	lex := NewLexicon([]string{" rose ", "Tulip", "ROSE", "ab", "not#ok", "x1z", ""}, 0)
	if lex.WordCount() != 2 {
		t.Errorf("Expected 2 words, got %v", lex.WordCount())
	}
	if !lex.Find("rose") || !lex.Find("TULIP") {
		t.Errorf("Normalized words not found")
	}
	if lex.Find("ab") {
		t.Errorf("Two-letter entries should be rejected")
	}
	if lex.MaxLength() != 5 {
		t.Errorf("MaxLength() = %v, expected 5", lex.MaxLength())
	}

	// The embedded default lexicon
	wordBase := DefaultLexicon
	positiveCases := []string{"ROSE", "rose", " Apple ", "EXIT", "GOING", "city"}
	negativeCases := []string{"", "AB", "QZXWV", "ROSE S", "THISWORDISTOOLONG"}
	for _, word := range positiveCases {
		if !wordBase.Find(word) {
			t.Errorf("Did not find word '%v' that should be in the lexicon", word)
		}
	}
	for _, word := range negativeCases {
		if wordBase.Find(word) {
			t.Errorf("Found word '%v' that should not be in the lexicon", word)
		}
	}
	if wordBase.WordCount() < 800 {
		t.Errorf("The default lexicon holds only %v words", wordBase.WordCount())
	}

	// Pattern matching with wildcards
	results := wordBase.Match("GR??N")
	if !ContainsWord(results, "GREEN") {
		t.Errorf("Match(GR??N) should include GREEN, got %v", results)
	}
	for _, w := range results {
		if len(w) != 5 || w[0] != 'G' || w[1] != 'R' || w[4] != 'N' {
			t.Errorf("Match(GR??N) returned non-matching word '%v'", w)
		}
	}
	if results := wordBase.Match("ROSE"); !ContainsWord(results, "ROSE") {
		t.Errorf("A wildcard-free pattern should match itself, got %v", results)
	}
	if results := wordBase.Match("?Q?Q"); len(results) != 0 {
		t.Errorf("Match(?Q?Q) should be empty, got %v", results)
	}

	// Candidate lookup with fixed letters
	fixed := map[int]rune{0: 'R'}
	cands := wordBase.Candidates(4, fixed, nil)
	if !ContainsWord(cands, "ROSE") {
		t.Errorf("Candidates(4, R...) should include ROSE")
	}
	for _, w := range cands {
		if len(w) != 4 || w[0] != 'R' {
			t.Errorf("Candidate '%v' does not carry the fixed letter", w)
		}
	}
	if ContainsWord(wordBase.Candidates(4, fixed, map[string]bool{"ROSE": true}), "ROSE") {
		t.Errorf("Used words should be excluded from candidates")
	}
	if len(wordBase.Candidates(4, nil, nil)) < 500 {
		t.Errorf("An unconstrained candidate query should return the whole bucket")
	}
	if len(wordBase.Candidates(2, nil, nil)) != 0 {
		t.Errorf("Candidates below MinWordLength should be empty")
	}

	// Restricting the maximum word length
	small := wordBase.Restrict(4)
	if small.MaxLength() != 4 {
		t.Errorf("Restricted lexicon has MaxLength %v", small.MaxLength())
	}
	if !small.Find("ROSE") || small.Find("GREEN") {
		t.Errorf("Restricted lexicon holds the wrong words")
	}
	if small.WordCount() >= wordBase.WordCount() {
		t.Errorf("Restriction should shrink the lexicon")
	}
	// Restricting to at least the current maximum is a no-op
	if wordBase.Restrict(MaxWordLength) != wordBase {
		t.Errorf("Restrict(MaxWordLength) should return the receiver")
	}
}

func TestMatchCache(t *testing.T) {
	lex := NewLexicon([]string{"GREEN", "GRAIN", "GROAN", "BROWN"}, 0)
	first := lex.Match("GR??N")
	if len(first) != 3 {
		t.Fatalf("Expected 3 matches, got %v", first)
	}
	// The returned slice is the caller's private copy: corrupting
	// it must not poison the cached result behind it
	first[0] = "BOGUS"
	second := lex.Match("GR??N")
	if ContainsWord(second, "BOGUS") {
		t.Errorf("A caller's mutation leaked into the cache: %v", second)
	}
	for _, w := range []string{"GREEN", "GRAIN", "GROAN"} {
		if !ContainsWord(second, w) {
			t.Errorf("A repeated match lost '%v': %v", w, second)
		}
	}
	// Repeated matches agree with each other in full
	third := lex.Match("GR??N")
	for i, w := range third {
		if second[i] != w {
			t.Errorf("Cached matches differ at %v: '%v' vs '%v'", i, second[i], w)
		}
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "# test word list\nrose\nTULIP\n\nab\napple\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Cannot write word list: %v", err)
	}
	lex, err := LoadLexicon(path, MaxWordLength)
	if err != nil {
		t.Fatalf("LoadLexicon failed: %v", err)
	}
	// Comments, blank lines and the two-letter entry are skipped
	if lex.WordCount() != 3 {
		t.Errorf("Expected 3 words, got %v", lex.WordCount())
	}
	if !lex.Find("APPLE") || !lex.Find("rose") {
		t.Errorf("Loaded words not found")
	}
	if _, err := LoadLexicon(filepath.Join(dir, "missing.txt"), 0); !errors.Is(err, ErrWordListLoad) {
		t.Errorf("A missing file should yield ErrWordListLoad, got %v", err)
	}
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing here\n\n"), 0644); err != nil {
		t.Fatalf("Cannot write word list: %v", err)
	}
	if _, err := LoadLexicon(empty, 0); !errors.Is(err, ErrWordListLoad) {
		t.Errorf("A list without usable words should yield ErrWordListLoad, got %v", err)
	}
	// The recovering loader substitutes the built-in list instead
	// of failing
	rec, err := LoadLexiconOrDefault(filepath.Join(dir, "missing.txt"), 0)
	if !errors.Is(err, ErrWordListLoad) {
		t.Errorf("Expected ErrWordListLoad from the fallback load, got %v", err)
	}
	if rec != DefaultLexicon {
		t.Errorf("Fallback load should return DefaultLexicon")
	}
	if rec, err = LoadLexiconOrDefault("", 0); err != nil || rec != DefaultLexicon {
		t.Errorf("An empty path should yield DefaultLexicon without error")
	}
	if rec, err = LoadLexiconOrDefault(path, MaxWordLength); err != nil || rec.WordCount() != 3 {
		t.Errorf("A usable list should load normally, got %v words, error %v", rec.WordCount(), err)
	}
}

func TestNormalize(t *testing.T) {
	wordCases := []struct {
		in  string
		out string
		ok  bool
	}{
		{" rose ", "ROSE", true},
		{"Tulip", "TULIP", true},
		{"OK", "OK", true},
		{"", "", false},
		{"# comment line", "", false},
		{"AB1", "", false},
		{"TWO WORDS", "", false},
	}
	for _, c := range wordCases {
		out, ok := NormalizeWord(c.in)
		if out != c.out || ok != c.ok {
			t.Errorf("NormalizeWord(%q) = %q, %v", c.in, out, ok)
		}
	}
	if NormalizeTheme("  Garden   FLOWERS ") != "garden flowers" {
		t.Errorf("NormalizeTheme should trim, lowercase and collapse spaces")
	}
	if NormalizeTheme("") != "" {
		t.Errorf("NormalizeTheme of an empty string should be empty")
	}
	words := []string{"ALPHA", "BETA"}
	if !ContainsWord(words, "BETA") || ContainsWord(words, "GAMMA") {
		t.Errorf("ContainsWord gives wrong answers")
	}
}

func TestThemes(t *testing.T) {
	themes := KnownThemes()
	if len(themes) == 0 {
		t.Fatalf("No built-in themes found")
	}
	if !sort.StringsAreSorted(themes) {
		t.Errorf("KnownThemes() should be sorted, got %v", themes)
	}
	if !ContainsWord(themes, "garden flowers") || !ContainsWord(themes, "birds") {
		t.Errorf("Expected themes missing from %v", themes)
	}
	// Lookup is case- and whitespace-insensitive
	words := ThemeWords(" Garden  FLOWERS ")
	if len(words) == 0 || !ContainsWord(words, "ROSE") {
		t.Errorf("ThemeWords lookup failed: %v", words)
	}
	// Every theme word is canonical and backed by the lexicon
	for _, theme := range themes {
		for _, w := range ThemeWords(theme) {
			if normalized, ok := NormalizeWord(w); !ok || normalized != w {
				t.Errorf("Theme word '%v' is not in canonical form", w)
			}
			if !DefaultLexicon.Find(w) {
				t.Errorf("Theme word '%v' is missing from the default lexicon", w)
			}
		}
	}
	// Callers own the returned slice
	words[0] = "MUTATED"
	if ContainsWord(ThemeWords("garden flowers"), "MUTATED") {
		t.Errorf("ThemeWords should return a copy of the bank")
	}
	if len(ThemeWords("no such theme")) != 0 {
		t.Errorf("Unknown themes should yield no words")
	}
}

func TestFillGrid(t *testing.T) {
	g := emptyFallbackPattern()
	across, down := ExtractSlots(g)
	opts := FillOptions{Rng: rand.New(rand.NewSource(3))}
	if err := FillGrid(context.Background(), g, across, down, opts); err != nil {
		t.Fatalf("FillGrid failed: %v", err)
	}
	// Every slot holds a distinct dictionary word of its length
	used := make(map[string]bool)
	for _, s := range append(append([]Slot{}, across...), down...) {
		word := WordAt(g, s)
		if len(word) != s.Length {
			t.Errorf("Slot %+v holds '%v'", s, word)
		}
		if !DefaultLexicon.Find(word) {
			t.Errorf("Fill produced '%v' which is not in the lexicon", word)
		}
		if used[word] {
			t.Errorf("Fill used '%v' twice", word)
		}
		used[word] = true
	}
	// Identical rng state yields an identical fill
	h := emptyFallbackPattern()
	hAcross, hDown := ExtractSlots(h)
	if err := FillGrid(context.Background(), h, hAcross, hDown, FillOptions{Rng: rand.New(rand.NewSource(3))}); err != nil {
		t.Fatalf("FillGrid failed on rerun: %v", err)
	}
	gRows := g.Rows()
	for i, row := range h.Rows() {
		if row != gRows[i] {
			t.Errorf("Fills from the same seed differ in row %v: '%v' vs '%v'", i, row, gRows[i])
		}
	}
	// Letters already in the grid are treated as fixed
	p := emptyFallbackPattern()
	p.SetLetter(0, 0, 'S')
	pAcross, pDown := ExtractSlots(p)
	if err := FillGrid(context.Background(), p, pAcross, pDown, FillOptions{Rng: rand.New(rand.NewSource(4))}); err != nil {
		t.Fatalf("FillGrid failed with a pinned letter: %v", err)
	}
	if p.Letter(0, 0) != 'S' {
		t.Errorf("A pinned letter was overwritten")
	}
	if word := WordAt(p, pAcross[0]); word[0] != 'S' {
		t.Errorf("The word '%v' ignores the pinned letter", word)
	}
	// A one-step budget is exhausted immediately, and the grid is
	// left untouched
	b := emptyFallbackPattern()
	bAcross, bDown := ExtractSlots(b)
	err := FillGrid(context.Background(), b, bAcross, bDown, FillOptions{Rng: rand.New(rand.NewSource(3)), MaxSteps: 1})
	if !errors.Is(err, ErrFillExhausted) {
		t.Errorf("Expected ErrFillExhausted, got %v", err)
	}
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Letter(row, col) != 0 {
				t.Errorf("Cell (%v,%v) was not restored after a failed fill", row, col)
			}
		}
	}
	// A lexicon that cannot cover the slot lengths yields ErrNoFill
	tiny := NewLexicon([]string{"CAT", "DOG", "SUN"}, 0)
	n := emptyFallbackPattern()
	nAcross, nDown := ExtractSlots(n)
	if err := FillGrid(context.Background(), n, nAcross, nDown, FillOptions{Lexicon: tiny, Rng: rand.New(rand.NewSource(3))}); !errors.Is(err, ErrNoFill) {
		t.Errorf("Expected ErrNoFill, got %v", err)
	}
}

func TestFillTheme(t *testing.T) {
	g := emptyFallbackPattern()
	across, down := ExtractSlots(g)
	opts := FillOptions{
		Theme: []string{"RANGERS"},
		Rng:   rand.New(rand.NewSource(5)),
	}
	if err := FillGrid(context.Background(), g, across, down, opts); err != nil {
		t.Fatalf("FillGrid failed: %v", err)
	}
	// The theme word fits the 7-cell slots and is tried before
	// any dictionary word, so it must end up in the fill
	var words []string
	for _, s := range across {
		words = append(words, WordAt(g, s))
	}
	for _, s := range down {
		words = append(words, WordAt(g, s))
	}
	if !ContainsWord(words, "RANGERS") {
		t.Errorf("Theme word RANGERS missing from fill %v", words)
	}
}

func TestValidate(t *testing.T) {
	// The hand-built fallback layout is clean but far too small
	g, err := ParseGrid(fallbackLayout)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	across, down := ExtractSlots(g)
	result := Validate(g, across, down, nil)
	if result.Valid {
		t.Errorf("A 14-word puzzle should not validate")
	}
	if len(result.Issues) != 1 || result.Issues[0] != IssueTooFewWords {
		t.Errorf("Expected exactly [%v], got %v", IssueTooFewWords, result.Issues)
	}
	// Consistent clues add no further issues
	NumberSlots(g, across, down)
	clues := SynthesizeClues(g, across, down, Medium)
	result = Validate(g, across, down, clues)
	if ContainsWord(result.Issues, IssueClueMismatch) {
		t.Errorf("Consistent clues flagged as mismatched")
	}
	// A tampered answer is caught
	clues.Across[0].Answer = "LIMP"
	result = Validate(g, across, down, clues)
	if !ContainsWord(result.Issues, IssueClueMismatch) {
		t.Errorf("Expected '%v' among %v", IssueClueMismatch, result.Issues)
	}

	// Duplicate answers
	dup, err := ParseGrid([]string{
		"CAT##",
		"A####",
		"TAT##",
		"#####",
		"#####",
	})
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	dupAcross, dupDown := ExtractSlots(dup)
	result = Validate(dup, dupAcross, dupDown, nil)
	if !ContainsWord(result.Issues, IssueDuplicates) {
		t.Errorf("Expected '%v' among %v", IssueDuplicates, result.Issues)
	}
	if len(result.Issues) != 2 {
		t.Errorf("Expected too-few-words and duplicates only, got %v", result.Issues)
	}

	// All across, no down, and every row cut off from the others
	lop, err := ParseGrid([]string{
		"ABCDEFGHI",
		"#########",
		"BCDEFGHIJ",
		"#########",
		"CDEFGHIJK",
		"#########",
		"DEFGHIJKL",
		"#########",
		"EFGHIJKLM",
	})
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	lopAcross, lopDown := ExtractSlots(lop)
	if len(lopDown) != 0 {
		t.Fatalf("The striped grid should have no down slots, got %v", len(lopDown))
	}
	result = Validate(lop, lopAcross, lopDown, nil)
	if !ContainsWord(result.Issues, IssueUnbalanced) {
		t.Errorf("Expected '%v' among %v", IssueUnbalanced, result.Issues)
	}
	if !ContainsWord(result.Issues, IssueIsolated) {
		t.Errorf("Expected '%v' among %v", IssueIsolated, result.Issues)
	}

	// Hand-made short slots are counted against the limit
	stub, err := ParseGrid([]string{
		"AB###",
		"CD###",
		"EF###",
		"#####",
		"#####",
	})
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	shortSlots := []Slot{
		{Row: 0, Col: 0, Length: 2, Dir: Across},
		{Row: 1, Col: 0, Length: 2, Dir: Across},
		{Row: 2, Col: 0, Length: 2, Dir: Across},
	}
	result = Validate(stub, shortSlots, nil, nil)
	if !ContainsWord(result.Issues, IssueShortWords) {
		t.Errorf("Expected '%v' among %v", IssueShortWords, result.Issues)
	}
}

func TestConnected(t *testing.T) {
	g := NewGrid(5)
	if !Connected(g) {
		t.Errorf("An all-open grid should be connected")
	}
	// A wall down the middle column separates the halves
	for row := 0; row < 5; row++ {
		g.Block(row, 2)
	}
	if Connected(g) {
		t.Errorf("A walled grid should not be connected")
	}
	b := NewGrid(3)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.Block(row, col)
		}
	}
	if !Connected(b) {
		t.Errorf("A fully blocked grid is vacuously connected")
	}
	f, err := ParseGrid(fallbackLayout)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if !Connected(f) {
		t.Errorf("The fallback layout should be connected")
	}
}

func TestIsolatedCell(t *testing.T) {
	// An otherwise flawless filled grid with one corner cell cut
	// off by two blocks must report the isolation issue and
	// nothing else. Letters stepping by 2 along rows and by 1
	// down columns keep all the words distinct.
	size := 11
	g := NewGrid(size)
	g.Block(0, 1)
	g.Block(1, 0)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !g.IsBlocked(row, col) {
				g.SetLetter(row, col, rune('A'+(row+2*col)%26))
			}
		}
	}
	across, down := ExtractSlots(g)
	if len(across)+len(down) < minTotalWords {
		t.Fatalf("The grid carries only %v words, too few to exercise the isolation check alone",
			len(across)+len(down))
	}
	result := Validate(g, across, down, nil)
	if result.Valid {
		t.Errorf("A grid with a cut-off cell should not validate")
	}
	if len(result.Issues) != 1 || result.Issues[0] != IssueIsolated {
		t.Errorf("Expected exactly [%v], got %v", IssueIsolated, result.Issues)
	}
}

func TestClues(t *testing.T) {
	// Bank words get a difficulty-tiered variant
	if clue := ClueFor("LAMP", Easy); clue != "Desk light" {
		t.Errorf("ClueFor(LAMP, Easy) = %q", clue)
	}
	if clue := ClueFor("LAMP", Medium); clue != "Genie's home" {
		t.Errorf("ClueFor(LAMP, Medium) = %q", clue)
	}
	if clue := ClueFor("LAMP", Hard); clue != "It may be lit or leaded" {
		t.Errorf("ClueFor(LAMP, Hard) = %q", clue)
	}
	// Mixed takes the middle tier
	if clue := ClueFor("LAMP", Mixed); clue != "Genie's home" {
		t.Errorf("ClueFor(LAMP, Mixed) = %q", clue)
	}
	// Words outside the bank get a heuristic clue
	heuristicCases := []struct {
		word string
		clue string
	}{
		{"READING", "Action of read"},
		{"FARMER", "One who farms"},
		{"SOFTLY", "In an soft manner"},
		{"GRANITE", "Related to granite"},
		{"RING", "Related to ring"}, // stem too short for the -ing rule
		{"HER", "Related to her"},
	}
	for _, c := range heuristicCases {
		if clue := ClueFor(c.word, Medium); clue != c.clue {
			t.Errorf("ClueFor(%v) = %q, expected %q", c.word, clue, c.clue)
		}
	}
	// Synthesized clue lists are ordered by number
	g, err := ParseGrid(fallbackLayout)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	across, down := ExtractSlots(g)
	NumberSlots(g, across, down)
	cs := SynthesizeClues(g, across, down, Hard)
	if len(cs.Across) != 7 || len(cs.Down) != 7 {
		t.Fatalf("Expected 7+7 clues, got %v and %v", len(cs.Across), len(cs.Down))
	}
	acrossNumbers := []int{1, 3, 5, 8, 10, 13, 14}
	downNumbers := []int{2, 4, 6, 7, 9, 11, 12}
	for i, clue := range cs.Across {
		if clue.Number != acrossNumbers[i] {
			t.Errorf("Across clue %v has number %v, expected %v", i, clue.Number, acrossNumbers[i])
		}
	}
	for i, clue := range cs.Down {
		if clue.Number != downNumbers[i] {
			t.Errorf("Down clue %v has number %v, expected %v", i, clue.Number, downNumbers[i])
		}
	}
	if cs.Across[0].Answer != "LAMP" || cs.Across[0].Text != "It may be lit or leaded" {
		t.Errorf("Unexpected first across clue %+v", cs.Across[0])
	}
	if cs.Down[0].Answer != "AIR" || cs.Down[0].Text != "Broadcast" {
		t.Errorf("Unexpected first down clue %+v", cs.Down[0])
	}
}

func TestGeneratePuzzle(t *testing.T) {
	params := GenerationParams{
		GridSize:    9,
		Difficulty:  Easy,
		Theme:       "garden flowers",
		Seed:        42,
		MaxAttempts: 6,
	}
	p, stats, err := GeneratePuzzle(context.Background(), params, 0)
	if err != nil {
		t.Fatalf("GeneratePuzzle failed: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("The first puzzle should have ID 1, got %v", p.ID)
	}
	if p.Size != 9 || len(p.Grid) != 9 {
		t.Errorf("Puzzle size mismatch: %v / %v rows", p.Size, len(p.Grid))
	}
	if p.Seed != 42 {
		t.Errorf("Puzzle seed is %v, expected 42", p.Seed)
	}
	if p.Difficulty != "EASY" || p.Theme != "garden flowers" {
		t.Errorf("Puzzle metadata mismatch: %v / %v", p.Difficulty, p.Theme)
	}
	if !p.Valid || p.Fallback {
		t.Errorf("Expected a valid generated puzzle, got valid=%v fallback=%v issues=%v",
			p.Valid, p.Fallback, p.Issues)
	}
	if stats.Attempts < 1 || stats.Fallbacks != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	// The grid must be completely filled
	for _, row := range p.Grid {
		if len(row) != 9 {
			t.Errorf("Row '%v' has the wrong width", row)
		}
		if strings.ContainsRune(row, EmptyRune) {
			t.Errorf("Unfilled cell in row '%v'", row)
		}
	}
	if len(p.Across) == 0 || len(p.Down) == 0 {
		t.Fatalf("Puzzle has no entries: %v across, %v down", len(p.Across), len(p.Down))
	}
	// Entries are numbered and backed by the lexicon
	for _, clue := range append(append([]Clue{}, p.Across...), p.Down...) {
		if clue.Number <= 0 {
			t.Errorf("Clue %+v is unnumbered", clue)
		}
		if !DefaultLexicon.Find(clue.Answer) {
			t.Errorf("Answer '%v' is not in the lexicon", clue.Answer)
		}
		if clue.Text == "" {
			t.Errorf("Answer '%v' has no clue text", clue.Answer)
		}
	}
	if len(p.CluePositions) == 0 {
		t.Errorf("Puzzle has no clue positions")
	}
	// Re-extracting the filled grid reproduces the clued answers
	filled, err := ParseGrid(p.Grid)
	if err != nil {
		t.Fatalf("The puzzle grid fails to parse: %v", err)
	}
	fillAcross, fillDown := ExtractSlots(filled)
	if len(fillAcross) != len(p.Across) || len(fillDown) != len(p.Down) {
		t.Fatalf("Slot counts differ from clue counts: %v/%v vs %v/%v",
			len(fillAcross), len(fillDown), len(p.Across), len(p.Down))
	}
	extracted := make(map[string]bool)
	for _, s := range append(append([]Slot{}, fillAcross...), fillDown...) {
		extracted[WordAt(filled, s)] = true
	}
	for _, clue := range append(append([]Clue{}, p.Across...), p.Down...) {
		if !extracted[clue.Answer] {
			t.Errorf("Clued answer '%v' does not read back from the grid", clue.Answer)
		}
	}
	// The same seed reproduces the same puzzle
	q, _, err := GeneratePuzzle(context.Background(), params, 0)
	if err != nil {
		t.Fatalf("GeneratePuzzle failed on rerun: %v", err)
	}
	for i, row := range q.Grid {
		if row != p.Grid[i] {
			t.Errorf("Row %v differs between identical runs", i)
		}
	}
	if len(q.Across) != len(p.Across) {
		t.Fatalf("Clue counts differ between identical runs")
	}
	for i, clue := range q.Across {
		if clue != p.Across[i] {
			t.Errorf("Across clue %v differs between identical runs", i)
		}
	}
}

func TestFallbackPuzzle(t *testing.T) {
	// A lexicon this small cannot fill any generated pattern, so
	// the engine must exhaust its attempts and emit the fallback
	tiny := NewLexicon([]string{"CAT", "DOG", "SUN"}, 0)
	params := GenerationParams{
		GridSize:   9,
		Difficulty: Easy,
		Seed:       1,
		Lexicon:    tiny,
	}
	p, stats, err := GeneratePuzzle(context.Background(), params, 0)
	if err != nil {
		t.Fatalf("GeneratePuzzle failed: %v", err)
	}
	if !p.Fallback {
		t.Fatalf("Expected a fallback puzzle, got %+v", p)
	}
	if !p.Valid || len(p.Issues) != 0 {
		t.Errorf("Fallback puzzles are served as valid, got valid=%v issues=%v", p.Valid, p.Issues)
	}
	if stats.Attempts != DefaultMaxAttempts || stats.FillFailures != DefaultMaxAttempts {
		t.Errorf("Expected %v failed attempts, got %+v", DefaultMaxAttempts, stats)
	}
	if stats.Fallbacks != 1 {
		t.Errorf("Expected one fallback in %+v", stats)
	}
	for i, row := range p.Grid {
		if row != fallbackLayout[i] {
			t.Errorf("Fallback row %v is '%v', expected '%v'", i, row, fallbackLayout[i])
		}
	}
	acrossWords := []string{"LAMP", "DOVE", "RANGERS", "HOLIDAY", "DRAGONS", "CITY", "EXIT"}
	downWords := []string{"AIR", "OUR", "NIL", "GOING", "DUO", "RAT", "SKI"}
	if len(p.Across) != len(acrossWords) || len(p.Down) != len(downWords) {
		t.Fatalf("Expected 7+7 entries, got %v and %v", len(p.Across), len(p.Down))
	}
	for i, clue := range p.Across {
		if clue.Answer != acrossWords[i] {
			t.Errorf("Across answer %v is '%v', expected '%v'", i, clue.Answer, acrossWords[i])
		}
	}
	for i, clue := range p.Down {
		if clue.Answer != downWords[i] {
			t.Errorf("Down answer %v is '%v', expected '%v'", i, clue.Answer, downWords[i])
		}
	}
	if p.Across[0].Text != "Desk light" {
		t.Errorf("Expected the easy LAMP clue, got %q", p.Across[0].Text)
	}
	if p.CluePositions["0,0"] != 1 || p.CluePositions["8,5"] != 14 {
		t.Errorf("Fallback clue positions are wrong: %v", p.CluePositions)
	}

	// On larger grids the layout is centered and the border fully
	// blocked, preserving symmetry and connectivity
	params.GridSize = 15
	p, _, err = GeneratePuzzle(context.Background(), params, 0)
	if err != nil {
		t.Fatalf("GeneratePuzzle failed: %v", err)
	}
	if !p.Fallback || p.Size != 15 {
		t.Fatalf("Expected a 15x15 fallback puzzle")
	}
	if p.Grid[0] != strings.Repeat("#", 15) {
		t.Errorf("The border should be fully blocked, got '%v'", p.Grid[0])
	}
	if p.Grid[3] != "###LAMP#DOVE###" {
		t.Errorf("Row 3 is '%v'", p.Grid[3])
	}
	if p.Grid[11] != "###CITY#EXIT###" {
		t.Errorf("Row 11 is '%v'", p.Grid[11])
	}
	if len(p.Across) != 7 || len(p.Down) != 7 {
		t.Errorf("The centered layout should keep its 7+7 entries")
	}
	if p.CluePositions["3,3"] != 1 {
		t.Errorf("The first position should shift with the layout, got %v", p.CluePositions)
	}
	g, err := ParseGrid(p.Grid)
	if err != nil {
		t.Fatalf("The fallback grid failed to parse: %v", err)
	}
	if !g.IsSymmetric() {
		t.Errorf("The centered fallback grid should be symmetric")
	}
	if !Connected(g) {
		t.Errorf("The centered fallback grid should be connected")
	}
}

func TestBadParams(t *testing.T) {
	ctx := context.Background()
	badCases := []GenerationParams{
		{GridSize: 8},                // even
		{GridSize: 7},                // too small
		{GridSize: 27},               // too large
		{Difficulty: Difficulty(42)}, // unknown difficulty
		{MaxWordLength: 2},           // below MinWordLength
	}
	for _, params := range badCases {
		if _, _, err := GeneratePuzzle(ctx, params, 0); !errors.Is(err, ErrBadParams) {
			t.Errorf("GeneratePuzzle(%+v) should fail with ErrBadParams, got %v", params, err)
		}
	}
	if _, _, err := GenerateCollection(ctx, GenerationParams{GridSize: 12}); !errors.Is(err, ErrBadParams) {
		t.Errorf("GenerateCollection should reject bad parameters, got %v", err)
	}
}

func TestGenerateCollection(t *testing.T) {
	params := GenerationParams{
		GridSize:    15,
		Difficulty:  Easy,
		PuzzleCount: 10,
		Theme:       "garden flowers",
		Seed:        42,
		MaxAttempts: 6,
	}
	puzzles, summary, err := GenerateCollection(context.Background(), params)
	if err != nil {
		t.Fatalf("GenerateCollection failed: %v", err)
	}
	if len(puzzles) != 10 {
		t.Fatalf("Expected 10 puzzles, got %v", len(puzzles))
	}
	if summary.Count != 10 || summary.Valid != 10 || summary.Invalid != 0 || summary.Fallbacks != 0 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if summary.Difficulty != "EASY" || summary.Theme != "garden flowers" || summary.Seed != 42 {
		t.Errorf("Summary metadata mismatch: %+v", summary)
	}
	if summary.Stats.Attempts < 10 {
		t.Errorf("Summary stats look wrong: %+v", summary.Stats)
	}
	for i, p := range puzzles {
		if p.ID != i+1 {
			t.Errorf("Puzzle %v has ID %v", i, p.ID)
		}
		if summary.PuzzleIDs[i] != p.ID {
			t.Errorf("Summary lists ID %v at index %v", summary.PuzzleIDs[i], i)
		}
		if p.Seed != 42+int64(i) {
			t.Errorf("Puzzle %v has seed %v", p.ID, p.Seed)
		}
		if !p.Valid || p.Fallback {
			t.Errorf("Puzzle %v: valid=%v fallback=%v issues=%v", p.ID, p.Valid, p.Fallback, p.Issues)
		}
		if len(p.Across) < 10 || len(p.Down) < 10 {
			t.Errorf("Puzzle %v has %v across and %v down entries, expected at least 10 each",
				p.ID, len(p.Across), len(p.Down))
		}
	}
	// A rerun with the same parameters reproduces the collection,
	// regardless of worker scheduling
	again, _, err := GenerateCollection(context.Background(), params)
	if err != nil {
		t.Fatalf("GenerateCollection failed on rerun: %v", err)
	}
	for i, p := range again {
		if strings.Join(p.Grid, "") != strings.Join(puzzles[i].Grid, "") {
			t.Errorf("Puzzle %v is not reproducible from its seed", p.ID)
		}
	}
}

func TestMixedCollection(t *testing.T) {
	params := GenerationParams{
		GridSize:    9,
		Difficulty:  Mixed,
		PuzzleCount: 4,
		Seed:        7,
	}
	puzzles, summary, err := GenerateCollection(context.Background(), params)
	if err != nil {
		t.Fatalf("GenerateCollection failed: %v", err)
	}
	expected := []string{"EASY", "MEDIUM", "HARD", "EASY"}
	for i, p := range puzzles {
		if p.Difficulty != expected[i] {
			t.Errorf("Puzzle %v has difficulty %v, expected %v", p.ID, p.Difficulty, expected[i])
		}
	}
	if summary.Difficulty != "MIXED" {
		t.Errorf("Summary difficulty is %v", summary.Difficulty)
	}
}

func TestCollectionTimeLimit(t *testing.T) {
	// An expired time budget surfaces as a deadline error, never
	// as a truncated collection
	params := GenerationParams{
		GridSize:    25,
		Difficulty:  Hard,
		PuzzleCount: 4,
		Seed:        11,
		TimeLimit:   time.Nanosecond,
	}
	_, _, err := GenerateCollection(context.Background(), params)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected a deadline error, got %v", err)
	}
	// Same for a context canceled by the caller
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	params.TimeLimit = 0
	if _, _, err = GenerateCollection(ctx, params); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected a cancellation error, got %v", err)
	}
}

func TestPuzzleString(t *testing.T) {
	tiny := NewLexicon([]string{"CAT", "DOG", "SUN"}, 0)
	params := GenerationParams{GridSize: 9, Difficulty: Easy, Seed: 1, Lexicon: tiny}
	p, _, err := GeneratePuzzle(context.Background(), params, 0)
	if err != nil {
		t.Fatalf("GeneratePuzzle failed: %v", err)
	}
	rendered := p.String()
	for _, want := range []string{
		"Puzzle 1 (EASY, 9x9)",
		"[fallback]",
		"L A M P # D O V E",
		"Across:",
		"Down:",
		"   1. Desk light (4)",
		"  12. Hit the slopes (3)",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Puzzle rendering is missing %q:\n%v", want, rendered)
		}
	}
}

func BenchmarkFillGrid(b *testing.B) {
	pattern := emptyFallbackPattern()
	across, down := ExtractSlots(pattern)
	for i := 0; i < b.N; i++ {
		g := pattern.Clone()
		opts := FillOptions{Rng: rand.New(rand.NewSource(int64(i)))}
		if err := FillGrid(context.Background(), g, across, down, opts); err != nil {
			b.Fatalf("FillGrid failed: %v", err)
		}
	}
}

func BenchmarkGeneratePuzzle(b *testing.B) {
	// Generate four puzzles in each benchmark loop iteration,
	// using four parallel goroutines
	generator := func(seed int64, ch chan int) {
		params := GenerationParams{GridSize: 9, Difficulty: Medium, Seed: seed}
		p, _, err := GeneratePuzzle(context.Background(), params, 0)
		if err != nil {
			ch <- 0
			return
		}
		ch <- len(p.Across) + len(p.Down)
	}
	seeds := []int64{101, 102, 103, 104}
	ch := make([]chan int, len(seeds))
	for j := 0; j < len(ch); j++ {
		ch[j] = make(chan int)
	}
	for i := 0; i < b.N; i++ {
		// Kick off the parallel generators
		for j, seed := range seeds {
			go generator(seed, ch[j])
		}
		// Collect the results as they come back
		entries := 0
		for _, c := range ch {
			entries += <-c
		}
	}
}
