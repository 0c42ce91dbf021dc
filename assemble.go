// assemble.go
//
// Copyright (C) 2025 The GoXword Authors
//
// This file implements the puzzle assembly state machine and the
// concurrent generation of puzzle collections.

package xword

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"time"
)

// DefaultMaxAttempts is the number of pattern-and-fill attempts
// per puzzle before the fallback grid is used
const DefaultMaxAttempts = 3

// ErrBadParams is returned for generation parameters outside
// their supported domain
var ErrBadParams = errors.New("invalid generation parameters")

// GenerationParams holds the parameters for puzzle generation.
type GenerationParams struct {
	// GridSize is the puzzle dimension; zero means
	// DefaultGridSize. Sizes must be odd, within
	// [MinGridSize, MaxGridSize].
	GridSize int
	// Difficulty of the collection; Mixed cycles per puzzle
	Difficulty Difficulty
	// PuzzleCount is the number of puzzles to generate
	PuzzleCount int
	// Theme selects a word bank to prefer; unknown themes are
	// fine and simply yield no preference
	Theme string
	// MaxWordLength caps slot lengths and dictionary entries;
	// zero means the smaller of GridSize and MaxWordLength
	MaxWordLength int
	// Seed drives all randomness. Puzzle number i uses Seed+i,
	// so a collection is reproducible from its seed alone. A
	// zero seed draws one from the clock.
	Seed int64
	// MaxAttempts is the pattern-and-fill retry budget per
	// puzzle; zero means DefaultMaxAttempts
	MaxAttempts int
	// MaxSteps is the per-attempt fill step budget; zero means
	// DefaultMaxSteps
	MaxSteps int
	// NumWorkers bounds the generation worker pool; zero means
	// the number of CPUs, and the pool never exceeds PuzzleCount
	NumWorkers int
	// TimeLimit optionally bounds a whole collection run
	TimeLimit time.Duration
	// Lexicon supplies the words; nil means DefaultLexicon
	Lexicon *Lexicon
}

// normalized returns a copy of the parameters with defaults
// applied, or an error if a value is outside its domain
func (params GenerationParams) normalized() (GenerationParams, error) {
	if params.GridSize == 0 {
		params.GridSize = DefaultGridSize
	}
	if !ValidGridSize(params.GridSize) {
		return params, fmt.Errorf("%w: grid size must be odd, between %d and %d",
			ErrBadParams, MinGridSize, MaxGridSize)
	}
	if params.Difficulty < Easy || params.Difficulty > Mixed {
		return params, fmt.Errorf("%w: unknown difficulty %d", ErrBadParams, int(params.Difficulty))
	}
	if params.PuzzleCount <= 0 {
		params.PuzzleCount = 1
	}
	if params.MaxWordLength <= 0 {
		params.MaxWordLength = params.GridSize
		if params.MaxWordLength > MaxWordLength {
			params.MaxWordLength = MaxWordLength
		}
	}
	if params.MaxWordLength < MinWordLength {
		return params, fmt.Errorf("%w: max word length %d is below %d",
			ErrBadParams, params.MaxWordLength, MinWordLength)
	}
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	if params.MaxAttempts <= 0 {
		params.MaxAttempts = DefaultMaxAttempts
	}
	if params.MaxSteps <= 0 {
		params.MaxSteps = DefaultMaxSteps
	}
	if params.NumWorkers <= 0 {
		params.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if params.NumWorkers > params.PuzzleCount {
		params.NumWorkers = params.PuzzleCount
	}
	if params.Lexicon == nil {
		params.Lexicon = DefaultLexicon
	}
	params.Lexicon = params.Lexicon.Restrict(params.MaxWordLength)
	return params, nil
}

// Puzzle is the serializable record produced for every requested
// puzzle index. The grid rows contain the solution letters;
// renderers blank them out for the solver's view.
type Puzzle struct {
	ID            int            `json:"id"`
	Theme         string         `json:"theme,omitempty"`
	Difficulty    string         `json:"difficulty"`
	Size          int            `json:"size"`
	Grid          []string       `json:"grid"`
	Across        []Clue         `json:"across"`
	Down          []Clue         `json:"down"`
	CluePositions map[string]int `json:"cluePositions"`
	Valid         bool           `json:"valid"`
	Issues        []string       `json:"issues,omitempty"`
	Fallback      bool           `json:"fallback,omitempty"`
	Seed          int64          `json:"seed"`
}

// Stats aggregates attempt counters across a generation run
type Stats struct {
	// Attempts counts pattern-and-fill attempts, retries included
	Attempts int `json:"attempts"`
	// FillFailures counts attempts whose search space was exhausted
	FillFailures int `json:"fillFailures"`
	// BudgetExhausted counts attempts stopped by the step budget
	BudgetExhausted int `json:"budgetExhausted"`
	// ValidationFailures counts filled grids rejected by the validator
	ValidationFailures int `json:"validationFailures"`
	// Fallbacks counts puzzles built from the fallback grid
	Fallbacks int `json:"fallbacks"`
}

func (s *Stats) add(o Stats) {
	s.Attempts += o.Attempts
	s.FillFailures += o.FillFailures
	s.BudgetExhausted += o.BudgetExhausted
	s.ValidationFailures += o.ValidationFailures
	s.Fallbacks += o.Fallbacks
}

// CollectionSummary aggregates one generation run
type CollectionSummary struct {
	Theme      string `json:"theme,omitempty"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
	Valid      int    `json:"valid"`
	Invalid    int    `json:"invalid"`
	Fallbacks  int    `json:"fallbacks"`
	PuzzleIDs  []int  `json:"puzzleIds"`
	Seed       int64  `json:"seed"`
	Stats      Stats  `json:"stats"`
}

// assembleState tracks the progress of a single puzzle build
type assembleState int

const (
	stateBuildingPattern assembleState = iota
	stateFilling
	stateValidating
	stateRetrying
	stateFallback
)

// GeneratePuzzle builds the puzzle with the given zero-based
// index under the given parameters. Every index yields exactly
// one puzzle: generation failures are retried with progressively
// simpler patterns, then resolved with the fallback grid, and
// validation failures are emitted as puzzles tagged with their
// issues. The only error conditions are bad parameters and a
// done context.
func GeneratePuzzle(ctx context.Context, params GenerationParams, index int) (*Puzzle, Stats, error) {
	params, err := params.normalized()
	if err != nil {
		return nil, Stats{}, err
	}
	return generatePuzzle(ctx, params, index)
}

// generatePuzzle runs the assembly state machine for one puzzle.
// The parameters must already be normalized.
func generatePuzzle(ctx context.Context, params GenerationParams, index int) (*Puzzle, Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	seed := params.Seed + int64(index)
	rng := rand.New(rand.NewSource(seed))
	difficulty := params.Difficulty.Resolve(index)
	theme := ThemeWords(params.Theme)
	var stats Stats
	var grid *Grid
	var across, down []Slot
	attempt := 0
	state := stateBuildingPattern
	for {
		switch state {
		case stateBuildingPattern:
			grid = NewGrid(params.GridSize)
			grid.ApplyPattern(patternForAttempt(difficulty, params.GridSize, params.Lexicon.MaxLength(), attempt, rng))
			across, down = ExtractSlots(grid)
			state = stateFilling
		case stateFilling:
			stats.Attempts++
			err := FillGrid(ctx, grid, across, down, FillOptions{
				Lexicon:  params.Lexicon,
				Theme:    theme,
				Rng:      rng,
				MaxSteps: params.MaxSteps,
			})
			switch {
			case err == nil:
				state = stateValidating
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				return nil, stats, err
			case errors.Is(err, ErrFillExhausted):
				stats.BudgetExhausted++
				state = stateRetrying
			default:
				stats.FillFailures++
				state = stateRetrying
			}
		case stateValidating:
			positions := NumberSlots(grid, across, down)
			clues := SynthesizeClues(grid, across, down, difficulty)
			result := Validate(grid, across, down, clues)
			if result.Valid || attempt+1 >= params.MaxAttempts {
				// Accepted, or out of retries: emit either way,
				// tagged with any issues found
				if !result.Valid {
					stats.ValidationFailures++
				}
				p := newPuzzle(params, index, seed, difficulty, grid, clues, positions)
				p.Valid = result.Valid
				p.Issues = result.Issues
				return p, stats, nil
			}
			stats.ValidationFailures++
			state = stateRetrying
		case stateRetrying:
			attempt++
			if attempt >= params.MaxAttempts {
				state = stateFallback
			} else {
				state = stateBuildingPattern
			}
		case stateFallback:
			stats.Fallbacks++
			grid = fallbackGrid(params.GridSize)
			across, down = ExtractSlots(grid)
			positions := NumberSlots(grid, across, down)
			clues := SynthesizeClues(grid, across, down, difficulty)
			p := newPuzzle(params, index, seed, difficulty, grid, clues, positions)
			p.Valid = true
			p.Fallback = true
			return p, stats, nil
		}
	}
}

func newPuzzle(params GenerationParams, index int, seed int64, difficulty Difficulty,
	grid *Grid, clues *ClueSet, positions map[string]int) *Puzzle {
	return &Puzzle{
		ID:            index + 1,
		Theme:         params.Theme,
		Difficulty:    difficulty.String(),
		Size:          grid.Size,
		Grid:          grid.Rows(),
		Across:        clues.Across,
		Down:          clues.Down,
		CluePositions: positions,
		Seed:          seed,
	}
}

// String returns a human-readable rendering of the puzzle,
// with the solution grid followed by the clue lists
func (p *Puzzle) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Puzzle %d (%s, %dx%d)", p.ID, p.Difficulty, p.Size, p.Size)
	if p.Theme != "" {
		fmt.Fprintf(&sb, ", theme '%s'", p.Theme)
	}
	if p.Fallback {
		sb.WriteString(" [fallback]")
	}
	if !p.Valid {
		fmt.Fprintf(&sb, " [issues: %s]", strings.Join(p.Issues, "; "))
	}
	sb.WriteRune('\n')
	for _, row := range p.Grid {
		for i, ch := range row {
			if i > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteRune(ch)
		}
		sb.WriteRune('\n')
	}
	sb.WriteString("Across:\n")
	for _, clue := range p.Across {
		fmt.Fprintf(&sb, "%4d. %s (%d)\n", clue.Number, clue.Text, len(clue.Answer))
	}
	sb.WriteString("Down:\n")
	for _, clue := range p.Down {
		fmt.Fprintf(&sb, "%4d. %s (%d)\n", clue.Number, clue.Text, len(clue.Answer))
	}
	return sb.String()
}

// GenerateCollection generates params.PuzzleCount puzzles on a
// bounded worker pool and returns them ordered by ID together
// with a collection summary. Puzzle IDs depend only on the
// requested index, not on completion order. The whole run can be
// bounded by params.TimeLimit or the passed context; a canceled
// run returns the context error.
func GenerateCollection(ctx context.Context, params GenerationParams) ([]*Puzzle, *CollectionSummary, error) {
	params, err := params.normalized()
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if params.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.TimeLimit)
		defer cancel()
	}

	type outcome struct {
		index  int
		puzzle *Puzzle
		stats  Stats
		err    error
	}
	jobs := make(chan int)
	results := make(chan outcome, params.PuzzleCount)

	var wg sync.WaitGroup
	wg.Add(params.NumWorkers)
	for w := 0; w < params.NumWorkers; w++ {
		go func() {
			defer wg.Done()
			for index := range jobs {
				puzzle, stats, err := generatePuzzle(ctx, params, index)
				results <- outcome{index: index, puzzle: puzzle, stats: stats, err: err}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := 0; i < params.PuzzleCount; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	puzzles := make([]*Puzzle, params.PuzzleCount)
	summary := &CollectionSummary{
		Theme:      params.Theme,
		Difficulty: params.Difficulty.String(),
		Seed:       params.Seed,
	}
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		puzzles[r.index] = r.puzzle
		summary.Stats.add(r.stats)
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	for _, p := range puzzles {
		if p == nil {
			// The context was done before this index was dispatched
			return nil, nil, ctx.Err()
		}
		summary.Count++
		summary.PuzzleIDs = append(summary.PuzzleIDs, p.ID)
		if p.Valid {
			summary.Valid++
		} else {
			summary.Invalid++
		}
		if p.Fallback {
			summary.Fallbacks++
		}
	}
	return puzzles, summary, nil
}

// fallbackLayout is the hand-built grid used when generation
// cannot produce an acceptable puzzle. It holds exactly seven
// across words (LAMP, DOVE, RANGERS, HOLIDAY, DRAGONS, CITY,
// EXIT) and seven down words (AIR, OUR, NIL, GOING, DUO, RAT,
// SKI), interlocked, connected, and symmetric.
var fallbackLayout = []string{
	"LAMP#DOVE",
	"#I####U##",
	"#RANGERS#",
	"###IO####",
	"#HOLIDAY#",
	"####NU###",
	"#DRAGONS#",
	"##A####K#",
	"CITY#EXIT",
}

// fallbackGrid returns the fallback layout centered in a grid of
// the requested size, with the surrounding ring fully blocked so
// that symmetry and connectivity carry over
func fallbackGrid(size int) *Grid {
	core, err := ParseGrid(fallbackLayout)
	if err != nil {
		panic(err)
	}
	if size <= core.Size {
		return core
	}
	g := NewGrid(size)
	offset := (size - core.Size) / 2
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cr, cc := row-offset, col-offset
			if !core.InBounds(cr, cc) || core.IsBlocked(cr, cc) {
				g.Block(row, col)
				continue
			}
			if ch := core.Letter(cr, cc); ch != 0 {
				g.SetLetter(row, col, ch)
			}
		}
	}
	return g
}
