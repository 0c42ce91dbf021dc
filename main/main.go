// main.go
// Copyright (C) 2025 The GoXword Authors

// Command line program for generating crossword puzzle collections

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	xword "github.com/crosshatch/GoXword"
)

// writeJsonLines writes the puzzles, followed by the collection
// summary, as JSON lines to the named file
func writeJsonLines(path string, puzzles []*xword.Puzzle, summary *xword.CollectionSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, p := range puzzles {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return w.Flush()
}

func main() {
	num := flag.Int("n", 10, "Number of puzzles to generate")
	size := flag.Int("size", xword.DefaultGridSize, "Grid size (odd, 9 to 25)")
	diff := flag.String("d", "medium", "Difficulty (easy, medium, hard, mixed)")
	theme := flag.String("theme", "", "Theme word bank to prefer")
	words := flag.String("words", "", "Word list file (default: built-in list)")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	out := flag.String("o", "", "Write puzzles as JSON lines to this file")
	quiet := flag.Bool("q", false, "Suppress output of puzzle grids and clues")
	themes := flag.Bool("themes", false, "List the known themes and exit")
	flag.Parse()

	if *themes {
		for _, t := range xword.KnownThemes() {
			fmt.Println(t)
		}
		return
	}

	difficulty, err := xword.ParseDifficulty(*diff)
	if err != nil {
		fmt.Printf("Unknown difficulty '%v'. Specify one of 'easy', 'medium', 'hard' or 'mixed'.\n", *diff)
		os.Exit(1)
	}
	lexicon, err := xword.LoadLexiconOrDefault(*words, xword.MaxWordLength)
	if err != nil {
		fmt.Printf("%v; using the built-in word list\n", err)
	}

	params := xword.GenerationParams{
		GridSize:    *size,
		Difficulty:  difficulty,
		PuzzleCount: *num,
		Theme:       *theme,
		Seed:        *seed,
		Lexicon:     lexicon,
	}
	puzzles, summary, err := xword.GenerateCollection(context.Background(), params)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if !*quiet {
		for _, p := range puzzles {
			fmt.Printf("%v\n", p)
		}
	}
	if *out != "" {
		if err := writeJsonLines(*out, puzzles, summary); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	fmt.Printf("%v puzzles were generated at the '%v' difficulty with seed %v.\n"+
		"%v were valid, %v had issues, and %v used the fallback grid.\n",
		summary.Count, *diff, summary.Seed,
		summary.Valid, summary.Invalid, summary.Fallbacks)
}
