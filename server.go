// server.go
//
// Copyright (C) 2025 The GoXword Authors
//
// This file implements a compact HTTP server that receives
// JSON encoded requests and returns JSON encoded responses.

package xword

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ProtocolVersion is reported in every JSON response
const ProtocolVersion = "1.0"

// maxWordCheckWords caps the number of words accepted by a
// single wordcheck request
const maxWordCheckWords = 256

// Store is the puzzle store used by the request handlers to
// save and load collections. It is nil unless the embedding
// server configures one.
var Store PuzzleStore

// A class describing incoming puzzle generation requests
type GenerateRequest struct {
	Collection    string `json:"collection"`
	Count         int    `json:"count"`
	Size          int    `json:"size"`
	Difficulty    string `json:"difficulty"`
	Theme         string `json:"theme"`
	MaxWordLength int    `json:"max_word_length"`
	Seed          int64  `json:"seed"`
	TimeLimitMs   int    `json:"time_limit_ms"`
	Save          bool   `json:"save"`
}

// The JSON response to a generation request
type GenerateResponse struct {
	Version string             `json:"version"`
	Summary *CollectionSummary `json:"summary"`
	Puzzles []*Puzzle          `json:"puzzles"`
}

// A class describing incoming word check requests
type WordCheckRequest struct {
	Words []string `json:"words"`
}

// The validity verdict for a single checked word
type WordCheckResult struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

// The JSON response to a word check request
type WordCheckResponse struct {
	Version string            `json:"version"`
	Results []WordCheckResult `json:"results"`
}

// A class describing incoming theme list requests
type ThemesRequest struct {
}

// The JSON response to a theme list request
type ThemesResponse struct {
	Version string   `json:"version"`
	Themes  []string `json:"themes"`
}

// A class describing incoming stored puzzle requests
type PuzzleRequest struct {
	Collection string `json:"collection"`
	ID         int    `json:"id"`
}

// The JSON response to a stored puzzle request
type PuzzleResponse struct {
	Version string  `json:"version"`
	Puzzle  *Puzzle `json:"puzzle"`
}

// writeJson encodes a response as JSON onto the HTTP connection
func writeJson(w http.ResponseWriter, response any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Unable to generate valid JSON
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Handle an incoming puzzle generation request
func HandleGenerateRequest(ctx context.Context, w http.ResponseWriter, req GenerateRequest) {
	difficulty := Medium
	if req.Difficulty != "" {
		var err error
		if difficulty, err = ParseDifficulty(req.Difficulty); err != nil {
			msg := "Invalid difficulty. Must be 'easy', 'medium', 'hard' or 'mixed'.\n"
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
	}
	if req.Save && Store == nil {
		http.Error(w, "No puzzle store configured.\n", http.StatusBadRequest)
		return
	}
	if req.Save && req.Collection == "" {
		http.Error(w, "A collection name is required to save puzzles.\n", http.StatusBadRequest)
		return
	}
	params := GenerationParams{
		GridSize:      req.Size,
		Difficulty:    difficulty,
		PuzzleCount:   req.Count,
		Theme:         req.Theme,
		MaxWordLength: req.MaxWordLength,
		Seed:          req.Seed,
	}
	if req.TimeLimitMs > 0 {
		params.TimeLimit = time.Duration(req.TimeLimitMs) * time.Millisecond
	}
	puzzles, summary, err := GenerateCollection(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadParams):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			http.Error(w, "Generation timed out.\n", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if req.Save {
		if err := Store.SaveCollection(ctx, req.Collection, puzzles, summary); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJson(w, GenerateResponse{
		Version: ProtocolVersion,
		Summary: summary,
		Puzzles: puzzles,
	})
}

// Handle an incoming word check request
func HandleWordCheckRequest(w http.ResponseWriter, req WordCheckRequest) {
	if len(req.Words) > maxWordCheckWords {
		http.Error(w, "Too many words.\n", http.StatusBadRequest)
		return
	}
	results := make([]WordCheckResult, 0, len(req.Words))
	for _, word := range req.Words {
		normalized, ok := NormalizeWord(word)
		results = append(results, WordCheckResult{
			Word:  word,
			Valid: ok && DefaultLexicon.Find(normalized),
		})
	}
	writeJson(w, WordCheckResponse{
		Version: ProtocolVersion,
		Results: results,
	})
}

// Handle an incoming theme list request
func HandleThemesRequest(w http.ResponseWriter, req ThemesRequest) {
	writeJson(w, ThemesResponse{
		Version: ProtocolVersion,
		Themes:  KnownThemes(),
	})
}

// Handle an incoming stored puzzle request
func HandlePuzzleRequest(ctx context.Context, w http.ResponseWriter, req PuzzleRequest) {
	if Store == nil {
		http.Error(w, "No puzzle store configured.\n", http.StatusBadRequest)
		return
	}
	puzzle, err := Store.LoadPuzzle(ctx, req.Collection, req.ID)
	if errors.Is(err, ErrPuzzleNotFound) {
		http.Error(w, "Puzzle not found.\n", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJson(w, PuzzleResponse{
		Version: ProtocolVersion,
		Puzzle:  puzzle,
	})
}
