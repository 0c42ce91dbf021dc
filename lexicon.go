// lexicon.go
// Copyright (C) 2025 The GoXword Authors
// This file implements the Lexicon, an indexed word list that
// answers candidate queries by length and fixed letters

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
	"bufio"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Point to the word list resources in the words directory
//
//go:embed words/*.txt
var wordFS embed.FS

// MaxWordLength is the longest word the engine will ever place
const MaxWordLength = 15

// WildcardRune stands for an unconstrained letter in a match
// pattern
const WildcardRune = '?'

// ErrWordListLoad is returned when a word list cannot be read or
// contains no usable words. Callers are expected to fall back to
// the built-in DefaultLexicon rather than abort.
var ErrWordListLoad = errors.New("cannot load word list")

// posKey addresses the posting list of words of a given length
// that carry a given letter at a given position
type posKey struct {
	length int
	pos    int
	letter rune
}

// Lexicon is an immutable, indexed word list. Words are grouped
// into buckets by length, and per-position letter posting lists
// allow pattern queries to scan only a small subset of a bucket.
// A Lexicon is safe for concurrent use.
type Lexicon struct {
	// byLength maps a word length to the bucket of words of
	// that length, in load order
	byLength map[int][]string
	// index maps (length, position, letter) to the indices of
	// matching words within the length bucket
	index map[posKey][]int
	// words is the membership set
	words map[string]bool
	// maxLen is the longest word present
	maxLen int
	// cache memoizes pattern match results
	cache matchCache
}

// NewLexicon builds a Lexicon from the given words. Words are
// normalized to uppercase; entries that are not purely alphabetic
// or fall outside [MinWordLength, maxLen] are skipped, as are
// duplicates. A maxLen of zero means MaxWordLength.
func NewLexicon(words []string, maxLen int) *Lexicon {
	if maxLen <= 0 || maxLen > MaxWordLength {
		maxLen = MaxWordLength
	}
	lex := &Lexicon{
		byLength: make(map[int][]string),
		index:    make(map[posKey][]int),
		words:    make(map[string]bool),
	}
	for _, w := range words {
		lex.add(w, maxLen)
	}
	lex.cache.Init(4096)
	return lex
}

func (lex *Lexicon) add(word string, maxLen int) {
	w, ok := NormalizeWord(word)
	if !ok {
		return
	}
	length := len(w)
	if length < MinWordLength || length > maxLen || lex.words[w] {
		return
	}
	lex.words[w] = true
	bucket := lex.byLength[length]
	idx := len(bucket)
	lex.byLength[length] = append(bucket, w)
	for pos, ch := range w {
		key := posKey{length, pos, ch}
		lex.index[key] = append(lex.index[key], idx)
	}
	if length > lex.maxLen {
		lex.maxLen = length
	}
}

// WordCount returns the total number of words in the lexicon
func (lex *Lexicon) WordCount() int {
	return len(lex.words)
}

// MaxLength returns the length of the longest word in the lexicon
func (lex *Lexicon) MaxLength() int {
	return lex.maxLen
}

// Find attempts to find a word in the lexicon, returning true if
// it is present. The word is normalized before lookup.
func (lex *Lexicon) Find(word string) bool {
	w, ok := NormalizeWord(word)
	if !ok {
		return false
	}
	return lex.words[w]
}

// Match returns all words in the lexicon that match a given
// pattern string, which can include '?' wildcards. The result is
// a fresh slice owned by the caller.
func (lex *Lexicon) Match(pattern string) []string {
	matches := lex.match(pattern)
	result := make([]string, len(matches))
	copy(result, matches)
	return result
}

// match returns the cached match list for a pattern. The returned
// slice is shared with the cache and must not be modified.
func (lex *Lexicon) match(pattern string) []string {
	runes := []rune(pattern)
	length := len(runes)
	fixed := 0
	for _, ch := range runes {
		if ch != WildcardRune {
			fixed++
		}
	}
	if fixed == 0 {
		// An unconstrained pattern is the whole length bucket
		return lex.byLength[length]
	}
	return lex.cache.Lookup(pattern, func(key string) []string {
		return lex.scan(runes)
	})
}

// scan resolves a pattern by walking the shortest posting list
// among its fixed letters and verifying the remaining positions
func (lex *Lexicon) scan(pattern []rune) []string {
	length := len(pattern)
	bucket := lex.byLength[length]
	if len(bucket) == 0 {
		return nil
	}
	// Pick the most selective posting list
	var shortest []int
	found := false
	for pos, ch := range pattern {
		if ch == WildcardRune {
			continue
		}
		list := lex.index[posKey{length, pos, ch}]
		if !found || len(list) < len(shortest) {
			shortest, found = list, true
		}
		if len(list) == 0 {
			return nil
		}
	}
	var result []string
	for _, idx := range shortest {
		word := bucket[idx]
		if matchesPattern(word, pattern) {
			result = append(result, word)
		}
	}
	return result
}

func matchesPattern(word string, pattern []rune) bool {
	for pos, ch := range word {
		if pattern[pos] != WildcardRune && pattern[pos] != ch {
			return false
		}
	}
	return true
}

// Candidates returns the words of the given length that carry the
// given fixed letters and are not in the used set. The fixed map
// is keyed by zero-based position within the word. The result is
// a fresh slice in deterministic (load) order; shuffling is up to
// the caller.
func (lex *Lexicon) Candidates(length int, fixed map[int]rune, used map[string]bool) []string {
	if length < MinWordLength || length > lex.maxLen {
		return nil
	}
	pattern := make([]rune, length)
	for i := range pattern {
		pattern[i] = WildcardRune
	}
	for pos, ch := range fixed {
		if pos >= 0 && pos < length {
			pattern[pos] = ch
		}
	}
	matches := lex.match(string(pattern))
	result := make([]string, 0, len(matches))
	for _, w := range matches {
		if !used[w] {
			result = append(result, w)
		}
	}
	return result
}

// Restrict returns a lexicon containing only the words of at most
// maxLen letters. The receiver is unchanged.
func (lex *Lexicon) Restrict(maxLen int) *Lexicon {
	if maxLen <= 0 || maxLen >= lex.maxLen {
		return lex
	}
	var words []string
	for length, bucket := range lex.byLength {
		if length <= maxLen {
			words = append(words, bucket...)
		}
	}
	return NewLexicon(words, maxLen)
}

// LoadLexicon reads a word list from a plain text file with one
// word per line. Blank lines and lines starting with '#' are
// ignored. A read failure or an entirely unusable file yields an
// error wrapping ErrWordListLoad.
func LoadLexicon(path string, maxLen int) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWordListLoad, err)
	}
	defer f.Close()
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWordListLoad, err)
	}
	lex := NewLexicon(words, maxLen)
	if lex.WordCount() == 0 {
		return nil, fmt.Errorf("%w: %s contains no usable words", ErrWordListLoad, path)
	}
	return lex, nil
}

// LoadLexiconOrDefault loads a word list from the given path,
// substituting the built-in DefaultLexicon when the path is empty
// or the list cannot be used. The returned lexicon is always
// usable; the error, if any, reports why the fallback was taken.
func LoadLexiconOrDefault(path string, maxLen int) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon, nil
	}
	lex, err := LoadLexicon(path, maxLen)
	if err != nil {
		return DefaultLexicon, err
	}
	return lex, nil
}

// makeLexicon initializes a Lexicon from a word list file located
// in the embedded words directory
func makeLexicon(fileName string) *Lexicon {
	data, err := wordFS.ReadFile("words/" + fileName)
	if err != nil {
		panic(err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		words = append(words, line)
	}
	lex := NewLexicon(words, MaxWordLength)
	if lex.WordCount() == 0 {
		panic(fmt.Sprintf("embedded word list %s is empty", fileName))
	}
	return lex
}

// DefaultLexicon is the built-in English word list, used whenever
// no external list is given or an external list fails to load
var DefaultLexicon = makeLexicon("default.txt")

// matchCache encapsulates a simple LRU cached map of match
// patterns ("B??K") to their result lists
type matchCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// Init initializes an empty matchCache
func (mc *matchCache) Init(size int) {
	mc.lru, _ = simplelru.NewLRU(size, nil)
}

// Lookup returns the word list corresponding to a match pattern
// key. If the key is found in the cache, it is returned
// immediately. Otherwise, the given fetchFunc() is called to
// calculate the associated list before storing it in the cache.
func (mc *matchCache) Lookup(key string, fetchFunc func(string) []string) []string {
	mc.mux.Lock()
	defer mc.mux.Unlock()
	if words, ok := mc.lru.Get(key); ok {
		return words.([]string)
	}
	words := fetchFunc(key)
	mc.lru.Add(key, words)
	return words
}
