// utils.go
// Copyright (C) 2025 The GoXword Authors

// This file contains general utility functions.

package xword

import "strings"

// NormalizeWord converts a raw word list entry to its canonical
// uppercase form. It returns false for blank lines, comment lines
// and entries containing anything but ASCII letters.
func NormalizeWord(s string) (string, bool) {
	w := strings.TrimSpace(s)
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	w = strings.ToUpper(w)
	for _, ch := range w {
		if ch < 'A' || ch > 'Z' {
			return "", false
		}
	}
	return w, true
}

// NormalizeTheme converts a theme name to its canonical lookup
// form: trimmed, lowercased, with whitespace runs collapsed to
// single spaces.
func NormalizeTheme(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ContainsWord returns true if a slice of words contains a given
// word.
func ContainsWord(words []string, w string) bool {
	for _, candidate := range words {
		if candidate == w {
			return true
		}
	}
	return false
}
