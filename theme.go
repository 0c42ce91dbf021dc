// theme.go
// Copyright (C) 2025 The GoXword Authors
// This file contains the built-in theme word banks that bias
// grid filling toward words related to a requested theme

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

import "sort"

// themeBanks maps canonical theme names to their word banks.
// Bank order expresses preference: the filler tries earlier words
// first. All entries are uppercase and at least MinWordLength
// letters long.
var themeBanks = map[string][]string{
	"garden flowers": {
		"ROSE", "TULIP", "DAISY", "LILY", "IRIS", "PEONY",
		"ORCHID", "LOTUS", "POPPY", "ASTER", "VIOLET", "DAHLIA",
		"AZALEA", "CROCUS", "ZINNIA", "PETUNIA", "LILAC", "BEGONIA",
	},
	"ocean life": {
		"CORAL", "WHALE", "SHARK", "CRAB", "SQUID", "OYSTER",
		"URCHIN", "DOLPHIN", "SEAL", "KELP", "MANTA", "EEL",
		"OTTER", "WALRUS", "MUSSEL", "ANEMONE", "PLANKTON",
	},
	"world capitals": {
		"PARIS", "LONDON", "CAIRO", "TOKYO", "MADRID", "BERLIN",
		"OSLO", "ROME", "LIMA", "ATHENS", "OTTAWA", "DUBLIN",
		"VIENNA", "MOSCOW", "HAVANA", "NAIROBI",
	},
	"musical instruments": {
		"PIANO", "VIOLIN", "CELLO", "FLUTE", "OBOE", "DRUM",
		"HARP", "TUBA", "BANJO", "GUITAR", "TRUMPET", "CLARINET",
		"VIOLA", "ORGAN", "FIDDLE", "BUGLE",
	},
	"astronomy": {
		"STAR", "COMET", "NEBULA", "GALAXY", "PLANET", "ORBIT",
		"METEOR", "ECLIPSE", "SATURN", "VENUS", "PULSAR", "QUASAR",
		"COSMOS", "LUNAR", "SOLAR", "MARS",
	},
	"kitchen tools": {
		"WHISK", "LADLE", "SPOON", "GRATER", "PEELER", "SKILLET",
		"SPATULA", "KETTLE", "TONGS", "SIEVE", "MASHER", "OPENER",
		"TIMER", "FUNNEL", "MORTAR",
	},
	"weather": {
		"STORM", "CLOUD", "FROST", "BREEZE", "THUNDER", "CYCLONE",
		"DRIZZLE", "HAIL", "SLEET", "MONSOON", "TEMPEST", "GALE",
		"MIST", "RAINBOW", "TORNADO",
	},
	"trees": {
		"OAK", "PINE", "MAPLE", "BIRCH", "CEDAR", "WILLOW",
		"ASPEN", "SPRUCE", "WALNUT", "POPLAR", "HICKORY", "REDWOOD",
		"ELM", "FIR", "JUNIPER", "CHESTNUT",
	},
	"birds": {
		"ROBIN", "EAGLE", "HERON", "FALCON", "SPARROW", "OSPREY",
		"PELICAN", "CARDINAL", "FINCH", "OWL", "WREN", "CRANE",
		"PUFFIN", "TOUCAN", "SWALLOW",
	},
	"sports": {
		"TENNIS", "SOCCER", "HOCKEY", "RUGBY", "GOLF", "ROWING",
		"BOXING", "KARATE", "FENCING", "CURLING", "CRICKET", "SKIING",
		"DIVING", "ARCHERY", "CYCLING",
	},
}

// ThemeWords returns the word bank for a theme, in preference
// order. Theme names are matched case-insensitively. An unknown
// or empty theme yields an empty list; puzzles for such themes
// are still generated, just without themed content. The returned
// slice is a copy owned by the caller.
func ThemeWords(theme string) []string {
	bank := themeBanks[NormalizeTheme(theme)]
	words := make([]string, len(bank))
	copy(words, bank)
	return words
}

// KnownThemes returns the names of all built-in themes in
// alphabetical order
func KnownThemes() []string {
	themes := make([]string, 0, len(themeBanks))
	for name := range themeBanks {
		themes = append(themes, name)
	}
	sort.Strings(themes)
	return themes
}
