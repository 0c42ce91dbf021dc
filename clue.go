// clue.go
// Copyright (C) 2025 The GoXword Authors
// This file implements clue synthesis: curated clue variants
// selected by difficulty tier, with suffix heuristics as the
// fallback for words outside the curated table

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
	"sort"
	"strings"
)

// Clue pairs a numbered slot with its clue text and answer
type Clue struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// ClueSet holds the across and down clues of one puzzle, each
// list ordered by clue number
type ClueSet struct {
	Across []Clue `json:"across"`
	Down   []Clue `json:"down"`
}

// SynthesizeClues builds the clue lists for a filled grid. The
// slots must already carry their numbers (see NumberSlots). Words
// found in the curated clue bank get a variant chosen by
// difficulty; all other words get a heuristic fallback clue.
func SynthesizeClues(g *Grid, across, down []Slot, d Difficulty) *ClueSet {
	cs := &ClueSet{
		Across: make([]Clue, 0, len(across)),
		Down:   make([]Clue, 0, len(down)),
	}
	for _, s := range across {
		cs.Across = append(cs.Across, makeClue(g, s, d))
	}
	for _, s := range down {
		cs.Down = append(cs.Down, makeClue(g, s, d))
	}
	sort.Slice(cs.Across, func(i, j int) bool { return cs.Across[i].Number < cs.Across[j].Number })
	sort.Slice(cs.Down, func(i, j int) bool { return cs.Down[i].Number < cs.Down[j].Number })
	return cs
}

func makeClue(g *Grid, s Slot, d Difficulty) Clue {
	word := WordAt(g, s)
	return Clue{Number: s.Number, Text: ClueFor(word, d), Answer: word}
}

// ClueFor returns the clue text for a single word at the given
// difficulty
func ClueFor(word string, d Difficulty) string {
	if variants, ok := clueBank[word]; ok && len(variants) > 0 {
		return variants[tierIndex(d, len(variants))]
	}
	return fallbackClue(word)
}

// tierIndex maps a difficulty to an index into a variant list
// ordered easiest first: EASY takes the first variant, MEDIUM the
// middle one, HARD the last, clamped to the available count
func tierIndex(d Difficulty, n int) int {
	switch d {
	case Easy:
		return 0
	case Hard:
		return n - 1
	}
	return n / 2
}

// fallbackClue derives a clue from the shape of the word itself.
// Suffix stems shorter than MinWordLength letters are not used.
func fallbackClue(word string) string {
	lower := strings.ToLower(word)
	n := len(lower)
	switch {
	case strings.HasSuffix(lower, "ing") && n-3 >= MinWordLength:
		return "Action of " + lower[:n-3]
	case strings.HasSuffix(lower, "er") && n-2 >= MinWordLength:
		return "One who " + lower[:n-2] + "s"
	case strings.HasSuffix(lower, "ly") && n-2 >= MinWordLength:
		return "In an " + lower[:n-2] + " manner"
	}
	return "Related to " + lower
}

// clueBank maps answers to their clue variants, ordered easiest
// to hardest. Three variants per word is the norm, but any
// non-zero count works; tier selection clamps.
var clueBank = map[string][]string{

	// Words of the hand-built fallback grid

	"LAMP":    {"Desk light", "Genie's home", "It may be lit or leaded"},
	"DOVE":    {"Bird of peace", "Gentle cooer", "Plunged headfirst"},
	"RANGERS": {"Park patrol officers", "Texas lawmen", "New York six on ice"},
	"HOLIDAY": {"Day off", "Festive break", "Billie of jazz fame"},
	"DRAGONS": {"Fire-breathing beasts", "Fantasy hoard guards", "St. George's foes"},
	"CITY":    {"Urban center", "Metropolis", "Hall or slicker preceder"},
	"EXIT":    {"Way out", "Stage direction", "It's often marked in red"},
	"AIR":     {"What we breathe", "Simple melody", "Broadcast"},
	"OUR":     {"Belonging to us", "Collective possessive", "Father opener"},
	"NIL":     {"Nothing at all", "Soccer shutout score", "Zilch"},
	"GOING":   {"Departing", "Auction word said twice", "Racetrack condition"},
	"DUO":     {"Pair of performers", "Twosome", "Batman and Robin, e.g."},
	"RAT":     {"Maze runner", "Informer", "Desert a sinking ship"},
	"SKI":     {"Hit the slopes", "Alpine runner", "Word after jet"},

	// Garden flowers

	"ROSE":    {"Thorny garden bloom", "Flower of romance", "Stood up, or a bloom"},
	"TULIP":   {"Spring bulb flower", "Dutch field bloom", "Flower that sounds like two lips"},
	"DAISY":   {"White-petaled flower", "Chain-making bloom", "Fresh as a ___"},
	"LILY":    {"Easter flower", "Pond pad bloom", "Gilding candidate"},
	"IRIS":    {"Purple spring flower", "Eye part or bloom", "Rainbow goddess"},
	"PEONY":   {"Lush May bloom", "Showy garden globe", "Flower that ants adore"},
	"ORCHID":  {"Exotic hothouse flower", "Corsage classic", "Vanilla's family"},
	"LOTUS":   {"Sacred pond flower", "Yoga pose namesake", "Mythical memory-erasing fruit"},
	"POPPY":   {"Red remembrance flower", "Opium source", "Field flower of Flanders"},
	"ASTER":   {"Star-shaped fall flower", "Late-season bloomer", "Star, to a botanist"},
	"VIOLET":  {"Small purple flower", "Shrinking sort", "End of the rainbow"},
	"DAHLIA":  {"Showy Mexican bloom", "Garden tuber flower", "Black ___ of noir fame"},
	"AZALEA":  {"Flowering garden shrub", "Rhododendron cousin", "Southern garden showpiece"},
	"CROCUS":  {"Early spring bloom", "Snow-piercing flower", "Saffron source"},
	"ZINNIA":  {"Bright annual bloom", "Butterfly garden staple", "Last flower alphabetically"},
	"PETUNIA": {"Trailing planter flower", "Window-box regular", "Porky Pig's sweetheart"},
	"LILAC":   {"Fragrant spring shrub", "Pale purple shade", "Whitman's dooryard bloomer"},
	"BEGONIA": {"Waxy-leaved bedding plant", "Shade bed standby", "Bloom named for a colonial governor"},

	// Ocean life

	"CORAL": {"Reef builder", "Pinkish hue", "Banded snake variety"},
	"WHALE": {"Ocean giant", "Blue or humpback", "Casino high roller"},
	"SHARK": {"Feared fin bearer", "Pool hustler", "Loan ___"},
	"CRAB":  {"Sideways scuttler", "Grouch", "Cancer, in the zodiac"},
	"SQUID": {"Ten-armed swimmer", "Calamari source", "Ink-jet of the sea"},
	"SEAL":  {"Harbor barker", "Envelope closer", "Navy commando"},
	"KELP":  {"Seaweed", "Otter's canopy", "Iodine source"},

	// World capitals

	"PARIS":  {"City of Light", "Seine city", "Abductor of Helen"},
	"LONDON": {"Thames capital", "Big Ben's city", "Jack of the Klondike tales"},
	"CAIRO":  {"Nile capital", "Pyramid tourist hub", "Egyptian capital or Illinois town"},
	"TOKYO":  {"Japan's capital", "Sumo center", "Edo, today"},
	"MADRID": {"Spain's capital", "Prado city", "Real ___"},
	"BERLIN": {"German capital", "Divided city, once", "Irving of songdom"},
	"OSLO":   {"Norway's capital", "Nobel Peace Prize city", "Accords city of 1993"},
	"ROME":   {"Eternal City", "Colosseum site", "It wasn't built in a day"},
	"LIMA":   {"Peru's capital", "Bean variety", "Phonetic alphabet L"},
	"ATHENS": {"Acropolis city", "Greek capital", "Georgia college town"},

	// Musical instruments

	"PIANO":  {"Keyboard instrument", "Parlor grand", "Softly, in scores"},
	"VIOLIN": {"Fiddle's formal name", "Concert string", "Stradivari product"},
	"GUITAR": {"Six-string instrument", "Campfire accompaniment", "Axe, to a rocker"},
	"DRUM":   {"Beat keeper", "Marching band staple", "Recruit, with 'up'"},
	"FLUTE":  {"High woodwind", "Champagne glass", "Pied Piper's instrument"},
	"OBOE":   {"Double-reed woodwind", "Orchestra tuner", "Ill wind that nobody blows good"},
	"HARP":   {"Angel's instrument", "Celtic symbol", "Dwell tediously, with 'on'"},
	"TUBA":   {"Big brass", "Oompah horn", "Sousa band anchor"},
	"CELLO":  {"Knee-held string", "Yo-Yo Ma's instrument", "Suite subject for Bach"},

	// Astronomy

	"STAR":    {"Night light", "Hollywood standout", "Asterisk, essentially"},
	"COMET":   {"Tailed wanderer", "Halley's sighting", "Santa's reindeer"},
	"NEBULA":  {"Star nursery", "Cosmic cloud", "Smudge in Orion's sword"},
	"GALAXY":  {"Star system", "Milky Way, e.g.", "Andromeda, for one"},
	"PLANET":  {"Solar system member", "Mars or Venus", "Wanderer, to the Greeks"},
	"ORBIT":   {"Path around a star", "Satellite's route", "Eye socket"},
	"METEOR":  {"Shooting star", "Sky streaker", "Crater maker"},
	"VENUS":   {"Morning star", "Love goddess", "Williams of tennis"},
	"MARS":    {"Red planet", "War god", "Candy bar name"},
	"SATURN":  {"Ringed planet", "Sixth from the sun", "Defunct GM brand"},
	"ECLIPSE": {"Sun blocker", "Totality event", "Overshadow"},

	// Kitchen tools

	"WHISK":  {"Egg beater", "Kitchen whipper", "Move briskly"},
	"LADLE":  {"Soup server", "Punch bowl dipper", "Dish out, as stew"},
	"SPOON":  {"Cereal utensil", "Teaspoon's kin", "Cuddle closely"},
	"KETTLE": {"Tea boiler", "Whistler in the kitchen", "Pot's critic, in a saying"},
	"SIEVE":  {"Flour sifter", "Strainer", "Leaky defense, in sports slang"},
	"TONGS":  {"Gripping tool", "Salad servers", "Ice-block handlers"},
	"TIMER":  {"Countdown device", "Egg gadget", "Old ___ (veteran)"},

	// Weather

	"STORM":   {"Violent weather", "Rage loudly", "Take by force"},
	"CLOUD":   {"Sky fluff", "Remote data home", "Obscure"},
	"FROST":   {"Window coating", "Road not taken poet", "Nip producer"},
	"BREEZE":  {"Gentle wind", "Easy task", "Shoot the ___"},
	"THUNDER": {"Storm rumble", "Lightning's partner", "It can be stolen"},
	"HAIL":    {"Icy pellets", "Taxi summons", "Caesar greeting"},
	"GALE":    {"Strong wind", "Laughter outburst", "Dorothy's surname"},
	"MIST":    {"Fine fog", "Morning haze", "Spray bottle output"},

	// Trees

	"OAK":    {"Sturdy tree", "Barrel wood", "Acorn's ambition"},
	"PINE":   {"Evergreen tree", "Christmas tree, often", "Long (for)"},
	"MAPLE":  {"Syrup tree", "Canadian emblem", "Bat wood"},
	"BIRCH":  {"White-barked tree", "Canoe material", "Switch source"},
	"CEDAR":  {"Aromatic wood", "Chest material", "Moth repellent"},
	"WILLOW": {"Weeping tree", "Riverbank tree", "Cricket bat wood"},
	"ASPEN":  {"Quaking tree", "Colorado ski resort", "Tree with trembling leaves"},
	"SPRUCE": {"Conifer", "Christmas tree choice", "Neaten, with 'up'"},
	"ELM":    {"Shade tree", "Street of horror films", "Dutch disease victim"},
	"FIR":    {"Christmas evergreen", "Douglas ___", "Cone bearer"},

	// Birds

	"EAGLE":  {"National bird", "Two under par", "Scout's top rank"},
	"ROBIN":  {"Red-breasted bird", "Spring herald", "Batman's partner"},
	"HERON":  {"Wading bird", "Marsh stalker", "Great blue flier"},
	"FALCON": {"Swift raptor", "Fastest diver of birds", "Maltese statuette"},
	"OWL":    {"Night hooter", "Wisdom symbol", "Late-night sort"},
	"WREN":   {"Small songbird", "Tiny tweeter", "Architect Christopher"},
	"CRANE":  {"Tall wading bird", "Construction lifter", "Stretch one's neck"},
	"FINCH":  {"Small seed-eater", "Darwin's bird", "Atticus of fiction"},

	// Sports

	"TENNIS": {"Racket sport", "Wimbledon game", "Sport where love means nothing"},
	"SOCCER": {"World's game", "Pitch sport", "Football, abroad"},
	"HOCKEY": {"Ice sport", "Puck game", "Rink battle"},
	"GOLF":   {"Links game", "Tee sport", "Phonetic alphabet G"},
	"RUGBY":  {"Scrum sport", "Union or league game", "School that named a game"},

	// Frequent fill

	"ERA":   {"Historical period", "Epoch", "Pitching stat"},
	"AREA":  {"Region", "Geometry measure", "51, famously"},
	"ORE":   {"Mined rock", "Smelter input", "Vein contents"},
	"ATE":   {"Had dinner", "Wolfed down", "Put away, in a way"},
	"TEA":   {"Afternoon brew", "Leaves in hot water", "Gossip, slangily"},
	"SEA":   {"Ocean expanse", "Sailor's domain", "It may be high or heavy"},
	"EAR":   {"Hearing organ", "Corn unit", "Lobe's locale"},
	"ONE":   {"Single digit", "Unity", "Lone bill"},
	"TEN":   {"Perfect score", "Decade count", "Commandments count"},
	"NET":   {"Fisher's gear", "After-tax amount", "Court divider"},
	"SUN":   {"Daytime star", "Sol", "Tanner's requirement"},
	"MOON":  {"Night orb", "Month marker", "It has a dark side"},
	"RAIN":  {"Shower from clouds", "Parade spoiler", "Right as ___"},
	"SNOW":  {"Winter white", "Flake fall", "Con, in slang"},
	"TREE":  {"Oak or elm", "Family chart", "Corner, as a raccoon"},
	"BIRD":  {"Feathered flier", "Early worm-getter", "Shuttlecock, informally"},
	"FISH":  {"Aquarium dweller", "Angler's quarry", "Seek compliments, say"},
	"HORSE": {"Stable dweller", "Derby runner", "Vaulting apparatus"},
	"HOUSE": {"Dwelling", "Commons or Lords", "Techno music genre"},
	"RIVER": {"Flowing waterway", "Delta former", "Final poker card"},
	"OCEAN": {"Vast blue expanse", "Atlantic, e.g.", "Liner's span"},
	"MUSIC": {"Organized sound", "Score content", "Food of love, per Orsino"},
	"DANCE": {"Move to music", "Ballroom activity", "Sidestep, with 'around'"},
	"LIGHT": {"Lamp output", "Not heavy", "Feather's weight class"},
	"NIGHT": {"Dark hours", "Day's end", "Shift for some"},
	"WATER": {"Plant's need", "Tap output", "It seeks its own level"},
	"EARTH": {"Third planet", "Garden soil", "Ground, to an electrician"},
	"HEART": {"Valentine symbol", "Core", "Deck quarter"},
	"TABLE": {"Dining surface", "Data grid", "Shelve, as a motion"},
	"CHAIR": {"Seat with a back", "Committee head", "Department leader"},
	"BREAD": {"Bakery staple", "Sandwich base", "Money, slangily"},
	"APPLE": {"Orchard fruit", "Teacher's gift", "Eve's temptation"},
	"LEMON": {"Sour citrus", "Yellow fruit", "Defective car"},
	"OLIVE": {"Martini garnish", "Oil source", "Popeye's sweetheart"},
	"ONION": {"Tearful bulb", "Bagel topper", "Layered vegetable"},
	"PASTA": {"Italian staple", "Penne or ziti", "Carb loader's choice"},
}
