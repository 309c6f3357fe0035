package viseme

import "github.com/forPelevin/lipsync/internal/types"

// Sequences maps a word's phonemes to one viseme list per syllable. Unknown
// symbols are dropped here and nowhere else. Grouped syllables that end up
// empty are left out; a flat word always yields exactly one list, which may
// be empty.
func Sequences(p types.Phonemes) [][]Viseme {
	if p.Shape == types.ShapeFlat {
		var symbols []string
		for _, syl := range p.Syllables {
			symbols = append(symbols, syl...)
		}
		return [][]Viseme{classifyAll(symbols)}
	}
	var out [][]Viseme
	for _, syl := range p.Syllables {
		if vs := classifyAll(syl); len(vs) > 0 {
			out = append(out, vs)
		}
	}
	return out
}

func classifyAll(symbols []string) []Viseme {
	var out []Viseme
	for _, s := range symbols {
		if v, ok := Classify(s); ok {
			out = append(out, v)
		}
	}
	return out
}
