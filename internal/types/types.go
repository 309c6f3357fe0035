package types

import "strings"

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Words flattens the transcript into its word sequence, preserving order.
func (t Transcript) Words() []Word {
	var out []Word
	for _, s := range t.Segments {
		out = append(out, s.Words...)
	}
	return out
}

// Language is a transcript language tag such as "en" or "zh".
type Language string

func (l Language) Shape() Shape {
	switch strings.ToLower(string(l)) {
	case "zh", "cmn", "zh-cn":
		return ShapeGrouped
	default:
		return ShapeFlat
	}
}

type Shape int

const (
	ShapeFlat Shape = iota
	ShapeGrouped
)

func (s Shape) String() string {
	if s == ShapeGrouped {
		return "grouped"
	}
	return "flat"
}

// Phonemes is the phonemic content of one word. A Flat value holds the
// whole word as a single group; a Grouped value holds one group per syllable.
type Phonemes struct {
	Shape     Shape
	Syllables [][]string
}

func Flat(symbols []string) Phonemes {
	return Phonemes{Shape: ShapeFlat, Syllables: [][]string{symbols}}
}

func Grouped(syllables [][]string) Phonemes {
	return Phonemes{Shape: ShapeGrouped, Syllables: syllables}
}

type FrameEvent struct {
	Frame    int
	VisemeID int
}
