// Package viseme classifies phonetic symbols into mouth-shape categories and
// turns a word's phonemes into the viseme sequences the scheduler places.
package viseme

type Viseme string

const (
	Sil Viseme = "sli"
	PP  Viseme = "PP"
	FF  Viseme = "FF"
	TH  Viseme = "TH"
	DD  Viseme = "DD"
	KK  Viseme = "kk"
	CH  Viseme = "CH"
	SS  Viseme = "SS"
	NN  Viseme = "nn"
	RR  Viseme = "RR"
	AA  Viseme = "aa"
	E   Viseme = "E"
	IH  Viseme = "ih"
	OH  Viseme = "oh"
	OU  Viseme = "ou"
)

// All lists the public visemes in their canonical order.
var All = []Viseme{Sil, PP, FF, TH, DD, KK, CH, SS, NN, RR, AA, E, IH, OH, OU}

func (v Viseme) IsVowel() bool {
	switch v {
	case AA, E, IH, OH, OU:
		return true
	}
	return false
}

// Weight is the relative time share of v inside a syllable.
func (v Viseme) Weight() float64 {
	if v.IsVowel() {
		return 2.0
	}
	return 1.0
}

// Index returns the position of v in All, or -1.
func (v Viseme) Index() int {
	for i, x := range All {
		if x == v {
			return i
		}
	}
	return -1
}

// PrimaryVowel picks the keyframe shown when a syllable only has room for one:
// the first vowel, else the first viseme, else silence.
func PrimaryVowel(seq []Viseme) Viseme {
	for _, v := range seq {
		if v.IsVowel() {
			return v
		}
	}
	if len(seq) > 0 {
		return seq[0]
	}
	return Sil
}
