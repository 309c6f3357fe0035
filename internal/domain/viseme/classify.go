package viseme

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var table = map[string]Viseme{
	// closed lips
	"m": PP, "b": PP, "p": PP, "pʰ": PP,
	// upper teeth on lower lip
	"f": FF, "v": FF,
	// tongue between teeth
	"θ": TH, "ð": TH,
	// affricates
	"tʃ": CH, "dʒ": CH,
	"tʂ": CH, "tʂʰ": CH, "tɕ": CH, "tɕʰ": CH,
	// narrow gap fricatives, sh grouped in
	"s": SS, "z": SS,
	"ʃ": SS, "ʒ": SS, "ɕ": SS, "ʑ": SS, "ʂ": SS,
	"ts": SS, "tsʰ": SS,
	// r-like
	"r": RR, "ɾ": RR, "ʁ": RR, "ʀ": RR, "ɹ": RR, "ɻ": RR, "ʐ": RR,
	// default consonants
	"t": DD, "d": DD, "tʰ": DD, "ʈ": DD, "ɖ": DD, "c": DD, "ɟ": DD,
	"x": DD, "ɣ": DD, "h": DD, "ɦ": DD, "j": DD, "ç": DD, "ʝ": DD,
	// velar stops
	"k": KK, "kʰ": KK, "g": KK, "ɡ": KK,
	// nasals and l
	"n": NN, "ŋ": NN, "ɲ": NN, "ɳ": NN, "l": NN, "ɫ": NN,
	// open and low/mid front vowels
	"a": AA, "aː": AA, "ä": AA, "æ": AA, "ɐ": AA, "ɑ": AA, "ɑ̃": AA,
	"aɪ": AA, "ɛ": AA, "ɛː": AA,
	// mid/closed front vowels
	"e": E, "eː": E, "œ": E, "ø": E, "ə": E, "ɤ": E,
	// high front
	"i": IH, "ɪ": IH, "y": IH, "iː": IH, "ʏ": IH, "ɥ": IH,
	// mid back
	"o": OH, "ɔ": OH, "ɔ̃": OH, "ɒ": OH, "oː": OH, "ʌ": OH,
	// high back rounded
	"u": OU, "uː": OU, "ɯ": OU, "ɰ": OU, "ʊ": OU, "w": OU,
}

var maxSymbolRunes = func() int {
	n := 1
	for k := range table {
		if c := utf8.RuneCountInString(k); c > n {
			n = c
		}
	}
	return n
}()

// Classify looks up the viseme of a single phonetic symbol. The boolean is
// false for symbols the table does not know.
func Classify(symbol string) (Viseme, bool) {
	v, ok := table[symbol]
	return v, ok
}

// Tokenize splits an IPA string into phonetic symbols. Stress marks, tie bars,
// underscores and whitespace separate symbols; inside a run the longest
// symbol known to the classifier wins, and unknown runes come out on their own.
func Tokenize(ipa string) []string {
	chunks := strings.FieldsFunc(ipa, isSeparator)
	var out []string
	for _, c := range chunks {
		out = append(out, splitLongest([]rune(c))...)
	}
	return out
}

func splitLongest(rs []rune) []string {
	var out []string
	for i := 0; i < len(rs); {
		n := maxSymbolRunes
		if n > len(rs)-i {
			n = len(rs) - i
		}
		for ; n > 1; n-- {
			if _, ok := table[string(rs[i:i+n])]; ok {
				break
			}
		}
		out = append(out, string(rs[i:i+n]))
		i += n
	}
	return out
}

func isSeparator(r rune) bool {
	switch r {
	case 'ˈ', 'ˌ', '_', '͡', '͜', '‿', '-', '.':
		return true
	}
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}
