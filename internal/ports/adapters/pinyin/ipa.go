package pinyin

import "strings"

var initials = map[string]string{
	"b": "p", "p": "pʰ", "m": "m", "f": "f",
	"d": "t", "t": "tʰ", "n": "n", "l": "l",
	"g": "k", "k": "kʰ", "h": "x",
	"j": "tɕ", "q": "tɕʰ", "x": "ɕ",
	"zh": "tʂ", "ch": "tʂʰ", "sh": "ʂ", "r": "ʐ",
	"z": "ts", "c": "tsʰ", "s": "s",
}

// Apical "i" after z/c/s/zh/ch/sh/r is approximated by the plain vowel.
var finals = map[string][]string{
	"a": {"a"}, "o": {"o"}, "e": {"ɤ"},
	"ai": {"a", "i"}, "ei": {"e", "i"}, "ao": {"a", "u"}, "ou": {"o", "u"},
	"an": {"a", "n"}, "en": {"ə", "n"}, "ang": {"a", "ŋ"}, "eng": {"ə", "ŋ"},
	"ong": {"u", "ŋ"}, "er": {"a", "ɻ"},

	"i": {"i"}, "ia": {"j", "a"}, "io": {"j", "o"}, "ie": {"j", "e"},
	"iao": {"j", "a", "u"}, "iu": {"j", "o", "u"}, "iou": {"j", "o", "u"},
	"ian": {"j", "ɛ", "n"}, "in": {"i", "n"}, "iang": {"j", "a", "ŋ"},
	"ing": {"i", "ŋ"}, "iong": {"j", "u", "ŋ"},

	"u": {"u"}, "ua": {"w", "a"}, "uo": {"w", "o"}, "uai": {"w", "a", "i"},
	"ui": {"w", "e", "i"}, "uei": {"w", "e", "i"}, "uan": {"w", "a", "n"},
	"un": {"w", "ə", "n"}, "uen": {"w", "ə", "n"}, "uang": {"w", "a", "ŋ"},
	"ueng": {"w", "ə", "ŋ"},

	"v": {"y"}, "ve": {"ɥ", "e"}, "van": {"ɥ", "ɛ", "n"}, "vn": {"y", "n"},
}

// Syllabic nasals used in interjections.
var whole = map[string][]string{
	"m": {"m"}, "n": {"n"}, "ng": {"ŋ"}, "hm": {"x", "m"}, "hng": {"x", "ŋ"},
}

// ToIPA converts one toneless or tone-numbered pinyin syllable to IPA
// symbols. The boolean is false when the syllable is not valid pinyin.
func ToIPA(syllable string) ([]string, bool) {
	s := normalize(syllable)
	if s == "" {
		return nil, false
	}
	if w, ok := whole[s]; ok {
		return append([]string(nil), w...), true
	}

	initial, final := split(s)
	f, ok := finals[final]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(f)+1)
	if initial != "" {
		out = append(out, initials[initial])
	}
	return append(out, f...), true
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == 'ü':
			b.WriteByte('v')
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func split(s string) (initial, final string) {
	switch {
	case strings.HasPrefix(s, "y"):
		return "", zeroY(s[1:])
	case strings.HasPrefix(s, "w"):
		rest := s[1:]
		if rest == "u" {
			return "", "u"
		}
		return "", "u" + rest
	}

	for _, n := range []int{2, 1} {
		if len(s) < n {
			continue
		}
		if _, ok := initials[s[:n]]; ok {
			initial, final = s[:n], s[n:]
			break
		}
	}
	if initial == "" {
		return "", s
	}
	// u after j, q and x is written for ü.
	if (initial == "j" || initial == "q" || initial == "x") && strings.HasPrefix(final, "u") {
		final = "v" + final[1:]
	}
	return initial, final
}

func zeroY(rest string) string {
	switch {
	case rest == "i" || rest == "in" || rest == "ing":
		return rest
	case strings.HasPrefix(rest, "u"):
		return "v" + rest[1:]
	case strings.HasPrefix(rest, "v"):
		return rest
	}
	return "i" + rest
}
