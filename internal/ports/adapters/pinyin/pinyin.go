// Package pinyin phonemizes Mandarin words into syllable groups.
package pinyin

import (
	"context"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/forPelevin/lipsync/internal/ports"
	"github.com/forPelevin/lipsync/internal/types"
)

// Adapter converts Han characters through pinyin and hands any other
// alphabetic run to the fallback provider as English.
type Adapter struct {
	args     gopinyin.Args
	fallback ports.PhonemeProvider
}

func New(fallback ports.PhonemeProvider) *Adapter {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal
	return &Adapter{args: args, fallback: fallback}
}

func (a *Adapter) Phonemes(ctx context.Context, words []string, _ types.Language) ([]types.Phonemes, error) {
	out := make([]types.Phonemes, len(words))
	for i, w := range words {
		groups, err := a.word(ctx, w)
		if err != nil {
			return nil, err
		}
		out[i] = types.Grouped(groups)
	}
	return out, nil
}

func (a *Adapter) word(ctx context.Context, text string) ([][]string, error) {
	var groups [][]string
	for _, r := range runs(strings.TrimSpace(text)) {
		if r.han {
			for _, py := range gopinyin.LazyPinyin(r.text, a.args) {
				if syl, ok := ToIPA(py); ok && len(syl) > 0 {
					groups = append(groups, syl)
				}
			}
			continue
		}
		if a.fallback == nil || !hasLetter(r.text) {
			continue
		}
		ph, err := a.fallback.Phonemes(ctx, []string{r.text}, "en")
		if err != nil {
			return nil, err
		}
		for _, p := range ph {
			for _, g := range p.Syllables {
				if len(g) > 0 {
					groups = append(groups, g)
				}
			}
		}
	}
	return groups, nil
}

type run struct {
	text string
	han  bool
}

// runs splits text into maximal runs of Han and non-Han characters.
func runs(text string) []run {
	var out []run
	var cur strings.Builder
	curHan := false
	for _, r := range text {
		h := unicode.Is(unicode.Han, r)
		if cur.Len() > 0 && h != curHan {
			out = append(out, run{text: cur.String(), han: curHan})
			cur.Reset()
		}
		curHan = h
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, run{text: cur.String(), han: curHan})
	}
	return out
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
