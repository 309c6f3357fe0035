package pinyin

import (
	"context"
	"reflect"
	"testing"

	"github.com/forPelevin/lipsync/internal/types"
)

func TestToIPA(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"xin", []string{"ɕ", "i", "n"}, true},
		{"ku", []string{"kʰ", "u"}, true},
		{"zhong1", []string{"tʂ", "u", "ŋ"}, true},
		{"ju", []string{"tɕ", "y"}, true},
		{"lv", []string{"l", "y"}, true},
		{"lü", []string{"l", "y"}, true},
		{"yue", []string{"ɥ", "e"}, true},
		{"you", []string{"j", "o", "u"}, true},
		{"yi", []string{"i"}, true},
		{"wo", []string{"w", "o"}, true},
		{"wu", []string{"u"}, true},
		{"er", []string{"a", "ɻ"}, true},
		{"ng", []string{"ŋ"}, true},
		{"hello", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ToIPA(tt.in)
			if ok != tt.ok || !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ToIPA(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

type fakeEnglish struct {
	calls []string
}

func (f *fakeEnglish) Phonemes(_ context.Context, words []string, _ types.Language) ([]types.Phonemes, error) {
	f.calls = append(f.calls, words...)
	out := make([]types.Phonemes, len(words))
	for i := range words {
		out[i] = types.Flat([]string{"o", "k"})
	}
	return out, nil
}

func TestPhonemes_GroupsPerSyllable(t *testing.T) {
	eng := &fakeEnglish{}
	a := New(eng)
	got, err := a.Phonemes(context.Background(), []string{"辛苦", "OK了", "。"}, "zh")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 words, got %d", len(got))
	}
	want := [][]string{{"ɕ", "i", "n"}, {"kʰ", "u"}}
	if got[0].Shape != types.ShapeGrouped || !reflect.DeepEqual(got[0].Syllables, want) {
		t.Fatalf("unexpected phonemes for 辛苦: %+v", got[0])
	}
	if len(got[1].Syllables) != 2 || !reflect.DeepEqual(got[1].Syllables[0], []string{"o", "k"}) {
		t.Fatalf("expected english fallback then pinyin, got %+v", got[1])
	}
	if len(got[2].Syllables) != 0 {
		t.Fatalf("expected punctuation to yield nothing, got %+v", got[2])
	}
	if !reflect.DeepEqual(eng.calls, []string{"OK"}) {
		t.Fatalf("unexpected fallback calls: %q", eng.calls)
	}
}

func TestRuns(t *testing.T) {
	got := runs("AI很好ok")
	want := []run{{"AI", false}, {"很好", true}, {"ok", false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("runs = %+v, want %+v", got, want)
	}
}
