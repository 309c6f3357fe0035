package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/forPelevin/lipsync/internal/domain/schedule"
	"github.com/forPelevin/lipsync/internal/domain/viseme"
	"github.com/forPelevin/lipsync/internal/types"
)

func TestRun_RendersFrameData(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang types.Language
		ph   []types.Phonemes
		want string
	}{
		{
			name: "flat",
			lang: "en",
			ph: []types.Phonemes{
				types.Flat([]string{"h", "ə", "l", "o", "ʊ"}),
				types.Flat([]string{"w", "ɜ", "l", "d"}),
			},
			// The lead-in silence at frame 3 takes the frame of the first DD.
			want: "0 0\n6 11\n10 8\n13 13\n16 14\n22 0\n33 8\n38 4\n43 0",
		},
		{
			name: "grouped",
			lang: "zh",
			ph: []types.Phonemes{
				types.Grouped([][]string{{"ɕ", "i", "n"}, {"kʰ", "u"}}),
				types.Grouped(nil),
			},
			want: "0 0\n6 12\n10 8\n15 14\n22 0",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var logs []string
			uc := New(Deps{
				Transcripts: fakeSource{tr: testTranscript()},
				Phonemes:    &fakePhonemes{ph: tc.ph},
			})
			res, err := uc.Run(context.Background(), Input{
				Transcript: "in.json",
				Language:   tc.lang,
				VisemeMap:  testMap(),
				Timing:     schedule.DefaultConfig(),
				Logf: func(format string, args ...any) {
					logs = append(logs, format)
				},
			})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(res.Words) != 2 {
				t.Fatalf("expected 2 words, got %d", len(res.Words))
			}
			if res.FrameData != tc.want {
				t.Fatalf("frame data = %q, want %q", res.FrameData, tc.want)
			}
			if len(res.Events) == 0 || res.Events[len(res.Events)-1].VisemeID != 0 {
				t.Fatalf("expected trailing silence, got %v", res.Events)
			}
			if res.Stats[viseme.Sil] == 0 {
				t.Fatalf("expected silence in stats")
			}
			if len(logs) == 0 {
				t.Fatalf("expected progress logs")
			}
		})
	}
}

func TestRun_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	uc := New(Deps{
		Transcripts: fakeSource{err: boom},
		Phonemes:    &fakePhonemes{},
	})
	if _, err := uc.Run(context.Background(), Input{VisemeMap: testMap(), Timing: schedule.DefaultConfig()}); !errors.Is(err, boom) {
		t.Fatalf("expected transcript error, got %v", err)
	}

	uc = New(Deps{
		Transcripts: fakeSource{tr: testTranscript()},
		Phonemes:    &fakePhonemes{ph: []types.Phonemes{types.Flat(nil)}},
	})
	_, err := uc.Run(context.Background(), Input{VisemeMap: testMap(), Timing: schedule.DefaultConfig()})
	if err == nil || !strings.Contains(err.Error(), "1 results for 2 words") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}

func TestRun_PassesWordTextAndLanguage(t *testing.T) {
	t.Parallel()

	ph := &fakePhonemes{ph: []types.Phonemes{types.Flat(nil), types.Flat(nil)}}
	uc := New(Deps{Transcripts: fakeSource{tr: testTranscript()}, Phonemes: ph})
	if _, err := uc.Run(context.Background(), Input{Language: "zh", VisemeMap: testMap(), Timing: schedule.DefaultConfig()}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(ph.words, ",") != "hello,world" || ph.lang != "zh" {
		t.Fatalf("unexpected provider call: %q %q", ph.words, ph.lang)
	}
}

type fakeSource struct {
	tr  types.Transcript
	err error
}

func (f fakeSource) Transcript(_ context.Context, _, _ string) (types.Transcript, error) {
	return f.tr, f.err
}

type fakePhonemes struct {
	ph    []types.Phonemes
	words []string
	lang  types.Language
}

func (f *fakePhonemes) Phonemes(_ context.Context, words []string, lang types.Language) ([]types.Phonemes, error) {
	f.words = words
	f.lang = lang
	return f.ph, nil
}

func testMap() viseme.Map {
	m := make(viseme.Map, len(viseme.All))
	for i, v := range viseme.All {
		m[v] = i
	}
	return m
}

func testTranscript() types.Transcript {
	return types.Transcript{
		Segments: []types.Segment{
			{
				Start: 0,
				End:   5,
				Text:  "hello world",
				Words: []types.Word{
					{Start: 0.1, End: 0.7, Word: "hello"},
					{Start: 0.8, End: 1.4, Word: "world"},
				},
			},
		},
	}
}
