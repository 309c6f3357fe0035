package usecase

import (
	"context"
	"fmt"

	"github.com/forPelevin/lipsync/internal/domain/framedata"
	"github.com/forPelevin/lipsync/internal/domain/schedule"
	"github.com/forPelevin/lipsync/internal/domain/viseme"
	"github.com/forPelevin/lipsync/internal/ports"
	"github.com/forPelevin/lipsync/internal/types"
)

type Deps struct {
	Transcripts ports.TranscriptSource
	Phonemes    ports.PhonemeProvider
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Transcript string
	Language   types.Language
	VisemeMap  viseme.Map
	Timing     schedule.Config
	CacheDir   string
	Logf       func(format string, args ...any)
}

type Result struct {
	Words     []types.Word
	Events    []types.FrameEvent
	Stats     schedule.Stats
	FrameData string
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	tr, err := u.d.Transcripts.Transcript(ctx, in.Transcript, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	words := tr.Words()
	logf("transcript: %d words", len(words))

	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Word
	}
	phonemes, err := u.d.Phonemes.Phonemes(ctx, texts, in.Language)
	if err != nil {
		return Result{}, fmt.Errorf("phonemes: %w", err)
	}
	if len(phonemes) != len(words) {
		return Result{}, fmt.Errorf("phonemes: got %d results for %d words", len(phonemes), len(words))
	}
	logf("phonemes (%s, %s)", in.Language, in.Language.Shape())

	seqs := make([][][]viseme.Viseme, len(words))
	for i, p := range phonemes {
		seqs[i] = viseme.Sequences(p)
	}

	res := schedule.New(in.Timing, in.VisemeMap).Schedule(words, seqs)
	logf("scheduled %d keyframes", len(res.Events))

	return Result{
		Words:     words,
		Events:    res.Events,
		Stats:     res.Stats,
		FrameData: framedata.Render(res.Events),
	}, nil
}
