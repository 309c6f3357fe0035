package ports

import (
	"context"

	"github.com/forPelevin/lipsync/internal/types"
)

// TranscriptSource produces a word-timestamped transcript from an input file.
type TranscriptSource interface {
	Transcript(ctx context.Context, input, cacheDir string) (types.Transcript, error)
}

// PhonemeProvider returns the phonemes of each word, one-to-one and in order.
// Words it cannot resolve come back with empty phonemes.
type PhonemeProvider interface {
	Phonemes(ctx context.Context, words []string, lang types.Language) ([]types.Phonemes, error)
}
