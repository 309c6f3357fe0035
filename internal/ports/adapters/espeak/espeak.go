package espeak

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/forPelevin/lipsync/internal/domain/viseme"
	"github.com/forPelevin/lipsync/internal/types"
)

type runFunc func(ctx context.Context, bin string, args []string, stdin string) ([]byte, error)

// Adapter phonemizes words with espeak-ng and returns flat IPA symbols.
type Adapter struct {
	bin   string
	voice string
	run   runFunc
	cache map[string][]string
}

func New(binPath, voice string) *Adapter {
	if binPath == "" {
		binPath = "espeak-ng"
	}
	if voice == "" {
		voice = "en-us"
	}
	return &Adapter{bin: binPath, voice: voice, run: execRun, cache: map[string][]string{}}
}

func (a *Adapter) Phonemes(ctx context.Context, words []string, lang types.Language) ([]types.Phonemes, error) {
	voice := a.voiceFor(lang)
	out := make([]types.Phonemes, len(words))
	for i, w := range words {
		symbols, err := a.symbols(ctx, w, voice)
		if err != nil {
			return nil, err
		}
		out[i] = types.Flat(symbols)
	}
	return out, nil
}

func (a *Adapter) voiceFor(lang types.Language) string {
	switch strings.ToLower(string(lang)) {
	case "", "en":
		return a.voice
	}
	return string(lang)
}

func (a *Adapter) symbols(ctx context.Context, word, voice string) ([]string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}
	key := voice + "\x00" + word
	if s, ok := a.cache[key]; ok {
		return s, nil
	}
	b, err := a.run(ctx, a.bin, []string{"-q", "--ipa=3", "-v", voice, "--stdin"}, word)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("espeak-ng %q: %w\n%s", word, err, string(b))
		}
		return nil, fmt.Errorf("espeak-ng: %w", err)
	}
	s := viseme.Tokenize(cleanIPA(string(b)))
	a.cache[key] = s
	return s, nil
}

var reLangSwitch = regexp.MustCompile(`\([a-z]{2,3}(?:-[a-z0-9]+)?\)`)

// cleanIPA drops the language switch markers espeak inserts around words it
// reads with another voice, e.g. "(en)".
func cleanIPA(s string) string {
	return strings.TrimSpace(reLangSwitch.ReplaceAllString(s, " "))
}

func execRun(ctx context.Context, bin string, args []string, stdin string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Output()
}
