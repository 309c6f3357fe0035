package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/lipsync/internal/domain/framedata"
	"github.com/forPelevin/lipsync/internal/domain/schedule"
	"github.com/forPelevin/lipsync/internal/domain/viseme"
	"github.com/forPelevin/lipsync/internal/ports"
	"github.com/forPelevin/lipsync/internal/ports/adapters/espeak"
	"github.com/forPelevin/lipsync/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/lipsync/internal/ports/adapters/pinyin"
	"github.com/forPelevin/lipsync/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/lipsync/internal/ports/adapters/whisperjson"
	"github.com/forPelevin/lipsync/internal/types"
	"github.com/forPelevin/lipsync/internal/usecase"
)

type Config struct {
	Input     string
	Output    string
	VisemeMap string
	Language  types.Language
	Timing    schedule.Config
	Logf      func(format string, args ...any)

	// Stats receives the viseme frequency report when non-nil.
	Stats io.Writer

	// CacheDir is the base directory for whisper.cpp artifacts.
	// If empty, defaults to ".cache".
	CacheDir string

	EspeakBin   string
	EspeakVoice string

	WhisperBin   string
	WhisperModel string

	FFmpegBin string
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Output == "" {
		return errors.New("output is empty")
	}
	if c.VisemeMap == "" {
		return errors.New("viseme map path is empty")
	}
	if err := c.Timing.Validate(); err != nil {
		return err
	}
	if isAudio(c.Input) && c.WhisperModel == "" {
		return errors.New("whisper model path is required for audio input")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	// The map is checked before any transcript work so a bad map never
	// produces output.
	ids, err := viseme.LoadMap(cfg.VisemeMap)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logf("viseme map: %s", cfg.VisemeMap)

	cacheDir := ""
	if isAudio(cfg.Input) {
		base := cfg.CacheDir
		if base == "" {
			base = ".cache"
		}
		cacheDir = filepath.Join(base, "runs", hash(cfg.Input))
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return err
		}
		logf("cache: %s", cacheDir)
	}

	uc := usecase.New(usecase.Deps{
		Transcripts: transcriptSource(cfg),
		Phonemes:    phonemeProvider(cfg),
	})
	res, err := uc.Run(ctx, usecase.Input{
		Transcript: cfg.Input,
		Language:   cfg.Language,
		VisemeMap:  ids,
		Timing:     cfg.Timing,
		CacheDir:   cacheDir,
		Logf:       logf,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := framedata.Write(cfg.Output, res.Events); err != nil {
		return fmt.Errorf("write frame data: %w", err)
	}
	logf("frame data written (%d keyframes): %s", len(res.Events), cfg.Output)

	if cfg.Stats != nil {
		if _, err := res.Stats.WriteTo(cfg.Stats); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
	}
	return nil
}

func transcriptSource(cfg Config) ports.TranscriptSource {
	if isAudio(cfg.Input) {
		return &audioSource{
			ff:      ffmpeg.New(cfg.FFmpegBin),
			whisper: whispercpp.New(cfg.WhisperBin, cfg.WhisperModel),
		}
	}
	return whisperjson.New()
}

// audioSource normalizes any media file to 16kHz mono wav before handing it
// to whisper.cpp.
type audioSource struct {
	ff      *ffmpeg.Adapter
	whisper *whispercpp.Adapter
}

func (s *audioSource) Transcript(ctx context.Context, input, cacheDir string) (types.Transcript, error) {
	wav := filepath.Join(cacheDir, "audio.wav")
	if err := s.ff.ExtractAudioMono16k(ctx, input, wav); err != nil {
		return types.Transcript{}, err
	}
	return s.whisper.Transcript(ctx, wav, cacheDir)
}

func phonemeProvider(cfg Config) ports.PhonemeProvider {
	es := espeak.New(cfg.EspeakBin, cfg.EspeakVoice)
	if cfg.Language.Shape() == types.ShapeGrouped {
		return pinyin.New(es)
	}
	return es
}

var audioExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true, ".ogg": true,
	".opus": true, ".mp4": true, ".mov": true, ".mkv": true, ".webm": true,
}

// isAudio reports whether path is transcribed from sound rather than read as
// a transcript document.
func isAudio(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.TranscriptSource = (*whisperjson.Adapter)(nil)
var _ ports.TranscriptSource = (*whispercpp.Adapter)(nil)
var _ ports.TranscriptSource = (*audioSource)(nil)
var _ ports.PhonemeProvider = (*espeak.Adapter)(nil)
var _ ports.PhonemeProvider = (*pinyin.Adapter)(nil)
